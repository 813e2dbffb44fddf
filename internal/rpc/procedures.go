package rpc

import (
	"context"

	"github.com/Tomlord1122/portfolio-backend/internal/service"
	"github.com/Tomlord1122/portfolio-backend/internal/validate"
)

// ListInput is the input of <entity>.list. Both fields accept numbers or
// numeric strings; missing or unparseable values use the defaults.
type ListInput struct {
	Limit  validate.LooseInt `json:"limit,omitempty"`
	Offset validate.LooseInt `json:"offset,omitempty"`
}

// IDInput is the input of <entity>.get and <entity>.remove.
type IDInput struct {
	ID string `json:"id"`
}

// UpdateInput is the input of <entity>.update.
type UpdateInput[U any] struct {
	ID   string `json:"id"`
	Data U      `json:"data"`
}

// RegisterCRUD exposes svc as the procedures <prefix>.list, .get, .create,
// .update and .remove.
func RegisterCRUD[T any, C service.CreateRequest[T], U service.UpdateRequest](r *Router, prefix string, svc *service.Service[T, C, U]) {
	Query(r, prefix+".list", func(ctx context.Context, in ListInput) (*service.ListResult[T], error) {
		return svc.List(ctx, validate.NewPage(int(in.Limit), int(in.Offset)))
	})
	Query(r, prefix+".get", func(ctx context.Context, in IDInput) (*T, error) {
		return svc.Get(ctx, in.ID)
	})
	Mutation(r, prefix+".create", func(ctx context.Context, in C) (*T, error) {
		return svc.Create(ctx, in)
	})
	Mutation(r, prefix+".update", func(ctx context.Context, in UpdateInput[U]) (*T, error) {
		return svc.Update(ctx, in.ID, in.Data)
	})
	Mutation(r, prefix+".remove", func(ctx context.Context, in IDInput) (*T, error) {
		return svc.Remove(ctx, in.ID)
	})
}
