package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Tomlord1122/portfolio-backend/internal/repository"
	"github.com/Tomlord1122/portfolio-backend/internal/validate"
)

var (
	// ErrNotFound reports that no row matches the requested identifier.
	ErrNotFound = errors.New("not found")
	// ErrStorage hides persistence failures from callers. The cause is logged.
	ErrStorage = errors.New("storage failure")
)

// CreateRequest is an insert payload that knows how to build its model.
type CreateRequest[T any] interface {
	Model() *T
}

// UpdateRequest is a partial update; Changes holds only the supplied fields,
// keyed by column name.
type UpdateRequest interface {
	Changes() map[string]any
}

// ListResult is one page of rows. Total is the number of rows in Items, not
// the size of the table.
type ListResult[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Service holds the CRUD logic for one table. Both the HTTP routes and the
// RPC procedures call into it.
type Service[T any, C CreateRequest[T], U UpdateRequest] struct {
	name      string
	repo      repository.Repository[T]
	validator *validate.Validator
	log       *zap.Logger
}

// New creates a Service. name is used in error messages and logs.
func New[T any, C CreateRequest[T], U UpdateRequest](name string, repo repository.Repository[T], v *validate.Validator, log *zap.Logger) *Service[T, C, U] {
	return &Service[T, C, U]{
		name:      name,
		repo:      repo,
		validator: v,
		log:       log.Named(name),
	}
}

func (s *Service[T, C, U]) Name() string { return s.name }

// List returns one page of rows, newest first.
func (s *Service[T, C, U]) List(ctx context.Context, page validate.Page) (*ListResult[T], error) {
	page = validate.NewPage(page.Limit, page.Offset)

	rows, err := s.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, s.storageError("list", err)
	}
	return &ListResult[T]{
		Items:  rows,
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  len(rows),
	}, nil
}

// Create validates req and inserts it. The returned row carries the generated
// id and creation time.
func (s *Service[T, C, U]) Create(ctx context.Context, req C) (*T, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	row := req.Model()
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, s.storageError("create", err)
	}
	return row, nil
}

func (s *Service[T, C, U]) Get(ctx context.Context, rawID string) (*T, error) {
	id, err := validate.UUID("id", rawID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError("get", rawID, err)
	}
	return row, nil
}

// Update applies the supplied fields of req to the row with the given id.
// An empty update returns the row unchanged.
func (s *Service[T, C, U]) Update(ctx context.Context, rawID string, req U) (*T, error) {
	id, err := validate.UUID("id", rawID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	changes := req.Changes()
	if len(changes) == 0 {
		s.log.Debug("no changes in update", zap.String("id", rawID))
		row, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, s.lookupError("update", rawID, err)
		}
		return row, nil
	}

	row, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, s.lookupError("update", rawID, err)
	}
	return row, nil
}

// Remove deletes the row and returns what it contained.
func (s *Service[T, C, U]) Remove(ctx context.Context, rawID string) (*T, error) {
	id, err := validate.UUID("id", rawID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.lookupError("remove", rawID, err)
	}
	return row, nil
}

func (s *Service[T, C, U]) lookupError(op, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", s.name, id, ErrNotFound)
	}
	return s.storageError(op, err)
}

func (s *Service[T, C, U]) storageError(op string, err error) error {
	s.log.Error("repository call failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s %s: %w", op, s.name, ErrStorage)
}
