package service

import (
	"github.com/Tomlord1122/portfolio-backend/internal/domain"
)

// CreateGuestbookEntryRequest is the insert shape of a guestbook entry.
type CreateGuestbookEntryRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Message string `json:"message" validate:"required,notblank,max=1000"`
}

func (r CreateGuestbookEntryRequest) Model() *domain.GuestbookEntry {
	return &domain.GuestbookEntry{Name: r.Name, Message: r.Message}
}

// UpdateGuestbookEntryRequest carries the fields to replace. Nil means keep.
type UpdateGuestbookEntryRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,notblank,max=100"`
	Message *string `json:"message,omitempty" validate:"omitempty,min=1,notblank,max=1000"`
}

func (r UpdateGuestbookEntryRequest) Changes() map[string]any {
	changes := make(map[string]any, 2)
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Message != nil {
		changes["message"] = *r.Message
	}
	return changes
}

type GuestbookService = Service[domain.GuestbookEntry, CreateGuestbookEntryRequest, UpdateGuestbookEntryRequest]
