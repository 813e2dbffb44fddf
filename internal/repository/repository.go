package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no row matches the requested identifier.
var ErrNotFound = errors.New("record not found")

// Repository defines the data operations shared by every table.
// Each method issues a single statement.
type Repository[T any] interface {
	// List returns up to limit rows starting at offset, newest first.
	List(ctx context.Context, limit, offset int) ([]T, error)
	// Create inserts row and fills in its generated fields.
	Create(ctx context.Context, row *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	// Update writes only the given columns and returns the row as stored.
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*T, error)
	// Delete removes the row and returns its prior contents.
	Delete(ctx context.Context, id uuid.UUID) (*T, error)
}
