package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tomlord1122/portfolio-backend/internal/domain"
)

// memoryRepository keeps rows in process memory. It backs STORE=memory and
// the handler tests.
type memoryRepository[T any, P interface {
	*T
	domain.Record
}] struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]T
	now  func() time.Time
	last time.Time
}

// NewMemoryRepository creates an empty in-memory repository for model T.
func NewMemoryRepository[T any, P interface {
	*T
	domain.Record
}]() Repository[T] {
	return &memoryRepository[T, P]{
		rows: make(map[uuid.UUID]T),
		now:  time.Now,
	}
}

func (r *memoryRepository[T, P]) List(ctx context.Context, limit, offset int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	all := make([]T, 0, len(r.rows))
	for _, row := range r.rows {
		all = append(all, row)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		a, b := P(&all[i]), P(&all[j])
		if !a.Created().Equal(b.Created()) {
			return a.Created().After(b.Created())
		}
		ak, bk := a.Key(), b.Key()
		return string(ak[:]) > string(bk[:])
	})

	if offset >= len(all) {
		return []T{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memoryRepository[T, P]) Create(ctx context.Context, row *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// Timestamps are kept at microsecond precision like postgres and strictly
	// increasing so list order matches insertion order.
	now := r.now().UTC().Truncate(time.Microsecond)
	if !now.After(r.last) {
		now = r.last.Add(time.Microsecond)
	}
	r.last = now

	p := P(row)
	p.Prepare(now)
	r.rows[p.Key()] = *row
	return nil
}

func (r *memoryRepository[T, P]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (r *memoryRepository[T, P]) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	P(&row).Apply(changes)
	r.rows[id] = row
	return &row, nil
}

func (r *memoryRepository[T, P]) Delete(ctx context.Context, id uuid.UUID) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.rows, id)
	return &row, nil
}
