package domain

import (
	"time"

	"github.com/google/uuid"
)

// Record is implemented by pointers to every persisted model.
// Changes passed to Apply are keyed by column name.
type Record interface {
	Key() uuid.UUID
	Created() time.Time
	Prepare(now time.Time)
	Apply(changes map[string]any)
}

// prepare fills the generated fields of a new row. Values already set are kept.
// Timestamps are truncated to the microsecond precision of timestamptz.
func prepare(id *uuid.UUID, createdAt *time.Time, now time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = now.UTC().Truncate(time.Microsecond)
	}
}
