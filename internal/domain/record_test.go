package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrepare_FillsGeneratedFields(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.FixedZone("CEST", 2*3600))
	var e GuestbookEntry
	e.Prepare(now)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, time.UTC, e.CreatedAt.Location())
	assert.Equal(t, 123456000, e.CreatedAt.Nanosecond())
	assert.True(t, e.CreatedAt.Equal(now.Truncate(time.Microsecond)))
}

func TestPrepare_KeepsExistingValues(t *testing.T) {
	id := uuid.New()
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	todo := Todo{ID: id, CreatedAt: created}

	todo.Prepare(time.Now())

	assert.Equal(t, id, todo.ID)
	assert.Equal(t, created, todo.CreatedAt)
}

func TestApply(t *testing.T) {
	todo := Todo{Title: "old"}
	todo.Apply(map[string]any{"completed": true})
	assert.Equal(t, "old", todo.Title)
	assert.True(t, todo.Completed)

	entry := GuestbookEntry{Name: "Ada", Message: "Hi"}
	entry.Apply(map[string]any{"message": "Hello", "unknown": 1})
	assert.Equal(t, "Ada", entry.Name)
	assert.Equal(t, "Hello", entry.Message)
}
