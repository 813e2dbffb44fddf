package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is a single item of the todo list.
type Todo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(500);not null" json:"title"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"not null;index;<-:create" json:"createdAt"`
}

func (Todo) TableName() string { return "todos" }

func (t *Todo) Key() uuid.UUID        { return t.ID }
func (t *Todo) Created() time.Time    { return t.CreatedAt }
func (t *Todo) Prepare(now time.Time) { prepare(&t.ID, &t.CreatedAt, now) }

func (t *Todo) Apply(changes map[string]any) {
	if v, ok := changes["title"].(string); ok {
		t.Title = v
	}
	if v, ok := changes["completed"].(bool); ok {
		t.Completed = v
	}
}

func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	t.Prepare(time.Now())
	return nil
}
