package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestbookEntry is a message left by a visitor.
type GuestbookEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Message   string    `gorm:"type:varchar(1000);not null" json:"message"`
	CreatedAt time.Time `gorm:"not null;index;<-:create" json:"createdAt"`
}

func (GuestbookEntry) TableName() string { return "guestbook" }

func (e *GuestbookEntry) Key() uuid.UUID        { return e.ID }
func (e *GuestbookEntry) Created() time.Time    { return e.CreatedAt }
func (e *GuestbookEntry) Prepare(now time.Time) { prepare(&e.ID, &e.CreatedAt, now) }

func (e *GuestbookEntry) Apply(changes map[string]any) {
	if v, ok := changes["name"].(string); ok {
		e.Name = v
	}
	if v, ok := changes["message"].(string); ok {
		e.Message = v
	}
}

func (e *GuestbookEntry) BeforeCreate(tx *gorm.DB) error {
	e.Prepare(time.Now())
	return nil
}
