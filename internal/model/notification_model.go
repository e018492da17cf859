package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationModel rows are deduplicated by the database: the migration puts
// a UNIQUE constraint on (user_id, bill_id, message), so a second insert of
// the same rendered reminder is a no-op regardless of which evaluation pass
// races it there first.
type NotificationModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	BillID    *string   `gorm:"type:uuid;index" json:"bill_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
