package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillModel struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string    `gorm:"type:varchar(100);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Amount       float64   `gorm:"not null" json:"amount"`
	DueDate      time.Time `gorm:"not null" json:"due_date"`
	ReminderTime string    `gorm:"type:varchar(20);not null" json:"reminder_time"`
	Status       string    `gorm:"type:varchar(10);not null;default:'unpaid';index" json:"status"`
	ReceiptURL   string    `gorm:"type:varchar(500)" json:"receipt_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (BillModel) TableName() string {
	return "bills"
}

func (b *BillModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
