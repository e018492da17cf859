package entity

import "time"

// ReminderPolicy selects how many days before the due date a reminder fires.
type ReminderPolicy string

const (
	PolicySevenDaysBefore ReminderPolicy = "7_days_ago"
	PolicyThreeDaysBefore ReminderPolicy = "3_days_ago"
	PolicyOnDueDate       ReminderPolicy = "deadline_day"
)

type BillStatus string

const (
	StatusUnpaid BillStatus = "unpaid"
	StatusPaid   BillStatus = "paid"
)

type Bill struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Amount         float64        `json:"amount"`
	DueDate        time.Time      `json:"due_date"`
	ReminderPolicy ReminderPolicy `json:"reminder_time"`
	Status         BillStatus     `json:"status"`
	ReceiptURL     string         `json:"receipt_url,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
