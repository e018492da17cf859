package entity

import "time"

// Notification is an issued reminder. BillID is empty when the referenced
// bill has been deleted; the notification itself is never removed.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BillID    string    `json:"bill_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
