package entity

import "time"

type User struct {
	ID        string    `json:"id"`
	Fullname  string    `json:"fullname"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
