package model

import "time"

// Contact represents a submitted contact form message.
type Contact struct {
	ID        int64     `json:"-" db:"contact_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}
