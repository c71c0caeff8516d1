package models

import "time"

type ContactMessage struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone"`
	Subject          string    `db:"subject" json:"subject"`
	Message          string    `db:"message" json:"message"`
	DesejaNewsletter bool      `db:"deseja_newsletter" json:"deseja_newsletter"`
	EmailSent        bool      `db:"email_sent" json:"email_sent"`
	Status           string    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ContactStatusNew      = "novo"
	ContactStatusRead     = "lido"
	ContactStatusAnswered = "respondido"
)
