package models

import "time"

type NewsletterSubscriber struct {
	ID            string    `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	Nome          string    `db:"nome" json:"nome"`
	Telefone      string    `db:"telefone" json:"telefone"`
	Fonte         string    `db:"fonte" json:"fonte"`
	Confirmado    bool      `db:"confirmado" json:"confirmado"`
	Status        string    `db:"status" json:"status"`
	DataInscricao time.Time `db:"data_inscricao" json:"data_inscricao"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
