package models

import "time"

type Categoria struct {
	ID        string    `db:"id" json:"id"`
	Nome      string    `db:"nome" json:"nome"`
	Slug      string    `db:"slug" json:"slug"`
	Descricao string    `db:"descricao" json:"descricao"`
	Cor       string    `db:"cor" json:"cor"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
