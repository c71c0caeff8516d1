package models

import "time"

type Post struct {
	ID                     string     `db:"id" json:"id"`
	Titulo                 string     `db:"titulo" json:"titulo"`
	Slug                   string     `db:"slug" json:"slug"`
	Resumo                 string     `db:"resumo" json:"resumo"`
	ConteudoHTML           string     `db:"conteudo_html" json:"conteudo_html"`
	CategoriaID            *string    `db:"categoria_id" json:"categoria_id"`
	Tags                   []string   `db:"tags" json:"tags"`
	ImagemURL              string     `db:"imagem_url" json:"imagem_url"`
	Status                 string     `db:"status" json:"status"` // RASCUNHO, PUBLICADO, AGENDADO
	DataPublicacao         *time.Time `db:"data_publicacao" json:"data_publicacao"`
	DataPublicacaoAgendada *time.Time `db:"data_publicacao_agendada" json:"data_publicacao_agendada"`
	Publicado              bool       `db:"publicado" json:"publicado"` // legacy mirror, always derived from Status
	Visualizacoes          int64      `db:"visualizacoes" json:"visualizacoes"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updated_at"`

	Categoria *Categoria `db:"-" json:"categoria,omitempty"`
}

const (
	PostStatusDraft     = "RASCUNHO"
	PostStatusPublished = "PUBLICADO"
	PostStatusScheduled = "AGENDADO"
)

func ValidPostStatus(status string) bool {
	switch status {
	case PostStatusDraft, PostStatusPublished, PostStatusScheduled:
		return true
	}
	return false
}
