package transfer

import "time"

// PostInput carries every author-editable field of a post. Conteudo holds the
// editor's raw text; Formato selects how it is converted before persistence.
type PostInput struct {
	Titulo                 string     `json:"titulo"`
	Slug                   string     `json:"slug"`
	Resumo                 string     `json:"resumo"`
	Conteudo               string     `json:"conteudo"`
	Formato                string     `json:"formato"` // "markdown" (default) or "html"
	CategoriaID            *string    `json:"categoria_id"`
	Tags                   []string   `json:"tags"`
	ImagemURL              string     `json:"imagem_url"`
	Status                 string     `json:"status"`
	DataPublicacaoAgendada *time.Time `json:"data_publicacao_agendada"`
}

type PreviewInput struct {
	Conteudo string `json:"conteudo"`
	Formato  string `json:"formato"`
}

// PostFilter narrows the public listing. Zero values mean no filter.
type PostFilter struct {
	CategoriaSlug string
	Search        string
	Page          int
	Limit         int
}

type CategoryInput struct {
	Nome      string `json:"nome"`
	Slug      string `json:"slug"`
	Descricao string `json:"descricao"`
	Cor       string `json:"cor"`
}

type PublishedPost struct {
	ID             string    `json:"id"`
	Titulo         string    `json:"titulo"`
	DataPublicacao time.Time `json:"data_publicacao"`
}

// AutoPublishResult reports which posts a trigger run promoted. It exists for
// observability only; the transition itself is already committed.
type AutoPublishResult struct {
	PublishedCount int             `json:"published_count"`
	PublishedPosts []PublishedPost `json:"published_posts"`
	Timestamp      time.Time       `json:"timestamp"`
}
