package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/mentetech/blog-api/internal/models"
	"github.com/mentetech/blog-api/internal/transfer"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, status, categoriaID string) ([]*models.Post, error)
	ListPublished(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	AutoPublishScheduled(ctx context.Context) ([]transfer.PublishedPost, error)
	PublishDue(ctx context.Context, id string) (bool, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, titulo, slug, resumo, conteudo_html, categoria_id, tags, imagem_url,
	status, data_publicacao, data_publicacao_agendada, publicado, visualizacoes, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.Titulo, &post.Slug, &post.Resumo, &post.ConteudoHTML,
		&post.CategoriaID, pq.Array(&post.Tags), &post.ImagemURL, &post.Status,
		&post.DataPublicacao, &post.DataPublicacaoAgendada, &post.Publicado,
		&post.Visualizacoes, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts a post. The legacy publicado mirror is never taken from the
// caller: it is computed from status inside the statement so it cannot drift.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, titulo, slug, resumo, conteudo_html, categoria_id, tags,
			imagem_url, status, data_publicacao, data_publicacao_agendada, publicado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, ($9 = 'PUBLICADO'))
	`
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Titulo, post.Slug, post.Resumo, post.ConteudoHTML,
		post.CategoriaID, pq.Array(post.Tags), post.ImagemURL, post.Status,
		post.DataPublicacao, post.DataPublicacaoAgendada,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET titulo = $1,
			slug = $2,
			resumo = $3,
			conteudo_html = $4,
			categoria_id = $5,
			tags = $6,
			imagem_url = $7,
			status = $8,
			data_publicacao = $9,
			data_publicacao_agendada = $10,
			publicado = ($8 = 'PUBLICADO'),
			updated_at = $11
		WHERE id = $12
	`
	_, err := r.db.ExecContext(ctx, query,
		post.Titulo, post.Slug, post.Resumo, post.ConteudoHTML, post.CategoriaID,
		pq.Array(post.Tags), post.ImagemURL, post.Status, post.DataPublicacao,
		post.DataPublicacaoAgendada, time.Now(), post.ID,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1 AND status = $2`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, slug, models.PostStatusPublished))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

// List is the admin view: any status, newest first.
func (r *postRepository) List(ctx context.Context, status, categoriaID string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if categoriaID != "" {
		args = append(args, categoriaID)
		query += fmt.Sprintf(" AND categoria_id = $%d", len(args))
	}
	query += " ORDER BY updated_at DESC"

	return r.queryPosts(ctx, query, args...)
}

// ListPublished is the public read surface: published only, ordered by
// publication time descending.
func (r *postRepository) ListPublished(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.titulo, p.slug, p.resumo, p.conteudo_html, p.categoria_id, p.tags,
			p.imagem_url, p.status, p.data_publicacao, p.data_publicacao_agendada,
			p.publicado, p.visualizacoes, p.created_at, p.updated_at
		FROM posts p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		WHERE p.status = $1
	`
	args := []any{models.PostStatusPublished}

	if filter.CategoriaSlug != "" {
		args = append(args, filter.CategoriaSlug)
		query += fmt.Sprintf(" AND c.slug = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (p.titulo ILIKE $%d OR p.resumo ILIKE $%d
			OR array_to_string(p.tags, ' ') ILIKE $%d)`, n, n, n)
	}

	query += " ORDER BY p.data_publicacao DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, (page-1)*limit)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return r.queryPosts(ctx, query, args...)
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	query := `SELECT 1 FROM posts WHERE slug = $1 AND id <> $2`

	var result int
	err := r.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}

func (r *postRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE posts SET visualizacoes = visualizacoes + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// AutoPublishScheduled promotes every overdue scheduled post in one
// conditional statement evaluated by the store. Read and write are not
// separate round trips, so a post edited out of AGENDADO between them cannot
// be published by accident. On error nothing is applied and the next run
// retries the same candidate set.
func (r *postRepository) AutoPublishScheduled(ctx context.Context) ([]transfer.PublishedPost, error) {
	query := `
		UPDATE posts
		SET status = 'PUBLICADO',
			data_publicacao = COALESCE(data_publicacao, now()),
			data_publicacao_agendada = NULL,
			publicado = TRUE,
			updated_at = now()
		WHERE status = 'AGENDADO' AND data_publicacao_agendada <= now()
		RETURNING id, titulo, data_publicacao
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}
	defer rows.Close()

	var published []transfer.PublishedPost
	for rows.Next() {
		var p transfer.PublishedPost
		if err := rows.Scan(&p.ID, &p.Titulo, &p.DataPublicacao); err != nil {
			slog.Error(err.Error())
			return nil, err
		}
		published = append(published, p)
	}
	return published, rows.Err()
}

// PublishDue applies the same transition to a single post. A post that is no
// longer scheduled, or whose time has not come, matches zero rows; callers
// treat that as a no-op, which makes retries harmless.
func (r *postRepository) PublishDue(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE posts
		SET status = 'PUBLICADO',
			data_publicacao = COALESCE(data_publicacao, now()),
			data_publicacao_agendada = NULL,
			publicado = TRUE,
			updated_at = now()
		WHERE id = $1 AND status = 'AGENDADO' AND data_publicacao_agendada <= now()
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Error(err.Error())
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
