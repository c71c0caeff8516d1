package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/mentetech/blog-api/internal/models"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Categoria, error)
	GetByID(ctx context.Context, id string) (*models.Categoria, error)
	GetBySlug(ctx context.Context, slug string) (*models.Categoria, error)
	Create(ctx context.Context, categoria *models.Categoria) error
	Update(ctx context.Context, categoria *models.Categoria) error
	Remove(ctx context.Context, id string) error
	NomeOrSlugExists(ctx context.Context, nome, slug, excludeID string) (bool, error)
}

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, nome, slug, COALESCE(descricao, ''), COALESCE(cor, ''), created_at, updated_at`

func (r *categoryRepository) List(ctx context.Context) ([]*models.Categoria, error) {
	query := `SELECT ` + categoryColumns + ` FROM categorias ORDER BY nome`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var categorias []*models.Categoria
	for rows.Next() {
		var c models.Categoria
		err := rows.Scan(&c.ID, &c.Nome, &c.Slug, &c.Descricao, &c.Cor, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		categorias = append(categorias, &c)
	}
	return categorias, rows.Err()
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Categoria, error) {
	query := `SELECT ` + categoryColumns + ` FROM categorias WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Categoria, error) {
	query := `SELECT ` + categoryColumns + ` FROM categorias WHERE slug = $1`
	return r.getOne(ctx, query, slug)
}

func (r *categoryRepository) getOne(ctx context.Context, query string, arg any) (*models.Categoria, error) {
	var c models.Categoria
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&c.ID, &c.Nome, &c.Slug, &c.Descricao, &c.Cor, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, categoria *models.Categoria) error {
	query := `INSERT INTO categorias (id, nome, slug, descricao, cor) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		categoria.ID, categoria.Nome, categoria.Slug, categoria.Descricao, categoria.Cor)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, categoria *models.Categoria) error {
	query := `
		UPDATE categorias
		SET nome = $1,
			slug = $2,
			descricao = $3,
			cor = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		categoria.Nome, categoria.Slug, categoria.Descricao, categoria.Cor, time.Now(), categoria.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *categoryRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM categorias WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *categoryRepository) NomeOrSlugExists(ctx context.Context, nome, slug, excludeID string) (bool, error) {
	query := `SELECT 1 FROM categorias WHERE (nome = $1 OR slug = $2) AND id <> $3`

	var result int
	err := r.db.QueryRowContext(ctx, query, nome, slug, excludeID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}
