package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/mentetech/blog-api/internal/content"
	"github.com/mentetech/blog-api/internal/models"
	"github.com/mentetech/blog-api/internal/repository"
	"github.com/mentetech/blog-api/internal/transfer"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryService interface {
	List(ctx context.Context) ([]*models.Categoria, error)
	Create(ctx context.Context, input *transfer.CategoryInput) (*models.Categoria, transfer.ValidationErrors, error)
	Update(ctx context.Context, id string, input *transfer.CategoryInput) (*models.Categoria, transfer.ValidationErrors, error)
	Remove(ctx context.Context, id string) error
}

type categoryService struct {
	cr repository.CategoryRepository
}

func NewCategoryService(cr repository.CategoryRepository) CategoryService {
	return &categoryService{cr: cr}
}

func (s *categoryService) List(ctx context.Context) ([]*models.Categoria, error) {
	return s.cr.List(ctx)
}

func (s *categoryService) Create(ctx context.Context, input *transfer.CategoryInput) (*models.Categoria, transfer.ValidationErrors, error) {
	categoria, verrs, err := s.prepare(ctx, "", input)
	if err != nil || verrs.HasErrors() {
		return nil, verrs, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate category id: %w", err)
	}
	categoria.ID = id

	if err := s.cr.Create(ctx, categoria); err != nil {
		return nil, nil, fmt.Errorf("error creating category: %w", err)
	}
	return categoria, nil, nil
}

func (s *categoryService) Update(ctx context.Context, id string, input *transfer.CategoryInput) (*models.Categoria, transfer.ValidationErrors, error) {
	existing, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if existing == nil {
		return nil, nil, ErrCategoryNotFound
	}

	categoria, verrs, err := s.prepare(ctx, id, input)
	if err != nil || verrs.HasErrors() {
		return nil, verrs, err
	}
	categoria.ID = id

	if err := s.cr.Update(ctx, categoria); err != nil {
		return nil, nil, fmt.Errorf("error updating category: %w", err)
	}
	return categoria, nil, nil
}

func (s *categoryService) prepare(ctx context.Context, excludeID string, input *transfer.CategoryInput) (*models.Categoria, transfer.ValidationErrors, error) {
	if input == nil {
		return nil, nil, errors.New("category input is nil")
	}

	verrs := transfer.ValidationErrors{}

	nome := strings.TrimSpace(input.Nome)
	if nome == "" {
		verrs.Add("nome", "Nome é obrigatório.")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = content.Slugify(nome)
	}
	if slug != "" && !content.ValidSlug(slug) {
		verrs.Add("slug", "Slug deve conter apenas letras minúsculas, números e hífens.")
	}

	if verrs.HasErrors() {
		return nil, verrs, nil
	}

	taken, err := s.cr.NomeOrSlugExists(ctx, nome, slug, excludeID)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		verrs.Add("nome", "Já existe uma categoria com este nome ou slug.")
		return nil, verrs, nil
	}

	return &models.Categoria{
		Nome:      nome,
		Slug:      slug,
		Descricao: strings.TrimSpace(input.Descricao),
		Cor:       strings.TrimSpace(input.Cor),
	}, nil, nil
}

func (s *categoryService) Remove(ctx context.Context, id string) error {
	existing, err := s.cr.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	return s.cr.Remove(ctx, id)
}
