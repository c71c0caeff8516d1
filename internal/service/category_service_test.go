package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentetech/blog-api/internal/transfer"
)

func TestCreateCategoryDerivesSlug(t *testing.T) {
	repo := newFakeCategoryRepo()
	s := NewCategoryService(repo)

	categoria, verrs, err := s.Create(context.Background(), &transfer.CategoryInput{
		Nome: "Inteligência Artificial",
		Cor:  "#6B21A8",
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	assert.Equal(t, "inteligencia-artificial", categoria.Slug)
	assert.NotEmpty(t, categoria.ID)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	repo := newFakeCategoryRepo()
	s := NewCategoryService(repo)

	_, verrs, err := s.Create(context.Background(), &transfer.CategoryInput{Nome: "   "})
	require.NoError(t, err)
	assert.Contains(t, verrs, "nome")
	assert.Empty(t, repo.categorias)
}

func TestCreateCategoryRejectsDuplicate(t *testing.T) {
	repo := newFakeCategoryRepo()
	s := NewCategoryService(repo)

	_, _, err := s.Create(context.Background(), &transfer.CategoryInput{Nome: "Vendas"})
	require.NoError(t, err)

	_, verrs, err := s.Create(context.Background(), &transfer.CategoryInput{Nome: "Vendas"})
	require.NoError(t, err)
	assert.Contains(t, verrs, "nome")
}

func TestUpdateCategoryKeepsID(t *testing.T) {
	repo := newFakeCategoryRepo()
	s := NewCategoryService(repo)

	categoria, _, err := s.Create(context.Background(), &transfer.CategoryInput{Nome: "Marketing"})
	require.NoError(t, err)

	updated, verrs, err := s.Update(context.Background(), categoria.ID, &transfer.CategoryInput{
		Nome:      "Marketing Digital",
		Descricao: "Conteúdo sobre marketing digital",
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	assert.Equal(t, categoria.ID, updated.ID)
	assert.Equal(t, "marketing-digital", updated.Slug)
}

func TestUpdateCategoryMissing(t *testing.T) {
	repo := newFakeCategoryRepo()
	s := NewCategoryService(repo)

	_, _, err := s.Update(context.Background(), "nope", &transfer.CategoryInput{Nome: "Qualquer"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRemoveCategoryMissing(t *testing.T) {
	repo := newFakeCategoryRepo()
	s := NewCategoryService(repo)

	err := s.Remove(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateCategoryRejectsBadExplicitSlug(t *testing.T) {
	repo := newFakeCategoryRepo()
	s := NewCategoryService(repo)

	_, verrs, err := s.Create(context.Background(), &transfer.CategoryInput{
		Nome: "Vendas",
		Slug: "Vendas Não Válido",
	})
	require.NoError(t, err)
	assert.Contains(t, verrs, "slug")
}
