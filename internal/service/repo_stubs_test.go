package service

import (
	"context"
	"errors"
	"time"

	"github.com/mentetech/blog-api/internal/models"
	"github.com/mentetech/blog-api/internal/transfer"
)

// fakePostRepo keeps posts in memory and mirrors the conditional-update
// semantics the SQL statements have in production.
type fakePostRepo struct {
	posts   map[string]*models.Post
	failAll bool
	now     func() time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post), now: time.Now}
}

var errStoreDown = errors.New("store unavailable")

func (f *fakePostRepo) put(post *models.Post) {
	clone := *post
	f.posts[post.ID] = &clone
}

func (f *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	if f.failAll {
		return errStoreDown
	}
	post.Publicado = post.Status == models.PostStatusPublished
	f.put(post)
	return nil
}

func (f *fakePostRepo) Update(ctx context.Context, post *models.Post) error {
	if f.failAll {
		return errStoreDown
	}
	if _, ok := f.posts[post.ID]; !ok {
		return errors.New("row not found")
	}
	post.Publicado = post.Status == models.PostStatusPublished
	f.put(post)
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	clone := *post
	return &clone, nil
}

func (f *fakePostRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	for _, post := range f.posts {
		if post.Slug == slug && post.Status == models.PostStatusPublished {
			clone := *post
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakePostRepo) List(ctx context.Context, status, categoriaID string) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range f.posts {
		if status != "" && post.Status != status {
			continue
		}
		clone := *post
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakePostRepo) ListPublished(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error) {
	return f.List(ctx, models.PostStatusPublished, "")
}

func (f *fakePostRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	for _, post := range f.posts {
		if post.Slug == slug && post.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostRepo) IncrementViews(ctx context.Context, id string) error {
	if post, ok := f.posts[id]; ok {
		post.Visualizacoes++
	}
	return nil
}

func (f *fakePostRepo) Remove(ctx context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) AutoPublishScheduled(ctx context.Context) ([]transfer.PublishedPost, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	now := f.now()
	var published []transfer.PublishedPost
	for _, post := range f.posts {
		if post.Status != models.PostStatusScheduled || post.DataPublicacaoAgendada == nil {
			continue
		}
		if post.DataPublicacaoAgendada.After(now) {
			continue
		}
		post.Status = models.PostStatusPublished
		if post.DataPublicacao == nil {
			when := now
			post.DataPublicacao = &when
		}
		post.DataPublicacaoAgendada = nil
		post.Publicado = true
		published = append(published, transfer.PublishedPost{
			ID:             post.ID,
			Titulo:         post.Titulo,
			DataPublicacao: *post.DataPublicacao,
		})
	}
	return published, nil
}

func (f *fakePostRepo) PublishDue(ctx context.Context, id string) (bool, error) {
	if f.failAll {
		return false, errStoreDown
	}
	now := f.now()
	post, ok := f.posts[id]
	if !ok || post.Status != models.PostStatusScheduled ||
		post.DataPublicacaoAgendada == nil || post.DataPublicacaoAgendada.After(now) {
		return false, nil
	}
	post.Status = models.PostStatusPublished
	if post.DataPublicacao == nil {
		when := now
		post.DataPublicacao = &when
	}
	post.DataPublicacaoAgendada = nil
	post.Publicado = true
	return true, nil
}

type fakeCategoryRepo struct {
	categorias map[string]*models.Categoria
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categorias: make(map[string]*models.Categoria)}
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*models.Categoria, error) {
	var out []*models.Categoria
	for _, c := range f.categorias {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*models.Categoria, error) {
	return f.categorias[id], nil
}

func (f *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Categoria, error) {
	for _, c := range f.categorias {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, categoria *models.Categoria) error {
	f.categorias[categoria.ID] = categoria
	return nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, categoria *models.Categoria) error {
	f.categorias[categoria.ID] = categoria
	return nil
}

func (f *fakeCategoryRepo) Remove(ctx context.Context, id string) error {
	delete(f.categorias, id)
	return nil
}

func (f *fakeCategoryRepo) NomeOrSlugExists(ctx context.Context, nome, slug, excludeID string) (bool, error) {
	for _, c := range f.categorias {
		if (c.Nome == nome || c.Slug == slug) && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
