package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/mentetech/blog-api/configs"
	"github.com/mentetech/blog-api/internal/content"
	"github.com/mentetech/blog-api/internal/models"
	"github.com/mentetech/blog-api/internal/transfer"
)

var testClock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestPostService(repo *fakePostRepo) *postService {
	renderer := content.NewRenderer(config.Sanitizer{
		AllowedTags: []string{"h1", "h2", "p", "a", "strong", "em", "ul", "li", "code", "pre"},
		AllowedAttributes: map[string][]string{
			"a": {"href", "title", "target", "rel"},
		},
	})
	return &postService{
		pr:       repo,
		cr:       newFakeCategoryRepo(),
		renderer: renderer,
		now:      func() time.Time { return testClock },
	}
}

func categoriaRef() *string {
	id := "cat-1"
	return &id
}

func validInput(status string) *transfer.PostInput {
	return &transfer.PostInput{
		Titulo:      "Automação de Vendas com IA!",
		Resumo:      "Como pequenas empresas automatizam vendas.",
		Conteudo:    "Um conteúdo longo o suficiente para passar na validação de publicação.",
		CategoriaID: categoriaRef(),
		Tags:        []string{"ia", "vendas"},
		Status:      status,
	}
}

func TestCreateDraftWithTitleOnly(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	post, verrs, err := s.Create(context.Background(), &transfer.PostInput{
		Titulo: "Primeiro rascunho",
		Status: models.PostStatusDraft,
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Equal(t, "primeiro-rascunho", post.Slug)
	assert.Nil(t, post.DataPublicacao)
	assert.Nil(t, post.DataPublicacaoAgendada)
	assert.NotEmpty(t, post.ID)
}

func TestSlugDerivedFromAccentedTitle(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	post, verrs, err := s.Create(context.Background(), validInput(models.PostStatusDraft))
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	assert.Equal(t, "automacao-de-vendas-com-ia", post.Slug)
}

func TestPublishRequiresSummaryBodyAndCategory(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	input := validInput(models.PostStatusPublished)
	input.Resumo = "curto"
	input.Conteudo = "breve"
	input.CategoriaID = nil

	post, verrs, err := s.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, post)
	assert.Contains(t, verrs, "resumo")
	assert.Contains(t, verrs, "conteudo")
	assert.Contains(t, verrs, "categoria_id")
	assert.Empty(t, repo.posts, "rejected write must not persist anything")
}

func TestPublishGuardKeepsDraftInDraft(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	draft, verrs, err := s.Create(context.Background(), &transfer.PostInput{
		Titulo: "Rascunho",
		Status: models.PostStatusDraft,
	})
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	input := &transfer.PostInput{
		Titulo: "Rascunho",
		Slug:   draft.Slug,
		Status: models.PostStatusPublished,
	}
	_, verrs, err = s.Update(context.Background(), draft.ID, input)
	require.NoError(t, err)
	assert.Contains(t, verrs, "resumo")

	stored, _ := repo.GetByID(context.Background(), draft.ID)
	assert.Equal(t, models.PostStatusDraft, stored.Status)
}

func TestPublishSetsPublicationTimeOnce(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	post, verrs, err := s.Create(context.Background(), validInput(models.PostStatusPublished))
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	require.NotNil(t, post.DataPublicacao)
	assert.True(t, post.DataPublicacao.Equal(testClock))
	assert.True(t, post.Publicado)

	// Body-only edit keeping PUBLICADO must not touch data_publicacao.
	input := validInput(models.PostStatusPublished)
	input.Slug = post.Slug
	input.Conteudo = "Conteúdo revisado, ainda longo o suficiente para ser publicado."
	updated, verrs, err := s.Update(context.Background(), post.ID, input)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	require.NotNil(t, updated.DataPublicacao)
	assert.True(t, updated.DataPublicacao.Equal(testClock))
}

func TestUnpublishKeepsFirstPublicationTime(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	post, _, err := s.Create(context.Background(), validInput(models.PostStatusPublished))
	require.NoError(t, err)

	input := validInput(models.PostStatusDraft)
	input.Slug = post.Slug
	updated, verrs, err := s.Update(context.Background(), post.ID, input)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	assert.Equal(t, models.PostStatusDraft, updated.Status)
	require.NotNil(t, updated.DataPublicacao, "first publication history is retained")
	assert.False(t, updated.Publicado)
}

func TestRepublishDoesNotOverwritePublicationTime(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	post, _, err := s.Create(context.Background(), validInput(models.PostStatusPublished))
	require.NoError(t, err)
	firstPublish := *post.DataPublicacao

	input := validInput(models.PostStatusDraft)
	input.Slug = post.Slug
	_, _, err = s.Update(context.Background(), post.ID, input)
	require.NoError(t, err)

	s.now = func() time.Time { return testClock.Add(48 * time.Hour) }
	input = validInput(models.PostStatusPublished)
	input.Slug = post.Slug
	republished, verrs, err := s.Update(context.Background(), post.ID, input)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	assert.True(t, republished.DataPublicacao.Equal(firstPublish))
}

func TestScheduleRequiresFutureTime(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	past := testClock.Add(-time.Hour)
	input := validInput(models.PostStatusScheduled)
	input.DataPublicacaoAgendada = &past

	post, verrs, err := s.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, post)
	assert.Contains(t, verrs, "data_publicacao_agendada")
}

func TestScheduleRequiresTimestamp(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	input := validInput(models.PostStatusScheduled)
	input.DataPublicacaoAgendada = nil

	_, verrs, err := s.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, verrs, "data_publicacao_agendada")
}

func TestScheduleLeavesPublicationTimeUnset(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	future := testClock.Add(24 * time.Hour)
	input := validInput(models.PostStatusScheduled)
	input.DataPublicacaoAgendada = &future

	post, verrs, err := s.Create(context.Background(), input)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	assert.Nil(t, post.DataPublicacao)
	require.NotNil(t, post.DataPublicacaoAgendada)
	assert.True(t, post.DataPublicacaoAgendada.Equal(future))
	assert.False(t, post.Publicado)
}

func TestRescheduleWhileScheduled(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	future := testClock.Add(24 * time.Hour)
	input := validInput(models.PostStatusScheduled)
	input.DataPublicacaoAgendada = &future
	post, _, err := s.Create(context.Background(), input)
	require.NoError(t, err)

	later := testClock.Add(72 * time.Hour)
	input = validInput(models.PostStatusScheduled)
	input.Slug = post.Slug
	input.DataPublicacaoAgendada = &later
	updated, verrs, err := s.Update(context.Background(), post.ID, input)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())
	assert.True(t, updated.DataPublicacaoAgendada.Equal(later))
}

func TestSameStatusEditSkipsRequiredFieldGate(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	// Historical row published under laxer rules.
	when := testClock.Add(-time.Hour)
	repo.put(&models.Post{
		ID:             "legacy",
		Titulo:         "Antigo",
		Slug:           "antigo",
		Resumo:         "curto",
		Status:         models.PostStatusPublished,
		DataPublicacao: &when,
	})

	input := &transfer.PostInput{
		Titulo:   "Antigo",
		Slug:     "antigo",
		Resumo:   "curto",
		Conteudo: "edição pequena",
		Status:   models.PostStatusPublished,
	}
	updated, verrs, err := s.Update(context.Background(), "legacy", input)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors(), "content edit keeping the status is not re-gated")
	assert.Equal(t, models.PostStatusPublished, updated.Status)
}

func TestSlugConflictRejected(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	_, _, err := s.Create(context.Background(), validInput(models.PostStatusDraft))
	require.NoError(t, err)

	_, verrs, err := s.Create(context.Background(), validInput(models.PostStatusDraft))
	require.NoError(t, err)
	assert.Contains(t, verrs, "slug")
}

func TestScriptNeverReachesStorage(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	input := validInput(models.PostStatusPublished)
	input.Conteudo = "Texto inicial com tamanho suficiente.\n\n<script>alert('xss')</script>\n"

	post, verrs, err := s.Create(context.Background(), input)
	require.NoError(t, err)
	require.False(t, verrs.HasErrors())

	stored, _ := repo.GetByID(context.Background(), post.ID)
	assert.NotContains(t, stored.ConteudoHTML, "<script")
	assert.NotContains(t, stored.ConteudoHTML, "alert('xss')")
}

func TestInvalidStatusRejected(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	input := validInput("ARQUIVADO")
	_, verrs, err := s.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, verrs, "status")
}

func TestTooManyTagsRejected(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	input := validInput(models.PostStatusDraft)
	input.Tags = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}
	_, verrs, err := s.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, verrs, "tags")
}

func TestUpdateMissingPost(t *testing.T) {
	repo := newFakePostRepo()
	s := newTestPostService(repo)

	_, _, err := s.Update(context.Background(), "nope", validInput(models.PostStatusDraft))
	assert.ErrorIs(t, err, ErrPostNotFound)
}
