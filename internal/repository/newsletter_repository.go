package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/mentetech/blog-api/internal/models"
)

type NewsletterRepository interface {
	Upsert(ctx context.Context, subscriber *models.NewsletterSubscriber) error
	List(ctx context.Context) ([]*models.NewsletterSubscriber, error)
}

type newsletterRepository struct {
	db *sql.DB
}

func NewNewsletterRepository(db *sql.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

// Upsert keeps one row per email. Re-subscribing refreshes name, phone and
// source instead of failing on the unique constraint.
func (r *newsletterRepository) Upsert(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email, nome, telefone, fonte, status, data_inscricao)
		VALUES ($1, $2, $3, $4, $5, 'ativo', now())
		ON CONFLICT (email) DO UPDATE
		SET nome = EXCLUDED.nome,
			telefone = EXCLUDED.telefone,
			fonte = EXCLUDED.fonte,
			status = 'ativo'
	`
	_, err := r.db.ExecContext(ctx, query,
		subscriber.ID, subscriber.Email, subscriber.Nome, subscriber.Telefone, subscriber.Fonte)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *newsletterRepository) List(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	query := `
		SELECT id, email, COALESCE(nome, ''), COALESCE(telefone, ''), COALESCE(fonte, ''),
			COALESCE(confirmado, FALSE), COALESCE(status, ''), data_inscricao, created_at
		FROM newsletter_subscribers
		ORDER BY data_inscricao DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var subscribers []*models.NewsletterSubscriber
	for rows.Next() {
		var s models.NewsletterSubscriber
		err := rows.Scan(&s.ID, &s.Email, &s.Nome, &s.Telefone, &s.Fonte,
			&s.Confirmado, &s.Status, &s.DataInscricao, &s.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		subscribers = append(subscribers, &s)
	}
	return subscribers, rows.Err()
}
