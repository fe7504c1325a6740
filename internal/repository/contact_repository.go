package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// contactRepository implements the ContactRepository interface using PostgreSQL.
type contactRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewContactRepository creates a new PostgreSQL-backed contact repository.
func NewContactRepository(pool *pgxpool.Pool, logger zerolog.Logger) ContactRepository {
	return &contactRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "contact").Logger(),
	}
}

// Insert stores a submitted contact message.
func (r *contactRepository) Insert(ctx context.Context, contact *model.Contact) error {
	query := `
		INSERT INTO contacts (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING contact_id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Subject,
		contact.Message,
	).Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("email", contact.Email).
			Msg("failed to insert contact message")
		return fmt.Errorf("failed to insert contact message: %w", err)
	}

	r.logger.Debug().
		Int64("contact_id", contact.ID).
		Msg("contact message stored")

	return nil
}
