// Package postgres provides PostgreSQL implementation of the subscriptions repository.
package postgres

import (
	"context"
	"fmt"

	"github.com/bissquit/newsletter/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the subscriptions.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateSubscriber inserts a single subscriber row.
func (r *Repository) CreateSubscriber(ctx context.Context, subscriber *domain.Subscriber) error {
	query := `
		INSERT INTO subscriptions (id, email, name, subscribed_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query,
		subscriber.ID,
		subscriber.Email,
		subscriber.Name,
		subscriber.SubscribedAt,
	)
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}
