package subscriptions

import (
	"context"

	"github.com/bissquit/newsletter/internal/domain"
)

// Repository defines the interface for subscriber data operations.
type Repository interface {
	CreateSubscriber(ctx context.Context, subscriber *domain.Subscriber) error
}
