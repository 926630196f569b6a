// Package subscriptions provides HTTP handlers and business logic for accepting newsletter subscriptions.
package subscriptions

import (
	"context"
	"fmt"
	"time"

	"github.com/bissquit/newsletter/internal/domain"
	"github.com/google/uuid"
)

// ServiceConfig contains subscription service settings.
type ServiceConfig struct {
	// StoreTimeout bounds a single insert, including pool acquisition. Zero means no extra bound.
	StoreTimeout time.Duration
}

// Service provides subscription business logic.
type Service struct {
	repo   Repository
	config ServiceConfig
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewService creates a new subscription service.
func NewService(repo Repository, config ServiceConfig) *Service {
	return &Service{
		repo:   repo,
		config: config,
		now:    time.Now,
		newID:  uuid.New,
	}
}

// Subscribe stores a validated submission as a new subscriber.
// Every call creates a distinct record, even for an email that is already stored.
func (s *Service) Subscribe(ctx context.Context, input domain.NewSubscriber) (*domain.Subscriber, error) {
	subscriber := &domain.Subscriber{
		ID:           s.newID(),
		Email:        input.Email,
		Name:         input.Name,
		SubscribedAt: s.now().UTC(),
	}

	if s.config.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.StoreTimeout)
		defer cancel()
	}

	if err := s.repo.CreateSubscriber(ctx, subscriber); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFault, err)
	}

	return subscriber, nil
}
