package subscriptions

import (
	"context"
	"sync"

	"github.com/bissquit/newsletter/internal/domain"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	mu          sync.Mutex
	subscribers []domain.Subscriber
	createErr   error
	lastCtx     context.Context
}

func (m *mockRepository) CreateSubscriber(ctx context.Context, subscriber *domain.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCtx = ctx
	if m.createErr != nil {
		return m.createErr
	}
	m.subscribers = append(m.subscribers, *subscriber)
	return nil
}

func (m *mockRepository) stored() []domain.Subscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Subscriber(nil), m.subscribers...)
}
