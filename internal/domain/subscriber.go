package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is an accepted name/email submission. Once stored it is never updated.
type Subscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// NewSubscriber is a submission that passed validation and may be persisted.
type NewSubscriber struct {
	Name  string
	Email string
}
