package ports

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized workflow step waiting to be relayed.
type OutboxMessage struct {
	ID         kernel.UUID
	EventType  string
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

// OutboxRepository reads and acknowledges messages written by the unit of work.
type OutboxRepository interface {
	// FetchPending returns up to limit unpublished messages, oldest first,
	// skipping rows locked by a concurrent relay.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers relayed messages to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}
