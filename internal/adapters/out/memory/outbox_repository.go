package memory

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
)

var _ ports.OutboxRepository = &OutboxRepository{}

type OutboxRepository struct {
	uow *UnitOfWork
}

func (r *OutboxRepository) FetchPending(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	pending := r.uow.store.PendingMessages()
	out := make([]ports.OutboxMessage, 0, min(limit, len(pending)))
	for _, msg := range pending {
		if len(out) == limit {
			break
		}
		if r.uow.tx != nil {
			if _, done := r.uow.tx.published[msg.ID]; done {
				continue
			}
		}
		out = append(out, msg)
	}
	return out, nil
}

func (r *OutboxRepository) MarkPublished(_ context.Context, ids []kernel.UUID, at time.Time) error {
	return r.uow.write(func(cs *changeSet) error {
		for _, id := range ids {
			cs.published[id] = at
		}
		return nil
	})
}
