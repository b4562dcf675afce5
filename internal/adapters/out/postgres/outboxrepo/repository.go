package outboxrepo

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OutboxRepository = &GormOutboxRepository{}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add writes messages in the caller's transaction.
func (r *GormOutboxRepository) Add(ctx context.Context, msgs []ports.OutboxMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	dtos := make([]OutboxDTO, 0, len(msgs))
	for _, msg := range msgs {
		dtos = append(dtos, FromMessage(msg))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending locks the returned rows with FOR UPDATE SKIP LOCKED, so two
// relays running inside transactions never publish the same message.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("occurred_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	msgs := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		msgs = append(msgs, toMessage(dto))
	}
	return msgs, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at).Error
}
