// Package outboxrepo stores serialized workflow steps until the relay job
// hands them to the broker.
package outboxrepo

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"

	"github.com/google/uuid"
)

type OutboxDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"type:varchar(128);not null"`
	Key         string     `gorm:"type:varchar(64);not null"`
	Payload     string     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (OutboxDTO) TableName() string {
	return "outbox"
}

func FromMessage(msg ports.OutboxMessage) OutboxDTO {
	return OutboxDTO{
		ID:         msg.ID.Bytes(),
		EventType:  msg.EventType,
		Key:        msg.Key,
		Payload:    string(msg.Payload),
		OccurredAt: msg.OccurredAt,
	}
}

func toMessage(dto OutboxDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:         kernel.UUIDFrom(dto.ID),
		EventType:  dto.EventType,
		Key:        dto.Key,
		Payload:    []byte(dto.Payload),
		OccurredAt: dto.OccurredAt.UTC(),
	}
}
