// Package kafka publishes relayed workflow events to Kafka.
package kafka

import (
	"context"

	"workshop/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

var _ ports.EventPublisher = &Producer{}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Producer struct {
	w messageWriter
}

func NewProducer(brokers []string) *Producer {
	return newProducerWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	})
}

func newProducerWithWriter(w messageWriter) *Producer {
	return &Producer{w: w}
}

// Publish writes one message. Messages of the same order share a key and
// therefore a partition, which keeps their relative order.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	}); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

// Close flushes pending writes.
func (p *Producer) Close() error {
	if c, ok := p.w.(interface{ Close() error }); ok {
		return errors.Wrap(c.Close(), "kafka close")
	}
	return nil
}
