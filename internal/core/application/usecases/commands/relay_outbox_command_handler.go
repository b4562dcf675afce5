package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// RelayOutboxCommandHandler moves pending outbox rows to the broker. Messages
// are sent in order; the first failed publish ends the batch, the ones already
// sent are marked and the rest are retried on the next run.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle returns how many messages were published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, gatewayError("unit of work", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()
	pending, err := repo.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, gatewayError("outbox repository", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(pending))
	var publishErr error
	for _, msg := range pending {
		if err = h.publisher.Publish(ctx, cmd.Topic(), []byte(msg.Key), msg.Payload); err != nil {
			publishErr = errs.NewUnavailableError("event publisher", err)
			break
		}
		published = append(published, msg.ID)
	}

	if len(published) > 0 {
		if err = repo.MarkPublished(ctx, published, h.now()); err != nil {
			return 0, gatewayError("outbox repository", err)
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, gatewayError("unit of work", err)
		}
	}
	return len(published), publishErr
}
