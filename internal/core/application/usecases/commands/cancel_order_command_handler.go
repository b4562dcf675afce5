package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type CancelOrderCommandHandler struct {
	workflow workflow
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{workflow: newWorkflow(uowFactory, locker)}
}

// Handle cancels the order and rejects its open budget in one transaction;
// with VehicleReturned the order ends in Returned.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.workflow.run(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.Cancel(cmd.Reason(), cmd.Notes(), cmd.VehicleReturned(), now)
	})
}
