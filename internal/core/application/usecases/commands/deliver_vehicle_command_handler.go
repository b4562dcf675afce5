package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type DeliverVehicleCommandHandler struct {
	workflow workflow
}

func NewDeliverVehicleCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) DeliverVehicleCommandHandler {
	return DeliverVehicleCommandHandler{workflow: newWorkflow(uowFactory, locker)}
}

// Handle moves the order to Delivered and stamps its delivery time.
func (h DeliverVehicleCommandHandler) Handle(ctx context.Context, cmd DeliverVehicleCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.workflow.run(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.DeliverVehicle(now)
	})
}
