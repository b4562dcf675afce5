package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type ReturnVehicleCommandHandler struct {
	workflow workflow
}

func NewReturnVehicleCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) ReturnVehicleCommandHandler {
	return ReturnVehicleCommandHandler{workflow: newWorkflow(uowFactory, locker)}
}

func (h ReturnVehicleCommandHandler) Handle(ctx context.Context, cmd ReturnVehicleCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.workflow.run(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.ReturnVehicleWithoutService(cmd.Reason(), now)
	})
}
