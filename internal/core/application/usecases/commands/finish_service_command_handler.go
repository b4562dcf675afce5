package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type FinishServiceCommandHandler struct {
	workflow workflow
}

func NewFinishServiceCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) FinishServiceCommandHandler {
	return FinishServiceCommandHandler{workflow: newWorkflow(uowFactory, locker)}
}

// Handle moves the order to Finalized and stamps its completion time.
func (h FinishServiceCommandHandler) Handle(ctx context.Context, cmd FinishServiceCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.workflow.run(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.FinishService(now)
	})
}
