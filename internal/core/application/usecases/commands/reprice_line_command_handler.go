package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type RepriceLineCommandHandler struct {
	workflow workflow
}

func NewRepriceLineCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) RepriceLineCommandHandler {
	return RepriceLineCommandHandler{workflow: newWorkflow(uowFactory, locker)}
}

// Handle updates the line and returns the order with its new total. The
// budget value follows the order total, so nothing else is touched.
func (h RepriceLineCommandHandler) Handle(ctx context.Context, cmd RepriceLineCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.workflow.run(ctx, cmd.OrderID(), func(o *order.Order, _ time.Time) error {
		if cmd.Kind() == PartLineKind {
			return o.RepricePart(cmd.ItemID(), cmd.Value())
		}
		return o.RepriceService(cmd.ItemID(), cmd.Value())
	})
}
