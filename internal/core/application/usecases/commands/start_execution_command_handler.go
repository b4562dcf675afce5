package commands

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

// StartExecutionCommandHandler changes nothing: approval of the budget is what
// moves an order into Executing. The handler returns the order when it is
// Executing and an InvalidStateError otherwise.
type StartExecutionCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewStartExecutionCommandHandler(uowFactory OrderUoWFactory) StartExecutionCommandHandler {
	return StartExecutionCommandHandler{uowFactory: uowFactory}
}

func (h StartExecutionCommandHandler) Handle(ctx context.Context, cmd StartExecutionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, gatewayError("order repository", err)
	}
	if err = o.EnsureExecuting(); err != nil {
		return nil, err
	}
	return o, nil
}
