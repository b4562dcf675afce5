package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type SendBudgetForApprovalCommandHandler struct {
	workflow workflow
}

func NewSendBudgetForApprovalCommandHandler(
	uowFactory OrderUoWFactory, locker ports.OrderLocker,
) SendBudgetForApprovalCommandHandler {
	return SendBudgetForApprovalCommandHandler{workflow: newWorkflow(uowFactory, locker)}
}

// Handle moves the budget to PendingApproval and its order to AwaitingApproval.
func (h SendBudgetForApprovalCommandHandler) Handle(
	ctx context.Context, cmd SendBudgetForApprovalCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	orderID, err := h.workflow.orderOfBudget(ctx, cmd.BudgetID())
	if err != nil {
		return nil, err
	}
	return h.workflow.run(ctx, orderID, func(o *order.Order, now time.Time) error {
		return o.SendBudgetForApproval(cmd.BudgetID(), cmd.Notes(), now)
	})
}
