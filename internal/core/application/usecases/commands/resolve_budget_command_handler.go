package commands

import (
	"context"
	"strings"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

// ResolveBudgetResult is the order after the decision, its active budget (the
// fresh one after a re-quote) and a message for the customer-facing caller.
type ResolveBudgetResult struct {
	Order   *order.Order
	Budget  *order.Budget
	Message string
}

type ResolveBudgetCommandHandler struct {
	workflow workflow
}

func NewResolveBudgetCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) ResolveBudgetCommandHandler {
	return ResolveBudgetCommandHandler{workflow: newWorkflow(uowFactory, locker)}
}

func (h ResolveBudgetCommandHandler) Handle(ctx context.Context, cmd ResolveBudgetCommand) (ResolveBudgetResult, error) {
	if err := cmd.Validate(); err != nil {
		return ResolveBudgetResult{}, err
	}
	orderID, err := h.workflow.orderOfBudget(ctx, cmd.BudgetID())
	if err != nil {
		return ResolveBudgetResult{}, err
	}

	resolution := cmd.Resolution()
	o, err := h.workflow.run(ctx, orderID, func(o *order.Order, now time.Time) error {
		return o.ResolveBudget(cmd.BudgetID(), resolution, now)
	})
	if err != nil {
		return ResolveBudgetResult{}, err
	}

	return ResolveBudgetResult{
		Order:   o,
		Budget:  o.ActiveBudget(),
		Message: resolutionMessage(o.Status(), resolution),
	}, nil
}

func resolutionMessage(status order.Status, resolution order.Resolution) string {
	var b strings.Builder
	switch {
	case resolution.Approved:
		b.WriteString("Budget approved, service order moved to execution.")
	case resolution.RequestNewQuote:
		b.WriteString("Budget rejected, a new budget was created for review.")
	case status == order.Returned:
		b.WriteString("Budget rejected, vehicle returned to the customer.")
	default:
		b.WriteString("Budget rejected, service order cancelled.")
	}
	if !resolution.Approved && resolution.RejectionReason != "" {
		b.WriteString(" Reason: " + resolution.RejectionReason + ".")
	}
	if resolution.Notes != "" {
		b.WriteString(" Notes: " + resolution.Notes + ".")
	}
	return b.String()
}
