package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type StartDiagnosisCommandHandler struct {
	workflow workflow
}

func NewStartDiagnosisCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) StartDiagnosisCommandHandler {
	return StartDiagnosisCommandHandler{workflow: newWorkflow(uowFactory, locker)}
}

// Handle moves the order to Diagnosing and opens its first budget.
func (h StartDiagnosisCommandHandler) Handle(ctx context.Context, cmd StartDiagnosisCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.workflow.run(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.StartDiagnosis(now)
	})
}
