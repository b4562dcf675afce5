package commands

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type FinishDiagnosisCommandHandler struct {
	workflow workflow
}

func NewFinishDiagnosisCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) FinishDiagnosisCommandHandler {
	return FinishDiagnosisCommandHandler{workflow: newWorkflow(uowFactory, locker)}
}

// Handle moves the order to Budgeting and its budget to InElaboration.
func (h FinishDiagnosisCommandHandler) Handle(ctx context.Context, cmd FinishDiagnosisCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.workflow.run(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.FinishDiagnosis(now)
	})
}
