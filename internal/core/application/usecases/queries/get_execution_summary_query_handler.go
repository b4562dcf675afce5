package queries

import (
	"context"
	"time"

	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

type GetExecutionSummaryQueryHandler struct {
	readers    ReaderFactory
	calculator services.TurnaroundCalculator
	now        func() time.Time
}

func NewGetExecutionSummaryQueryHandler(readers ReaderFactory) GetExecutionSummaryQueryHandler {
	return GetExecutionSummaryQueryHandler{
		readers:    readers,
		calculator: services.NewTurnaroundCalculator(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h GetExecutionSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetExecutionSummaryQuery,
) (services.ExecutionSummary, error) {
	if err := query.Validate(); err != nil {
		return services.ExecutionSummary{}, err
	}
	from, to := query.Window(h.now())

	orders, err := h.readers.Create().OrderRepository().List(ctx, ports.OrderFilter{
		RequestedFrom: &from,
		RequestedTo:   &to,
	})
	if err != nil {
		return services.ExecutionSummary{}, readError("order repository", err)
	}
	return h.calculator.Summary(orders, services.TurnaroundFilter{From: from, To: to}), nil
}
