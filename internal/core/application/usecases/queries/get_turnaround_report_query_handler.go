package queries

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

type GetTurnaroundReportQueryHandler struct {
	readers    ReaderFactory
	calculator services.TurnaroundCalculator
	now        func() time.Time
}

func NewGetTurnaroundReportQueryHandler(readers ReaderFactory) GetTurnaroundReportQueryHandler {
	return GetTurnaroundReportQueryHandler{
		readers:    readers,
		calculator: services.NewTurnaroundCalculator(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h GetTurnaroundReportQueryHandler) Handle(
	ctx context.Context,
	query GetTurnaroundReportQuery,
) (services.TurnaroundReport, error) {
	if err := query.Validate(); err != nil {
		return services.TurnaroundReport{}, err
	}
	from, to := query.Window(h.now())

	orders, err := h.readers.Create().OrderRepository().List(ctx, ports.OrderFilter{
		Statuses:      []order.Status{order.Delivered},
		CustomerID:    query.CustomerID(),
		RequestedFrom: &from,
		RequestedTo:   &to,
	})
	if err != nil {
		return services.TurnaroundReport{}, readError("order repository", err)
	}

	return h.calculator.Report(orders, services.TurnaroundFilter{
		From:       from,
		To:         to,
		CustomerID: query.CustomerID(),
		MinValue:   query.MinValue(),
	}), nil
}
