package queries

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type ListBudgetsQueryHandler struct {
	readers ReaderFactory
}

func NewListBudgetsQueryHandler(readers ReaderFactory) ListBudgetsQueryHandler {
	return ListBudgetsQueryHandler{readers: readers}
}

// Handle joins each budget with its order in memory: budgets carry no value of
// their own and the order total is needed for every row.
func (h ListBudgetsQueryHandler) Handle(ctx context.Context, query ListBudgetsQuery) ([]BudgetView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	reader := h.readers.Create()

	budgets, err := reader.BudgetRepository().List(ctx)
	if err != nil {
		return nil, readError("budget repository", err)
	}
	orders, err := reader.OrderRepository().List(ctx, ports.OrderFilter{})
	if err != nil {
		return nil, readError("order repository", err)
	}
	byID := make(map[kernel.UUID]*order.Order, len(orders))
	for _, o := range orders {
		byID[o.ID()] = o
	}

	views := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		owner, ok := byID[b.OrderID()]
		if !ok {
			continue
		}
		views = append(views, NewBudgetView(b, owner))
	}
	return views, nil
}
