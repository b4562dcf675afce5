package queries

import (
	"context"
)

// GetBudgetQueryHandler returns the budget with the current value of its order.
type GetBudgetQueryHandler struct {
	readers ReaderFactory
}

func NewGetBudgetQueryHandler(readers ReaderFactory) GetBudgetQueryHandler {
	return GetBudgetQueryHandler{readers: readers}
}

func (h GetBudgetQueryHandler) Handle(ctx context.Context, query GetBudgetQuery) (BudgetView, error) {
	if err := query.Validate(); err != nil {
		return BudgetView{}, err
	}
	b, o, err := h.readers.Create().BudgetRepository().GetWithDetails(ctx, query.BudgetID())
	if err != nil {
		return BudgetView{}, readError("budget repository", err)
	}
	return NewBudgetView(b, o), nil
}
