package queries

import (
	"context"
)

type ListOrdersQueryHandler struct {
	readers ReaderFactory
}

func NewListOrdersQueryHandler(readers ReaderFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{readers: readers}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	orders, err := h.readers.Create().OrderRepository().List(ctx, query.Filter())
	if err != nil {
		return nil, readError("order repository", err)
	}
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}
