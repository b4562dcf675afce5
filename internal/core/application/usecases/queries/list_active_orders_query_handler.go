package queries

import (
	"cmp"
	"context"
	"slices"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type ListActiveOrdersQueryHandler struct {
	readers ReaderFactory
}

func NewListActiveOrdersQueryHandler(readers ReaderFactory) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{readers: readers}
}

func (h ListActiveOrdersQueryHandler) Handle(ctx context.Context, query ListActiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := make([]order.Status, 0)
	for _, s := range order.Statuses() {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	orders, err := h.readers.Create().OrderRepository().List(ctx, ports.OrderFilter{Statuses: active})
	if err != nil {
		return nil, readError("order repository", err)
	}

	slices.SortStableFunc(orders, func(a, b *order.Order) int {
		if c := cmp.Compare(a.Status().Priority(), b.Status().Priority()); c != 0 {
			return c
		}
		return a.RequestedAt().Compare(b.RequestedAt())
	})

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}
