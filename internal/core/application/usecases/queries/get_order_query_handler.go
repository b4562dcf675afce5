package queries

import (
	"context"
)

type GetOrderQueryHandler struct {
	readers ReaderFactory
}

func NewGetOrderQueryHandler(readers ReaderFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{readers: readers}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}
	o, err := h.readers.Create().OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, readError("order repository", err)
	}
	return NewOrderView(o), nil
}
