package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery")

// ListOrdersQuery lists orders, oldest request first. Empty criteria match everything.
type ListOrdersQuery struct {
	filter ports.OrderFilter
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(statuses []order.Status, customerID *kernel.UUID, from, to *time.Time) (ListOrdersQuery, error) {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if from != nil && to != nil && from.After(*to) {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("from", from.Format(time.RFC3339), "", to.Format(time.RFC3339))
	}
	return ListOrdersQuery{
		filter: ports.OrderFilter{
			Statuses:      append([]order.Status(nil), statuses...),
			CustomerID:    customerID,
			RequestedFrom: from,
			RequestedTo:   to,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}
