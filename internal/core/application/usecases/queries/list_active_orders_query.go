package queries

import (
	"errors"

	"workshop/internal/pkg/guard"
)

var ErrListActiveOrdersQueryIsNotConstructed = errors.New(
	"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery")

// ListActiveOrdersQuery is the shop-floor board: every order not yet Finalized
// or Delivered, most urgent status first, then by request time.
type ListActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListActiveOrdersQuery() ListActiveOrdersQuery {
	return ListActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}
