package queries

import (
	"errors"

	"workshop/internal/pkg/guard"
)

var ErrListBudgetsQueryIsNotConstructed = errors.New("ListBudgetsQuery must be created via NewListBudgetsQuery")

// ListBudgetsQuery lists every budget, newest first.
type ListBudgetsQuery struct {
	guard guard.ConstructorGuard
}

func NewListBudgetsQuery() ListBudgetsQuery {
	return ListBudgetsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListBudgetsQuery) Validate() error {
	return q.guard.Validate(ErrListBudgetsQueryIsNotConstructed)
}
