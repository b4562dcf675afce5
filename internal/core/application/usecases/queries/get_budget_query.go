package queries

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/guard"
)

var ErrGetBudgetQueryIsNotConstructed = errors.New("GetBudgetQuery must be created via NewGetBudgetQuery")

type GetBudgetQuery struct {
	budgetID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetBudgetQuery(budgetID kernel.UUID) (GetBudgetQuery, error) {
	if err := budgetID.Validate(); err != nil {
		return GetBudgetQuery{}, err
	}
	return GetBudgetQuery{budgetID: budgetID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBudgetQuery) Validate() error {
	return q.guard.Validate(ErrGetBudgetQueryIsNotConstructed)
}

func (q GetBudgetQuery) BudgetID() kernel.UUID {
	return q.budgetID
}
