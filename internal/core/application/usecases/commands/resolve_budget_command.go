package commands

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

var ErrResolveBudgetCommandIsNotConstructed = errors.New("ResolveBudgetCommand must be created via NewResolveBudgetCommand")

// ResolveBudgetCommand carries the customer's answer to a pending quote.
// When Approved is set the other flags are ignored; otherwise a requested new
// quote takes precedence over a vehicle already picked up.
type ResolveBudgetCommand struct {
	budgetRef
	resolution order.Resolution
}

func NewResolveBudgetCommand(budgetID kernel.UUID, resolution order.Resolution) (ResolveBudgetCommand, error) {
	ref, err := newBudgetRef(budgetID)
	if err != nil {
		return ResolveBudgetCommand{}, err
	}
	return ResolveBudgetCommand{budgetRef: ref, resolution: resolution}, nil
}

func (c ResolveBudgetCommand) Validate() error {
	return c.guard.Validate(ErrResolveBudgetCommandIsNotConstructed)
}

func (c ResolveBudgetCommand) Resolution() order.Resolution {
	return c.resolution
}
