package ports

import (
	"context"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// BudgetRepository addresses budgets directly. Budgets belong to an order, so
// Add and Update are also called by OrderRepository for the budgets of the
// aggregate it saves.
type BudgetRepository interface {
	Add(ctx context.Context, budget *order.Budget) error
	Update(ctx context.Context, budget *order.Budget) error

	// Get returns errs.ObjectNotFoundError when the budget does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Budget, error)

	// GetWithDetails returns the budget together with its owning order.
	GetWithDetails(ctx context.Context, id kernel.UUID) (*order.Budget, *order.Order, error)

	// List returns every budget, newest first.
	List(ctx context.Context) ([]*order.Budget, error)
}
