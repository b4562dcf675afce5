package memory

import (
	"context"
	"slices"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

var _ ports.BudgetRepository = &BudgetRepository{}

// BudgetRepository reads and writes budgets through the snapshot of their order.
type BudgetRepository struct {
	uow *UnitOfWork
}

func (r *BudgetRepository) Add(_ context.Context, budget *order.Budget) error {
	return r.save(budget)
}

func (r *BudgetRepository) Update(_ context.Context, budget *order.Budget) error {
	if _, _, err := r.find(budget.ID()); err != nil {
		return err
	}
	return r.save(budget)
}

func (r *BudgetRepository) save(budget *order.Budget) error {
	if err := budget.Validate(); err != nil {
		return err
	}
	owner, ok := r.uow.order(budget.OrderID())
	if !ok {
		return errs.NewObjectNotFoundError("order", budget.OrderID().String())
	}
	updated, err := withBudget(owner, budget)
	if err != nil {
		return err
	}
	return r.uow.write(func(cs *changeSet) error {
		cs.orders[updated.ID()] = updated
		return nil
	})
}

func (r *BudgetRepository) find(id kernel.UUID) (*order.Budget, *order.Order, error) {
	for _, o := range r.uow.orders() {
		if b, ok := o.Budget(id); ok {
			return b, o, nil
		}
	}
	return nil, nil, errs.NewObjectNotFoundError("budget", id.String())
}

func (r *BudgetRepository) Get(ctx context.Context, id kernel.UUID) (*order.Budget, error) {
	b, _, err := r.GetWithDetails(ctx, id)
	return b, err
}

func (r *BudgetRepository) GetWithDetails(_ context.Context, id kernel.UUID) (*order.Budget, *order.Order, error) {
	_, owner, err := r.find(id)
	if err != nil {
		return nil, nil, err
	}
	o, err := cloneOrder(owner)
	if err != nil {
		return nil, nil, err
	}
	b, _ := o.Budget(id)
	return b, o, nil
}

func (r *BudgetRepository) List(_ context.Context) ([]*order.Budget, error) {
	var out []*order.Budget
	for _, o := range r.uow.orders() {
		for _, b := range o.Budgets() {
			c, err := cloneBudget(b)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *order.Budget) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return out, nil
}
