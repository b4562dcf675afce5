package commands

import (
	"context"
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

// orderRef is embedded by commands addressed to a single order.
type orderRef struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func newOrderRef(orderID kernel.UUID) (orderRef, error) {
	if err := orderID.Validate(); err != nil {
		return orderRef{}, err
	}
	return orderRef{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (r orderRef) OrderID() kernel.UUID {
	return r.orderID
}

// budgetRef is embedded by commands addressed to a budget.
type budgetRef struct {
	budgetID kernel.UUID
	guard    guard.ConstructorGuard
}

func newBudgetRef(budgetID kernel.UUID) (budgetRef, error) {
	if err := budgetID.Validate(); err != nil {
		return budgetRef{}, err
	}
	return budgetRef{budgetID: budgetID, guard: guard.NewConstructorGuard()}, nil
}

func (r budgetRef) BudgetID() kernel.UUID {
	return r.budgetID
}

// gatewayError passes domain failures through and turns anything else coming
// from infrastructure into an UnavailableError.
func gatewayError(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrUnavailable):
		return err
	default:
		return errs.NewUnavailableError(resource, err)
	}
}

// lockWait bounds how long a transition queues behind another one on the same order.
const lockWait = 5 * time.Second

// workflow runs one transition: lock the order, open a transaction, load the
// order with a row lock, apply the step, persist, commit, unlock.
type workflow struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	lockWait   time.Duration
	now        func() time.Time
}

func newWorkflow(uowFactory OrderUoWFactory, locker ports.OrderLocker) workflow {
	return workflow{
		uowFactory: uowFactory,
		locker:     locker,
		lockWait:   lockWait,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (w workflow) run(
	ctx context.Context,
	orderID kernel.UUID,
	step func(o *order.Order, now time.Time) error,
) (*order.Order, error) {
	lockCtx, cancel := context.WithTimeout(ctx, w.lockWait)
	release, err := w.locker.Lock(lockCtx, orderID)
	cancel()
	if err != nil {
		return nil, gatewayError("order lock", err)
	}
	defer release()

	uow := w.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, gatewayError("unit of work", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, gatewayError("order repository", err)
	}

	if err = step(o, w.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, gatewayError("order repository", err)
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, gatewayError("unit of work", err)
	}
	return o, nil
}

// orderOfBudget resolves the owning order of a budget outside of any transaction.
func (w workflow) orderOfBudget(ctx context.Context, budgetID kernel.UUID) (kernel.UUID, error) {
	budget, err := w.uowFactory.Create().BudgetRepository().Get(ctx, budgetID)
	if err != nil {
		return kernel.UUID{}, gatewayError("budget repository", err)
	}
	return budget.OrderID(), nil
}
