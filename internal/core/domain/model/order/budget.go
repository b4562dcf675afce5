package order

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrBudgetIsNotConstructed = errors.New("Budget must be created via its owning Order or RestoreBudget")

// Budget is a quote attached to an Order. It carries no amount of its own: the
// quoted value is always the owning order's current Total. Budgets change status
// only through Order methods so that order and budget always move together.
type Budget struct {
	id              kernel.UUID
	orderID         kernel.UUID
	createdAt       time.Time
	status          BudgetStatus
	rejectionReason string
	guard           guard.ConstructorGuard
}

func newBudget(orderID kernel.UUID, createdAt time.Time) *Budget {
	return &Budget{
		id:        kernel.NewUUID(),
		orderID:   orderID,
		createdAt: createdAt,
		status:    BudgetCreated,
		guard:     guard.NewConstructorGuard(),
	}
}

// RestoreBudget rebuilds a budget from storage.
func RestoreBudget(
	id kernel.UUID,
	orderID kernel.UUID,
	createdAt time.Time,
	status BudgetStatus,
	rejectionReason string,
) (*Budget, error) {
	var createdAtErr error
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("budget created at")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate(), createdAtErr); err != nil {
		return nil, err
	}
	return &Budget{
		id:              id,
		orderID:         orderID,
		createdAt:       createdAt,
		status:          status,
		rejectionReason: rejectionReason,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (b *Budget) Validate() error {
	return b.guard.Validate(ErrBudgetIsNotConstructed)
}

func (b *Budget) ID() kernel.UUID {
	return b.id
}

func (b *Budget) OrderID() kernel.UUID {
	return b.orderID
}

func (b *Budget) CreatedAt() time.Time {
	return b.createdAt
}

func (b *Budget) Status() BudgetStatus {
	return b.status
}

func (b *Budget) RejectionReason() string {
	return b.rejectionReason
}
