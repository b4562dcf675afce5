package order

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
)

// BudgetChange is the budget half of a workflow step. From is BudgetUnknown
// when the step created the budget.
type BudgetChange struct {
	BudgetID kernel.UUID
	From     BudgetStatus
	To       BudgetStatus
}

// StatusChanged records one workflow step: the order status change and every
// budget status change that happened with it. Steps are persisted in the same
// transaction as the aggregate and relayed to subscribers afterwards.
type StatusChanged struct {
	OrderID    kernel.UUID
	From       Status
	To         Status
	Budgets    []BudgetChange
	Note       string
	OccurredAt time.Time
}
