package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned by it
// use the transaction started by Begin. On Commit the workflow steps recorded
// by tracked order aggregates are written to the outbox in the same transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	BudgetRepository() BudgetRepository
	ServiceRepository() ServiceRepository
	PartRepository() PartRepository
	CustomerRepository() CustomerRepository
	VehicleRepository() VehicleRepository
	OutboxRepository() OutboxRepository
}
