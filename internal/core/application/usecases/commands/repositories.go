// Package commands contains the operations that change service orders.
// Every command is built through its constructor and handled inside a unit of
// work; workflow transitions additionally hold the per-order lock.
package commands

import (
	"context"

	"workshop/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	BudgetRepoFactory interface {
		BudgetRepository() ports.BudgetRepository
	}

	CatalogRepoFactory interface {
		ServiceRepository() ports.ServiceRepository
		PartRepository() ports.PartRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
		VehicleRepository() ports.VehicleRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW serves workflow transitions on an existing order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		BudgetRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// IntakeUoW serves order creation, which reads customers and the catalog.
	IntakeUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
		CustomerRepoFactory
	}

	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
