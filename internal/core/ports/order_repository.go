// Package ports defines the contracts between the workshop core and its
// infrastructure: repositories, the unit of work, the per-order lock and the
// event publisher.
package ports

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// OrderFilter narrows ListOrders. Zero fields do not filter.
type OrderFilter struct {
	Statuses      []order.Status
	CustomerID    *kernel.UUID
	RequestedFrom *time.Time
	RequestedTo   *time.Time
}

// OrderRepository persists order aggregates together with their line items and
// budgets. Get always returns the full aggregate (lines, budgets, vehicle).
type OrderRepository interface {
	// Add persists a new order with its lines and budgets.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order row and upserts its lines and budgets.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns matching orders, oldest request first.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
