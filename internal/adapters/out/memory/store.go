// Package memory keeps workshop data in process memory behind the same unit of
// work contract as the Postgres adapter. It backs STORAGE_DRIVER=memory and the
// application tests.
//
// A unit of work stages its writes and applies them to the Store on Commit;
// reads see staged writes first. Outside Begin every write is applied at once.
package memory

import (
	"slices"
	"sync"
	"time"

	"workshop/internal/core/domain/model/catalog"
	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

type outboxRow struct {
	msg         ports.OutboxMessage
	publishedAt *time.Time
}

// Store is the shared state behind every unit of work of a factory. Orders are
// kept as private snapshots so callers never hold a pointer into the store.
type Store struct {
	mu        sync.RWMutex
	orders    map[kernel.UUID]*order.Order
	services  map[kernel.UUID]*catalog.Service
	parts     map[kernel.UUID]*catalog.Part
	customers map[kernel.UUID]*customer.Customer
	vehicles  map[kernel.UUID]*customer.Vehicle
	outbox    []*outboxRow
}

func NewStore() *Store {
	return &Store{
		orders:    make(map[kernel.UUID]*order.Order),
		services:  make(map[kernel.UUID]*catalog.Service),
		parts:     make(map[kernel.UUID]*catalog.Part),
		customers: make(map[kernel.UUID]*customer.Customer),
		vehicles:  make(map[kernel.UUID]*customer.Vehicle),
	}
}

// changeSet is what a unit of work has written but not yet committed.
type changeSet struct {
	orders    map[kernel.UUID]*order.Order
	services  map[kernel.UUID]*catalog.Service
	parts     map[kernel.UUID]*catalog.Part
	customers map[kernel.UUID]*customer.Customer
	vehicles  map[kernel.UUID]*customer.Vehicle
	outbox    []ports.OutboxMessage
	published map[kernel.UUID]time.Time
}

func newChangeSet() *changeSet {
	return &changeSet{
		orders:    make(map[kernel.UUID]*order.Order),
		services:  make(map[kernel.UUID]*catalog.Service),
		parts:     make(map[kernel.UUID]*catalog.Part),
		customers: make(map[kernel.UUID]*customer.Customer),
		vehicles:  make(map[kernel.UUID]*customer.Vehicle),
		published: make(map[kernel.UUID]time.Time),
	}
}

func (s *Store) apply(cs *changeSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, o := range cs.orders {
		s.orders[id] = o
	}
	for id, v := range cs.services {
		s.services[id] = v
	}
	for id, v := range cs.parts {
		s.parts[id] = v
	}
	for id, v := range cs.customers {
		s.customers[id] = v
	}
	for id, v := range cs.vehicles {
		s.vehicles[id] = v
	}
	for _, msg := range cs.outbox {
		s.outbox = append(s.outbox, &outboxRow{msg: msg})
	}
	for _, row := range s.outbox {
		if at, ok := cs.published[row.msg.ID]; ok {
			row.publishedAt = &at
		}
	}
}

// PendingMessages returns the outbox rows not yet published, oldest first.
func (s *Store) PendingMessages() []ports.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.publishedAt == nil {
			out = append(out, row.msg)
		}
	}
	return out
}

func cloneBudget(b *order.Budget) (*order.Budget, error) {
	return order.RestoreBudget(b.ID(), b.OrderID(), b.CreatedAt(), b.Status(), b.RejectionReason())
}

func cloneOrder(o *order.Order) (*order.Order, error) {
	return restoreWithBudgets(o, o.Budgets())
}

func restoreWithBudgets(o *order.Order, budgets []*order.Budget) (*order.Order, error) {
	cloned := make([]*order.Budget, 0, len(budgets))
	for _, b := range budgets {
		c, err := cloneBudget(b)
		if err != nil {
			return nil, err
		}
		cloned = append(cloned, c)
	}
	return order.RestoreOrder(
		o.ID(),
		o.Vehicle(),
		o.RequestedAt(),
		o.Status(),
		o.CompletedAt(),
		o.DeliveredAt(),
		o.Services(),
		o.Parts(),
		cloned,
	)
}

// withBudget returns a copy of o whose budget list has b in place of the budget
// with the same id, or b appended when o does not have it yet.
func withBudget(o *order.Order, b *order.Budget) (*order.Order, error) {
	budgets := o.Budgets()
	i := slices.IndexFunc(budgets, func(existing *order.Budget) bool {
		return existing.ID().IsEqual(b.ID())
	})
	if i >= 0 {
		budgets[i] = b
	} else {
		budgets = append(budgets, b)
	}
	return restoreWithBudgets(o, budgets)
}
