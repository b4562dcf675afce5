package memory

import (
	"context"
	"errors"

	"workshop/internal/adapters/out/messages"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
)

var ErrNoTransaction = errors.New("no transaction in progress")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes in a changeSet between Begin and Commit and keeps
// the orders it saved so their workflow steps reach the outbox on Commit.
type UnitOfWork struct {
	store   *Store
	tx      *changeSet
	tracked []*order.Order
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.tx != nil {
		return nil
	}
	uow.tx = newChangeSet()
	uow.tracked = nil
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}
	if err := uow.flush(uow.tx); err != nil {
		return err
	}
	uow.tx = nil
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}
	uow.tx = nil
	uow.tracked = nil
	return nil
}

func (uow *UnitOfWork) flush(cs *changeSet) error {
	for _, o := range uow.tracked {
		msgs, err := messages.FromOrder(o)
		if err != nil {
			return err
		}
		cs.outbox = append(cs.outbox, msgs...)
	}
	uow.store.apply(cs)
	for _, o := range uow.tracked {
		o.ClearDomainEvents()
	}
	uow.tracked = nil
	return nil
}

// write runs fn against the open transaction, or applies it immediately when
// there is none.
func (uow *UnitOfWork) write(fn func(cs *changeSet) error) error {
	if uow.tx != nil {
		return fn(uow.tx)
	}
	cs := newChangeSet()
	if err := fn(cs); err != nil {
		uow.tracked = nil
		return err
	}
	return uow.flush(cs)
}

func (uow *UnitOfWork) track(o *order.Order) {
	for _, t := range uow.tracked {
		if t == o {
			return
		}
	}
	uow.tracked = append(uow.tracked, o)
}

// order looks the order up in staged writes first, then in the store.
func (uow *UnitOfWork) order(id kernel.UUID) (*order.Order, bool) {
	if uow.tx != nil {
		if o, ok := uow.tx.orders[id]; ok {
			return o, true
		}
	}
	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	o, ok := uow.store.orders[id]
	return o, ok
}

// orders merges staged orders over the stored ones.
func (uow *UnitOfWork) orders() []*order.Order {
	uow.store.mu.RLock()
	merged := make(map[kernel.UUID]*order.Order, len(uow.store.orders))
	for id, o := range uow.store.orders {
		merged[id] = o
	}
	uow.store.mu.RUnlock()
	if uow.tx != nil {
		for id, o := range uow.tx.orders {
			merged[id] = o
		}
	}
	out := make([]*order.Order, 0, len(merged))
	for _, o := range merged {
		out = append(out, o)
	}
	return out
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) BudgetRepository() ports.BudgetRepository {
	return &BudgetRepository{uow: uow}
}

func (uow *UnitOfWork) ServiceRepository() ports.ServiceRepository {
	return &ServiceRepository{uow: uow}
}

func (uow *UnitOfWork) PartRepository() ports.PartRepository {
	return &PartRepository{uow: uow}
}

func (uow *UnitOfWork) CustomerRepository() ports.CustomerRepository {
	return &CustomerRepository{uow: uow}
}

func (uow *UnitOfWork) VehicleRepository() ports.VehicleRepository {
	return &VehicleRepository{uow: uow}
}

func (uow *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &OutboxRepository{uow: uow}
}
