package memory

import (
	"context"
	"fmt"
	"slices"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

var _ ports.OrderRepository = &OrderRepository{}

type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.order(aggregate.ID()); ok {
		return fmt.Errorf("order %s already exists", aggregate.ID())
	}
	return r.save(aggregate)
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.uow.order(aggregate.ID()); !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return r.save(aggregate)
}

func (r *OrderRepository) save(aggregate *order.Order) error {
	snapshot, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	return r.uow.write(func(cs *changeSet) error {
		cs.orders[snapshot.ID()] = snapshot
		r.uow.track(aggregate)
		return nil
	})
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.uow.order(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(o)
}

// GetForUpdate is Get: concurrent writers are serialized by the order lock.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r *OrderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.uow.orders() {
		if !matches(o, filter) {
			continue
		}
		c, err := cloneOrder(o)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *order.Order) int {
		return a.RequestedAt().Compare(b.RequestedAt())
	})
	return out, nil
}

func matches(o *order.Order, f ports.OrderFilter) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status()) {
		return false
	}
	if f.CustomerID != nil && !o.Vehicle().CustomerID().IsEqual(*f.CustomerID) {
		return false
	}
	if f.RequestedFrom != nil && o.RequestedAt().Before(*f.RequestedFrom) {
		return false
	}
	if f.RequestedTo != nil && o.RequestedAt().After(*f.RequestedTo) {
		return false
	}
	return true
}
