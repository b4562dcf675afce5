// Package postgres provides the GORM-based Unit of Work for the workshop.
// A unit of work spans one business transaction: every repository it hands out
// runs inside the transaction opened by Begin, and every order saved through it
// is tracked so its recorded workflow steps land in the outbox table in the
// same transaction on Commit.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, statuses)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if err := o.StartDiagnosis(time.Now()); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction; goroutines use separate instances
//   - GetForUpdate takes a row lock, so transitions on one order are serialized by the database
//   - Outbox rows are fetched with SKIP LOCKED, so concurrent relays split the backlog
package postgres

import (
	"context"
	"log/slog"

	"workshop/internal/adapters/out/messages"
	"workshop/internal/adapters/out/postgres/budgetrepo"
	"workshop/internal/adapters/out/postgres/catalogrepo"
	"workshop/internal/adapters/out/postgres/customerrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/adapters/out/postgres/outboxrepo"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool and one status catalog cache.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	statuses *catalogrepo.GormStatusCatalog
}

func NewGormUnitOfWorkFactory(db *gorm.DB, statuses *catalogrepo.GormStatusCatalog) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, statuses: statuses}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		statuses:          f.statuses,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and the aggregates saved in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	statuses          *catalogrepo.GormStatusCatalog
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit writes the outbox rows of every tracked order and commits. Domain
// events are cleared only after the commit succeeds.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.writeOutbox(ctx, uow.tx); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	uow.clearTracked()
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// TrackAggregate registers an aggregate saved by a repository. Outside a
// transaction the save is already durable, so its outbox rows are written
// straight away.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	if uow.tx == nil {
		if o, ok := aggregate.(*order.Order); ok {
			uow.flushNow(o)
		}
		return
	}
	for _, t := range uow.trackedAggregates {
		if t.Aggregate == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) writeOutbox(ctx context.Context, db *gorm.DB) error {
	for _, t := range uow.trackedAggregates {
		o, ok := t.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		if err := uow.writeOutboxFor(ctx, db, o); err != nil {
			return err
		}
	}
	return nil
}

func (uow *GormUnitOfWork) writeOutboxFor(ctx context.Context, db *gorm.DB, o *order.Order) error {
	msgs, err := messages.FromOrder(o)
	if err != nil {
		return err
	}
	return outboxrepo.NewGormOutboxRepository(db).Add(ctx, msgs)
}

func (uow *GormUnitOfWork) clearTracked() {
	for _, t := range uow.trackedAggregates {
		if o, ok := t.Aggregate.(*order.Order); ok {
			o.ClearDomainEvents()
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow.statuses, uow)
}

func (uow *GormUnitOfWork) BudgetRepository() ports.BudgetRepository {
	db := uow.conn()
	orders := orderrepo.NewGormOrderRepository(db, uow.statuses, uow)
	return budgetrepo.NewGormBudgetRepository(db, uow.statuses, orders)
}

func (uow *GormUnitOfWork) ServiceRepository() ports.ServiceRepository {
	return catalogrepo.NewGormServiceRepository(uow.conn())
}

func (uow *GormUnitOfWork) PartRepository() ports.PartRepository {
	return catalogrepo.NewGormPartRepository(uow.conn())
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) VehicleRepository() ports.VehicleRepository {
	return customerrepo.NewGormVehicleRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

func (uow *GormUnitOfWork) flushNow(o *order.Order) {
	ctx := context.Background()
	if err := uow.writeOutboxFor(ctx, uow.db, o); err != nil {
		slog.Error("failed to write outbox outside a transaction",
			"order_id", o.ID().String(), "error", err)
		return
	}
	o.ClearDomainEvents()
}
