package orderrepo

import (
	"context"
	"errors"

	"workshop/internal/adapters/out/postgres/budgetrepo"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OrderRepository = &GormOrderRepository{}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db       *gorm.DB
	statuses StatusCatalog
	tracker  aggregateTracker
}

// aggregateTracker collects saved orders so the unit of work can write their
// workflow steps to the outbox on commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, statuses StatusCatalog, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:       db,
		statuses: statuses,
		tracker:  tracker,
	}
}

// Add inserts the order with its lines and budgets.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(ctx, r.statuses, aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Omit("Vehicle").Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row and upserts lines and budgets. Lines and budgets
// are never removed from an aggregate, so nothing is deleted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(ctx, r.statuses, aggregate)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("status_id", "completed_at", "delivered_at").
		Updates(map[string]any{
			"status_id":    dto.StatusID,
			"completed_at": dto.CompletedAt,
			"delivered_at": dto.DeliveredAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if len(dto.Services) > 0 {
		if err = db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Services).Error; err != nil {
			return err
		}
	}
	if len(dto.Parts) > 0 {
		if err = db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Parts).Error; err != nil {
			return err
		}
	}
	if err = budgetrepo.Upsert(ctx, db, dto.Budgets); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withDetails(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}
	return toDomain(ctx, r.statuses, dto)
}

// GetForUpdate locks the order row with SELECT ... FOR UPDATE before loading
// the aggregate. The lock is held until the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var locked OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&locked, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := r.withDetails(ctx)
	if len(filter.Statuses) > 0 {
		ids := make([]int, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statusID, err := r.statuses.OrderStatusID(ctx, s)
			if err != nil {
				return nil, err
			}
			ids = append(ids, statusID)
		}
		query = query.Where("status_id IN ?", ids)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", filter.CustomerID.Bytes())
	}
	if filter.RequestedFrom != nil {
		query = query.Where("requested_at >= ?", *filter.RequestedFrom)
	}
	if filter.RequestedTo != nil {
		query = query.Where("requested_at <= ?", *filter.RequestedTo)
	}

	var dtos []OrderDTO
	if err := query.Order("requested_at ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(ctx, r.statuses, dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Vehicle.Customer").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Parts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Budgets", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}
