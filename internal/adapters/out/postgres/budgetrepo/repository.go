package budgetrepo

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.BudgetRepository = &GormBudgetRepository{}

// orderLoader loads the owning aggregate for GetWithDetails.
type orderLoader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

type GormBudgetRepository struct {
	db       *gorm.DB
	statuses StatusCatalog
	orders   orderLoader
}

func NewGormBudgetRepository(db *gorm.DB, statuses StatusCatalog, orders orderLoader) *GormBudgetRepository {
	return &GormBudgetRepository{db: db, statuses: statuses, orders: orders}
}

func (r *GormBudgetRepository) Add(ctx context.Context, budget *order.Budget) error {
	if err := budget.Validate(); err != nil {
		return err
	}
	dto, err := FromDomain(ctx, r.statuses, budget)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormBudgetRepository) Update(ctx context.Context, budget *order.Budget) error {
	if err := budget.Validate(); err != nil {
		return err
	}
	dto, err := FromDomain(ctx, r.statuses, budget)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&BudgetDTO{}).
		Where("id = ?", dto.ID).
		Select("status_id", "rejection_reason").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("budget", budget.ID().String())
	}
	return nil
}

func (r *GormBudgetRepository) Get(ctx context.Context, id kernel.UUID) (*order.Budget, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto BudgetDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("budget", id.String())
		}
		return nil, err
	}
	return ToDomain(ctx, r.statuses, dto)
}

func (r *GormBudgetRepository) GetWithDetails(ctx context.Context, id kernel.UUID) (*order.Budget, *order.Order, error) {
	b, err := r.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	o, err := r.orders.Get(ctx, b.OrderID())
	if err != nil {
		return nil, nil, err
	}
	owned, ok := o.Budget(id)
	if !ok {
		return nil, nil, errs.NewObjectNotFoundError("budget", id.String())
	}
	return owned, o, nil
}

func (r *GormBudgetRepository) List(ctx context.Context) ([]*order.Budget, error) {
	var dtos []BudgetDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	budgets := make([]*order.Budget, 0, len(dtos))
	for _, dto := range dtos {
		b, err := ToDomain(ctx, r.statuses, dto)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}
