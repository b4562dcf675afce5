// Package budgetrepo persists budgets. Budgets are written together with their
// order by orderrepo; this package also serves direct budget lookups.
package budgetrepo

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time `gorm:"not null;index"`
	StatusID        int       `gorm:"not null;index"`
	RejectionReason string    `gorm:"type:text"`
}

func (BudgetDTO) TableName() string {
	return "budgets"
}

// StatusCatalog translates budget statuses to catalog ids and back.
type StatusCatalog interface {
	BudgetStatusID(ctx context.Context, s order.BudgetStatus) (int, error)
	BudgetStatus(ctx context.Context, id int) (order.BudgetStatus, error)
}

func FromDomain(ctx context.Context, statuses StatusCatalog, b *order.Budget) (BudgetDTO, error) {
	statusID, err := statuses.BudgetStatusID(ctx, b.Status())
	if err != nil {
		return BudgetDTO{}, err
	}
	return BudgetDTO{
		ID:              b.ID().Bytes(),
		OrderID:         b.OrderID().Bytes(),
		CreatedAt:       b.CreatedAt(),
		StatusID:        statusID,
		RejectionReason: b.RejectionReason(),
	}, nil
}

func ToDomain(ctx context.Context, statuses StatusCatalog, dto BudgetDTO) (*order.Budget, error) {
	status, err := statuses.BudgetStatus(ctx, dto.StatusID)
	if err != nil {
		return nil, err
	}
	return order.RestoreBudget(
		kernel.UUIDFrom(dto.ID),
		kernel.UUIDFrom(dto.OrderID),
		dto.CreatedAt.UTC(),
		status,
		dto.RejectionReason,
	)
}

// Upsert inserts new budgets and overwrites existing ones by id.
func Upsert(ctx context.Context, db *gorm.DB, dtos []BudgetDTO) error {
	if len(dtos) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dtos).Error
}
