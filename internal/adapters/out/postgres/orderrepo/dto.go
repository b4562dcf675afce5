// Package orderrepo maps the order aggregate (order row, service and part
// lines, budgets) to relational tables. The vehicle and customer rows are
// preloaded for the order's vehicle snapshot but never written here.
package orderrepo

import (
	"context"
	"time"

	"workshop/internal/adapters/out/postgres/budgetrepo"
	"workshop/internal/adapters/out/postgres/customerrepo"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID          uuid.UUID               `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	VehicleID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	Vehicle     customerrepo.VehicleDTO `gorm:"foreignKey:VehicleID"`
	RequestedAt time.Time               `gorm:"not null;index"`
	StatusID    int                     `gorm:"not null;index"`
	CompletedAt *time.Time
	DeliveredAt *time.Time
	Services    []ServiceLineDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Parts       []PartLineDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Budgets     []budgetrepo.BudgetDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ServiceLineDTO struct {
	OrderID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ServiceID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position         int             `gorm:"not null"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Value            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EstimatedMinutes int             `gorm:"not null"`
}

func (ServiceLineDTO) TableName() string {
	return "order_services"
}

type PartLineDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PartID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	UnitValue decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (PartLineDTO) TableName() string {
	return "order_parts"
}

// StatusCatalog translates order and budget statuses to catalog ids and back.
type StatusCatalog interface {
	budgetrepo.StatusCatalog
	OrderStatusID(ctx context.Context, s order.Status) (int, error)
	OrderStatus(ctx context.Context, id int) (order.Status, error)
}

func fromDomain(ctx context.Context, statuses StatusCatalog, o *order.Order) (OrderDTO, error) {
	statusID, err := statuses.OrderStatusID(ctx, o.Status())
	if err != nil {
		return OrderDTO{}, err
	}

	orderID := o.ID().Bytes()
	dto := OrderDTO{
		ID:          orderID,
		CustomerID:  o.Vehicle().CustomerID().Bytes(),
		VehicleID:   o.Vehicle().ID().Bytes(),
		RequestedAt: o.RequestedAt(),
		StatusID:    statusID,
		CompletedAt: o.CompletedAt(),
		DeliveredAt: o.DeliveredAt(),
	}
	for i, s := range o.Services() {
		dto.Services = append(dto.Services, ServiceLineDTO{
			OrderID:          orderID,
			ServiceID:        s.ServiceID().Bytes(),
			Position:         i,
			Name:             s.Name(),
			Value:            s.Value().Decimal(),
			EstimatedMinutes: s.EstimatedMinutes(),
		})
	}
	for i, p := range o.Parts() {
		dto.Parts = append(dto.Parts, PartLineDTO{
			OrderID:   orderID,
			PartID:    p.PartID().Bytes(),
			Position:  i,
			Name:      p.Name(),
			Quantity:  p.Quantity(),
			UnitValue: p.UnitValue().Decimal(),
		})
	}
	for _, b := range o.Budgets() {
		budgetDTO, budgetErr := budgetrepo.FromDomain(ctx, statuses, b)
		if budgetErr != nil {
			return OrderDTO{}, budgetErr
		}
		dto.Budgets = append(dto.Budgets, budgetDTO)
	}
	return dto, nil
}

func toDomain(ctx context.Context, statuses StatusCatalog, dto OrderDTO) (*order.Order, error) {
	status, err := statuses.OrderStatus(ctx, dto.StatusID)
	if err != nil {
		return nil, err
	}

	vehicle, err := order.NewVehicle(
		kernel.UUIDFrom(dto.VehicleID),
		kernel.UUIDFrom(dto.CustomerID),
		dto.Vehicle.Customer.Name,
		dto.Vehicle.Plate,
		dto.Vehicle.BrandModel,
	)
	if err != nil {
		return nil, err
	}

	services := make([]order.ServiceLine, 0, len(dto.Services))
	for _, s := range dto.Services {
		value, moneyErr := kernel.NewMoney(s.Value)
		if moneyErr != nil {
			return nil, moneyErr
		}
		line, lineErr := order.NewServiceLine(kernel.UUIDFrom(s.ServiceID), s.Name, value, s.EstimatedMinutes)
		if lineErr != nil {
			return nil, lineErr
		}
		services = append(services, line)
	}

	parts := make([]order.PartLine, 0, len(dto.Parts))
	for _, p := range dto.Parts {
		unitValue, moneyErr := kernel.NewMoney(p.UnitValue)
		if moneyErr != nil {
			return nil, moneyErr
		}
		line, lineErr := order.NewPartLine(kernel.UUIDFrom(p.PartID), p.Name, p.Quantity, unitValue)
		if lineErr != nil {
			return nil, lineErr
		}
		parts = append(parts, line)
	}

	budgets := make([]*order.Budget, 0, len(dto.Budgets))
	for _, b := range dto.Budgets {
		budget, budgetErr := budgetrepo.ToDomain(ctx, statuses, b)
		if budgetErr != nil {
			return nil, budgetErr
		}
		budgets = append(budgets, budget)
	}

	return order.RestoreOrder(
		kernel.UUIDFrom(dto.ID),
		vehicle,
		dto.RequestedAt.UTC(),
		status,
		utc(dto.CompletedAt),
		utc(dto.DeliveredAt),
		services,
		parts,
		budgets,
	)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
