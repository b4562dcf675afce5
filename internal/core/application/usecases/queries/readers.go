// Package queries contains the read side: order and budget views and the
// turnaround analytics. Queries read through repositories without a
// transaction and never change state.
package queries

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

type (
	Reader interface {
		OrderRepository() ports.OrderRepository
		BudgetRepository() ports.BudgetRepository
	}

	ReaderFactory interface {
		Create() Reader
	}
)

type ServiceLineView struct {
	ServiceID        kernel.UUID
	Name             string
	Value            kernel.Money
	EstimatedMinutes int
}

type PartLineView struct {
	PartID    kernel.UUID
	Name      string
	Quantity  int
	UnitValue kernel.Money
	Total     kernel.Money
}

type BudgetView struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	Status          order.BudgetStatus
	CreatedAt       time.Time
	RejectionReason string
	// Value is the owning order's current total.
	Value        kernel.Money
	OrderStatus  order.Status
	CustomerName string
	Plate        string
}

type OrderView struct {
	ID            kernel.UUID
	Status        order.Status
	CustomerID    kernel.UUID
	CustomerName  string
	VehicleID     kernel.UUID
	Plate         string
	Model         string
	RequestedAt   time.Time
	CompletedAt   *time.Time
	DeliveredAt   *time.Time
	Services      []ServiceLineView
	Parts         []PartLineView
	ServicesTotal kernel.Money
	PartsTotal    kernel.Money
	Total         kernel.Money
	Budgets       []BudgetView
}

func NewOrderView(o *order.Order) OrderView {
	v := OrderView{
		ID:            o.ID(),
		Status:        o.Status(),
		CustomerID:    o.Vehicle().CustomerID(),
		CustomerName:  o.Vehicle().CustomerName(),
		VehicleID:     o.Vehicle().ID(),
		Plate:         o.Vehicle().Plate(),
		Model:         o.Vehicle().Model(),
		RequestedAt:   o.RequestedAt(),
		CompletedAt:   o.CompletedAt(),
		DeliveredAt:   o.DeliveredAt(),
		Services:      make([]ServiceLineView, 0, len(o.Services())),
		Parts:         make([]PartLineView, 0, len(o.Parts())),
		ServicesTotal: o.ServicesTotal(),
		PartsTotal:    o.PartsTotal(),
		Total:         o.Total(),
		Budgets:       make([]BudgetView, 0, len(o.Budgets())),
	}
	for _, s := range o.Services() {
		v.Services = append(v.Services, ServiceLineView{
			ServiceID:        s.ServiceID(),
			Name:             s.Name(),
			Value:            s.Value(),
			EstimatedMinutes: s.EstimatedMinutes(),
		})
	}
	for _, p := range o.Parts() {
		v.Parts = append(v.Parts, PartLineView{
			PartID:    p.PartID(),
			Name:      p.Name(),
			Quantity:  p.Quantity(),
			UnitValue: p.UnitValue(),
			Total:     p.Total(),
		})
	}
	for _, b := range o.Budgets() {
		v.Budgets = append(v.Budgets, NewBudgetView(b, o))
	}
	return v
}

func NewBudgetView(b *order.Budget, owner *order.Order) BudgetView {
	return BudgetView{
		ID:              b.ID(),
		OrderID:         b.OrderID(),
		Status:          b.Status(),
		CreatedAt:       b.CreatedAt(),
		RejectionReason: b.RejectionReason(),
		Value:           owner.Total(),
		OrderStatus:     owner.Status(),
		CustomerName:    owner.Vehicle().CustomerName(),
		Plate:           owner.Vehicle().Plate(),
	}
}

// readError passes not-found through and reports anything else as unavailable.
func readError(resource string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrUnavailable) {
		return err
	}
	return errs.NewUnavailableError(resource, err)
}
