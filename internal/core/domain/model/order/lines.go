package order

import (
	"errors"
	"math"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrServiceLineIsNotConstructed = errors.New("ServiceLine must be created via NewServiceLine")
	ErrPartLineIsNotConstructed    = errors.New("PartLine must be created via NewPartLine")
)

// ServiceLine is a catalog service applied to an order, priced at the moment it was added.
type ServiceLine struct {
	serviceID        kernel.UUID
	name             string
	value            kernel.Money
	estimatedMinutes int
	guard            guard.ConstructorGuard
}

func NewServiceLine(serviceID kernel.UUID, name string, value kernel.Money, estimatedMinutes int) (ServiceLine, error) {
	var minutesErr error
	if estimatedMinutes < 0 {
		minutesErr = errs.NewValueIsOutOfRangeError("estimated minutes", estimatedMinutes, 0, math.MaxInt32)
	}
	if err := errors.Join(serviceID.Validate(), value.Validate(), minutesErr); err != nil {
		return ServiceLine{}, err
	}
	return ServiceLine{
		serviceID:        serviceID,
		name:             name,
		value:            value,
		estimatedMinutes: estimatedMinutes,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (l ServiceLine) Validate() error {
	return l.guard.Validate(ErrServiceLineIsNotConstructed)
}

func (l ServiceLine) ServiceID() kernel.UUID { return l.serviceID }
func (l ServiceLine) Name() string           { return l.name }
func (l ServiceLine) Value() kernel.Money    { return l.value }
func (l ServiceLine) EstimatedMinutes() int  { return l.estimatedMinutes }

func (l ServiceLine) withValue(value kernel.Money) ServiceLine {
	l.value = value
	return l
}

// PartLine is a catalog part applied to an order: quantity times the unit value
// captured when it was added.
type PartLine struct {
	partID    kernel.UUID
	name      string
	quantity  int
	unitValue kernel.Money
	guard     guard.ConstructorGuard
}

func NewPartLine(partID kernel.UUID, name string, quantity int, unitValue kernel.Money) (PartLine, error) {
	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	if err := errors.Join(partID.Validate(), unitValue.Validate(), quantityErr); err != nil {
		return PartLine{}, err
	}
	return PartLine{
		partID:    partID,
		name:      name,
		quantity:  quantity,
		unitValue: unitValue,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (l PartLine) Validate() error {
	return l.guard.Validate(ErrPartLineIsNotConstructed)
}

func (l PartLine) PartID() kernel.UUID     { return l.partID }
func (l PartLine) Name() string            { return l.name }
func (l PartLine) Quantity() int           { return l.quantity }
func (l PartLine) UnitValue() kernel.Money { return l.unitValue }

// Total is quantity times unit value.
func (l PartLine) Total() kernel.Money {
	return l.unitValue.Times(l.quantity)
}

func (l PartLine) withUnitValue(value kernel.Money) PartLine {
	l.unitValue = value
	return l
}
