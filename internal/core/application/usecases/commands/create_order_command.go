package commands

import (
	"errors"
	"strings"

	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New("CreateOrderCommand must be created via NewCreateOrderCommand")
	ErrDocumentIsRequired                 = errs.NewValueIsRequiredError("customer document")
	ErrServiceIDsAreRequired              = errs.NewValueIsRequiredError("service ids")
)

// PartQuantity asks for Quantity units of a catalog part.
type PartQuantity struct {
	PartID   kernel.UUID
	Quantity int
}

// CreateOrderCommand opens a service order for the customer identified by
// document. An unknown plate is registered for that customer on the fly.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "12345678900",
//	    customer.VehicleDetails{Plate: "ABC1D23", BrandModel: "Fiat Uno", Year: 2015},
//	    []kernel.UUID{oilChangeID}, nil)
type CreateOrderCommand struct {
	orderID    kernel.UUID
	document   string
	vehicle    customer.VehicleDetails
	serviceIDs []kernel.UUID
	parts      []PartQuantity
	guard      guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	document string,
	vehicle customer.VehicleDetails,
	serviceIDs []kernel.UUID,
	parts []PartQuantity,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if strings.TrimSpace(document) == "" {
		return CreateOrderCommand{}, ErrDocumentIsRequired
	}
	if strings.TrimSpace(vehicle.Plate) == "" {
		return CreateOrderCommand{}, customer.ErrPlateIsRequired
	}
	if len(serviceIDs) == 0 {
		return CreateOrderCommand{}, ErrServiceIDsAreRequired
	}
	for _, id := range serviceIDs {
		if err := id.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}
	for _, p := range parts {
		if err := p.PartID.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
		if p.Quantity <= 0 {
			return CreateOrderCommand{}, errs.NewValueIsOutOfRangeError("quantity", p.Quantity, 1, "unbounded")
		}
	}

	return CreateOrderCommand{
		orderID:    orderID,
		document:   strings.TrimSpace(document),
		vehicle:    vehicle,
		serviceIDs: append([]kernel.UUID(nil), serviceIDs...),
		parts:      append([]PartQuantity(nil), parts...),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID             { return c.orderID }
func (c CreateOrderCommand) Document() string                 { return c.document }
func (c CreateOrderCommand) Vehicle() customer.VehicleDetails { return c.vehicle }
func (c CreateOrderCommand) ServiceIDs() []kernel.UUID        { return c.serviceIDs }
func (c CreateOrderCommand) Parts() []PartQuantity            { return c.parts }
