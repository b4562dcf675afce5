package services

import (
	"time"

	"workshop/internal/core/domain/model/catalog"
	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
)

// PartRequest is a catalog part and the number of units wanted.
type PartRequest struct {
	Part     *catalog.Part
	Quantity int
}

// OrderIntake opens a service order for a customer's vehicle from catalog items.
//
// Business rules:
//   - the vehicle must belong to the customer
//   - every requested part quantity must be covered by stock
//   - service and part lines are priced at the current catalog price
type OrderIntake struct{}

func NewOrderIntake() OrderIntake {
	return OrderIntake{}
}

func (OrderIntake) Open(
	orderID kernel.UUID,
	owner *customer.Customer,
	vehicle *customer.Vehicle,
	services []*catalog.Service,
	parts []PartRequest,
	requestedAt time.Time,
) (*order.Order, error) {
	if err := owner.Owns(vehicle); err != nil {
		return nil, err
	}

	serviceLines := make([]order.ServiceLine, 0, len(services))
	for _, s := range services {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		line, err := order.NewServiceLine(s.ID(), s.Name(), s.Price(), s.EstimatedMinutes())
		if err != nil {
			return nil, err
		}
		serviceLines = append(serviceLines, line)
	}

	partLines := make([]order.PartLine, 0, len(parts))
	for _, req := range parts {
		if err := req.Part.EnsureAvailable(req.Quantity); err != nil {
			return nil, err
		}
		line, err := order.NewPartLine(req.Part.ID(), req.Part.Name(), req.Quantity, req.Part.Price())
		if err != nil {
			return nil, err
		}
		partLines = append(partLines, line)
	}

	ref, err := order.NewVehicle(vehicle.ID(), owner.ID(), owner.Name(), vehicle.Plate(), vehicle.BrandModel())
	if err != nil {
		return nil, err
	}

	return order.NewOrder(orderID, ref, serviceLines, partLines, requestedAt)
}
