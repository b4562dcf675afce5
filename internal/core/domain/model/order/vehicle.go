package order

import (
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle")

// Vehicle is the order's view of the serviced vehicle and its owner.
type Vehicle struct {
	id           kernel.UUID
	customerID   kernel.UUID
	customerName string
	plate        string
	model        string
	guard        guard.ConstructorGuard
}

func NewVehicle(id kernel.UUID, customerID kernel.UUID, customerName string, plate string, model string) (Vehicle, error) {
	var plateErr error
	if plate == "" {
		plateErr = errs.NewValueIsRequiredError("plate")
	}
	if err := errors.Join(id.Validate(), customerID.Validate(), plateErr); err != nil {
		return Vehicle{}, err
	}
	return Vehicle{
		id:           id,
		customerID:   customerID,
		customerName: customerName,
		plate:        plate,
		model:        model,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (v Vehicle) Validate() error {
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v Vehicle) ID() kernel.UUID         { return v.id }
func (v Vehicle) CustomerID() kernel.UUID { return v.customerID }
func (v Vehicle) CustomerName() string    { return v.customerName }
func (v Vehicle) Plate() string           { return v.plate }
func (v Vehicle) Model() string           { return v.model }
