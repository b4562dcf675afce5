package customer

import (
	"errors"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

const firstVehicleYear = 1900

var (
	ErrPlateIsRequired         = errs.NewValueIsRequiredError("plate")
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via Customer.RegisterVehicle or RestoreVehicle")
)

// VehicleDetails are the descriptive fields supplied when a vehicle is first seen.
type VehicleDetails struct {
	Plate      string
	BrandModel string
	Year       int
	Color      string
	FuelType   string
}

// Vehicle is identified by its plate and belongs to exactly one customer.
type Vehicle struct {
	id         kernel.UUID
	customerID kernel.UUID
	details    VehicleDetails
	guard      guard.ConstructorGuard
}

func newVehicle(id kernel.UUID, customerID kernel.UUID, details VehicleDetails) (*Vehicle, error) {
	details.Plate = NormalizePlate(details.Plate)
	var plateErr, yearErr error
	if details.Plate == "" {
		plateErr = ErrPlateIsRequired
	}
	if details.Year != 0 {
		maxYear := time.Now().Year() + 1
		if details.Year < firstVehicleYear || details.Year > maxYear {
			yearErr = errs.NewValueIsOutOfRangeError("year", details.Year, firstVehicleYear, maxYear)
		}
	}
	if err := errors.Join(id.Validate(), customerID.Validate(), plateErr, yearErr); err != nil {
		return nil, err
	}
	return &Vehicle{
		id:         id,
		customerID: customerID,
		details:    details,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func RestoreVehicle(id kernel.UUID, customerID kernel.UUID, details VehicleDetails) (*Vehicle, error) {
	return newVehicle(id, customerID, details)
}

// NormalizePlate upper-cases a plate and strips separators, so "abc-1d23" and "ABC1D23" match.
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	return strings.NewReplacer("-", "", " ", "").Replace(plate)
}

func (v *Vehicle) Validate() error {
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID         { return v.id }
func (v *Vehicle) CustomerID() kernel.UUID { return v.customerID }
func (v *Vehicle) Plate() string           { return v.details.Plate }
func (v *Vehicle) BrandModel() string      { return v.details.BrandModel }
func (v *Vehicle) Details() VehicleDetails { return v.details }
