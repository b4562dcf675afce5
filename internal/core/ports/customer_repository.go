package ports

import (
	"context"

	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"
)

type CustomerRepository interface {
	Add(ctx context.Context, c *customer.Customer) error
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	// GetByDocument returns errs.ObjectNotFoundError when no customer has the document.
	GetByDocument(ctx context.Context, document string) (*customer.Customer, error)
}

type VehicleRepository interface {
	Add(ctx context.Context, v *customer.Vehicle) error
	// GetByPlate returns errs.ObjectNotFoundError when the plate is unknown.
	GetByPlate(ctx context.Context, plate string) (*customer.Vehicle, error)
}
