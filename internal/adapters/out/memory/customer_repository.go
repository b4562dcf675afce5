package memory

import (
	"context"
	"fmt"

	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

var (
	_ ports.CustomerRepository = &CustomerRepository{}
	_ ports.VehicleRepository  = &VehicleRepository{}
)

func txCustomers(cs *changeSet) map[kernel.UUID]*customer.Customer { return cs.customers }
func storeCustomers(s *Store) map[kernel.UUID]*customer.Customer  { return s.customers }
func txVehicles(cs *changeSet) map[kernel.UUID]*customer.Vehicle   { return cs.vehicles }
func storeVehicles(s *Store) map[kernel.UUID]*customer.Vehicle     { return s.vehicles }

type CustomerRepository struct {
	uow *UnitOfWork
}

func (r *CustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := r.GetByDocument(ctx, c.Document()); err == nil {
		return fmt.Errorf("customer with document %s already exists", c.Document())
	}
	return r.uow.write(func(cs *changeSet) error {
		cs.customers[c.ID()] = c
		return nil
	})
}

func (r *CustomerRepository) Get(_ context.Context, id kernel.UUID) (*customer.Customer, error) {
	c, ok := lookup(r.uow, id, txCustomers, storeCustomers)
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer", id.String())
	}
	return c, nil
}

func (r *CustomerRepository) GetByDocument(_ context.Context, document string) (*customer.Customer, error) {
	for _, c := range all(r.uow, txCustomers, storeCustomers) {
		if c.Document() == document {
			return c, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("customer document", document)
}

type VehicleRepository struct {
	uow *UnitOfWork
}

func (r *VehicleRepository) Add(ctx context.Context, v *customer.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if _, err := r.GetByPlate(ctx, v.Plate()); err == nil {
		return fmt.Errorf("vehicle with plate %s already exists", v.Plate())
	}
	return r.uow.write(func(cs *changeSet) error {
		cs.vehicles[v.ID()] = v
		return nil
	})
}

func (r *VehicleRepository) GetByPlate(_ context.Context, plate string) (*customer.Vehicle, error) {
	plate = customer.NormalizePlate(plate)
	for _, v := range all(r.uow, txVehicles, storeVehicles) {
		if v.Plate() == plate {
			return v, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("vehicle plate", plate)
}
