package customer

import (
	"errors"
	"fmt"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrDocumentIsRequired       = errs.NewValueIsRequiredError("document")
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer")
)

// Customer owns vehicles brought to the workshop. Customers are identified at
// the counter by their document (CPF or CNPJ digits).
type Customer struct {
	id       kernel.UUID
	name     string
	document string
	email    string
	phone    string
	guard    guard.ConstructorGuard
}

func NewCustomer(name string, document string, email string, phone string) (*Customer, error) {
	return RestoreCustomer(kernel.NewUUID(), name, document, email, phone)
}

func RestoreCustomer(id kernel.UUID, name string, document string, email string, phone string) (*Customer, error) {
	c := &Customer{
		email: email,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}
	if err := errors.Join(c.setID(id), c.setName(name), c.setDocument(document)); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Customer) setDocument(document string) error {
	if strings.TrimSpace(document) == "" {
		return ErrDocumentIsRequired
	}
	c.document = document
	return nil
}

func (c *Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID  { return c.id }
func (c *Customer) Name() string     { return c.name }
func (c *Customer) Document() string { return c.document }
func (c *Customer) Email() string    { return c.email }
func (c *Customer) Phone() string    { return c.phone }

// RegisterVehicle creates a vehicle owned by this customer.
func (c *Customer) RegisterVehicle(details VehicleDetails) (*Vehicle, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return newVehicle(kernel.NewUUID(), c.id, details)
}

// Owns fails when the vehicle is registered to somebody else.
func (c *Customer) Owns(v *Vehicle) error {
	if err := errors.Join(c.Validate(), v.Validate()); err != nil {
		return err
	}
	if !v.CustomerID().IsEqual(c.id) {
		return errs.NewValueIsInvalidErrorWithCause("vehicle",
			fmt.Errorf("vehicle %s belongs to another customer", v.Plate()))
	}
	return nil
}
