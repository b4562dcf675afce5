package customerrepo

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
)

var (
	_ ports.CustomerRepository = &GormCustomerRepository{}
	_ ports.VehicleRepository  = &GormVehicleRepository{}
)

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dto := customerFromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "customer", id.String(), "id = ?", id.Bytes())
}

func (r *GormCustomerRepository) GetByDocument(ctx context.Context, document string) (*customer.Customer, error) {
	return r.first(ctx, "customer document", document, "document = ?", document)
}

func (r *GormCustomerRepository) first(ctx context.Context, param string, key string, query string, arg any) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return customerToDomain(dto)
}

type GormVehicleRepository struct {
	db *gorm.DB
}

func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

func (r *GormVehicleRepository) Add(ctx context.Context, v *customer.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	dto := vehicleFromDomain(v)
	return r.db.WithContext(ctx).Omit("Customer").Create(&dto).Error
}

func (r *GormVehicleRepository) GetByPlate(ctx context.Context, plate string) (*customer.Vehicle, error) {
	plate = customer.NormalizePlate(plate)
	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "plate = ?", plate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle plate", plate)
		}
		return nil, err
	}
	return vehicleToDomain(dto)
}
