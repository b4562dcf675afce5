// Package customerrepo persists customers and their vehicles.
package customerrepo

import (
	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CustomerDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Document string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Email    string    `gorm:"type:varchar(255)"`
	Phone    string    `gorm:"type:varchar(32)"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

// VehicleDTO is also preloaded by orderrepo for the order's vehicle snapshot.
type VehicleDTO struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Customer   CustomerDTO `gorm:"foreignKey:CustomerID"`
	Plate      string      `gorm:"type:varchar(16);not null;uniqueIndex"`
	BrandModel string      `gorm:"type:varchar(255)"`
	Year       int         `gorm:"type:int"`
	Color      string      `gorm:"type:varchar(64)"`
	FuelType   string      `gorm:"type:varchar(64)"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func customerFromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:       c.ID().Bytes(),
		Name:     c.Name(),
		Document: c.Document(),
		Email:    c.Email(),
		Phone:    c.Phone(),
	}
}

func customerToDomain(dto CustomerDTO) (*customer.Customer, error) {
	return customer.RestoreCustomer(kernel.UUIDFrom(dto.ID), dto.Name, dto.Document, dto.Email, dto.Phone)
}

func vehicleFromDomain(v *customer.Vehicle) VehicleDTO {
	d := v.Details()
	return VehicleDTO{
		ID:         v.ID().Bytes(),
		CustomerID: v.CustomerID().Bytes(),
		Plate:      d.Plate,
		BrandModel: d.BrandModel,
		Year:       d.Year,
		Color:      d.Color,
		FuelType:   d.FuelType,
	}
}

func vehicleToDomain(dto VehicleDTO) (*customer.Vehicle, error) {
	return customer.RestoreVehicle(kernel.UUIDFrom(dto.ID), kernel.UUIDFrom(dto.CustomerID), customer.VehicleDetails{
		Plate:      dto.Plate,
		BrandModel: dto.BrandModel,
		Year:       dto.Year,
		Color:      dto.Color,
		FuelType:   dto.FuelType,
	})
}
