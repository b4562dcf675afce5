// Package catalogrepo persists the service and part catalog and the status
// lookup tables.
package catalogrepo

import (
	"workshop/internal/core/domain/model/catalog"
	"workshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Price            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EstimatedMinutes int             `gorm:"type:int;not null"`
}

func (ServiceDTO) TableName() string {
	return "services"
}

type PartDTO struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name  string          `gorm:"type:varchar(255);not null"`
	Code  string          `gorm:"type:varchar(64);uniqueIndex"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock int             `gorm:"type:int;not null"`
}

func (PartDTO) TableName() string {
	return "parts"
}

func serviceFromDomain(s *catalog.Service) ServiceDTO {
	return ServiceDTO{
		ID:               s.ID().Bytes(),
		Name:             s.Name(),
		Price:            s.Price().Decimal(),
		EstimatedMinutes: s.EstimatedMinutes(),
	}
}

func serviceToDomain(dto ServiceDTO) (*catalog.Service, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreService(kernel.UUIDFrom(dto.ID), dto.Name, price, dto.EstimatedMinutes)
}

func partFromDomain(p *catalog.Part) PartDTO {
	return PartDTO{
		ID:    p.ID().Bytes(),
		Name:  p.Name(),
		Code:  p.Code(),
		Price: p.Price().Decimal(),
		Stock: p.Stock(),
	}
}

func partToDomain(dto PartDTO) (*catalog.Part, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return catalog.RestorePart(kernel.UUIDFrom(dto.ID), dto.Name, dto.Code, price, dto.Stock)
}
