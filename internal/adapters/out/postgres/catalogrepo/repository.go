package catalogrepo

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/catalog"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
)

var (
	_ ports.ServiceRepository = &GormServiceRepository{}
	_ ports.PartRepository    = &GormPartRepository{}
)

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) Add(ctx context.Context, service *catalog.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}
	dto := serviceFromDomain(service)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormServiceRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto ServiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service", id.String())
		}
		return nil, err
	}
	return serviceToDomain(dto)
}

type GormPartRepository struct {
	db *gorm.DB
}

func NewGormPartRepository(db *gorm.DB) *GormPartRepository {
	return &GormPartRepository{db: db}
}

func (r *GormPartRepository) Add(ctx context.Context, part *catalog.Part) error {
	if err := part.Validate(); err != nil {
		return err
	}
	dto := partFromDomain(part)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormPartRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Part, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var dto PartDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("part", id.String())
		}
		return nil, err
	}
	return partToDomain(dto)
}
