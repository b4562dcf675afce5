package ports

import (
	"context"

	"workshop/internal/core/domain/model/catalog"
	"workshop/internal/core/domain/model/kernel"
)

type ServiceRepository interface {
	Add(ctx context.Context, service *catalog.Service) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error)
}

type PartRepository interface {
	Add(ctx context.Context, part *catalog.Part) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.Part, error)
}
