package memory

import (
	"context"
	"fmt"

	"workshop/internal/core/domain/model/catalog"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

var (
	_ ports.ServiceRepository = &ServiceRepository{}
	_ ports.PartRepository    = &PartRepository{}
)

type ServiceRepository struct {
	uow *UnitOfWork
}

func (r *ServiceRepository) Add(_ context.Context, service *catalog.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}
	if _, ok := lookup(r.uow, service.ID(), txServices, storeServices); ok {
		return fmt.Errorf("service %s already exists", service.ID())
	}
	return r.uow.write(func(cs *changeSet) error {
		cs.services[service.ID()] = service
		return nil
	})
}

func (r *ServiceRepository) Get(_ context.Context, id kernel.UUID) (*catalog.Service, error) {
	s, ok := lookup(r.uow, id, txServices, storeServices)
	if !ok {
		return nil, errs.NewObjectNotFoundError("service", id.String())
	}
	return s, nil
}

type PartRepository struct {
	uow *UnitOfWork
}

func (r *PartRepository) Add(_ context.Context, part *catalog.Part) error {
	if err := part.Validate(); err != nil {
		return err
	}
	if _, ok := lookup(r.uow, part.ID(), txParts, storeParts); ok {
		return fmt.Errorf("part %s already exists", part.ID())
	}
	return r.uow.write(func(cs *changeSet) error {
		cs.parts[part.ID()] = part
		return nil
	})
}

func (r *PartRepository) Get(_ context.Context, id kernel.UUID) (*catalog.Part, error) {
	p, ok := lookup(r.uow, id, txParts, storeParts)
	if !ok {
		return nil, errs.NewObjectNotFoundError("part", id.String())
	}
	return p, nil
}

func txServices(cs *changeSet) map[kernel.UUID]*catalog.Service { return cs.services }
func storeServices(s *Store) map[kernel.UUID]*catalog.Service  { return s.services }
func txParts(cs *changeSet) map[kernel.UUID]*catalog.Part       { return cs.parts }
func storeParts(s *Store) map[kernel.UUID]*catalog.Part         { return s.parts }

// lookup finds an immutable entity by id in staged writes, then in the store.
func lookup[T any](
	uow *UnitOfWork,
	id kernel.UUID,
	staged func(*changeSet) map[kernel.UUID]T,
	stored func(*Store) map[kernel.UUID]T,
) (T, bool) {
	if uow.tx != nil {
		if v, ok := staged(uow.tx)[id]; ok {
			return v, true
		}
	}
	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	v, ok := stored(uow.store)[id]
	return v, ok
}

// all merges staged entities over stored ones.
func all[T any](
	uow *UnitOfWork,
	staged func(*changeSet) map[kernel.UUID]T,
	stored func(*Store) map[kernel.UUID]T,
) []T {
	uow.store.mu.RLock()
	merged := make(map[kernel.UUID]T)
	for id, v := range stored(uow.store) {
		merged[id] = v
	}
	uow.store.mu.RUnlock()
	if uow.tx != nil {
		for id, v := range staged(uow.tx) {
			merged[id] = v
		}
	}
	out := make([]T, 0, len(merged))
	for _, v := range merged {
		out = append(out, v)
	}
	return out
}
