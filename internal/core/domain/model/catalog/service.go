package catalog

import (
	"errors"
	"math"
	"strings"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrServiceIsNotConstructed = errors.New("Service must be created via NewService or RestoreService")
)

// Service is a labour item offered by the workshop at its current price.
type Service struct {
	id               kernel.UUID
	name             string
	price            kernel.Money
	estimatedMinutes int
	guard            guard.ConstructorGuard
}

func NewService(name string, price kernel.Money, estimatedMinutes int) (*Service, error) {
	return RestoreService(kernel.NewUUID(), name, price, estimatedMinutes)
}

func RestoreService(id kernel.UUID, name string, price kernel.Money, estimatedMinutes int) (*Service, error) {
	var nameErr, minutesErr error
	if strings.TrimSpace(name) == "" {
		nameErr = ErrNameIsRequired
	}
	if estimatedMinutes < 0 {
		minutesErr = errs.NewValueIsOutOfRangeError("estimated minutes", estimatedMinutes, 0, math.MaxInt32)
	}
	if err := errors.Join(id.Validate(), price.Validate(), nameErr, minutesErr); err != nil {
		return nil, err
	}
	return &Service{
		id:               id,
		name:             name,
		price:            price,
		estimatedMinutes: estimatedMinutes,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (s *Service) Validate() error {
	return s.guard.Validate(ErrServiceIsNotConstructed)
}

func (s *Service) ID() kernel.UUID       { return s.id }
func (s *Service) Name() string          { return s.name }
func (s *Service) Price() kernel.Money   { return s.price }
func (s *Service) EstimatedMinutes() int { return s.estimatedMinutes }
