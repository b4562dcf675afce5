package commands

import (
	"context"
	"errors"
	"time"

	"workshop/internal/core/domain/model/catalog"
	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/errs"
)

// CreateOrderCommandHandler opens a new order in Received. The customer must
// already exist; the vehicle is looked up by plate and registered when unknown.
type CreateOrderCommandHandler struct {
	uowFactory IntakeUoWFactory
	intake     services.OrderIntake
	now        func() time.Time
}

func NewCreateOrderCommandHandler(uowFactory IntakeUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		intake:     services.NewOrderIntake(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, gatewayError("unit of work", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := uow.CustomerRepository().GetByDocument(ctx, cmd.Document())
	if err != nil {
		return nil, gatewayError("customer repository", err)
	}

	vehicle, err := h.vehicle(ctx, uow, owner, cmd.Vehicle())
	if err != nil {
		return nil, err
	}

	serviceRepo := uow.ServiceRepository()
	svcs := make([]*catalog.Service, 0, len(cmd.ServiceIDs()))
	for _, id := range cmd.ServiceIDs() {
		s, getErr := serviceRepo.Get(ctx, id)
		if getErr != nil {
			return nil, gatewayError("service repository", getErr)
		}
		svcs = append(svcs, s)
	}

	partRepo := uow.PartRepository()
	parts := make([]services.PartRequest, 0, len(cmd.Parts()))
	for _, p := range cmd.Parts() {
		part, getErr := partRepo.Get(ctx, p.PartID)
		if getErr != nil {
			return nil, gatewayError("part repository", getErr)
		}
		parts = append(parts, services.PartRequest{Part: part, Quantity: p.Quantity})
	}

	o, err := h.intake.Open(cmd.OrderID(), owner, vehicle, svcs, parts, h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, gatewayError("order repository", err)
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, gatewayError("unit of work", err)
	}
	return o, nil
}

func (h CreateOrderCommandHandler) vehicle(
	ctx context.Context,
	uow IntakeUoW,
	owner *customer.Customer,
	details customer.VehicleDetails,
) (*customer.Vehicle, error) {
	repo := uow.VehicleRepository()
	v, err := repo.GetByPlate(ctx, customer.NormalizePlate(details.Plate))
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, gatewayError("vehicle repository", err)
	}

	v, err = owner.RegisterVehicle(details)
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, v); err != nil {
		return nil, gatewayError("vehicle repository", err)
	}
	return v, nil
}
