package commands_test

import (
	"context"
	"testing"
	"time"

	"workshop/internal/adapters/out/locks/memlock"
	"workshop/internal/adapters/out/memory"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/catalog"
	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

type orderUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.f.Create() }

type intakeUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (f intakeUoWFactory) Create() commands.IntakeUoW { return f.f.Create() }

type outboxUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (f outboxUoWFactory) Create() commands.OutboxUoW { return f.f.Create() }

// workshop wires every handler to one in-memory store and seeds a customer,
// a service and a part.
type workshop struct {
	store    *memory.Store
	factory  *memory.UnitOfWorkFactory
	locker   *memlock.Locker
	customer *customer.Customer
	service  *catalog.Service
	part     *catalog.Part
}

func newWorkshop(t *testing.T) *workshop {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	uow := factory.Create()

	c, err := customer.NewCustomer("Ana Souza", "12345678900", "ana@example.com", "+55 11 99999-0000")
	require.NoError(t, err)
	require.NoError(t, uow.CustomerRepository().Add(ctx, c))

	price, err := kernel.MoneyFromString("150.00")
	require.NoError(t, err)
	s, err := catalog.NewService("Oil change", price, 60)
	require.NoError(t, err)
	require.NoError(t, uow.ServiceRepository().Add(ctx, s))

	partPrice, err := kernel.MoneyFromString("35.50")
	require.NoError(t, err)
	p, err := catalog.NewPart("Oil filter", "OF-100", partPrice, 10)
	require.NoError(t, err)
	require.NoError(t, uow.PartRepository().Add(ctx, p))

	return &workshop{
		store:    store,
		factory:  factory,
		locker:   memlock.New(),
		customer: c,
		service:  s,
		part:     p,
	}
}

func (w *workshop) orders() orderUoWFactory { return orderUoWFactory{w.factory} }

func (w *workshop) createOrder(t *testing.T) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, w.customer.Document(),
		customer.VehicleDetails{Plate: "abc-1d23", BrandModel: "Fiat Uno", Year: 2015},
		[]kernel.UUID{w.service.ID()},
		[]commands.PartQuantity{{PartID: w.part.ID(), Quantity: 2}},
	)
	require.NoError(t, err)
	_, err = commands.NewCreateOrderCommandHandler(intakeUoWFactory{w.factory}).Handle(context.Background(), cmd)
	require.NoError(t, err)
	return id
}

func (w *workshop) startDiagnosis(t *testing.T, id kernel.UUID) {
	t.Helper()
	cmd, err := commands.NewStartDiagnosisCommand(id)
	require.NoError(t, err)
	_, err = commands.NewStartDiagnosisCommandHandler(w.orders(), w.locker).Handle(context.Background(), cmd)
	require.NoError(t, err)
}

func (w *workshop) finishDiagnosis(t *testing.T, id kernel.UUID) kernel.UUID {
	t.Helper()
	cmd, err := commands.NewFinishDiagnosisCommand(id)
	require.NoError(t, err)
	o, err := commands.NewFinishDiagnosisCommandHandler(w.orders(), w.locker).Handle(context.Background(), cmd)
	require.NoError(t, err)
	return o.ActiveBudget().ID()
}

func (w *workshop) sendBudget(t *testing.T, budgetID kernel.UUID) {
	t.Helper()
	cmd, err := commands.NewSendBudgetForApprovalCommand(budgetID, "")
	require.NoError(t, err)
	_, err = commands.NewSendBudgetForApprovalCommandHandler(w.orders(), w.locker).Handle(context.Background(), cmd)
	require.NoError(t, err)
}

func (w *workshop) vehicleDetails() customer.VehicleDetails {
	return customer.VehicleDetails{Plate: "XYZ9A87", BrandModel: "VW Gol", Year: 2012}
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
