package commands_test

import (
	"context"
	"errors"
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) List(_ context.Context, _ ports.OrderFilter) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockOrderUoW) BudgetRepository() ports.BudgetRepository {
	return m.Called().Get(0).(ports.BudgetRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockOrderLocker struct{ mock.Mock }

func (m *MockOrderLocker) Lock(ctx context.Context, id kernel.UUID) (ports.ReleaseFunc, error) {
	args := m.Called(ctx, id)
	release, _ := args.Get(0).(ports.ReleaseFunc)
	return release, args.Error(1)
}

func receivedOrder(t *testing.T) *order.Order {
	t.Helper()
	vehicle, err := order.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), "Ana Souza", "ABC1D23", "Fiat Uno")
	require.NoError(t, err)
	line, err := order.NewServiceLine(kernel.NewUUID(), "Alignment", kernel.ZeroMoney(), 30)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), vehicle, []order.ServiceLine{line}, nil, testNow)
	require.NoError(t, err)
	return o
}

func TestStartDiagnosisCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := receivedOrder(t)
	cmd, err := commands.NewStartDiagnosisCommand(o.ID())
	require.NoError(t, err)

	released := false
	locker := new(MockOrderLocker)
	locker.On("Lock", mock.Anything, o.ID()).Return(ports.ReleaseFunc(func() { released = true }), nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	got, err := commands.NewStartDiagnosisCommandHandler(factory, locker).Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Diagnosing, got.Status())
	require.True(t, released)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	locker.AssertExpectations(t)
}

func TestStartDiagnosisCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	locker := new(MockOrderLocker)
	_, err := commands.NewStartDiagnosisCommandHandler(factory, locker).
		Handle(t.Context(), commands.StartDiagnosisCommand{})
	require.ErrorIs(t, err, commands.ErrStartDiagnosisCommandIsNotConstructed)
	factory.AssertExpectations(t)
	locker.AssertExpectations(t)
}

func TestStartDiagnosisCommandHandler_Handle_LockError(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewStartDiagnosisCommand(id)

	locker := new(MockOrderLocker)
	locker.On("Lock", mock.Anything, id).Return(nil, errors.New("redis down")).Once()
	factory := new(MockOrderUoWFactory)

	_, err := commands.NewStartDiagnosisCommandHandler(factory, locker).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	factory.AssertNotCalled(t, "Create")
}

func TestStartDiagnosisCommandHandler_Handle_LockWaitIsBounded(t *testing.T) {
	id := kernel.NewUUID()
	cmd, _ := commands.NewStartDiagnosisCommand(id)

	locker := new(MockOrderLocker)
	locker.On("Lock", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), id).Return(nil, context.DeadlineExceeded).Once()
	factory := new(MockOrderUoWFactory)

	_, err := commands.NewStartDiagnosisCommandHandler(factory, locker).Handle(context.Background(), cmd)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	locker.AssertExpectations(t)
}

func TestStartDiagnosisCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewStartDiagnosisCommand(id)

	locker := new(MockOrderLocker)
	locker.On("Lock", mock.Anything, id).Return(ports.ReleaseFunc(func() {}), nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewStartDiagnosisCommandHandler(factory, locker).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	uow.AssertExpectations(t)
}

func TestStartDiagnosisCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	o := receivedOrder(t)
	cmd, _ := commands.NewStartDiagnosisCommand(o.ID())

	locker := new(MockOrderLocker)
	locker.On("Lock", mock.Anything, o.ID()).Return(ports.ReleaseFunc(func() {}), nil).Once()
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewStartDiagnosisCommandHandler(factory, locker).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartDiagnosisCommandHandler_Handle_NotFoundPassesThrough(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewStartDiagnosisCommand(id)

	locker := new(MockOrderLocker)
	locker.On("Lock", mock.Anything, id).Return(ports.ReleaseFunc(func() {}), nil).Once()
	repo := new(MockOrderRepository)
	repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewStartDiagnosisCommandHandler(factory, locker).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.NotErrorIs(t, err, errs.ErrUnavailable)
}
