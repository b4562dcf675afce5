package order_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requestedAt = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newVehicle(t *testing.T) order.Vehicle {
	t.Helper()
	v, err := order.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), "Maria Souza", "TESTE00", "Fiat Uno")
	require.NoError(t, err)
	return v
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	service, err := order.NewServiceLine(kernel.NewUUID(), "Oil change", money(t, "100"), 60)
	require.NoError(t, err)
	part, err := order.NewPartLine(kernel.NewUUID(), "Oil filter", 2, money(t, "25.50"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), newVehicle(t), []order.ServiceLine{service}, []order.PartLine{part}, requestedAt)
	require.NoError(t, err)
	return o
}

func at(hours int) time.Time {
	return requestedAt.Add(time.Duration(hours) * time.Hour)
}

// toAwaitingApproval drives a fresh order to AwaitingApproval and returns the pending budget.
func toAwaitingApproval(t *testing.T, o *order.Order) *order.Budget {
	t.Helper()
	require.NoError(t, o.StartDiagnosis(at(1)))
	require.NoError(t, o.FinishDiagnosis(at(2)))
	budget := o.ActiveBudget()
	require.NoError(t, o.SendBudgetForApproval(budget.ID(), "", at(3)))
	return budget
}

func TestNewOrder(t *testing.T) {
	t.Run("starts received without budget", func(t *testing.T) {
		o := newOrder(t)

		assert.Equal(t, order.Received, o.Status())
		assert.Nil(t, o.ActiveBudget())
		assert.Nil(t, o.CompletedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Equal(t, "151.00", o.Total().String())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("requires at least one service", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), newVehicle(t), nil, nil, requestedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects duplicated services", func(t *testing.T) {
		id := kernel.NewUUID()
		line, err := order.NewServiceLine(id, "Alignment", money(t, "80"), 30)
		require.NoError(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), newVehicle(t), []order.ServiceLine{line, line}, nil, requestedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects zero values", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, order.Vehicle{}, []order.ServiceLine{{}}, nil, time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, order.ErrVehicleIsNotConstructed)
	})
}

func TestNewPartLine_RequiresPositiveQuantity(t *testing.T) {
	_, err := order.NewPartLine(kernel.NewUUID(), "Spark plug", 0, money(t, "10"))

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestOrder_HappyPath(t *testing.T) {
	// Given
	o := newOrder(t)

	// When / Then
	require.NoError(t, o.StartDiagnosis(at(1)))
	assert.Equal(t, order.Diagnosing, o.Status())
	require.Len(t, o.Budgets(), 1)
	budget := o.ActiveBudget()
	assert.Equal(t, order.BudgetCreated, budget.Status())
	assert.True(t, budget.OrderID().IsEqual(o.ID()))

	require.NoError(t, o.FinishDiagnosis(at(2)))
	assert.Equal(t, order.Budgeting, o.Status())
	assert.Equal(t, order.BudgetInElaboration, budget.Status())

	require.NoError(t, o.SendBudgetForApproval(budget.ID(), "call before noon", at(3)))
	assert.Equal(t, order.AwaitingApproval, o.Status())
	assert.Equal(t, order.BudgetPendingApproval, budget.Status())

	require.NoError(t, o.ResolveBudget(budget.ID(), order.Resolution{Approved: true}, at(4)))
	assert.Equal(t, order.Executing, o.Status())
	assert.Equal(t, order.BudgetApproved, budget.Status())
	require.NoError(t, o.EnsureExecuting())

	require.NoError(t, o.FinishService(at(10)))
	assert.Equal(t, order.Finalized, o.Status())
	require.NotNil(t, o.CompletedAt())
	assert.Equal(t, at(10), *o.CompletedAt())
	assert.Nil(t, o.DeliveredAt())

	require.NoError(t, o.DeliverVehicle(at(12)))
	assert.Equal(t, order.Delivered, o.Status())
	require.NotNil(t, o.DeliveredAt())
	assert.Equal(t, at(12), *o.DeliveredAt())

	events := o.DomainEvents()
	require.Len(t, events, 6)
	assert.Equal(t, order.Received, events[0].From)
	assert.Equal(t, order.Diagnosing, events[0].To)
	require.Len(t, events[0].Budgets, 1)
	assert.Equal(t, order.BudgetUnknown, events[0].Budgets[0].From)
	assert.Equal(t, order.BudgetCreated, events[0].Budgets[0].To)
	assert.Equal(t, "call before noon", events[2].Note)
	assert.Empty(t, events[4].Budgets)

	o.ClearDomainEvents()
	assert.Empty(t, o.DomainEvents())
}

func TestOrder_FinishDiagnosis(t *testing.T) {
	t.Run("requires diagnosing", func(t *testing.T) {
		o := newOrder(t)

		err := o.FinishDiagnosis(at(1))

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Received, o.Status())
	})

	t.Run("requires the active budget to be created", func(t *testing.T) {
		service, err := order.NewServiceLine(kernel.NewUUID(), "Brakes", money(t, "100"), 90)
		require.NoError(t, err)
		id := kernel.NewUUID()
		budget, err := order.RestoreBudget(kernel.NewUUID(), id, at(1), order.BudgetInElaboration, "")
		require.NoError(t, err)
		o, err := order.RestoreOrder(id, newVehicle(t), requestedAt, order.Diagnosing, nil, nil,
			[]order.ServiceLine{service}, nil, []*order.Budget{budget})
		require.NoError(t, err)

		err = o.FinishDiagnosis(at(3))

		var stateErr *errs.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "budget", stateErr.Entity)
		assert.Equal(t, order.Diagnosing, o.Status())
		assert.Equal(t, order.BudgetInElaboration, budget.Status())
	})

	t.Run("requires a budget", func(t *testing.T) {
		service, err := order.NewServiceLine(kernel.NewUUID(), "Brakes", money(t, "100"), 90)
		require.NoError(t, err)
		o, err := order.RestoreOrder(kernel.NewUUID(), newVehicle(t), requestedAt, order.Diagnosing, nil, nil,
			[]order.ServiceLine{service}, nil, nil)
		require.NoError(t, err)

		require.ErrorIs(t, o.FinishDiagnosis(at(3)), errs.ErrInvalidState)
	})
}

func TestOrder_SendBudgetForApproval(t *testing.T) {
	t.Run("unknown budget", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.StartDiagnosis(at(1)))
		require.NoError(t, o.FinishDiagnosis(at(2)))

		err := o.SendBudgetForApproval(kernel.NewUUID(), "", at(3))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("order must be budgeting", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.StartDiagnosis(at(1)))
		budget := o.ActiveBudget()

		err := o.SendBudgetForApproval(budget.ID(), "", at(2))

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Diagnosing, o.Status())
		assert.Equal(t, order.BudgetCreated, budget.Status())
		assert.Len(t, o.DomainEvents(), 1)
	})
}

func TestOrder_ResolveBudget(t *testing.T) {
	t.Run("rejected with new quote", func(t *testing.T) {
		o := newOrder(t)
		rejected := toAwaitingApproval(t, o)

		err := o.ResolveBudget(rejected.ID(), order.Resolution{
			RequestNewQuote: true,
			RejectionReason: "too expensive",
		}, at(5))

		require.NoError(t, err)
		assert.Equal(t, order.Budgeting, o.Status())
		assert.Equal(t, order.BudgetRejected, rejected.Status())
		assert.Equal(t, "too expensive", rejected.RejectionReason())
		require.Len(t, o.Budgets(), 2)
		requote := o.ActiveBudget()
		assert.False(t, requote.ID().IsEqual(rejected.ID()))
		assert.Equal(t, order.BudgetCreated, requote.Status())

		last := o.DomainEvents()[len(o.DomainEvents())-1]
		assert.Len(t, last.Budgets, 2)
		assert.Equal(t, "too expensive", last.Note)

		// the fresh quote goes straight to approval
		require.NoError(t, o.SendBudgetForApproval(requote.ID(), "", at(6)))
		assert.Equal(t, order.AwaitingApproval, o.Status())
		assert.Equal(t, order.BudgetPendingApproval, requote.Status())

		// the superseded budget can no longer be resolved
		err = o.ResolveBudget(rejected.ID(), order.Resolution{Approved: true}, at(7))
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("rejected with vehicle picked up", func(t *testing.T) {
		o := newOrder(t)
		budget := toAwaitingApproval(t, o)

		require.NoError(t, o.ResolveBudget(budget.ID(), order.Resolution{VehicleAlreadyPickedUp: true}, at(5)))

		assert.Equal(t, order.Returned, o.Status())
		assert.Equal(t, order.BudgetRejected, budget.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("rejected without follow up cancels", func(t *testing.T) {
		o := newOrder(t)
		budget := toAwaitingApproval(t, o)

		require.NoError(t, o.ResolveBudget(budget.ID(), order.Resolution{RejectionReason: "no"}, at(5)))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.BudgetRejected, budget.Status())
		assert.Nil(t, o.DeliveredAt())
		assert.Len(t, o.Budgets(), 1)
	})

	t.Run("requires pending approval", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.StartDiagnosis(at(1)))
		require.NoError(t, o.FinishDiagnosis(at(2)))
		budget := o.ActiveBudget()

		err := o.ResolveBudget(budget.ID(), order.Resolution{Approved: true}, at(3))

		var stateErr *errs.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "InElaboration", stateErr.Actual)
		assert.Equal(t, order.Budgeting, o.Status())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("mid diagnosis with vehicle returned", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.StartDiagnosis(at(1)))
		budget := o.ActiveBudget()

		require.NoError(t, o.Cancel("customer gave up", "left keys", true, at(2)))

		assert.Equal(t, order.Returned, o.Status())
		assert.Equal(t, order.BudgetRejected, budget.Status())
		assert.Equal(t, "customer gave up", budget.RejectionReason())
		require.NotNil(t, o.DeliveredAt())
		assert.Nil(t, o.CompletedAt())
		require.ErrorIs(t, o.EnsureExecuting(), errs.ErrInvalidState)

		events := o.DomainEvents()
		require.Len(t, events, 3)
		assert.Equal(t, order.Cancelled, events[1].To)
		assert.Equal(t, order.Returned, events[2].To)
		assert.Equal(t, "customer gave up; left keys", events[2].Note)
	})

	t.Run("received order has no budget to reject", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Cancel("duplicate", "", false, at(1)))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Empty(t, o.DomainEvents()[0].Budgets)
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("not allowed once executing", func(t *testing.T) {
		o := newOrder(t)
		budget := toAwaitingApproval(t, o)
		require.NoError(t, o.ResolveBudget(budget.ID(), order.Resolution{Approved: true}, at(4)))

		err := o.Cancel("late", "", false, at(5))

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.Executing, o.Status())
		assert.Equal(t, order.BudgetApproved, budget.Status())
	})

	t.Run("requires a reason", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.Cancel("  ", "", false, at(1)), errs.ErrValueIsRequired)
		assert.Equal(t, order.Received, o.Status())
	})
}

func TestOrder_ReturnVehicleWithoutService(t *testing.T) {
	t.Run("stamps delivery only", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel("no parts available", "", false, at(1)))

		require.NoError(t, o.ReturnVehicleWithoutService("picked up", at(3)))

		assert.Equal(t, order.Returned, o.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, at(3), *o.DeliveredAt())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("requires cancelled", func(t *testing.T) {
		o := newOrder(t)
		toAwaitingApproval(t, o)

		err := o.ReturnVehicleWithoutService("picked up", at(5))

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.AwaitingApproval, o.Status())
	})
}

func TestOrder_Reprice(t *testing.T) {
	t.Run("budget value follows the lines", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.StartDiagnosis(at(1)))
		service := o.Services()[0]
		part := o.Parts()[0]

		require.NoError(t, o.RepriceService(service.ServiceID(), money(t, "120")))
		require.NoError(t, o.RepricePart(part.PartID(), money(t, "30")))

		assert.Equal(t, "180.00", o.Total().String())
		assert.Equal(t, "120.00", o.ServicesTotal().String())
		assert.Equal(t, "60.00", o.PartsTotal().String())
	})

	t.Run("unknown line", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.RepriceService(kernel.NewUUID(), money(t, "1")), errs.ErrObjectNotFound)
		require.ErrorIs(t, o.RepricePart(kernel.NewUUID(), money(t, "1")), errs.ErrObjectNotFound)
	})

	t.Run("frozen once sent for approval", func(t *testing.T) {
		o := newOrder(t)
		toAwaitingApproval(t, o)

		err := o.RepriceService(o.Services()[0].ServiceID(), money(t, "1"))

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, "151.00", o.Total().String())
	})
}

func TestRestoreOrder(t *testing.T) {
	service, err := order.NewServiceLine(kernel.NewUUID(), "Oil change", money(t, "100"), 60)
	require.NoError(t, err)
	id := kernel.NewUUID()
	budget, err := order.RestoreBudget(kernel.NewUUID(), id, at(1), order.BudgetApproved, "")
	require.NoError(t, err)
	completed := at(5)

	t.Run("consistent timestamps", func(t *testing.T) {
		o, err := order.RestoreOrder(id, newVehicle(t), requestedAt, order.Finalized, &completed, nil,
			[]order.ServiceLine{service}, nil, []*order.Budget{budget})

		require.NoError(t, err)
		assert.Equal(t, order.Finalized, o.Status())
		assert.Same(t, budget, o.ActiveBudget())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("finalized without completion", func(t *testing.T) {
		_, err := order.RestoreOrder(id, newVehicle(t), requestedAt, order.Finalized, nil, nil,
			[]order.ServiceLine{service}, nil, []*order.Budget{budget})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("budget of another order", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), newVehicle(t), requestedAt, order.Finalized, &completed, nil,
			[]order.ServiceLine{service}, nil, []*order.Budget{budget})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value order is not constructed", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.StartDiagnosis(at(1)), order.ErrOrderIsNotConstructed)
	})
}
