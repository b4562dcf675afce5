package queries_test

import (
	"context"
	"testing"
	"time"

	"workshop/internal/adapters/out/memory"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type readerFactory struct{ f *memory.UnitOfWorkFactory }

func (r readerFactory) Create() queries.Reader { return r.f.Create() }

var base = time.Date(2025, 5, 5, 8, 0, 0, 0, time.UTC)

type QueriesTestSuite struct {
	suite.Suite
	factory  *memory.UnitOfWorkFactory
	readers  readerFactory
	customer kernel.UUID
}

func (s *QueriesTestSuite) SetupTest() {
	s.factory = memory.NewUnitOfWorkFactory(memory.NewStore())
	s.readers = readerFactory{s.factory}
	s.customer = kernel.NewUUID()
}

// add stores an order in the given state. Timestamps are offsets in hours
// from requestedAt; negative means unset.
func (s *QueriesTestSuite) add(
	status order.Status,
	requestedAt time.Time,
	completedAfter, deliveredAfter float64,
	price string,
	budgetStatuses ...order.BudgetStatus,
) *order.Order {
	vehicle, err := order.NewVehicle(kernel.NewUUID(), s.customer, "Ana Souza", "ABC1D23", "Fiat Uno")
	s.Require().NoError(err)
	value, err := kernel.MoneyFromString(price)
	s.Require().NoError(err)
	line, err := order.NewServiceLine(kernel.NewUUID(), "Brake pads", value, 90)
	s.Require().NoError(err)

	at := func(h float64) *time.Time {
		if h < 0 {
			return nil
		}
		t := requestedAt.Add(time.Duration(h * float64(time.Hour)))
		return &t
	}

	id := kernel.NewUUID()
	budgets := make([]*order.Budget, 0, len(budgetStatuses))
	for i, bs := range budgetStatuses {
		b, restoreErr := order.RestoreBudget(kernel.NewUUID(), id, requestedAt.Add(time.Duration(i)*time.Minute), bs, "")
		s.Require().NoError(restoreErr)
		budgets = append(budgets, b)
	}

	o, err := order.RestoreOrder(id, vehicle, requestedAt, status, at(completedAfter), at(deliveredAfter),
		[]order.ServiceLine{line}, nil, budgets)
	s.Require().NoError(err)
	s.Require().NoError(s.factory.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func (s *QueriesTestSuite) TestGetOrder() {
	o := s.add(order.Budgeting, base, -1, -1, "80.00", order.BudgetInElaboration)

	q, err := queries.NewGetOrderQuery(o.ID())
	s.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(s.readers).Handle(context.Background(), q)
	s.Require().NoError(err)

	s.Equal(order.Budgeting, view.Status)
	s.Equal("80.00", view.Total.String())
	s.Require().Len(view.Budgets, 1)
	s.Equal("80.00", view.Budgets[0].Value.String())
	s.Equal("ABC1D23", view.Plate)
}

func (s *QueriesTestSuite) TestGetOrder_NotFound() {
	q, err := queries.NewGetOrderQuery(kernel.NewUUID())
	s.Require().NoError(err)
	_, err = queries.NewGetOrderQueryHandler(s.readers).Handle(context.Background(), q)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QueriesTestSuite) TestListOrders_ByStatus() {
	s.add(order.Received, base, -1, -1, "10.00")
	s.add(order.Delivered, base.Add(time.Hour), 2, 3, "10.00", order.BudgetApproved)

	q, err := queries.NewListOrdersQuery([]order.Status{order.Delivered}, nil, nil, nil)
	s.Require().NoError(err)
	views, err := queries.NewListOrdersQueryHandler(s.readers).Handle(context.Background(), q)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal(order.Delivered, views[0].Status)
}

func (s *QueriesTestSuite) TestListActiveOrders_PriorityThenRequestTime() {
	received := s.add(order.Received, base, -1, -1, "10.00")
	executingLate := s.add(order.Executing, base.Add(2*time.Hour), -1, -1, "10.00", order.BudgetApproved)
	executingEarly := s.add(order.Executing, base.Add(time.Hour), -1, -1, "10.00", order.BudgetApproved)
	cancelled := s.add(order.Cancelled, base, -1, -1, "10.00", order.BudgetRejected)
	s.add(order.Delivered, base, 1, 2, "10.00", order.BudgetApproved)
	s.add(order.Finalized, base, 1, -1, "10.00", order.BudgetApproved)

	views, err := queries.NewListActiveOrdersQueryHandler(s.readers).
		Handle(context.Background(), queries.NewListActiveOrdersQuery())
	s.Require().NoError(err)

	ids := make([]kernel.UUID, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	s.Equal([]kernel.UUID{executingEarly.ID(), executingLate.ID(), received.ID(), cancelled.ID()}, ids)
}

func (s *QueriesTestSuite) TestBudgets() {
	older := s.add(order.Budgeting, base, -1, -1, "10.00", order.BudgetRejected, order.BudgetCreated)
	newer := s.add(order.AwaitingApproval, base.Add(time.Hour), -1, -1, "55.00", order.BudgetPendingApproval)

	views, err := queries.NewListBudgetsQueryHandler(s.readers).
		Handle(context.Background(), queries.NewListBudgetsQuery())
	s.Require().NoError(err)
	s.Require().Len(views, 3)
	s.Equal(newer.ActiveBudget().ID(), views[0].ID)
	s.Equal("55.00", views[0].Value.String())

	q, err := queries.NewGetBudgetQuery(older.ActiveBudget().ID())
	s.Require().NoError(err)
	view, err := queries.NewGetBudgetQueryHandler(s.readers).Handle(context.Background(), q)
	s.Require().NoError(err)
	s.Equal(order.BudgetCreated, view.Status)
	s.Equal(order.Budgeting, view.OrderStatus)
}

func (s *QueriesTestSuite) TestTurnaroundReport() {
	s.add(order.Delivered, base, 10, 12, "100.00", order.BudgetApproved)
	s.add(order.Delivered, base.Add(24*time.Hour), 20, 36, "300.00", order.BudgetApproved)
	s.add(order.Executing, base, -1, -1, "999.00", order.BudgetApproved)

	from, to := base.Add(-time.Hour), base.Add(48*time.Hour)
	q, err := queries.NewGetTurnaroundReportQuery(&from, &to, nil, nil)
	s.Require().NoError(err)
	report, err := queries.NewGetTurnaroundReportQueryHandler(s.readers).Handle(context.Background(), q)
	s.Require().NoError(err)

	s.Equal(2, report.OrderCount)
	s.InDelta(24.0, report.AverageHours, 0.001)
	s.InDelta(1.0, report.AverageDays, 0.001)
	s.Require().NotNil(report.Fastest)
	s.InDelta(12.0, report.Fastest.Hours, 0.001)
	s.InDelta(36.0, report.Slowest.Hours, 0.001)
	s.InDelta(15.0, report.Phases.ExecutionHours, 0.001)
	s.InDelta(9.0, report.Phases.DeliveryWaitHours, 0.001)
	s.InDelta(0.0, report.Phases.DiagnosisHours, 0.001)

	minValue, err := kernel.MoneyFromString("200.00")
	s.Require().NoError(err)
	q, err = queries.NewGetTurnaroundReportQuery(&from, &to, nil, &minValue)
	s.Require().NoError(err)
	report, err = queries.NewGetTurnaroundReportQueryHandler(s.readers).Handle(context.Background(), q)
	s.Require().NoError(err)
	s.Equal(1, report.OrderCount)
}

func (s *QueriesTestSuite) TestExecutionSummary() {
	s.add(order.Delivered, base, 10, 12, "100.00", order.BudgetApproved)
	s.add(order.Received, base.Add(time.Hour), -1, -1, "10.00")

	q, err := queries.NewGetExecutionSummaryQuery(nil, nil)
	s.Require().NoError(err)
	summary, err := queries.NewGetExecutionSummaryQueryHandler(s.readers).Handle(context.Background(), q)
	s.Require().NoError(err)

	s.Require().Len(summary.Orders, 2)
	s.Equal(order.Received, summary.Orders[0].Status)
	s.Equal(2, summary.Stats.Analyzed)
	s.Equal(1, summary.Stats.Delivered)
	s.Require().Len(summary.Customers, 1)
	s.InDelta(12.0, summary.Customers[0].AverageHours, 0.001)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func TestTurnaroundReportQuery_DefaultWindow(t *testing.T) {
	q, err := queries.NewGetTurnaroundReportQuery(nil, nil, nil, nil)
	require.NoError(t, err)
	from, to := q.Window(base)
	assert.Equal(t, base, to)
	assert.Equal(t, base.Add(-30*24*time.Hour), from)
}

func TestTurnaroundReportQuery_InvertedWindow(t *testing.T) {
	from, to := base, base.Add(-time.Hour)
	_, err := queries.NewGetTurnaroundReportQuery(&from, &to, nil, nil)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestQueries_ZeroValueIsNotConstructed(t *testing.T) {
	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListBudgetsQuery{}.Validate(), queries.ErrListBudgetsQueryIsNotConstructed)
}
