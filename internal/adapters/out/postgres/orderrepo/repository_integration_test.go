package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "workshop/internal/adapters/out/postgres"
	"workshop/internal/adapters/out/postgres/catalogrepo"
	"workshop/internal/adapters/out/postgres/customerrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/core/domain/model/catalog"
	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite checks order persistence against a real
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	statuses   *catalogrepo.GormStatusCatalog
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker

	owner   *customer.Customer
	vehicle *customer.Vehicle
	service *catalog.Service
	part    *catalog.Part
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.statuses = catalogrepo.NewGormStatusCatalog(db)
	suite.Require().NoError(postgres_adapter.Migrate(ctx, db, suite.statuses))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE budgets, order_parts, order_services, orders, vehicles, customers, services, parts CASCADE",
	).Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.statuses, suite.tracker)

	owner, err := customer.NewCustomer("Ana Souza", "12345678900", "ana@example.com", "")
	suite.Require().NoError(err)
	vehicle, err := owner.RegisterVehicle(customer.VehicleDetails{Plate: "ABC1D23", BrandModel: "Fiat Uno", Year: 2015})
	suite.Require().NoError(err)
	service, err := catalog.NewService("Oil change", suite.money("150.00"), 60)
	suite.Require().NoError(err)
	part, err := catalog.NewPart("Oil filter", "OF-100", suite.money("35.50"), 10)
	suite.Require().NoError(err)

	suite.Require().NoError(customerrepo.NewGormCustomerRepository(suite.db).Add(ctx, owner))
	suite.Require().NoError(customerrepo.NewGormVehicleRepository(suite.db).Add(ctx, vehicle))
	suite.Require().NoError(catalogrepo.NewGormServiceRepository(suite.db).Add(ctx, service))
	suite.Require().NoError(catalogrepo.NewGormPartRepository(suite.db).Add(ctx, part))

	suite.owner, suite.vehicle, suite.service, suite.part = owner, vehicle, service, part
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) money(s string) kernel.Money {
	m, err := kernel.MoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(requestedAt time.Time) *order.Order {
	o, err := services.NewOrderIntake().Open(
		kernel.NewUUID(),
		suite.owner,
		suite.vehicle,
		[]*catalog.Service{suite.service},
		[]services.PartRequest{{Part: suite.part, Quantity: 2}},
		requestedAt,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresAggregate() {
	ctx := context.Background()
	requestedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	testOrder := suite.newOrder(requestedAt)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Received, loaded.Status())
	suite.True(requestedAt.Equal(loaded.RequestedAt()))
	suite.Equal("Ana Souza", loaded.Vehicle().CustomerName())
	suite.Equal("ABC1D23", loaded.Vehicle().Plate())
	suite.Equal("Fiat Uno", loaded.Vehicle().Model())
	suite.Require().Len(loaded.Services(), 1)
	suite.Equal("Oil change", loaded.Services()[0].Name())
	suite.Require().Len(loaded.Parts(), 1)
	suite.Equal(2, loaded.Parts()[0].Quantity())
	suite.Equal("221.00", loaded.Total().String())
	suite.Empty(loaded.Budgets())
	suite.Empty(loaded.DomainEvents())

	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", testOrder.ID(), testOrder)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndBudgets() {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	testOrder := suite.newOrder(now)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.StartDiagnosis(now.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))
	suite.Require().NoError(testOrder.FinishDiagnosis(now.Add(2 * time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Budgeting, loaded.Status())
	suite.Require().Len(loaded.Budgets(), 1)
	suite.Equal(order.BudgetInElaboration, loaded.ActiveBudget().Status())
	suite.True(testOrder.ActiveBudget().ID().IsEqual(loaded.ActiveBudget().ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RepricedLine() {
	ctx := context.Background()
	testOrder := suite.newOrder(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.RepriceService(suite.service.ID(), suite.money("120.00")))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("191.00", loaded.Total().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_NotFound() {
	ctx := context.Background()
	testOrder := suite.newOrder(time.Now().UTC())

	err := suite.repository.Update(ctx, testOrder)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrder_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	testOrder := suite.newOrder(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	tx := suite.db.Begin()
	defer tx.Rollback()
	repo := orderrepo.NewGormOrderRepository(tx, suite.statuses, suite.tracker)

	locked, err := repo.GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.ID().IsEqual(locked.ID()))

	_, err = repo.GetForUpdate(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_Filters() {
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	first := suite.newOrder(base)
	second := suite.newOrder(base.Add(24 * time.Hour))
	suite.Require().NoError(second.StartDiagnosis(base.Add(25 * time.Hour)))
	third := suite.newOrder(base.Add(48 * time.Hour))
	for _, o := range []*order.Order{third, first, second} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	all, err := suite.repository.List(ctx, ports.OrderFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.True(first.ID().IsEqual(all[0].ID()), "oldest request first")

	diagnosing, err := suite.repository.List(ctx, ports.OrderFilter{Statuses: []order.Status{order.Diagnosing}})
	suite.Require().NoError(err)
	suite.Require().Len(diagnosing, 1)
	suite.True(second.ID().IsEqual(diagnosing[0].ID()))

	from, to := base.Add(time.Hour), base.Add(30*time.Hour)
	windowed, err := suite.repository.List(ctx, ports.OrderFilter{RequestedFrom: &from, RequestedTo: &to})
	suite.Require().NoError(err)
	suite.Require().Len(windowed, 1)

	other := kernel.NewUUID()
	none, err := suite.repository.List(ctx, ports.OrderFilter{CustomerID: &other})
	suite.Require().NoError(err)
	suite.Empty(none)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
