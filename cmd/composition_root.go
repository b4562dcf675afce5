package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "workshop/internal/adapters/in/http"
	"workshop/internal/adapters/out/kafka"
	"workshop/internal/adapters/out/locks/memlock"
	"workshop/internal/adapters/out/locks/redislock"
	"workshop/internal/adapters/out/memory"
	"workshop/internal/adapters/out/postgres"
	"workshop/internal/adapters/out/postgres/catalogrepo"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/ports"
	"workshop/internal/jobs"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	locker     ports.OrderLocker
	publisher  *kafka.Producer
	closers    []func() error
}

// NewCompositionRoot opens the configured storage and lock backends. Postgres
// schemas and the status catalog are migrated on start.
func NewCompositionRoot(ctx context.Context, configs Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{configs: configs, logger: logger}

	switch configs.StorageDriver {
	case StorageMemory:
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	case StoragePostgres:
		db, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		c.closers = append(c.closers, sqlDB.Close)

		statuses := catalogrepo.NewGormStatusCatalog(db)
		if err := postgres.Migrate(ctx, db, statuses); err != nil {
			_ = c.Close()
			return nil, err
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db, statuses)
	}

	switch configs.LockDriver {
	case LockMemory:
		c.locker = memlock.New()
	case LockRedis:
		locker := redislock.New(configs.RedisAddr, configs.LockTTL)
		c.closers = append(c.closers, locker.Close)
		c.locker = locker
	}

	c.publisher = kafka.NewProducer(configs.KafkaBrokers)
	c.closers = append(c.closers, c.publisher.Close)

	logger.Info("Composition root ready",
		"storage", configs.StorageDriver, "lock", configs.LockDriver)
	return c, nil
}

// Close releases connections in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) readerFactory() queries.ReaderFactory {
	return FuncReaderFactory(func() queries.Reader {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateStartDiagnosisCommandHandler() commands.StartDiagnosisCommandHandler {
	return commands.NewStartDiagnosisCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateFinishDiagnosisCommandHandler() commands.FinishDiagnosisCommandHandler {
	return commands.NewFinishDiagnosisCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateStartExecutionCommandHandler() commands.StartExecutionCommandHandler {
	return commands.NewStartExecutionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateFinishServiceCommandHandler() commands.FinishServiceCommandHandler {
	return commands.NewFinishServiceCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateDeliverVehicleCommandHandler() commands.DeliverVehicleCommandHandler {
	return commands.NewDeliverVehicleCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateReturnVehicleCommandHandler() commands.ReturnVehicleCommandHandler {
	return commands.NewReturnVehicleCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateRepriceLineCommandHandler() commands.RepriceLineCommandHandler {
	return commands.NewRepriceLineCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateSendBudgetForApprovalCommandHandler() commands.SendBudgetForApprovalCommandHandler {
	return commands.NewSendBudgetForApprovalCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateResolveBudgetCommandHandler() commands.ResolveBudgetCommandHandler {
	return commands.NewResolveBudgetCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetBudgetQueryHandler() queries.GetBudgetQueryHandler {
	return queries.NewGetBudgetQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateListBudgetsQueryHandler() queries.ListBudgetsQueryHandler {
	return queries.NewListBudgetsQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetTurnaroundReportQueryHandler() queries.GetTurnaroundReportQueryHandler {
	return queries.NewGetTurnaroundReportQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetExecutionSummaryQueryHandler() queries.GetExecutionSummaryQueryHandler {
	return queries.NewGetExecutionSummaryQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		StartDiagnosis:  c.CreateStartDiagnosisCommandHandler(),
		FinishDiagnosis: c.CreateFinishDiagnosisCommandHandler(),
		StartExecution:  c.CreateStartExecutionCommandHandler(),
		FinishService:   c.CreateFinishServiceCommandHandler(),
		DeliverVehicle:  c.CreateDeliverVehicleCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		ReturnVehicle:   c.CreateReturnVehicleCommandHandler(),
		RepriceLine:     c.CreateRepriceLineCommandHandler(),
		SendBudget:      c.CreateSendBudgetForApprovalCommandHandler(),
		ResolveBudget:   c.CreateResolveBudgetCommandHandler(),

		GetOrder:         c.CreateGetOrderQueryHandler(),
		ListOrders:       c.CreateListOrdersQueryHandler(),
		ListActiveOrders: c.CreateListActiveOrdersQueryHandler(),
		GetBudget:        c.CreateGetBudgetQueryHandler(),
		ListBudgets:      c.CreateListBudgetsQueryHandler(),
		TurnaroundReport: c.CreateGetTurnaroundReportQueryHandler(),
		ExecutionSummary: c.CreateGetExecutionSummaryQueryHandler(),
	}
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOutboxCommandHandler(),
		jobs.OutboxRelayConfig{
			Schedule:  c.configs.OutboxRelaySchedule,
			BatchSize: c.configs.OutboxBatchSize,
			Topic:     c.configs.KafkaOrderEventsTopic,
		},
		c.CreateListActiveOrdersQueryHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncReaderFactory func() queries.Reader

func (f FuncReaderFactory) Create() queries.Reader {
	return f()
}
