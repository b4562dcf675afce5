package http

import (
	"log/slog"
	"net/http"

	_ "workshop/docs"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers bundles the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder     commands.CreateOrderCommandHandler
	StartDiagnosis  commands.StartDiagnosisCommandHandler
	FinishDiagnosis commands.FinishDiagnosisCommandHandler
	StartExecution  commands.StartExecutionCommandHandler
	FinishService   commands.FinishServiceCommandHandler
	DeliverVehicle  commands.DeliverVehicleCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	ReturnVehicle   commands.ReturnVehicleCommandHandler
	RepriceLine     commands.RepriceLineCommandHandler
	SendBudget      commands.SendBudgetForApprovalCommandHandler
	ResolveBudget   commands.ResolveBudgetCommandHandler

	// Query handlers
	GetOrder         queries.GetOrderQueryHandler
	ListOrders       queries.ListOrdersQueryHandler
	ListActiveOrders queries.ListActiveOrdersQueryHandler
	GetBudget        queries.GetBudgetQueryHandler
	ListBudgets      queries.ListBudgetsQueryHandler
	TurnaroundReport queries.GetTurnaroundReportQueryHandler
	ExecutionSummary queries.GetExecutionSummaryQueryHandler
}

// Server maps HTTP requests onto the workshop use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// Register mounts the API, health, metrics and swagger routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(metricsMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/active", s.ListActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/diagnosis/start", s.StartDiagnosis)
	api.POST("/orders/:id/diagnosis/finish", s.FinishDiagnosis)
	api.POST("/orders/:id/execution/start", s.StartExecution)
	api.POST("/orders/:id/finish", s.FinishService)
	api.POST("/orders/:id/deliver", s.DeliverVehicle)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/return", s.ReturnVehicle)
	api.PATCH("/orders/:id/lines", s.RepriceLine)

	api.GET("/budgets", s.ListBudgets)
	api.GET("/budgets/:id", s.GetBudget)
	api.POST("/budgets/:id/send", s.SendBudget)
	api.POST("/budgets/:id/resolve", s.ResolveBudget)

	api.GET("/analytics/turnaround", s.GetTurnaroundReport)
	api.GET("/analytics/summary", s.GetExecutionSummary)
}
