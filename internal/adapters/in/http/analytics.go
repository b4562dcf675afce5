package http

import (
	"net/http"

	"workshop/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetTurnaroundReport handles GET /api/v1/analytics/turnaround?from=&to=&customer_id=&min_value=.
//
//	@Summary		Turnaround report
//	@Tags			analytics
//	@Accept			json
//	@Produce		json
//	@Param			from	query	string	false	"Window start"
//	@Param			to	query	string	false	"Window end"
//	@Param			customer_id	query	string	false	"Customer ID"	format(uuid)
//	@Param			min_value	query	string	false	"Minimum order total"
//	@Success		200	{object}	turnaroundReportResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/analytics/turnaround [get]
func (s *Server) GetTurnaroundReport(c echo.Context) error {
	from, err := optionalTime(c, "from", false)
	if err != nil {
		return s.fail(c, err)
	}
	to, err := optionalTime(c, "to", true)
	if err != nil {
		return s.fail(c, err)
	}
	customerID, err := optionalUUID(c, "customer_id")
	if err != nil {
		return s.fail(c, err)
	}
	minValue, err := optionalMoney(c, "min_value")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetTurnaroundReportQuery(from, to, customerID, minValue)
	if err != nil {
		return s.fail(c, err)
	}
	report, err := s.handlers.TurnaroundReport.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toTurnaroundReportResponse(report))
}

// GetExecutionSummary handles GET /api/v1/analytics/summary?from=&to=.
//
//	@Summary		Execution summary
//	@Tags			analytics
//	@Accept			json
//	@Produce		json
//	@Param			from	query	string	false	"Requested at or after"
//	@Param			to	query	string	false	"Requested at or before"
//	@Success		200	{object}	executionSummaryResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/analytics/summary [get]
func (s *Server) GetExecutionSummary(c echo.Context) error {
	from, err := optionalTime(c, "from", false)
	if err != nil {
		return s.fail(c, err)
	}
	to, err := optionalTime(c, "to", true)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetExecutionSummaryQuery(from, to)
	if err != nil {
		return s.fail(c, err)
	}
	summary, err := s.handlers.ExecutionSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toExecutionSummaryResponse(summary))
}
