package http

import (
	"net/http"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ListBudgets handles GET /api/v1/budgets, newest first.
//
//	@Summary		List budgets
//	@Tags			budgets
//	@Accept			json
//	@Produce		json
//	@Success		200	{array}	budgetResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/budgets [get]
func (s *Server) ListBudgets(c echo.Context) error {
	views, err := s.handlers.ListBudgets.Handle(c.Request().Context(), queries.NewListBudgetsQuery())
	if err != nil {
		return s.fail(c, err)
	}
	resp := make([]budgetResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toBudgetResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

//	@Summary		Get a budget
//	@Tags			budgets
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Budget ID"	format(uuid)
//	@Success		200	{object}	budgetResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/budgets/{id} [get]
func (s *Server) GetBudget(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetBudgetQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetBudget.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponse(view))
}

// SendBudget handles POST /api/v1/budgets/:id/send.
//
//	@Summary		Send budget for approval
//	@Tags			budgets
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Budget ID"	format(uuid)
//	@Param			request	body	sendBudgetRequest	true	"Notes"
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/budgets/{id}/send [post]
func (s *Server) SendBudget(c echo.Context) error {
	var req sendBudgetRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "Invalid request body")
	}
	return s.step(c, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewSendBudgetForApprovalCommand(id, req.Notes)
		if err != nil {
			return nil, err
		}
		return s.handlers.SendBudget.Handle(c.Request().Context(), cmd)
	})
}

// ResolveBudget handles POST /api/v1/budgets/:id/resolve and answers with the
// order, its active budget and a summary of what happened.
//
//	@Summary		Resolve a pending budget
//	@Tags			budgets
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Budget ID"	format(uuid)
//	@Param			request	body	resolveBudgetRequest	true	"Customer decision"
//	@Success		200	{object}	resolveBudgetResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/budgets/{id}/resolve [post]
func (s *Server) ResolveBudget(c echo.Context) error {
	var req resolveBudgetRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "Invalid request body")
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewResolveBudgetCommand(id, order.Resolution{
		Approved:               req.Approved,
		RequestNewQuote:        req.RequestNewQuote,
		VehicleAlreadyPickedUp: req.VehicleAlreadyPickedUp,
		RejectionReason:        req.RejectionReason,
		Notes:                  req.Notes,
	})
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.handlers.ResolveBudget.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	orderTransitions.WithLabelValues(result.Order.Status().String()).Inc()

	resp := resolveBudgetResponse{
		Order:   toOrderResponse(queries.NewOrderView(result.Order)),
		Message: result.Message,
	}
	if result.Budget != nil {
		b := toBudgetResponse(queries.NewBudgetView(result.Budget, result.Order))
		resp.Budget = &b
	}
	return c.JSON(http.StatusOK, resp)
}
