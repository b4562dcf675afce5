package http

import (
	"net/http"
	"strings"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
//
//	@Summary		Open a service order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body	createOrderRequest	true	"Order intake"
//	@Success		201	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders [post]
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "Invalid request body")
	}

	serviceIDs := make([]kernel.UUID, 0, len(req.ServiceIDs))
	for _, raw := range req.ServiceIDs {
		id, err := parseUUID("service_ids", raw)
		if err != nil {
			return s.fail(c, err)
		}
		serviceIDs = append(serviceIDs, id)
	}
	parts := make([]commands.PartQuantity, 0, len(req.Parts))
	for _, p := range req.Parts {
		id, err := parseUUID("part_id", p.PartID)
		if err != nil {
			return s.fail(c, err)
		}
		parts = append(parts, commands.PartQuantity{PartID: id, Quantity: p.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		req.CustomerDocument,
		customer.VehicleDetails{
			Plate:      req.Vehicle.Plate,
			BrandModel: req.Vehicle.BrandModel,
			Year:       req.Vehicle.Year,
			Color:      req.Vehicle.Color,
			FuelType:   req.Vehicle.FuelType,
		},
		serviceIDs,
		parts,
	)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	orderTransitions.WithLabelValues(o.Status().String()).Inc()
	return c.JSON(http.StatusCreated, toOrderResponse(queries.NewOrderView(o)))
}

// ListOrders handles GET /api/v1/orders?status=&customer_id=&from=&to=.
//
//	@Summary		List orders
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			status	query	[]string	false	"Status names"	collectionFormat(multi)
//	@Param			customer_id	query	string	false	"Customer ID"	format(uuid)
//	@Param			from	query	string	false	"Requested at or after"
//	@Param			to	query	string	false	"Requested at or before"
//	@Success		200	{array}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders [get]
func (s *Server) ListOrders(c echo.Context) error {
	var statuses []order.Status
	for _, raw := range c.QueryParams()["status"] {
		for _, name := range strings.Split(raw, ",") {
			st, err := order.ParseStatus(strings.TrimSpace(name))
			if err != nil {
				return s.fail(c, err)
			}
			statuses = append(statuses, st)
		}
	}
	customerID, err := optionalUUID(c, "customer_id")
	if err != nil {
		return s.fail(c, err)
	}
	from, err := optionalTime(c, "from", false)
	if err != nil {
		return s.fail(c, err)
	}
	to, err := optionalTime(c, "to", true)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListOrdersQuery(statuses, customerID, from, to)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// ListActiveOrders handles GET /api/v1/orders/active.
//
//	@Summary		List orders still on the workshop floor
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Success		200	{array}	orderResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/active [get]
func (s *Server) ListActiveOrders(c echo.Context) error {
	views, err := s.handlers.ListActiveOrders.Handle(c.Request().Context(), queries.NewListActiveOrdersQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// GetOrder handles GET /api/v1/orders/:id.
//
//	@Summary		Get an order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Order ID"	format(uuid)
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/{id} [get]
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(view))
}

//	@Summary		Start diagnosis
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Order ID"	format(uuid)
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/{id}/diagnosis/start [post]
func (s *Server) StartDiagnosis(c echo.Context) error {
	return s.step(c, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewStartDiagnosisCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.StartDiagnosis.Handle(c.Request().Context(), cmd)
	})
}

//	@Summary		Finish diagnosis
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Order ID"	format(uuid)
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/{id}/diagnosis/finish [post]
func (s *Server) FinishDiagnosis(c echo.Context) error {
	return s.step(c, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewFinishDiagnosisCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.FinishDiagnosis.Handle(c.Request().Context(), cmd)
	})
}

// StartExecution confirms the order is executing; it changes nothing.
//
//	@Summary		Confirm execution
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Order ID"	format(uuid)
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/{id}/execution/start [post]
func (s *Server) StartExecution(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewStartExecutionCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.StartExecution.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(queries.NewOrderView(o)))
}

//	@Summary		Finish service
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Order ID"	format(uuid)
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/{id}/finish [post]
func (s *Server) FinishService(c echo.Context) error {
	return s.step(c, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewFinishServiceCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.FinishService.Handle(c.Request().Context(), cmd)
	})
}

//	@Summary		Deliver vehicle
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Order ID"	format(uuid)
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/{id}/deliver [post]
func (s *Server) DeliverVehicle(c echo.Context) error {
	return s.step(c, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewDeliverVehicleCommand(id)
		if err != nil {
			return nil, err
		}
		return s.handlers.DeliverVehicle.Handle(c.Request().Context(), cmd)
	})
}

//	@Summary		Cancel order
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Order ID"	format(uuid)
//	@Param			request	body	cancelOrderRequest	true	"Cancellation"
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/{id}/cancel [post]
func (s *Server) CancelOrder(c echo.Context) error {
	var req cancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "Invalid request body")
	}
	return s.step(c, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewCancelOrderCommand(id, req.Reason, req.Notes, req.VehicleReturned)
		if err != nil {
			return nil, err
		}
		return s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	})
}

//	@Summary		Return vehicle without service
//	@Tags			workflow
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Order ID"	format(uuid)
//	@Param			request	body	returnVehicleRequest	true	"Return"
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/{id}/return [post]
func (s *Server) ReturnVehicle(c echo.Context) error {
	var req returnVehicleRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "Invalid request body")
	}
	return s.step(c, func(id kernel.UUID) (*order.Order, error) {
		cmd, err := commands.NewReturnVehicleCommand(id, req.Reason)
		if err != nil {
			return nil, err
		}
		return s.handlers.ReturnVehicle.Handle(c.Request().Context(), cmd)
	})
}

// RepriceLine handles PATCH /api/v1/orders/:id/lines.
//
//	@Summary		Reprice a service or part line
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Order ID"	format(uuid)
//	@Param			request	body	repriceLineRequest	true	"New applied value"
//	@Success		200	{object}	orderResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/orders/{id}/lines [patch]
func (s *Server) RepriceLine(c echo.Context) error {
	var req repriceLineRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "Invalid request body")
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	itemID, err := parseUUID("item_id", req.ItemID)
	if err != nil {
		return s.fail(c, err)
	}
	value, err := kernel.MoneyFromString(req.Value)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRepriceLineCommand(id, commands.LineKind(req.Kind), itemID, value)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.RepriceLine.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(queries.NewOrderView(o)))
}

// step runs a workflow transition on the order named by the :id path parameter
// and answers with the updated order.
func (s *Server) step(c echo.Context, run func(id kernel.UUID) (*order.Order, error)) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	o, err := run(id)
	if err != nil {
		return s.fail(c, err)
	}
	orderTransitions.WithLabelValues(o.Status().String()).Inc()
	return c.JSON(http.StatusOK, toOrderResponse(queries.NewOrderView(o)))
}

func toOrderResponses(views []queries.OrderView) []orderResponse {
	resp := make([]orderResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toOrderResponse(v))
	}
	return resp
}
