package http

import (
	"time"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/services"
)

type errorResponse struct {
	Code     int      `json:"code"`
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Actual   string   `json:"actual,omitempty"`
}

type vehicleRequest struct {
	Plate      string `json:"plate"`
	BrandModel string `json:"brand_model"`
	Year       int    `json:"year"`
	Color      string `json:"color"`
	FuelType   string `json:"fuel_type"`
}

type partRequest struct {
	PartID   string `json:"part_id"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerDocument string         `json:"customer_document"`
	Vehicle          vehicleRequest `json:"vehicle"`
	ServiceIDs       []string       `json:"service_ids"`
	Parts            []partRequest  `json:"parts"`
}

type cancelOrderRequest struct {
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
	VehicleReturned bool   `json:"vehicle_returned"`
}

type returnVehicleRequest struct {
	Reason string `json:"reason"`
}

type repriceLineRequest struct {
	Kind   string `json:"kind"`
	ItemID string `json:"item_id"`
	Value  string `json:"value"`
}

type sendBudgetRequest struct {
	Notes string `json:"notes"`
}

type resolveBudgetRequest struct {
	Approved               bool   `json:"approved"`
	RequestNewQuote        bool   `json:"request_new_quote"`
	VehicleAlreadyPickedUp bool   `json:"vehicle_already_picked_up"`
	RejectionReason        string `json:"rejection_reason"`
	Notes                  string `json:"notes"`
}

type serviceLineResponse struct {
	ServiceID        string `json:"service_id"`
	Name             string `json:"name"`
	Value            string `json:"value"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

type partLineResponse struct {
	PartID    string `json:"part_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitValue string `json:"unit_value"`
	Total     string `json:"total"`
}

type budgetResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	Value           string    `json:"value"`
	OrderStatus     string    `json:"order_status"`
	CustomerName    string    `json:"customer_name"`
	Plate           string    `json:"plate"`
}

type orderResponse struct {
	ID            string                `json:"id"`
	Status        string                `json:"status"`
	CustomerID    string                `json:"customer_id"`
	CustomerName  string                `json:"customer_name"`
	VehicleID     string                `json:"vehicle_id"`
	Plate         string                `json:"plate"`
	Model         string                `json:"model"`
	RequestedAt   time.Time             `json:"requested_at"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
	DeliveredAt   *time.Time            `json:"delivered_at,omitempty"`
	Services      []serviceLineResponse `json:"services"`
	Parts         []partLineResponse    `json:"parts"`
	ServicesTotal string                `json:"services_total"`
	PartsTotal    string                `json:"parts_total"`
	Total         string                `json:"total"`
	Budgets       []budgetResponse      `json:"budgets"`
}

type resolveBudgetResponse struct {
	Order   orderResponse   `json:"order"`
	Budget  *budgetResponse `json:"budget,omitempty"`
	Message string          `json:"message"`
}

type orderTurnaroundResponse struct {
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Plate        string    `json:"plate"`
	Model        string    `json:"model"`
	RequestedAt  time.Time `json:"requested_at"`
	DeliveredAt  time.Time `json:"delivered_at"`
	Hours        float64   `json:"hours"`
	Days         float64   `json:"days"`
	Total        string    `json:"total"`
}

type phaseBreakdownResponse struct {
	DiagnosisHours    float64 `json:"diagnosis_hours"`
	ExecutionHours    float64 `json:"execution_hours"`
	DeliveryWaitHours float64 `json:"delivery_wait_hours"`
}

type turnaroundReportResponse struct {
	From         time.Time                `json:"from"`
	To           time.Time                `json:"to"`
	OrderCount   int                      `json:"order_count"`
	AverageHours float64                  `json:"average_hours"`
	AverageDays  float64                  `json:"average_days"`
	Fastest      *orderTurnaroundResponse `json:"fastest,omitempty"`
	Slowest      *orderTurnaroundResponse `json:"slowest,omitempty"`
	Phases       phaseBreakdownResponse   `json:"phases"`
}

type orderTimingResponse struct {
	OrderID           string     `json:"order_id"`
	CustomerName      string     `json:"customer_name"`
	Plate             string     `json:"plate"`
	Model             string     `json:"model"`
	Status            string     `json:"status"`
	RequestedAt       time.Time  `json:"requested_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	HoursToCompletion *float64   `json:"hours_to_completion,omitempty"`
	HoursToDelivery   *float64   `json:"hours_to_delivery,omitempty"`
	Total             string     `json:"total"`
}

type generalStatsResponse struct {
	Analyzed                 int     `json:"analyzed"`
	Finalized                int     `json:"finalized"`
	Delivered                int     `json:"delivered"`
	AverageHoursToCompletion float64 `json:"average_hours_to_completion"`
	AverageHoursToDelivery   float64 `json:"average_hours_to_delivery"`
}

type customerStatsResponse struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	Orders       int     `json:"orders"`
	AverageHours float64 `json:"average_hours"`
	AverageValue float64 `json:"average_value"`
}

type executionSummaryResponse struct {
	Orders    []orderTimingResponse   `json:"orders"`
	Stats     generalStatsResponse    `json:"stats"`
	Customers []customerStatsResponse `json:"customers"`
}

func toBudgetResponse(v queries.BudgetView) budgetResponse {
	return budgetResponse{
		ID:              v.ID.String(),
		OrderID:         v.OrderID.String(),
		Status:          v.Status.String(),
		CreatedAt:       v.CreatedAt,
		RejectionReason: v.RejectionReason,
		Value:           v.Value.String(),
		OrderStatus:     v.OrderStatus.String(),
		CustomerName:    v.CustomerName,
		Plate:           v.Plate,
	}
}

func toOrderResponse(v queries.OrderView) orderResponse {
	resp := orderResponse{
		ID:            v.ID.String(),
		Status:        v.Status.String(),
		CustomerID:    v.CustomerID.String(),
		CustomerName:  v.CustomerName,
		VehicleID:     v.VehicleID.String(),
		Plate:         v.Plate,
		Model:         v.Model,
		RequestedAt:   v.RequestedAt,
		CompletedAt:   v.CompletedAt,
		DeliveredAt:   v.DeliveredAt,
		Services:      make([]serviceLineResponse, 0, len(v.Services)),
		Parts:         make([]partLineResponse, 0, len(v.Parts)),
		ServicesTotal: v.ServicesTotal.String(),
		PartsTotal:    v.PartsTotal.String(),
		Total:         v.Total.String(),
		Budgets:       make([]budgetResponse, 0, len(v.Budgets)),
	}
	for _, s := range v.Services {
		resp.Services = append(resp.Services, serviceLineResponse{
			ServiceID:        s.ServiceID.String(),
			Name:             s.Name,
			Value:            s.Value.String(),
			EstimatedMinutes: s.EstimatedMinutes,
		})
	}
	for _, p := range v.Parts {
		resp.Parts = append(resp.Parts, partLineResponse{
			PartID:    p.PartID.String(),
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitValue: p.UnitValue.String(),
			Total:     p.Total.String(),
		})
	}
	for _, b := range v.Budgets {
		resp.Budgets = append(resp.Budgets, toBudgetResponse(b))
	}
	return resp
}

func toOrderTurnaroundResponse(t *services.OrderTurnaround) *orderTurnaroundResponse {
	if t == nil {
		return nil
	}
	return &orderTurnaroundResponse{
		OrderID:      t.OrderID.String(),
		CustomerName: t.CustomerName,
		Plate:        t.Plate,
		Model:        t.Model,
		RequestedAt:  t.RequestedAt,
		DeliveredAt:  t.DeliveredAt,
		Hours:        t.Hours,
		Days:         t.Days,
		Total:        t.Total.String(),
	}
}

func toTurnaroundReportResponse(r services.TurnaroundReport) turnaroundReportResponse {
	return turnaroundReportResponse{
		From:         r.From,
		To:           r.To,
		OrderCount:   r.OrderCount,
		AverageHours: r.AverageHours,
		AverageDays:  r.AverageDays,
		Fastest:      toOrderTurnaroundResponse(r.Fastest),
		Slowest:      toOrderTurnaroundResponse(r.Slowest),
		Phases: phaseBreakdownResponse{
			DiagnosisHours:    r.Phases.DiagnosisHours,
			ExecutionHours:    r.Phases.ExecutionHours,
			DeliveryWaitHours: r.Phases.DeliveryWaitHours,
		},
	}
}

func toExecutionSummaryResponse(s services.ExecutionSummary) executionSummaryResponse {
	resp := executionSummaryResponse{
		Orders: make([]orderTimingResponse, 0, len(s.Orders)),
		Stats: generalStatsResponse{
			Analyzed:                 s.Stats.Analyzed,
			Finalized:                s.Stats.Finalized,
			Delivered:                s.Stats.Delivered,
			AverageHoursToCompletion: s.Stats.AverageHoursToCompletion,
			AverageHoursToDelivery:   s.Stats.AverageHoursToDelivery,
		},
		Customers: make([]customerStatsResponse, 0, len(s.Customers)),
	}
	for _, o := range s.Orders {
		resp.Orders = append(resp.Orders, orderTimingResponse{
			OrderID:           o.OrderID.String(),
			CustomerName:      o.CustomerName,
			Plate:             o.Plate,
			Model:             o.Model,
			Status:            o.Status.String(),
			RequestedAt:       o.RequestedAt,
			CompletedAt:       o.CompletedAt,
			DeliveredAt:       o.DeliveredAt,
			HoursToCompletion: o.HoursToCompletion,
			HoursToDelivery:   o.HoursToDelivery,
			Total:             o.Total.String(),
		})
	}
	for _, c := range s.Customers {
		resp.Customers = append(resp.Customers, customerStatsResponse{
			CustomerID:   c.CustomerID.String(),
			CustomerName: c.CustomerName,
			Orders:       c.Orders,
			AverageHours: c.AverageHours,
			AverageValue: c.AverageValue,
		})
	}
	return resp
}
