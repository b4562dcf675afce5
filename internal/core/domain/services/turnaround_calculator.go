package services

import (
	"math"
	"sort"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// TurnaroundFilter narrows the orders considered by the calculator. From and To
// bound the request timestamp, inclusive.
type TurnaroundFilter struct {
	From       time.Time
	To         time.Time
	CustomerID *kernel.UUID
	MinValue   *kernel.Money
}

func (f TurnaroundFilter) matches(o *order.Order) bool {
	requested := o.RequestedAt()
	if requested.Before(f.From) || requested.After(f.To) {
		return false
	}
	if f.CustomerID != nil && !o.Vehicle().CustomerID().IsEqual(*f.CustomerID) {
		return false
	}
	if f.MinValue != nil && o.Total().LessThan(*f.MinValue) {
		return false
	}
	return true
}

type OrderTurnaround struct {
	OrderID      kernel.UUID
	CustomerName string
	Plate        string
	Model        string
	RequestedAt  time.Time
	DeliveredAt  time.Time
	Hours        float64
	Days         float64
	Total        kernel.Money
}

// PhaseBreakdown splits the mean turnaround into three heuristic phases, in hours.
type PhaseBreakdown struct {
	DiagnosisHours    float64
	ExecutionHours    float64
	DeliveryWaitHours float64
}

type TurnaroundReport struct {
	From         time.Time
	To           time.Time
	OrderCount   int
	AverageHours float64
	AverageDays  float64
	Fastest      *OrderTurnaround
	Slowest      *OrderTurnaround
	Phases       PhaseBreakdown
}

type OrderTiming struct {
	OrderID           kernel.UUID
	CustomerName      string
	Plate             string
	Model             string
	Status            order.Status
	RequestedAt       time.Time
	CompletedAt       *time.Time
	DeliveredAt       *time.Time
	HoursToCompletion *float64
	HoursToDelivery   *float64
	Total             kernel.Money
}

type GeneralStats struct {
	Analyzed                 int
	Finalized                int
	Delivered                int
	AverageHoursToCompletion float64
	AverageHoursToDelivery   float64
}

type CustomerStats struct {
	CustomerID   kernel.UUID
	CustomerName string
	Orders       int
	AverageHours float64
	AverageValue float64
}

type ExecutionSummary struct {
	Orders    []OrderTiming
	Stats     GeneralStats
	Customers []CustomerStats
}

// TurnaroundCalculator computes read-only turnaround statistics over orders.
// It never mutates the orders it is given.
type TurnaroundCalculator struct{}

func NewTurnaroundCalculator() TurnaroundCalculator {
	return TurnaroundCalculator{}
}

// Report covers delivered orders within the filter whose delivery came after the request.
func (TurnaroundCalculator) Report(orders []*order.Order, filter TurnaroundFilter) TurnaroundReport {
	report := TurnaroundReport{From: filter.From, To: filter.To}

	delivered := make([]OrderTurnaround, 0, len(orders))
	var execution, deliveryWait []float64
	for _, o := range orders {
		if o.Status() != order.Delivered || o.DeliveredAt() == nil || !filter.matches(o) {
			continue
		}
		hours := o.DeliveredAt().Sub(o.RequestedAt()).Hours()
		if hours <= 0 {
			continue
		}
		delivered = append(delivered, turnaroundOf(o, hours))
		if completed := o.CompletedAt(); completed != nil {
			execution = append(execution, completed.Sub(o.RequestedAt()).Hours())
			deliveryWait = append(deliveryWait, o.DeliveredAt().Sub(*completed).Hours())
		}
	}
	if len(delivered) == 0 {
		return report
	}

	sort.SliceStable(delivered, func(i, j int) bool {
		return delivered[i].RequestedAt.Before(delivered[j].RequestedAt)
	})
	fastest, slowest := delivered[0], delivered[0]
	hours := make([]float64, 0, len(delivered))
	for _, d := range delivered {
		hours = append(hours, d.Hours)
		if d.Hours < fastest.Hours {
			fastest = d
		}
		if d.Hours > slowest.Hours {
			slowest = d
		}
	}

	meanHours := mean(hours)
	report.OrderCount = len(delivered)
	report.AverageHours = round2(meanHours)
	report.AverageDays = round2(meanHours / 24)
	report.Fastest = &fastest
	report.Slowest = &slowest

	if len(execution) > 0 {
		exec, wait := mean(execution), mean(deliveryWait)
		report.Phases = PhaseBreakdown{
			DiagnosisHours:    round2(math.Max(0, meanHours-exec-wait)),
			ExecutionHours:    round2(exec),
			DeliveryWaitHours: round2(wait),
		}
	}
	return report
}

// Summary lists every order within the filter, newest first, with overall and
// per-customer statistics. Customer statistics cover delivered orders only and
// are sorted by mean turnaround, fastest first.
func (TurnaroundCalculator) Summary(orders []*order.Order, filter TurnaroundFilter) ExecutionSummary {
	summary := ExecutionSummary{Orders: []OrderTiming{}, Customers: []CustomerStats{}}

	type customerAcc struct {
		stats CustomerStats
		hours []float64
		value decimal.Decimal
	}
	byCustomer := map[kernel.UUID]*customerAcc{}
	var customerOrder []kernel.UUID
	var toCompletion, toDelivery []float64

	for _, o := range orders {
		if !filter.matches(o) {
			continue
		}
		timing := OrderTiming{
			OrderID:      o.ID(),
			CustomerName: o.Vehicle().CustomerName(),
			Plate:        o.Vehicle().Plate(),
			Model:        o.Vehicle().Model(),
			Status:       o.Status(),
			RequestedAt:  o.RequestedAt(),
			CompletedAt:  o.CompletedAt(),
			DeliveredAt:  o.DeliveredAt(),
			Total:        o.Total(),
		}
		if c := o.CompletedAt(); c != nil {
			h := round2(c.Sub(o.RequestedAt()).Hours())
			timing.HoursToCompletion = &h
			toCompletion = append(toCompletion, h)
		}
		if d := o.DeliveredAt(); d != nil {
			h := round2(d.Sub(o.RequestedAt()).Hours())
			timing.HoursToDelivery = &h
			toDelivery = append(toDelivery, h)
			if o.Status() == order.Delivered {
				id := o.Vehicle().CustomerID()
				acc, ok := byCustomer[id]
				if !ok {
					acc = &customerAcc{stats: CustomerStats{CustomerID: id, CustomerName: o.Vehicle().CustomerName()}}
					byCustomer[id] = acc
					customerOrder = append(customerOrder, id)
				}
				acc.stats.Orders++
				acc.hours = append(acc.hours, d.Sub(o.RequestedAt()).Hours())
				acc.value = acc.value.Add(o.Total().Decimal())
			}
		}
		summary.Orders = append(summary.Orders, timing)
	}

	sort.SliceStable(summary.Orders, func(i, j int) bool {
		return summary.Orders[i].RequestedAt.After(summary.Orders[j].RequestedAt)
	})

	summary.Stats = GeneralStats{
		Analyzed:                 len(summary.Orders),
		Finalized:                len(toCompletion),
		Delivered:                len(toDelivery),
		AverageHoursToCompletion: round2(mean(toCompletion)),
		AverageHoursToDelivery:   round2(mean(toDelivery)),
	}

	for _, id := range customerOrder {
		acc := byCustomer[id]
		acc.stats.AverageHours = round2(mean(acc.hours))
		acc.stats.AverageValue = acc.value.Div(decimal.NewFromInt(int64(acc.stats.Orders))).Round(2).InexactFloat64()
		summary.Customers = append(summary.Customers, acc.stats)
	}
	sort.SliceStable(summary.Customers, func(i, j int) bool {
		return summary.Customers[i].AverageHours < summary.Customers[j].AverageHours
	})
	return summary
}

func turnaroundOf(o *order.Order, hours float64) OrderTurnaround {
	return OrderTurnaround{
		OrderID:      o.ID(),
		CustomerName: o.Vehicle().CustomerName(),
		Plate:        o.Vehicle().Plate(),
		Model:        o.Vehicle().Model(),
		RequestedAt:  o.RequestedAt(),
		DeliveredAt:  *o.DeliveredAt(),
		Hours:        round2(hours),
		Days:         round2(hours / 24),
		Total:        o.Total(),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
