// Package messages holds the JSON payloads relayed from the outbox to Kafka.
package messages

import (
	"encoding/json"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"

	"github.com/pkg/errors"
)

const OrderStatusChangedType = "order.status_changed"

type BudgetStatusChanged struct {
	BudgetID string `json:"budget_id"`
	From     string `json:"from,omitempty"`
	To       string `json:"to"`
}

type OrderStatusChanged struct {
	EventID    string                `json:"event_id"`
	OrderID    string                `json:"order_id"`
	CustomerID string                `json:"customer_id"`
	Plate      string                `json:"plate"`
	From       string                `json:"from"`
	To         string                `json:"to"`
	Total      string                `json:"total"`
	Budgets    []BudgetStatusChanged `json:"budgets,omitempty"`
	Note       string                `json:"note,omitempty"`
	OccurredAt string                `json:"occurred_at"`
}

// FromOrder turns the steps recorded on o into outbox messages keyed by order id.
func FromOrder(o *order.Order) ([]ports.OutboxMessage, error) {
	events := o.DomainEvents()
	out := make([]ports.OutboxMessage, 0, len(events))
	for _, e := range events {
		id := kernel.NewUUID()
		payload := OrderStatusChanged{
			EventID:    id.String(),
			OrderID:    e.OrderID.String(),
			CustomerID: o.Vehicle().CustomerID().String(),
			Plate:      o.Vehicle().Plate(),
			From:       e.From.String(),
			To:         e.To.String(),
			Total:      o.Total().String(),
			Note:       e.Note,
			OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339Nano),
		}
		for _, b := range e.Budgets {
			change := BudgetStatusChanged{BudgetID: b.BudgetID.String(), To: b.To.String()}
			if b.From != order.BudgetUnknown {
				change.From = b.From.String()
			}
			payload.Budgets = append(payload.Budgets, change)
		}

		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "marshal order status changed")
		}
		out = append(out, ports.OutboxMessage{
			ID:         id,
			EventType:  OrderStatusChangedType,
			Key:        e.OrderID.String(),
			Payload:    raw,
			OccurredAt: e.OccurredAt,
		})
	}
	return out, nil
}
