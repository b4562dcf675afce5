package messages_test

import (
	"encoding/json"
	"testing"
	"time"

	"workshop/internal/adapters/out/messages"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	vehicle, err := order.NewVehicle(kernel.NewUUID(), kernel.NewUUID(), "Ana Souza", "ABC1D23", "Fiat Uno")
	require.NoError(t, err)
	price, err := kernel.MoneyFromString("150.00")
	require.NoError(t, err)
	line, err := order.NewServiceLine(kernel.NewUUID(), "Oil change", price, 60)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), vehicle, []order.ServiceLine{line}, nil, time.Now().UTC())
	require.NoError(t, err)
	return o
}

func TestFromOrder_NoEvents(t *testing.T) {
	msgs, err := messages.FromOrder(newOrder(t))
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestFromOrder_StatusChangeWithBudget(t *testing.T) {
	o := newOrder(t)
	now := time.Now().UTC()
	require.NoError(t, o.StartDiagnosis(now))

	msgs, err := messages.FromOrder(o)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	msg := msgs[0]
	assert.Equal(t, messages.OrderStatusChangedType, msg.EventType)
	assert.Equal(t, o.ID().String(), msg.Key)
	assert.Equal(t, now, msg.OccurredAt)

	var payload messages.OrderStatusChanged
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, msg.ID.String(), payload.EventID)
	assert.Equal(t, order.Received.String(), payload.From)
	assert.Equal(t, order.Diagnosing.String(), payload.To)
	assert.Equal(t, "150.00", payload.Total)
	assert.Equal(t, "ABC1D23", payload.Plate)
	require.Len(t, payload.Budgets, 1)
	assert.Empty(t, payload.Budgets[0].From)
	assert.Equal(t, order.BudgetCreated.String(), payload.Budgets[0].To)
}
