package commands_test

import (
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/customer"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	vehicle := customer.VehicleDetails{Plate: "ABC1D23"}
	services := []kernel.UUID{kernel.NewUUID()}

	tests := []struct {
		name     string
		document string
		vehicle  customer.VehicleDetails
		services []kernel.UUID
		parts    []commands.PartQuantity
		wantErr  error
	}{
		{"valid", "123", vehicle, services, nil, nil},
		{"missing document", " ", vehicle, services, nil, errs.ErrValueIsRequired},
		{"missing plate", "123", customer.VehicleDetails{}, services, nil, errs.ErrValueIsRequired},
		{"no services", "123", vehicle, nil, nil, errs.ErrValueIsRequired},
		{"zero quantity", "123", vehicle, services,
			[]commands.PartQuantity{{PartID: kernel.NewUUID(), Quantity: 0}}, errs.ErrValueIsOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tt.document, tt.vehicle, tt.services, tt.parts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, cmd.Validate())
			assert.Equal(t, "123", cmd.Document())
		})
	}
}

func TestNewCreateOrderCommand_CopiesInputs(t *testing.T) {
	services := []kernel.UUID{kernel.NewUUID()}
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "123",
		customer.VehicleDetails{Plate: "ABC1D23"}, services, nil)
	require.NoError(t, err)

	services[0] = kernel.NewUUID()
	assert.False(t, cmd.ServiceIDs()[0].IsEqual(services[0]))
}

func TestOrderCommands_RejectZeroID(t *testing.T) {
	_, err := commands.NewStartDiagnosisCommand(kernel.UUID{})
	require.Error(t, err)
	_, err = commands.NewDeliverVehicleCommand(kernel.UUID{})
	require.Error(t, err)
	_, err = commands.NewSendBudgetForApprovalCommand(kernel.UUID{}, "")
	require.Error(t, err)
}

func TestNewCancelOrderCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "", "", false)
	require.ErrorIs(t, err, commands.ErrReasonIsRequired)

	cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "customer gave up", "call later", true)
	require.NoError(t, err)
	assert.Equal(t, "customer gave up", cmd.Reason())
	assert.Equal(t, "call later", cmd.Notes())
	assert.True(t, cmd.VehicleReturned())
}

func TestNewRepriceLineCommand(t *testing.T) {
	value, err := kernel.MoneyFromFloat(10)
	require.NoError(t, err)

	_, err = commands.NewRepriceLineCommand(kernel.NewUUID(), "labour", kernel.NewUUID(), value)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewRepriceLineCommand(kernel.NewUUID(), commands.PartLineKind, kernel.NewUUID(), kernel.Money{})
	require.Error(t, err)

	cmd, err := commands.NewRepriceLineCommand(kernel.NewUUID(), commands.PartLineKind, kernel.NewUUID(), value)
	require.NoError(t, err)
	assert.Equal(t, commands.PartLineKind, cmd.Kind())
}

func TestNewRelayOutboxCommand(t *testing.T) {
	_, err := commands.NewRelayOutboxCommand(0, "topic")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	_, err = commands.NewRelayOutboxCommand(10, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewRelayOutboxCommand(10, "topic")
	require.NoError(t, err)
	assert.Equal(t, 10, cmd.BatchSize())
	assert.Equal(t, "topic", cmd.Topic())
}

func TestCommands_ZeroValueIsNotConstructed(t *testing.T) {
	assert.ErrorIs(t, commands.FinishDiagnosisCommand{}.Validate(), commands.ErrFinishDiagnosisCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ResolveBudgetCommand{}.Validate(), commands.ErrResolveBudgetCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ReturnVehicleCommand{}.Validate(), commands.ErrReturnVehicleCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
