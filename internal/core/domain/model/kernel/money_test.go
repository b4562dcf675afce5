package kernel_test

import (
	"testing"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("rounds to cents", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("10.005"))

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "10.01", m.String())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var m kernel.Money

		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, m.Validate())
	})
}

func TestMoneyFromString(t *testing.T) {
	m, err := kernel.MoneyFromString("100")
	require.NoError(t, err)
	assert.Equal(t, "100.00", m.String())

	_, err = kernel.MoneyFromString("ten")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_Arithmetic(t *testing.T) {
	service, err := kernel.MoneyFromString("100")
	require.NoError(t, err)
	part, err := kernel.MoneyFromString("12.35")
	require.NoError(t, err)

	total := kernel.ZeroMoney().Add(service).Add(part.Times(3))

	assert.Equal(t, "137.05", total.String())
	assert.InDelta(t, 137.05, total.Float64(), 0.0001)
	assert.True(t, service.LessThan(total))
	assert.True(t, total.IsEqual(total.Add(kernel.ZeroMoney())))
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := kernel.MoneyFromFloat(49.9)
	require.NoError(t, err)
	assert.Equal(t, "49.90", m.String())
}
