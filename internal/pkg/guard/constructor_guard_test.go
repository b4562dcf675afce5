package guard_test

import (
	"errors"
	"testing"

	"workshop/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("budget not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInDomainType(t *testing.T) {
	type line struct {
		quantity int
		guard    guard.ConstructorGuard
	}
	errLineNotConstructed := errors.New("line must be created via newLine")

	newLine := func(quantity int) (line, error) {
		if quantity <= 0 {
			return line{}, errors.New("quantity must be positive")
		}
		return line{quantity: quantity, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_validates", func(t *testing.T) {
		l, err := newLine(2)
		require.NoError(t, err)
		require.NoError(t, l.guard.Validate(errLineNotConstructed))
	})

	t.Run("copy_keeps_guard", func(t *testing.T) {
		l, err := newLine(1)
		require.NoError(t, err)
		c := l
		require.NoError(t, c.guard.Validate(errLineNotConstructed))
	})

	t.Run("zero_value_fails", func(t *testing.T) {
		var l line
		assert.Equal(t, errLineNotConstructed, l.guard.Validate(errLineNotConstructed))
	})
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
