package kernel

import (
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromString")

// Money is a non-negative amount with two decimal places. Applied line values
// and derived budget totals are expressed in Money so sums never drift.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

const moneyScale = 2

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}
	return Money{
		amount: amount.Round(moneyScale),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MoneyFromFloat is used by transport adapters; prefer MoneyFromString for exact input.
func MoneyFromFloat(f float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(f))
}

// ZeroMoney is the neutral element for sums.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Times multiplies by a quantity, e.g. a part unit value by the number of units.
func (m Money) Times(quantity int) Money {
	return Money{
		amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(moneyScale),
		guard:  guard.NewConstructorGuard(),
	}
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
