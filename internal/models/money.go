package models

import (
	"ebuy/internal/biddingerrors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const monetaryPrecision int32 = 4 // amounts are compared at 0.0001 precision

// Money is a non-negative monetary amount with exact comparison semantics
type Money struct {
	d decimal.Decimal
}

// NewMoney converts a float amount into Money. Non-finite values and values
// that are not positive after rounding are rejected with ErrInvalidAmount.
func NewMoney(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, fmt.Errorf("%w: non-finite amount", biddingerrors.ErrInvalidAmount)
	}

	d := decimal.NewFromFloat(amount).Round(monetaryPrecision)
	if !d.IsPositive() {
		return Money{}, fmt.Errorf("%w: %s is not positive", biddingerrors.ErrInvalidAmount, d.String())
	}
	return Money{d: d}, nil
}

// ParseMoney parses a decimal string such as "10.50"
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %v", biddingerrors.ErrInvalidAmount, err)
	}
	d = d.Round(monetaryPrecision)
	if !d.IsPositive() {
		return Money{}, fmt.Errorf("%w: %s is not positive", biddingerrors.ErrInvalidAmount, d.String())
	}
	return Money{d: d}, nil
}

func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) IsZero() bool { return m.d.IsZero() }

// Float64 returns the nearest float representation, for display only
func (m Money) Float64() float64 { return m.d.InexactFloat64() }

func (m Money) String() string { return m.d.StringFixed(2) }

func (m Money) MarshalJSON() ([]byte, error) { return m.d.MarshalJSON() }

func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	if d.IsNegative() {
		return fmt.Errorf("%w: negative amount %s", biddingerrors.ErrInvalidAmount, d.String())
	}
	m.d = d.Round(monetaryPrecision)
	return nil
}
