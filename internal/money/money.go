// Package money provides exact fixed-point currency arithmetic.
//
// Amounts are backed by decimal values, never binary floats. Rounding is
// round-half-up to 2 fraction digits (currency subunits) and is applied
// explicitly via Round, so intermediate results stay exact.
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

const scale = 2

// Money is an exact decimal currency amount.
type Money struct {
	d decimal.Decimal
}

func Zero() Money {
	return Money{}
}

func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// FromString parses a decimal string such as "90.00".
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money value %q: %w", value, err)
	}
	return Money{d: d}, nil
}

// MustFromString is for constants in tests and defaults.
func MustFromString(value string) Money {
	m, err := FromString(value)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// MulDecimal multiplies the amount by a scalar, exactly.
func (m Money) MulDecimal(q decimal.Decimal) Money {
	return Money{d: m.d.Mul(q)}
}

// Percent returns amount * p / 100 without rounding.
func (m Money) Percent(p decimal.Decimal) Money {
	return Money{d: m.d.Mul(p).Div(decimal.NewFromInt(100))}
}

// Round rounds half-up to currency precision. Amounts in this domain are
// non-negative, so decimal's round-half-away-from-zero is exactly half-up.
func (m Money) Round() Money {
	return Money{d: m.d.Round(scale)}
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// String renders with exactly 2 fraction digits, e.g. "115.00".
func (m Money) String() string {
	return m.d.StringFixed(scale)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.d = d
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	m.d = d
	return nil
}
