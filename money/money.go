// Package money provides fixed-point currency arithmetic with two decimal
// places. All balances, bets and winnings in the system are Money values;
// float64 is never used for amounts. Multiplication by a payout rate keeps
// full precision and must be followed by a single Quantize call before the
// value is persisted or returned to a caller.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount cannot be parsed or violates
// a positivity requirement.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// Money is an exact decimal amount. The zero value is 0.00.
type Money struct {
	dec decimal.Decimal
}

// Zero returns a Money of 0.00.
func Zero() Money {
	return Money{}
}

// FromDecimal wraps an arbitrary-precision decimal as Money.
func FromDecimal(d decimal.Decimal) Money {
	return Money{dec: d}
}

// FromCents builds a Money from an integer number of cents.
func FromCents(cents int64) Money {
	return Money{dec: decimal.New(cents, -2)}
}

// Parse builds a Money from a decimal string such as "10.00".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{dec: d}, nil
}

// MustParse is Parse that panics on error. Intended for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParsePositive is Parse that additionally rejects zero and negative amounts.
func ParsePositive(s string) (Money, error) {
	m, err := Parse(s)
	if err != nil {
		return Money{}, err
	}
	if !m.IsPositive() {
		return Money{}, fmt.Errorf("%w: %q must be positive", ErrInvalidAmount, s)
	}
	return m, nil
}

func (m Money) Add(o Money) Money {
	return Money{dec: m.dec.Add(o.dec)}
}

func (m Money) Sub(o Money) Money {
	return Money{dec: m.dec.Sub(o.dec)}
}

func (m Money) Neg() Money {
	return Money{dec: m.dec.Neg()}
}

// MulRate multiplies the amount by a payout rate at full precision. The
// result is intentionally not rounded; callers apply Quantize exactly once
// when the computation is complete.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{dec: m.dec.Mul(rate)}
}

// Quantize rounds to two decimal places using banker's rounding
// (round-half-even). This is the single rounding rule of the system.
func (m Money) Quantize() Money {
	return Money{dec: m.dec.RoundBank(2)}
}

func (m Money) Cmp(o Money) int {
	return m.dec.Cmp(o.dec)
}

func (m Money) Equal(o Money) bool {
	return m.dec.Equal(o.dec)
}

func (m Money) LessThan(o Money) bool {
	return m.dec.LessThan(o.dec)
}

func (m Money) GreaterThan(o Money) bool {
	return m.dec.GreaterThan(o.dec)
}

func (m Money) IsZero() bool {
	return m.dec.IsZero()
}

func (m Money) IsPositive() bool {
	return m.dec.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

// Decimal returns the underlying arbitrary-precision value.
func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

// Cents returns the amount as whole cents, truncating any sub-cent
// precision. Quantized amounts round-trip exactly through FromCents.
func (m Money) Cents() int64 {
	return m.dec.Shift(2).IntPart()
}

// String formats the amount with exactly two decimal places.
func (m Money) String() string {
	return m.dec.StringFixed(2)
}

// Value implements driver.Valuer so Money binds as a SQL numeric.
func (m Money) Value() (driver.Value, error) {
	return m.dec.Value()
}

// Scan implements sql.Scanner.
func (m *Money) Scan(value any) error {
	return m.dec.Scan(value)
}

// MarshalJSON renders the amount as a JSON string with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or number.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.dec.UnmarshalJSON(data)
}
