// Package money provides the fixed-point amount type used for every ledger
// figure. Amounts carry exactly two fractional digits (minor units) and are
// compared by exact equality, never with a tolerance.
package money

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits every Amount carries.
const Scale int32 = 2

// maxAbs is the largest magnitude storable in a NUMERIC(20,2) column.
var maxAbs = decimal.New(1, 18)

// Amount is a signed monetary value in minor units.
// The zero value is 0.00 and ready to use.
type Amount struct {
	d decimal.Decimal
}

// Zero returns 0.00.
func Zero() Amount {
	return Amount{d: decimal.New(0, -Scale)}
}

// Parse converts a decimal string into an Amount without losing precision.
// Inputs with more than two significant fractional digits are rejected.
func Parse(s string) (Amount, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Amount{}, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d)
}

// MustParse is Parse for constants and tests; it panics on invalid input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromDecimal converts d exactly. It fails if d has sub-cent precision or is
// outside the storable range.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if !d.Equal(d.Truncate(Scale)) {
		return Amount{}, fmt.Errorf("amount %s has more than %d fractional digits", d.String(), Scale)
	}
	if d.Abs().GreaterThanOrEqual(maxAbs) {
		return Amount{}, fmt.Errorf("amount %s is out of range", d.String())
	}
	return Amount{d: d.Round(Scale)}, nil
}

// Sum adds all amounts.
func Sum(amounts ...Amount) Amount {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }
func (a Amount) Neg() Amount { return Amount{d: a.d.Neg()} }

// Cmp returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }
func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }
func (a Amount) IsZero() bool { return a.d.IsZero() }
func (a Amount) IsPositive() bool { return a.d.IsPositive() }
func (a Amount) IsNegative() bool { return a.d.IsNegative() }
func (a Amount) Decimal() decimal.Decimal { return a.d.Round(Scale) }

// String formats the amount with exactly two fractional digits, e.g. "100.00".
func (a Amount) String() string {
	return a.d.StringFixed(Scale)
}

// MarshalJSON encodes the amount as a JSON string to keep it out of float64.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a JSON string ("12.34") or a JSON number (12.34).
// null leaves the amount at zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Zero()
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
