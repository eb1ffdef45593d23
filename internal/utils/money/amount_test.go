package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "100", want: "100.00"},
		{name: "two places", input: "99.99", want: "99.99"},
		{name: "one place", input: "0.5", want: "0.50"},
		{name: "trailing zeros beyond scale", input: "1.2300", want: "1.23"},
		{name: "negative", input: "-12.01", want: "-12.01"},
		{name: "exponent", input: "1.5e2", want: "150.00"},
		{name: "surrounding spaces", input: " 7.10 ", want: "7.10"},
		{name: "sub-cent precision", input: "0.001", wantErr: true},
		{name: "garbage", input: "ten dollars", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "out of range", input: "1000000000000000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := MustParse("100.00")
	b := MustParse("99.99")

	assert.Equal(t, "199.99", a.Add(b).String())
	assert.Equal(t, "0.01", a.Sub(b).String())
	assert.Equal(t, "-100.00", a.Neg().String())
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(MustParse("100")))
	assert.True(t, a.Sub(a).IsZero())
	assert.True(t, a.IsPositive())
	assert.True(t, a.Neg().IsNegative())
}

func TestSumIsExact(t *testing.T) {
	// 0.1 + 0.2 drifts in binary floating point; here it must not.
	total := Sum(MustParse("0.10"), MustParse("0.20"))
	assert.True(t, total.Equal(MustParse("0.30")))

	many := Zero()
	for i := 0; i < 1000; i++ {
		many = many.Add(MustParse("0.01"))
	}
	assert.Equal(t, "10.00", many.String())
	assert.Equal(t, "0.00", Sum().String())
}

func TestZeroValueIsUsable(t *testing.T) {
	var a Amount
	assert.True(t, a.IsZero())
	assert.Equal(t, "0.00", a.String())
	assert.Equal(t, "5.00", a.Add(MustParse("5")).String())
}

func TestFromDecimal(t *testing.T) {
	a, err := FromDecimal(decimal.RequireFromString("42.10"))
	require.NoError(t, err)
	assert.Equal(t, "42.10", a.String())
	assert.Equal(t, "42.1", a.Decimal().String())

	_, err = FromDecimal(decimal.RequireFromString("42.105"))
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	type line struct {
		Debit  Amount `json:"debit"`
		Credit Amount `json:"credit"`
	}

	var l line
	require.NoError(t, json.Unmarshal([]byte(`{"debit":"100.10","credit":0.3}`), &l))
	assert.Equal(t, "100.10", l.Debit.String())
	assert.Equal(t, "0.30", l.Credit.String())

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"debit":"100.10","credit":"0.30"}`, string(out))

	var missing line
	require.NoError(t, json.Unmarshal([]byte(`{"debit":null}`), &missing))
	assert.True(t, missing.Debit.IsZero())
	assert.True(t, missing.Credit.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"debit":"1.001"}`), &l))
	assert.Error(t, json.Unmarshal([]byte(`{"debit":true}`), &l))
}
