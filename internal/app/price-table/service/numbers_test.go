package price_table_service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRange(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		label  string
		lo, hi float64
		ok     bool
	}{
		{"1-99", 1, 99, true},
		{"1 – 99", 1, 99, true},
		{"100—499", 100, 499, true},
		{"1 000-4 999", 1000, 4999, true},
		{"500+", 500, inf, true},
		{"500 +", 500, inf, true},
		{"500-", 500, inf, true},
		{"500", 500, inf, true},
		{"99-1", 0, 0, false},
		{"-5", 0, 0, false},
		{"no 100", 0, 0, false},
		{"", 0, 0, false},
		{"a-b", 0, 0, false},
		{"1,000-4,999", 1000, 4999, true},
		{"1.000-4.999", 1000, 4999, true},
		{"1,000+", 1000, inf, true},
		{"5,000 – 9,999", 5000, 9999, true},
		{"10.000.000+", 10000000, inf, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			lo, hi, ok := parseRange(tt.label)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.lo, lo)
				assert.Equal(t, tt.hi, hi)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,000", 1000, true},
		{"1.000", 1000, true},
		{"12,500,000", 12500000, true},
		{"1 000", 1000, true},
		{"0,5", 0.5, true},
		{"2.5", 2.5, true},
		{"1,000.5", 1000.5, true},
		{"1,00", 1, true},
		{"-1,000", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseQuantity(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseUpperBound(t *testing.T) {
	for _, s := range []string{"", "  ", "inf", "∞", "+", "Infinity"} {
		v, ok := parseUpperBound(s)
		assert.True(t, ok, s)
		assert.True(t, math.IsInf(v, 1), s)
	}

	v, ok := parseUpperBound("99")
	assert.True(t, ok)
	assert.Equal(t, 99.0, v)

	_, ok = parseUpperBound("-1")
	assert.False(t, ok)
	_, ok = parseUpperBound("daudz")
	assert.False(t, ok)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0.50", "0.5", true},
		{"0,50", "0.5", true},
		{"€ 1,20", "1.2", true},
		{"2.40 EUR", "2.4", true},
		{"1 250,00", "1250", true},
		{"1,250.75", "1250.75", true},
		{"0", "0", true},
		{"-0.10", "", false},
		{"", "", false},
		{"abc", "", false},
		{"NaN", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parsePrice(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestParseNumber_RejectsNonFinite(t *testing.T) {
	for _, s := range []string{"NaN", "Inf", "-Inf", "1e999"} {
		_, ok := parseNumber(s)
		assert.False(t, ok, s)
	}
}
