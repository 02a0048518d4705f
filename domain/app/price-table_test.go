package app

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(lo, hi float64, mode, price string) PriceRow {
	return PriceRow{MinQty: lo, MaxQty: hi, Mode: mode, UnitPrice: decimal.RequireFromString(price)}
}

func TestPriceTable_LookupFirstMatch(t *testing.T) {
	inf := math.Inf(1)
	table := NewPriceTable([]PriceRow{
		row(1, 99, "A3", "0.50"),
		row(50, 150, "A3", "0.45"),
		row(100, inf, "A3", "0.40"),
		row(1, inf, "A4", "0.30"),
	}, nil)

	got, ok := table.Lookup("A3", 75)
	require.True(t, ok)
	assert.Equal(t, "0.5", got.UnitPrice.String())

	got, ok = table.Lookup("A3", 120)
	require.True(t, ok)
	assert.Equal(t, "0.45", got.UnitPrice.String(), "earlier overlapping band wins")

	got, ok = table.Lookup("A3", 1e6)
	require.True(t, ok)
	assert.Equal(t, "0.4", got.UnitPrice.String())

	_, ok = table.Lookup("A5", 10)
	assert.False(t, ok)
	_, ok = table.Lookup("A3", 0)
	assert.False(t, ok)
}

func TestPriceTable_IsImmutable(t *testing.T) {
	rows := []PriceRow{row(1, 10, "A3", "1")}
	examples := []PricingExample{{Question: "q", Wrong: "w", Correct: "c"}}
	table := NewPriceTable(rows, examples)

	rows[0].Mode = "changed"
	examples[0].Correct = "changed"
	assert.Equal(t, "A3", table.Rows()[0].Mode)
	assert.Equal(t, "c", table.Examples()[0].Correct)

	out := table.Rows()
	out[0].Mode = "changed"
	assert.Equal(t, "A3", table.Rows()[0].Mode)
}

func TestPriceTable_Modes(t *testing.T) {
	table := NewPriceTable([]PriceRow{
		row(1, 9, "SRA3", "1"),
		row(1, 9, "A3", "1"),
		row(10, 19, "SRA3", "1"),
	}, nil)
	assert.Equal(t, []string{"SRA3", "A3"}, table.Modes())
	assert.Equal(t, 3, table.Len())
	assert.Empty(t, NewPriceTable(nil, nil).Modes())
}

func TestPriceTable_BandIssues(t *testing.T) {
	inf := math.Inf(1)

	clean := NewPriceTable([]PriceRow{
		row(100, inf, "A3", "0.40"),
		row(1, 99, "A3", "0.50"),
	}, nil)
	assert.Empty(t, clean.BandIssues())

	messy := NewPriceTable([]PriceRow{
		row(5, 99, "A3", "0.50"),
		row(90, 199, "A3", "0.45"),
		row(300, 499, "A3", "0.40"),
	}, nil)
	assert.Equal(t, []string{
		`mode "A3": no band below 5`,
		`mode "A3": bands 5-99 and 90-199 overlap, 90 is priced at 0.5`,
		`mode "A3": gap between 199 and 300`,
		`mode "A3": no band above 499`,
	}, messy.BandIssues())
}

func TestPriceTable_BandIssuesNameFirstListedPrice(t *testing.T) {
	inf := math.Inf(1)
	table := NewPriceTable([]PriceRow{
		row(50, inf, "A4", "0.45"),
		row(1, 99, "A4", "0.50"),
	}, nil)

	assert.Equal(t, []string{
		`mode "A4": bands 1-99 and 50-∞ overlap, 50 is priced at 0.45`,
	}, table.BandIssues())
}
