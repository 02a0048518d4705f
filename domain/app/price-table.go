package app

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// PriceRow is one quantity band of a pricing mode. MaxQty is +Inf for open-ended bands.
type PriceRow struct {
	MinQty    float64
	MaxQty    float64
	Mode      string
	UnitPrice decimal.Decimal
}

func (this PriceRow) Unbounded() bool {
	return math.IsInf(this.MaxQty, 1)
}

// Contains reports whether qty falls inside the inclusive band.
func (this PriceRow) Contains(qty float64) bool {
	return qty >= this.MinQty && qty <= this.MaxQty
}

// PricingExample is a worked correction shown to the model next to the table.
type PricingExample struct {
	Question string
	Wrong    string
	Correct  string
}

// PriceTable is built once at startup and never mutated; accessors return copies.
type PriceTable struct {
	rows     []PriceRow
	examples []PricingExample
}

func NewPriceTable(rows []PriceRow, examples []PricingExample) *PriceTable {
	return &PriceTable{
		rows:     append([]PriceRow(nil), rows...),
		examples: append([]PricingExample(nil), examples...),
	}
}

func (this *PriceTable) Len() int {
	return len(this.rows)
}

func (this *PriceTable) Rows() []PriceRow {
	return append([]PriceRow(nil), this.rows...)
}

func (this *PriceTable) Examples() []PricingExample {
	return append([]PricingExample(nil), this.examples...)
}

// Modes lists distinct modes in table order.
func (this *PriceTable) Modes() []string {
	seen := make(map[string]struct{}, len(this.rows))
	modes := make([]string, 0)
	for _, r := range this.rows {
		if _, ok := seen[r.Mode]; ok {
			continue
		}
		seen[r.Mode] = struct{}{}
		modes = append(modes, r.Mode)
	}
	return modes
}

// Lookup returns the first row in table order matching mode and qty.
func (this *PriceTable) Lookup(mode string, qty float64) (PriceRow, bool) {
	for _, r := range this.rows {
		if r.Mode == mode && r.Contains(qty) {
			return r, true
		}
	}
	return PriceRow{}, false
}

// BandIssues describes overlaps and gaps between bands of the same mode.
// An overlap names the price Lookup resolves it to.
// Quantities are treated as whole units, so 1-99 followed by 100-... is gapless.
func (this *PriceTable) BandIssues() []string {
	byMode := make(map[string][]PriceRow)
	for _, r := range this.rows {
		byMode[r.Mode] = append(byMode[r.Mode], r)
	}

	var issues []string
	for _, mode := range this.Modes() {
		bands := append([]PriceRow(nil), byMode[mode]...)
		sort.SliceStable(bands, func(i, j int) bool { return bands[i].MinQty < bands[j].MinQty })

		if bands[0].MinQty > 1 {
			issues = append(issues, fmt.Sprintf("mode %q: no band below %s", mode, formatQty(bands[0].MinQty)))
		}
		for i := 1; i < len(bands); i++ {
			prev, cur := bands[i-1], bands[i]
			switch {
			case cur.MinQty <= prev.MaxQty:
				winner, _ := this.Lookup(mode, cur.MinQty)
				issues = append(issues, fmt.Sprintf("mode %q: bands %s-%s and %s-%s overlap, %s is priced at %s",
					mode, formatQty(prev.MinQty), formatQty(prev.MaxQty), formatQty(cur.MinQty), formatQty(cur.MaxQty),
					formatQty(cur.MinQty), winner.UnitPrice.String()))
			case cur.MinQty > prev.MaxQty+1:
				issues = append(issues, fmt.Sprintf("mode %q: gap between %s and %s",
					mode, formatQty(prev.MaxQty), formatQty(cur.MinQty)))
			}
		}
		if last := bands[len(bands)-1]; !last.Unbounded() {
			issues = append(issues, fmt.Sprintf("mode %q: no band above %s", mode, formatQty(last.MaxQty)))
		}
	}
	return issues
}

func formatQty(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%g", v)
}
