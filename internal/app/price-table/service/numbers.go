package price_table_service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// тысячные разделители и неразрывные пробелы
	spaceStripper = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "'", "")
	dashes        = strings.NewReplacer("–", "-", "—", "-", "‒", "-")
	currency      = strings.NewReplacer("€", "", "$", "", "EUR", "", "eur", "", "Eur", "")

	// "1,000", "12.500.000": one separator repeated before every three digits
	thousandsGroups = regexp.MustCompile(`^\d{1,3}(?:(?:,\d{3})+|(?:\.\d{3})+)$`)
	groupSeparators = strings.NewReplacer(",", "", ".", "")
)

// parseNumber accepts "1 000", "0,5", "1,000.50"; NaN and infinities are rejected.
func parseNumber(s string) (float64, bool) {
	s = normalizeDecimal(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func normalizeDecimal(s string) string {
	s = spaceStripper.Replace(strings.TrimSpace(s))
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}
	return s
}

// parseQuantity parses a non-negative finite bound. Digit groups of three
// ("1,000", "1.000") are thousands, never a decimal fraction.
func parseQuantity(s string) (float64, bool) {
	s = spaceStripper.Replace(strings.TrimSpace(s))
	if thousandsGroups.MatchString(s) {
		s = groupSeparators.Replace(s)
	}
	v, ok := parseNumber(s)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// parseUpperBound is parseQuantity where a blank or infinity marker means unbounded.
func parseUpperBound(s string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "+", "∞", "inf", "+inf", "infinity":
		return math.Inf(1), true
	}
	return parseQuantity(s)
}

// parsePrice parses a non-negative unit price, tolerating currency markers.
func parsePrice(s string) (decimal.Decimal, bool) {
	s = normalizeDecimal(currency.Replace(s))
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseRange reads a quantity label: "1-99", "1 – 99", "500+", "500-" or a single "500".
// A single bound or a missing upper bound is open-ended.
func parseRange(label string) (lo, hi float64, ok bool) {
	s := spaceStripper.Replace(dashes.Replace(strings.TrimSpace(label)))
	if s == "" {
		return 0, 0, false
	}

	if strings.HasSuffix(s, "+") {
		lo, ok = parseQuantity(strings.TrimSuffix(s, "+"))
		return lo, math.Inf(1), ok
	}

	if idx := strings.Index(s, "-"); idx > 0 {
		lo, ok = parseQuantity(s[:idx])
		if !ok {
			return 0, 0, false
		}
		hi, ok = parseUpperBound(s[idx+1:])
		if !ok || lo > hi {
			return 0, 0, false
		}
		return lo, hi, true
	}

	lo, ok = parseQuantity(s)
	return lo, math.Inf(1), ok
}
