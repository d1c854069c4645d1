// Package money provides decimal-safe arithmetic and formatting for
// tax-exclusive (HT) and tax-inclusive (TTC) amounts.
//
// Amounts are held as decimals end to end; binary floating point is never
// used, so two-decimal-place amounts survive arithmetic exactly. Conversion
// to a display string happens only at the presentation boundary via
// FormatCurrency.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the suffix appended by FormatCurrency. The remote service is
// single-currency.
const Currency = "€"

// ErrInvalidAmount is returned when an amount is negative or when a
// tax-inclusive total is smaller than its tax-exclusive counterpart.
var ErrInvalidAmount = errors.New("invalid amount")

// ComputeTax returns the tax portion of an invoice, totalTTC - totalHT.
//
// It fails with ErrInvalidAmount when either total is negative or when
// totalTTC < totalHT.
func ComputeTax(totalHT, totalTTC decimal.Decimal) (decimal.Decimal, error) {
	if totalHT.IsNegative() || totalTTC.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: totals must not be negative (HT=%s, TTC=%s)",
			ErrInvalidAmount, totalHT, totalTTC)
	}
	if totalTTC.LessThan(totalHT) {
		return decimal.Zero, fmt.Errorf("%w: TTC %s is below HT %s",
			ErrInvalidAmount, totalTTC, totalHT)
	}
	return totalTTC.Sub(totalHT), nil
}

// ParseAmount parses a user-entered amount. It accepts "100", "100.5" or
// "100.50" with an optional comma decimal separator, and rejects negative
// values and anything finer than two decimal places.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
	}
	return d, nil
}

// FormatCurrency renders an amount with exactly two decimal places and the
// currency suffix, e.g. "1234.50 €".
func FormatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + Currency
}

// RatePercent derives the tax rate implied by a tax amount over a
// tax-exclusive base, rounded to two decimal places. It is display-only:
// stored totals stay authoritative and are never recomputed from it.
// A zero base yields a zero rate.
func RatePercent(totalHT, tax decimal.Decimal) decimal.Decimal {
	if totalHT.IsZero() {
		return decimal.Zero
	}
	return tax.Mul(decimal.NewFromInt(100)).DivRound(totalHT, 2)
}
