package calc

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// ErrorToken is shown in place of a number after an invalid computation.
	ErrorToken = "Error"

	// DefaultDivisionPrecision is the number of fractional digits kept by a
	// quotient.
	DefaultDivisionPrecision int32 = 38

	maxSignificantDigits = 38
	fixedFractionDigits  = 4
)

var (
	hundred = decimal.NewFromInt(100)

	// Results at or beyond these bounds are rendered with at most
	// fixedFractionDigits fractional digits.
	largeThreshold = decimal.New(1, 10)
	smallThreshold = decimal.New(1, -10)

	// maxMagnitude bounds what the engine treats as a finite result.
	maxMagnitude = decimal.New(1, 166)
)

// FormatResult renders a computed value for the display.
//
// Magnitudes >= 1e10 or below 1e-10 (but not zero) are rounded half-to-even
// to four fractional digits with trailing zeros trimmed; everything else
// uses the canonical decimal string. Digit grouping is never applied.
func FormatResult(v decimal.Decimal) string {
	abs := v.Abs()
	if abs.GreaterThanOrEqual(largeThreshold) || (!v.IsZero() && abs.LessThan(smallThreshold)) {
		return v.RoundBank(fixedFractionDigits).String()
	}
	return v.String()
}

// parseDisplay reads the display text as a number. The display may end with
// a bare decimal point ("5.", "-0.") while an operand is being typed.
func parseDisplay(display string) decimal.Decimal {
	s := strings.TrimSuffix(display, ".")
	if s == "" || s == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// roundSignificant rounds v to at most digits significant digits.
func roundSignificant(v decimal.Decimal, digits int) decimal.Decimal {
	if v.IsZero() {
		return decimal.Zero
	}
	n := v.NumDigits()
	if n <= digits {
		return v
	}
	// v = coefficient * 10^exp, so the current scale is -exp.
	places := -v.Exponent() - int32(n-digits)
	return v.RoundBank(places)
}
