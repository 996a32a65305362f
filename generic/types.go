/*
Package generic provides the domain-agnostic value types of the payroll engine.

PURPOSE:
  Money, hours, dates and periods are shared by every payroll component.
  Keeping them here means the payroll package only deals with business rules,
  never with parsing or rounding details.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money arithmetic on decimal.Decimal (never float64)
  - Two rounding policies: Floor2 for intermediate terms, Round2 for reported values
  - Locale-tolerant numeric parsing ("1,5" and "1.5" are the same number)
  - Comma-decimal formatting used by attribute queries and reports

USAGE:
  rate, err := generic.ParseAmount("taxa", "10,50")
  base := generic.Floor2(salary.Mul(decimal.NewFromInt(12)).Div(decimal.NewFromInt(26)))
  generic.FormatMoney(base) // "1384,61"

SEE ALSO:
  - time.go: Date-only TimePoint and strict date parsing
  - errors.go: Validation sentinels returned by the parsers
*/
package generic

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Exact base-10 fixed point
// =============================================================================

// Floor2 rounds toward negative infinity at two decimal places.
func Floor2(d decimal.Decimal) decimal.Decimal { return d.RoundFloor(2) }

// Round2 rounds half away from zero at two decimal places (half-up for pay values).
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// =============================================================================
// PARSING - Locale tolerant numbers
// =============================================================================

// ParseNumber accepts either ',' or '.' as decimal separator.
// Blank input fails with ErrFieldRequired, anything else unparseable with ErrNotNumeric.
func ParseNumber(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &FieldError{Field: field, Err: ErrFieldRequired}
	}
	if strings.Count(s, ",")+strings.Count(s, ".") > 1 {
		return decimal.Zero, &FieldError{Field: field, Err: ErrNotNumeric}
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Err: ErrNotNumeric}
	}
	return d, nil
}

// ParseAmount parses a non-negative number (salaries, rates, dues).
func ParseAmount(field, s string) (decimal.Decimal, error) {
	d, err := ParseNumber(field, s)
	if err != nil {
		return d, err
	}
	if d.IsNegative() {
		return decimal.Zero, &FieldError{Field: field, Err: ErrNegative}
	}
	return d, nil
}

// ParsePositive parses a strictly positive number (hours, sale values, charges).
func ParsePositive(field, s string) (decimal.Decimal, error) {
	d, err := ParseNumber(field, s)
	if err != nil {
		return d, err
	}
	if !d.IsPositive() {
		return decimal.Zero, &FieldError{Field: field, Err: ErrNotPositive}
	}
	return d, nil
}

// ParseBool accepts only "true" and "false".
func ParseBool(field, s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "":
		return false, &FieldError{Field: field, Err: ErrFieldRequired}
	}
	return false, &FieldError{Field: field, Err: ErrInvalidBool}
}

// RequireText rejects blank required text fields.
func RequireText(field, s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", &FieldError{Field: field, Err: ErrFieldRequired}
	}
	return s, nil
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatMoney renders two decimals with a comma separator: 1384.6 -> "1384,60".
func FormatMoney(d decimal.Decimal) string {
	return strings.Replace(Round2(d).StringFixed(2), ".", ",", 1)
}

// FormatHours drops trailing zeros: 8 -> "8", 2.5 -> "2,5".
func FormatHours(d decimal.Decimal) string {
	return strings.Replace(Round2(d).String(), ".", ",", 1)
}
