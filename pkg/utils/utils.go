package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	dateLabelLayout = "01/02/06"
	hourLabelLayout = "3 PM"

	maxAmountFractionDigits = 3
)

var (
	printer    = message.NewPrinter(language.English)
	whitespace = regexp.MustCompile(`\s+`)
)

// ParseAmount parses a currency amount, ignoring grouping separators ("1,234.50")
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return decimal.NewFromString(cleaned)
}

// CalculateBaseAmount returns principal plus interest, where rate is a percentage.
// Formula: principal * (1 + rate/100), rounded to 2 decimal places
func CalculateBaseAmount(principal, ratePercent decimal.Decimal) decimal.Decimal {
	interest := principal.Mul(ratePercent).Div(decimal.NewFromInt(100))
	return principal.Add(interest).Round(2)
}

// ParseDate parses an ISO YYYY-MM-DD date at midnight in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
}

// CombineDateTime joins an ISO date and an HH:MM or HH:MM:SS time of day into one instant in loc
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)

	layout := "2006-01-02 15:04"
	if strings.Count(clock, ":") == 2 {
		layout = "2006-01-02 15:04:05"
	}

	t, err := time.ParseInLocation(layout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q %q: %w", date, clock, err)
	}
	return t, nil
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateLabel formats the calendar date of t as MM/DD/YY
func DateLabel(t time.Time) string {
	return t.Format(dateLabelLayout)
}

// HourLabel formats t as an hour-only 12-hour clock label, e.g. "12 am" or "5 pm"
func HourLabel(t time.Time) string {
	return strings.ToLower(t.Format(hourLabelLayout))
}

// FormatAmount formats d with en-US digit grouping and at most 3 fraction digits ("5,500", "1,234.5", "1.005").
// The printer groups only the integer part; fraction digits are copied from d.
func FormatAmount(d decimal.Decimal) string {
	rounded := d.Round(maxAmountFractionDigits)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	whole := rounded.Truncate(0)
	out := sign + printer.Sprint(number.Decimal(whole.IntPart()))
	if fraction := rounded.Sub(whole); !fraction.IsZero() {
		out += strings.TrimPrefix(fraction.String(), "0")
	}
	return out
}

// FileSafeName replaces runs of whitespace with underscores
func FileSafeName(s string) string {
	return whitespace.ReplaceAllString(s, "_")
}
