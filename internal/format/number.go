// Package format renders decimal strings for display.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Style selects how a number is rendered.
type Style int

const (
	StylePlain Style = iota
	StyleCurrency
	StylePercent
)

// Placeholder is returned for values that cannot be parsed.
const Placeholder = "--"

// Options controls Number. A zero ScalingFactor means 1.
type Options struct {
	Style         Style
	MinDecimals   int
	MaxDecimals   int
	ScalingFactor float64
}

var printer = message.NewPrinter(language.English)

// Number formats value with thousands separators. The infinity marker is
// passed through; unparseable input renders as Placeholder.
func Number(value string, opts Options) string {
	value = strings.TrimSpace(value)
	if value == "∞" {
		if opts.Style == StylePercent {
			return "∞%"
		}
		return value
	}

	d, err := decimal.NewFromString(strings.TrimPrefix(value, "$"))
	if err != nil {
		return Placeholder
	}
	if opts.ScalingFactor != 0 {
		d = d.Mul(decimal.NewFromFloat(opts.ScalingFactor))
	}

	maxDecimals := opts.MaxDecimals
	minDecimals := opts.MinDecimals
	if maxDecimals == 0 {
		maxDecimals = 2
	}
	if opts.Style == StyleCurrency && minDecimals == 0 {
		minDecimals = 2
	}
	if minDecimals > maxDecimals {
		minDecimals = maxDecimals
	}

	f, _ := d.Round(int32(maxDecimals)).Float64()
	text := printer.Sprint(number.Decimal(f,
		number.MaxFractionDigits(maxDecimals),
		number.MinFractionDigits(minDecimals),
	))

	switch opts.Style {
	case StyleCurrency:
		if strings.HasPrefix(text, "-") {
			return "-$" + strings.TrimPrefix(text, "-")
		}
		return "$" + text
	case StylePercent:
		return text + "%"
	default:
		return text
	}
}

// Amount is Number with plain style and default precision.
func Amount(value string) string {
	return Number(value, Options{})
}

// USD is Number with currency style.
func USD(value string) string {
	return Number(value, Options{Style: StyleCurrency})
}
