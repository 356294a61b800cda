package intl

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands the English way so tables line up the same in
// both locales.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatInt formats n with thousand separators: 18248 → "18,248".
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f rounded to precision digits with thousand
// separators: FormatFloat(1234.567, 2) → "1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if precision <= 0 {
		return FormatInt(int64(math.Round(f)))
	}
	s := strconv.FormatFloat(f, 'f', precision, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	n, err := strconv.ParseInt(strings.TrimPrefix(intPart, "-"), 10, 64)
	if err != nil {
		return s
	}
	out := FormatInt(n) + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatAmount renders a money amount: "$1,234.50".
func FormatAmount(f float64) string {
	if f < 0 {
		return "-$" + FormatFloat(-f, 2)
	}
	return "$" + FormatFloat(f, 2)
}

// FormatEnergy renders an energy total in kWh: "1,234 kWh".
func FormatEnergy(f float64) string {
	return FormatFloat(f, 0) + " kWh"
}
