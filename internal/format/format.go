// Package format renders amounts and dates for display.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats amount in the ISO 4217 currency code, e.g. "$1,234.50" or
// "-€3.00". Unknown codes fall back to USD. The number of decimals follows
// the currency's standard rounding (JPY has none). Symbols come from CLDR
// for American English, so CAD renders as "CA$" and a code without a symbol
// is printed followed by a space.
func Currency(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil || unit == (currency.Unit{}) {
		unit = currency.USD
	}
	scale, _ := currency.Standard.Rounding(unit)

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	d := decimal.NewFromFloat(amount).Round(int32(scale))
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole := d.Truncate(0)
	out := printer.Sprintf("%d", whole.IntPart())
	if scale > 0 {
		frac := d.Sub(whole).StringFixed(int32(scale))
		out += frac[strings.IndexByte(frac, '.'):]
	}

	symbol := printer.Sprint(currency.Symbol(unit))
	if symbol == unit.String() {
		symbol += " "
	}
	return sign + symbol + out
}

type DateStyle string

const (
	Short    DateStyle = "short"
	Long     DateStyle = "long"
	Relative DateStyle = "relative"
)

// Date formats t as "Jan 2, 2006" (short), "Monday, January 2, 2006" (long)
// or relative to now ("Today", "In 3 days", "2 days ago"), falling back to
// the short form beyond a week.
func Date(t time.Time, style DateStyle, now time.Time) string {
	switch style {
	case Long:
		return t.Format("Monday, January 2, 2006")
	case Relative:
		days := int(math.Floor(t.Sub(now).Hours() / 24))
		switch {
		case days == 0:
			return "Today"
		case days == 1:
			return "Tomorrow"
		case days == -1:
			return "Yesterday"
		case days > 0 && days < 7:
			return fmt.Sprintf("In %d days", days)
		case days < 0 && days > -7:
			return fmt.Sprintf("%d days ago", -days)
		}
	}
	return t.Format("Jan 2, 2006")
}
