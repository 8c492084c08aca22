// Package money is the single place where amounts are turned into display
// strings. Every surface (cart totals, product cards, relay messages) goes
// through a Formatter.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultLocale = "es-CO"
	DefaultSymbol = "$"
)

// Formatter renders integer-currency amounts (zero decimal places) for one locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a formatter for the BCP 47 tag. Unknown tags fall back to es-CO.
func NewFormatter(tag, symbol string) *Formatter {
	lang, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		lang = language.MustParse(DefaultLocale)
	}
	if strings.TrimSpace(symbol) == "" {
		symbol = DefaultSymbol
	}
	return &Formatter{
		printer: message.NewPrinter(lang),
		symbol:  symbol,
	}
}

var defaultFormatter = NewFormatter(DefaultLocale, DefaultSymbol)

// Default returns the shared es-CO formatter.
func Default() *Formatter {
	return defaultFormatter
}

// Format renders an integer amount, e.g. "$ 1.000.000" for es-CO.
func (f *Formatter) Format(amount int64) string {
	return f.FormatDecimal(decimal.NewFromInt(amount))
}

// FormatFloat rounds half away from zero before rendering so 3000 and 3000.0
// produce the same string.
func (f *Formatter) FormatFloat(amount float64) string {
	return f.FormatDecimal(decimal.NewFromFloat(amount))
}

func (f *Formatter) FormatDecimal(amount decimal.Decimal) string {
	if f == nil {
		f = defaultFormatter
	}
	whole := amount.Round(0).IntPart()
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	return sign + f.symbol + " " + f.printer.Sprintf("%d", whole)
}

// FormatCurrency formats with the default formatter.
func FormatCurrency(amount int64) string {
	return defaultFormatter.Format(amount)
}
