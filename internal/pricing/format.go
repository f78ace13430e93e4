package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is rendered in place of a missing, non-numeric or zero price.
// Zero and absent are indistinguishable in provider catalogs, so both degrade
// to the same string instead of showing a misleading "0.00".
const Placeholder = "-"

const (
	// DefaultLocale is used when no locale is configured.
	DefaultLocale = "fr-FR"

	// DefaultCurrency is used when no currency is configured.
	DefaultCurrency = "EUR"

	centsMultiplier = 100
	fractionDigits  = 2
)

// Formatter renders amounts for one locale and currency. It is immutable and
// safe for concurrent use.
type Formatter struct {
	tag      language.Tag
	printer  *message.Printer
	currency string
	symbol   string
	cents    string
	monthly  string
	prefixed bool
}

// NewFormatter builds a formatter. An unparseable locale falls back to
// DefaultLocale; an empty currency falls back to DefaultCurrency.
func NewFormatter(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	base, _ := tag.Base()
	english := base.String() == "en"

	monthly := "/month"
	if base.String() == "fr" {
		monthly = "/mois"
	}

	return &Formatter{
		tag:      tag,
		printer:  message.NewPrinter(tag),
		currency: currency,
		symbol:   CurrencySymbol(currency),
		cents:    centUnit(currency),
		monthly:  monthly,
		prefixed: english,
	}
}

// Locale returns the language tag the formatter renders for.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Currency returns the ISO 4217 code the formatter renders for.
func (f *Formatter) Currency() string {
	return f.currency
}

// Amount renders a currency amount with locale-aware separators and exactly two
// fraction digits, e.g. "15,50 €" for fr-FR or "€15.50" for en-US. The rounded
// value goes through float64 for locale formatting, so amounts beyond about 15
// significant digits lose precision.
func (f *Formatter) Amount(d decimal.Decimal) string {
	v, _ := d.Round(fractionDigits).Float64()
	n := f.printer.Sprint(number.Decimal(v, number.Scale(fractionDigits)))
	if f.prefixed {
		return f.symbol + n
	}
	return n + " " + f.symbol
}

// Subscription renders a monthly fee such as "15,50 €/mois". An absent fee
// renders as the placeholder.
func (f *Formatter) Subscription(d decimal.NullDecimal) string {
	if !d.Valid {
		return Placeholder
	}
	return f.Amount(d.Decimal) + f.monthly
}

// PerKwh renders a per-kWh price given in currency units as cents with two
// fraction digits: 0.1234 becomes "12.34 c€". Nil, NaN, infinite and zero
// values render as the placeholder.
func (f *Formatter) PerKwh(v *float64) string {
	if !usable(v) {
		return Placeholder
	}
	cents := decimal.NewFromFloat(*v).Mul(decimal.NewFromInt(centsMultiplier))
	return cents.StringFixed(fractionDigits) + " " + f.cents
}

// Power renders a contracted power rating such as "9 kVA". The boolean is false
// when the rating is absent or zero and the line should not be shown at all.
func (f *Formatter) Power(kva *float64) (string, bool) {
	if kva == nil || *kva == 0 {
		return "", false
	}
	if math.IsNaN(*kva) || math.IsInf(*kva, 0) {
		return Placeholder, true
	}
	return strconv.FormatFloat(*kva, 'f', -1, 64) + " kVA", true
}

// usable reports whether v holds a price worth displaying.
func usable(v *float64) bool {
	if v == nil {
		return false
	}
	return !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v != 0
}

// CurrencySymbol returns the symbol for a currency code, or the code itself if unknown.
func CurrencySymbol(currency string) string {
	switch currency {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	case "CHF":
		return "CHF"
	case "JPY", "CNY":
		return "¥"
	case "CAD":
		return "C$"
	default:
		return currency
	}
}

// centUnit returns the per-kWh unit label for a currency's minor unit.
func centUnit(currency string) string {
	switch currency {
	case "USD":
		return "¢"
	case "GBP":
		return "p"
	default:
		return "c" + CurrencySymbol(currency)
	}
}
