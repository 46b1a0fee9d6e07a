package display

import (
	"fmt"
	"strings"
)

// DefaultCurrency is assumed when an amount carries no symbol or code.
const DefaultCurrency = "EUR"

var currencyByToken = map[string]string{
	"€":   "EUR",
	"eur": "EUR",
	"$":   "USD",
	"usd": "USD",
	"£":   "GBP",
	"gbp": "GBP",
	"chf": "CHF",
}

// currencies rendered with a trailing symbol and decimal comma
var suffixCurrencies = map[string]string{
	"EUR": "€",
	"CHF": "CHF",
}

var prefixCurrencies = map[string]string{
	"USD": "$",
	"GBP": "£",
}

// NormalizeCurrency maps a symbol or code token to an ISO code.
// Unknown tokens return the empty string.
func NormalizeCurrency(token string) string {
	return currencyByToken[strings.ToLower(strings.TrimSpace(token))]
}

// FormatAmount renders an amount in the given ISO currency. EUR and CHF use
// the German convention (1.234,56 €), USD and GBP the English one ($1,234.56).
// An empty currency falls back to DefaultCurrency; an unknown one is appended
// as a plain code.
func FormatAmount(amount float64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}

	if symbol, ok := suffixCurrencies[currency]; ok {
		return fmt.Sprintf("%s %s", groupDigits(amount, ".", ","), symbol)
	}
	if symbol, ok := prefixCurrencies[currency]; ok {
		return fmt.Sprintf("%s%s", symbol, groupDigits(amount, ",", "."))
	}
	return fmt.Sprintf("%s %s", groupDigits(amount, ",", "."), currency)
}

// groupDigits formats amount with two decimals, a thousands separator and a
// decimal separator.
func groupDigits(amount float64, thousandsSep, decimalSep string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteString(thousandsSep)
		}
		grouped.WriteRune(digit)
	}

	out := grouped.String() + decimalSep + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
