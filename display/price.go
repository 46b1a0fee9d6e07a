package display

import (
	"regexp"
	"strconv"
	"strings"
)

// PriceItem is one labeled line of a price breakdown, e.g. "Flug: 450€".
type PriceItem struct {
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// ConvertedAmount is a price total expressed in another currency.
type ConvertedAmount struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// PriceInfo is the parsed shape of a price cell.
type PriceInfo struct {
	Total     float64          `json:"total"`
	Currency  string           `json:"currency"`
	PerPerson bool             `json:"perPerson,omitempty"`
	Items     []PriceItem      `json:"items,omitempty"`
	Formatted string           `json:"formatted"`
	Converted *ConvertedAmount `json:"converted,omitempty"`
}

var (
	amountRe    = regexp.MustCompile(`(?i)(EUR|USD|GBP|CHF|€|\$|£)?\s*(\d{1,3}(?:\.\d{3})+(?:,\d{1,2})?|\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:[.,]\d{1,2})?)\s*(EUR|USD|GBP|CHF|€|\$|£)?`)
	itemLabelRe = regexp.MustCompile(`^\s*([^:]{1,40}):\s*(.+)$`)
	perPersonRe = regexp.MustCompile(`(?i)p\.?\s*p\.?|pro person|per person|/\s*person`)
	totalWordRe = regexp.MustCompile(`(?i)total|gesamt|summe`)
	priceSplit  = regexp.MustCompile(`[\n;|]|\s/\s|\s\+\s`)
)

type amountMatch struct {
	value    float64
	currency string
}

// ParsePrice extracts a total, currency and optional line-item breakdown from
// a free-text price cell. It understands German and English number formats,
// per-person markers and "label: amount" breakdown lines. Returns false when
// the text contains no recognizable amount.
func ParsePrice(raw string) (PriceInfo, bool) {
	amounts := findAmounts(raw)
	if len(amounts) == 0 {
		return PriceInfo{}, false
	}

	currency := ""
	for _, a := range amounts {
		if a.currency != "" {
			currency = a.currency
			break
		}
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	info := PriceInfo{
		Currency:  currency,
		PerPerson: perPersonRe.MatchString(raw),
	}

	// Breakdown lines, e.g. "Flug: 450€ / Hotel: 980€ / Gesamt: 1430€"
	totalFromLabel := false
	for _, segment := range priceSplit.Split(raw, -1) {
		m := itemLabelRe.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		segAmounts := findAmounts(m[2])
		if len(segAmounts) == 0 {
			continue
		}

		label := strings.TrimSpace(m[1])
		amount := segAmounts[0].value
		if totalWordRe.MatchString(label) {
			info.Total = amount
			totalFromLabel = true
			continue
		}
		info.Items = append(info.Items, PriceItem{
			Label:     label,
			Amount:    amount,
			Formatted: FormatAmount(amount, currency),
		})
	}

	if !totalFromLabel {
		if len(info.Items) >= 2 {
			for _, item := range info.Items {
				info.Total += item.Amount
			}
		} else {
			info.Total = amounts[0].value
		}
	}

	info.Formatted = FormatAmount(info.Total, currency)
	return info, true
}

func findAmounts(s string) []amountMatch {
	var amounts []amountMatch
	for _, m := range amountRe.FindAllStringSubmatch(s, -1) {
		currency := NormalizeCurrency(m[1])
		if currency == "" {
			currency = NormalizeCurrency(m[3])
		}
		amounts = append(amounts, amountMatch{
			value:    parseAmount(m[2]),
			currency: currency,
		})
	}
	return amounts
}

// parseAmount handles both "1.234,56" and "1,234.56" as well as plain values.
// With a single separator, one or two trailing digits mean a decimal
// separator and three mean a thousands group.
func parseAmount(num string) float64 {
	hasDot := strings.Contains(num, ".")
	hasComma := strings.Contains(num, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndex(num, ",") > strings.LastIndex(num, ".") {
			// German: dot groups, comma decimal
			num = strings.ReplaceAll(num, ".", "")
			num = strings.ReplaceAll(num, ",", ".")
		} else {
			num = strings.ReplaceAll(num, ",", "")
		}
	case hasComma:
		if fracLen(num, ",") <= 2 && strings.Count(num, ",") == 1 {
			num = strings.ReplaceAll(num, ",", ".")
		} else {
			num = strings.ReplaceAll(num, ",", "")
		}
	case hasDot:
		if fracLen(num, ".") == 3 || strings.Count(num, ".") > 1 {
			num = strings.ReplaceAll(num, ".", "")
		}
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return value
}

func fracLen(num, sep string) int {
	return len(num) - strings.LastIndex(num, sep) - 1
}
