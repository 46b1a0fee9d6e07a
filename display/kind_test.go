package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectKind(t *testing.T) {
	cases := []struct {
		fieldID  string
		label    string
		expected Kind
	}{
		{"price", "Preis p.P.", KindPrice},
		{"total-cost", "Total Cost", KindPrice},
		{"budget", "", KindPrice},
		{"flight", "Flug", KindFlight},
		{"anreise", "Anreise", KindFlight},
		{"", "Airline", KindFlight},
		{"hotel-rating", "Hotel Rating", KindRating},
		{"bewertung", "Bewertung", KindRating},
		{"stars", "Sterne", KindRating},
		{"notes", "Notizen", KindText},
		{"hotel", "Hotel", KindText},
		{"", "", KindText},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, DetectKind(c.fieldID, c.label), "fieldID=%q label=%q", c.fieldID, c.label)
	}
}

func TestDetectKindPrefersPriceOverRating(t *testing.T) {
	// "total score" hits both price and rating keywords; price is checked first
	assert.Equal(t, KindPrice, DetectKind("total-score", "Total Score"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.499,00 €", FormatAmount(1499, "EUR"))
	assert.Equal(t, "1.234,56 €", FormatAmount(1234.56, "EUR"))
	assert.Equal(t, "$1,234.56", FormatAmount(1234.56, "USD"))
	assert.Equal(t, "£99.90", FormatAmount(99.9, "GBP"))
	assert.Equal(t, "1.200,00 CHF", FormatAmount(1200, "CHF"))
	assert.Equal(t, "850,00 €", FormatAmount(850, ""))
	assert.Equal(t, "500.00 SEK", FormatAmount(500, "SEK"))
	assert.Equal(t, "-1.050,25 €", FormatAmount(-1050.25, "EUR"))
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "EUR", NormalizeCurrency("€"))
	assert.Equal(t, "EUR", NormalizeCurrency(" eur "))
	assert.Equal(t, "USD", NormalizeCurrency("$"))
	assert.Equal(t, "GBP", NormalizeCurrency("GBP"))
	assert.Equal(t, "", NormalizeCurrency("yen"))
}
