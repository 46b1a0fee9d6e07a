package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	t.Run("plain amount with euro symbol", func(t *testing.T) {
		price, ok := ParsePrice("1499€")
		require.True(t, ok)
		assert.Equal(t, 1499.0, price.Total)
		assert.Equal(t, "EUR", price.Currency)
		assert.Equal(t, "1.499,00 €", price.Formatted)
		assert.False(t, price.PerPerson)
		assert.Empty(t, price.Items)
	})

	t.Run("german thousands and decimal comma", func(t *testing.T) {
		price, ok := ParsePrice("1.234,56 €")
		require.True(t, ok)
		assert.Equal(t, 1234.56, price.Total)
		assert.Equal(t, "EUR", price.Currency)
	})

	t.Run("english thousands and decimal point", func(t *testing.T) {
		price, ok := ParsePrice("$1,234.56")
		require.True(t, ok)
		assert.Equal(t, 1234.56, price.Total)
		assert.Equal(t, "USD", price.Currency)
		assert.Equal(t, "$1,234.56", price.Formatted)
	})

	t.Run("currency code before the amount", func(t *testing.T) {
		price, ok := ParsePrice("EUR 999")
		require.True(t, ok)
		assert.Equal(t, 999.0, price.Total)
		assert.Equal(t, "EUR", price.Currency)
	})

	t.Run("amount without currency defaults to EUR", func(t *testing.T) {
		price, ok := ParsePrice("850")
		require.True(t, ok)
		assert.Equal(t, 850.0, price.Total)
		assert.Equal(t, "EUR", price.Currency)
	})

	t.Run("per person marker", func(t *testing.T) {
		price, ok := ParsePrice("749€ p.P.")
		require.True(t, ok)
		assert.True(t, price.PerPerson)

		price, ok = ParsePrice("749€ pro Person")
		require.True(t, ok)
		assert.True(t, price.PerPerson)
	})

	t.Run("breakdown lines sum to the total", func(t *testing.T) {
		price, ok := ParsePrice("Flug: 450€ / Hotel: 980€")
		require.True(t, ok)
		require.Len(t, price.Items, 2)
		assert.Equal(t, "Flug", price.Items[0].Label)
		assert.Equal(t, 450.0, price.Items[0].Amount)
		assert.Equal(t, "Hotel", price.Items[1].Label)
		assert.Equal(t, 980.0, price.Items[1].Amount)
		assert.Equal(t, 1430.0, price.Total)
	})

	t.Run("explicit total line wins over the sum", func(t *testing.T) {
		price, ok := ParsePrice("Flug: 450€\nHotel: 980€\nGesamt: 1400€")
		require.True(t, ok)
		require.Len(t, price.Items, 2)
		assert.Equal(t, 1400.0, price.Total)
	})

	t.Run("text without amounts does not parse", func(t *testing.T) {
		_, ok := ParsePrice("noch unbekannt")
		assert.False(t, ok)

		_, ok = ParsePrice("")
		assert.False(t, ok)
	})
}

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"450":      450,
		"450,50":   450.5,
		"450.50":   450.5,
		"1.234":    1234,
		"1,234":    1234,
		"1.234,56": 1234.56,
		"1,234.56": 1234.56,
		"12.345,6": 12345.6,
	}

	for input, expected := range cases {
		assert.Equal(t, expected, parseAmount(input), "input %q", input)
	}
}
