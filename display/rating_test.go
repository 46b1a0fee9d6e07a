package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	t.Run("fraction with slash", func(t *testing.T) {
		rating, ok := ParseRating("4.5/5")
		require.True(t, ok)
		assert.Equal(t, 4.5, rating.Score)
		assert.Equal(t, 5.0, rating.Scale)
		assert.Equal(t, "4.5/5", rating.Formatted)
	})

	t.Run("german decimal comma and von", func(t *testing.T) {
		rating, ok := ParseRating("8,2 von 10")
		require.True(t, ok)
		assert.Equal(t, 8.2, rating.Score)
		assert.Equal(t, 10.0, rating.Scale)
	})

	t.Run("star words imply scale five", func(t *testing.T) {
		rating, ok := ParseRating("4 Sterne")
		require.True(t, ok)
		assert.Equal(t, 4.0, rating.Score)
		assert.Equal(t, 5.0, rating.Scale)

		rating, ok = ParseRating("3 stars")
		require.True(t, ok)
		assert.Equal(t, 3.0, rating.Score)
	})

	t.Run("star glyphs", func(t *testing.T) {
		rating, ok := ParseRating("★★★★☆")
		require.True(t, ok)
		assert.Equal(t, 4.0, rating.Score)
		assert.Equal(t, 5.0, rating.Scale)
	})

	t.Run("filled glyphs only assume scale five", func(t *testing.T) {
		rating, ok := ParseRating("★★★")
		require.True(t, ok)
		assert.Equal(t, 3.0, rating.Score)
		assert.Equal(t, 5.0, rating.Scale)
	})

	t.Run("score above scale is rejected", func(t *testing.T) {
		_, ok := ParseRating("7/5")
		assert.False(t, ok)
	})

	t.Run("text without rating does not parse", func(t *testing.T) {
		_, ok := ParseRating("sehr schön")
		assert.False(t, ok)

		_, ok = ParseRating("")
		assert.False(t, ok)
	})
}
