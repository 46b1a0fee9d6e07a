package display

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RatingInfo is the parsed shape of a rating cell.
type RatingInfo struct {
	Score     float64 `json:"score"`
	Scale     float64 `json:"scale"`
	Formatted string  `json:"formatted"`
}

var (
	fractionRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:/|von|out of|of)\s*(\d+(?:[.,]\d+)?)`)
	starWordRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:stars?|sterne)`)
)

// ParseRating understands "4.5/5", "8,2 von 10", "4 Sterne" and star glyph
// runs like "★★★★☆". Returns false when the text encodes no rating or the
// score exceeds its scale.
func ParseRating(raw string) (RatingInfo, bool) {
	if m := fractionRe.FindStringSubmatch(raw); m != nil {
		return newRating(parseDecimal(m[1]), parseDecimal(m[2]))
	}

	if m := starWordRe.FindStringSubmatch(raw); m != nil {
		return newRating(parseDecimal(m[1]), 5)
	}

	filled := float64(strings.Count(raw, "★") + strings.Count(raw, "⭐"))
	empty := float64(strings.Count(raw, "☆"))
	if filled > 0 {
		scale := filled + empty
		if empty == 0 {
			scale = 5
		}
		return newRating(filled, scale)
	}

	return RatingInfo{}, false
}

func newRating(score, scale float64) (RatingInfo, bool) {
	if scale <= 0 || score < 0 || score > scale {
		return RatingInfo{}, false
	}
	return RatingInfo{
		Score:     score,
		Scale:     scale,
		Formatted: fmt.Sprintf("%s/%s", trimDecimal(score), trimDecimal(scale)),
	}, true
}

func parseDecimal(s string) float64 {
	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return -1
	}
	return value
}

func trimDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
