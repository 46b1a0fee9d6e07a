// Package display turns the free-text cell values users type into structured
// render hints. Every parser is a pure function over the stored string and
// degrades to the raw value when the text doesn't match; nothing in here may
// fail a request.
package display

import "strings"

// Kind classifies how a cell should be rendered.
type Kind string

const (
	KindText   Kind = "text"
	KindPrice  Kind = "price"
	KindFlight Kind = "flight"
	KindRating Kind = "rating"
)

// Columns are user-named, so kind detection is keyword matching over the
// fieldId slug and the label. The stored data is bilingual (English/German).
var kindKeywords = []struct {
	kind     Kind
	keywords []string
}{
	{KindPrice, []string{"price", "preis", "cost", "kosten", "total", "gesamt", "budget"}},
	{KindFlight, []string{"flight", "flug", "airline", "anreise"}},
	{KindRating, []string{"rating", "bewertung", "stars", "sterne", "review", "score"}},
}

// DetectKind guesses the render kind for a column from its fieldId and label.
// Matching is case-insensitive; the first keyword hit wins, in the order
// price, flight, rating. Columns matching nothing render as plain text.
func DetectKind(fieldID, label string) Kind {
	haystack := strings.ToLower(fieldID + " " + label)
	for _, entry := range kindKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(haystack, keyword) {
				return entry.kind
			}
		}
	}
	return KindText
}
