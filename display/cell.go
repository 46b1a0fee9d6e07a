package display

// Cell is the render hint stored alongside a value and returned to clients.
// Exactly one of Price/Flight/Rating is set for a successfully parsed cell;
// a cell that didn't parse keeps KindText behavior and only carries Raw.
type Cell struct {
	Kind      Kind        `json:"kind"`
	Raw       string      `json:"raw"`
	Formatted string      `json:"formatted,omitempty"`
	Price     *PriceInfo  `json:"price,omitempty"`
	Flight    *FlightInfo `json:"flight,omitempty"`
	Rating    *RatingInfo `json:"rating,omitempty"`
}

// Render parses raw according to kind. Parse failures fall back to a plain
// text cell so malformed input is still displayed verbatim.
func Render(kind Kind, raw string) Cell {
	cell := Cell{Kind: kind, Raw: raw}

	switch kind {
	case KindPrice:
		if price, ok := ParsePrice(raw); ok {
			cell.Price = &price
			cell.Formatted = price.Formatted
			return cell
		}
	case KindFlight:
		if flight, ok := ParseFlight(raw); ok {
			cell.Flight = &flight
			return cell
		}
	case KindRating:
		if rating, ok := ParseRating(raw); ok {
			cell.Rating = &rating
			cell.Formatted = rating.Formatted
			return cell
		}
	}

	cell.Kind = KindText
	return cell
}

// Convert annotates a parsed price with its total in another currency.
// rate is the multiplier from p.Currency to currency.
func (p *PriceInfo) Convert(rate float64, currency string) {
	if rate <= 0 || currency == "" || currency == p.Currency {
		return
	}
	amount := p.Total * rate
	p.Converted = &ConvertedAmount{
		Amount:    amount,
		Currency:  currency,
		Formatted: FormatAmount(amount, currency),
	}
}
