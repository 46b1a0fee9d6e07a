package display

import (
	"regexp"
	"strconv"
	"strings"
)

// FlightSegment is one leg of a connection, airports as IATA codes.
type FlightSegment struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Departure string `json:"departure,omitempty"`
	Arrival   string `json:"arrival,omitempty"`
}

// FlightInfo is the parsed shape of a flight cell.
type FlightInfo struct {
	Segments []FlightSegment `json:"segments"`
	Airline  string          `json:"airline,omitempty"`
	Stops    int             `json:"stops"`
	Nonstop  bool            `json:"nonstop,omitempty"`
}

var (
	segmentRe = regexp.MustCompile(`\b([A-Z]{3})\s*(?:→|->|—|–|-)\s*([A-Z]{3})\b`)
	clockRe   = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
	stopsRe   = regexp.MustCompile(`(?i)(\d+)\s*stopp?s?\b`)
	nonstopRe = regexp.MustCompile(`(?i)\b(nonstop|non-stop|direktflug|direkt|direct)\b`)
)

// airlines the cells have historically named; matched case-insensitively,
// rendered in canonical form
var knownAirlines = []string{
	"Lufthansa", "Austrian", "Eurowings", "Condor", "Ryanair", "easyJet",
	"Wizz Air", "Swiss", "Edelweiss", "TUIfly", "Emirates", "Qatar Airways",
	"Turkish Airlines", "KLM", "Vueling",
}

// ParseFlight extracts airport-code segments ("VIE → BKK"), departure and
// arrival clock times, the airline and the stop count from a flight cell.
// Returns false when no segment and no airline can be found.
func ParseFlight(raw string) (FlightInfo, bool) {
	var info FlightInfo

	for _, m := range segmentRe.FindAllStringSubmatch(raw, -1) {
		info.Segments = append(info.Segments, FlightSegment{From: m[1], To: m[2]})
	}

	// Pair clock times onto segments in reading order
	times := clockRe.FindAllString(raw, -1)
	for i := range info.Segments {
		if 2*i < len(times) {
			info.Segments[i].Departure = times[2*i]
		}
		if 2*i+1 < len(times) {
			info.Segments[i].Arrival = times[2*i+1]
		}
	}

	lower := strings.ToLower(raw)
	for _, airline := range knownAirlines {
		if strings.Contains(lower, strings.ToLower(airline)) {
			info.Airline = airline
			break
		}
	}

	switch {
	case nonstopRe.MatchString(raw):
		info.Nonstop = true
	case stopsRe.MatchString(raw):
		m := stopsRe.FindStringSubmatch(raw)
		info.Stops, _ = strconv.Atoi(m[1])
	case len(info.Segments) > 1:
		info.Stops = len(info.Segments) - 1
	}

	if len(info.Segments) == 0 && info.Airline == "" {
		return FlightInfo{}, false
	}
	return info, true
}
