package domain

import (
	"strconv"
	"strings"
)

var seriesNames = map[int]string{
	1:  "Caldwell",
	2:  "Unknown",
	3:  "Latah",
	4:  "Naff",
	5:  "Naff",
	6:  "Palouse",
	7:  "Palouse",
	8:  "Staley",
	9:  "Thatuna",
	10: "Buried/Altered",
}

// SeriesName returns the soil-series name for code, or "" when the code is
// outside 1–10.
func SeriesName(code int) string {
	return seriesNames[code]
}

// ParseSeries interprets a raw series cell. Integer codes (including integral
// floats such as "4.0") are mapped through SeriesName; any other non-empty
// text is treated as a name already and returned with code 0.
func ParseSeries(raw string) (code int, name string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ""
	}
	if n, ok := parseIntegral(raw); ok {
		return n, SeriesName(n)
	}
	return 0, raw
}

// EnrichSeries fills SeriesCode and SeriesName from SeriesRaw.
func EnrichSeries(s Sample) Sample {
	s.SeriesCode, s.SeriesName = ParseSeries(s.SeriesRaw)
	return s
}

// ParseID parses a sample ID cell. Spreadsheet exports sometimes render
// integer cells as "12.0", which is accepted.
func ParseID(raw string) (int, bool) {
	return parseIntegral(strings.TrimSpace(raw))
}

func parseIntegral(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
