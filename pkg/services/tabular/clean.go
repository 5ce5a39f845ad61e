package tabular

import (
	"strconv"
	"strings"
	"time"
)

// ParseNumber leniently parses one spreadsheet cell as a float.
// Currency symbols and thousands separators are stripped first.
// The bool result is false when the cell did not parse; callers
// treat the value as 0.0 either way.
func ParseNumber(cell string) (float64, bool) {
	cleaned := cleanNumeric(cell)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func cleanNumeric(cell string) string {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"2-Jan-06",
}

// NormalizeDate reformats a cell to YYYY-MM-DD. Malformed dates come
// back empty rather than erroring; exports emit them as nulls.
func NormalizeDate(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
