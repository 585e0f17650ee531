package pos

import (
	"math"
	"strconv"
	"strings"
)

// parseNumber coerces free-form operator input. An empty field counts
// as zero; anything unparsable becomes NaN, which the payload encodes
// as null for the API to reject.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseRef coerces a reference id. Non-numeric input yields nil, the
// not-a-number sentinel of the wire format.
func parseRef(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func nullableFloat(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func nullableInt(f float64) *int64 {
	if math.IsNaN(f) {
		return nil
	}
	v := int64(f)
	return &v
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
