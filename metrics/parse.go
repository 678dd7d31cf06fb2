package metrics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParsePercentage coerces a raw dataset value into a number.
// Numbers pass through unchanged. Strings keep only digits and dots and are
// read up to the first character that breaks a decimal literal, so "45.2%"
// becomes 45.2 and "1.2.3" becomes 1.2. Anything else yields 0.
func ParsePercentage(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		// exponent forms such as 4e1 are normalized before stripping
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return parseDecimalPrefix(strconv.FormatFloat(f, 'f', -1, 64))
	case string:
		return parseDecimalPrefix(v)
	default:
		return 0
	}
}

// ParseCount coerces a raw total_decisions value into a non-negative integer.
// It strips strings the same way as ParsePercentage, so thousands separators
// are dropped ("1,234" is 1234) rather than ending the number at the comma.
// The fraction is truncated.
func ParseCount(raw any) int {
	n := ParsePercentage(raw)
	if n <= 0 {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

func parseDecimalPrefix(s string) float64 {
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			if seenDot {
				// a second dot ends the literal
				return parseOrZero(b.String())
			}
			seenDot = true
			b.WriteRune(r)
		}
	}
	return parseOrZero(b.String())
}

func parseOrZero(s string) float64 {
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "." {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
