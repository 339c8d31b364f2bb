package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var entityPattern = regexp.MustCompile(`^&(#[0-9]+|#x[0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)

// SanitizeString strips angle brackets, escapes bare ampersands and trims
// surrounding whitespace. Existing entities are left untouched so the
// function is idempotent.
func SanitizeString(input string) string {
	stripped := strings.NewReplacer("<", "", ">", "").Replace(input)

	var b strings.Builder
	b.Grow(len(stripped))
	for i := 0; i < len(stripped); i++ {
		if stripped[i] == '&' && !entityPattern.MatchString(stripped[i:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(stripped[i])
	}
	return strings.TrimSpace(b.String())
}

// SanitizeNumber parses input as a float. Non-numeric input yields 0 and
// negative values are clamped to 0.
func SanitizeNumber(input string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if value < 0 {
		return 0
	}
	return value
}

// SanitizeInt is SanitizeNumber truncated to an int, falling back to def when
// the result is zero. Values beyond math.MaxInt32 are clamped so the
// conversion cannot wrap negative.
func SanitizeInt(input string, def int) int {
	number := SanitizeNumber(input)
	if number > math.MaxInt32 {
		number = math.MaxInt32
	}
	value := int(number)
	if value == 0 {
		return def
	}
	return value
}
