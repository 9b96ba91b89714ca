package wizard

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var plainAmount = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseAmount reads a money string such as "₱69,000" or "$ 1,250.50". Currency symbols, thousands
// separators and spaces are dropped; what remains must be digits with an optional decimal part.
func ParseAmount(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == ',', unicode.IsSpace(r), unicode.Is(unicode.Sc, r):
			continue
		}
		b.WriteRune(r)
	}
	cleaned := b.String()
	if !plainAmount.MatchString(cleaned) {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseHeadCount accepts any base-10 integer, signed or not. Anything else is kept as range text.
func ParseHeadCount(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return n, true
}
