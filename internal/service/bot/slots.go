package bot

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// PriceRange is a nightly budget. A nil Max means no upper bound.
type PriceRange struct {
	Min int64
	Max *int64
}

var locationPattern = regexp.MustCompile(`(?i)\b(?:in|at|near)\s+([\p{L}\s,'.-]+)`)

// ExtractLocation returns the place named after "in", "at" or "near". When no
// such phrase exists it falls back to every word longer than two characters,
// joined by spaces. The fallback is a guess: "cheap stay" yields "cheap stay".
func ExtractLocation(utterance string) (string, bool) {
	if m := locationPattern.FindStringSubmatch(utterance); m != nil {
		if loc := strings.Trim(m[1], " \t\n,.-'"); loc != "" {
			return loc, true
		}
	}

	var words []string
	for _, w := range strings.Fields(utterance) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}

var (
	currencyPattern  = regexp.MustCompile(`₹|\$|€|£|\brs\.?|\binr\b`)
	thousandsPattern = regexp.MustCompile(`(\d),(\d{3})`)

	underPattern   = regexp.MustCompile(`\b(?:under|below|less than|max|maximum)\s*(\d+)`)
	abovePattern   = regexp.MustCompile(`\b(?:above|over|more than|min|minimum)\s*(\d+)`)
	betweenPattern = regexp.MustCompile(`\b(?:between|from)\s*(\d+)\s*(?:and|to|-)\s*(\d+)`)
	rangePattern   = regexp.MustCompile(`(\d+)\s*(?:to|-)\s*(\d+)`)
	numberPattern  = regexp.MustCompile(`(\d+)`)
)

// ExtractPrice reads a budget from the utterance. Patterns are tried in a
// fixed order: upper bound, lower bound, "between N and M", "N to M", then a
// bare number as an upper bound. Reversed ranges are returned as written.
func ExtractPrice(utterance string) (PriceRange, bool) {
	text := strings.ToLower(utterance)
	text = currencyPattern.ReplaceAllString(text, " ")
	for thousandsPattern.MatchString(text) {
		text = thousandsPattern.ReplaceAllString(text, "$1$2")
	}

	if m := underPattern.FindStringSubmatch(text); m != nil {
		if ceiling, ok := parseAmount(m[1]); ok {
			return PriceRange{Min: 0, Max: &ceiling}, true
		}
	}
	if m := abovePattern.FindStringSubmatch(text); m != nil {
		if floor, ok := parseAmount(m[1]); ok {
			return PriceRange{Min: floor}, true
		}
	}
	if m := betweenPattern.FindStringSubmatch(text); m != nil {
		if r, ok := parseRange(m[1], m[2]); ok {
			return r, true
		}
	}
	if m := rangePattern.FindStringSubmatch(text); m != nil {
		if r, ok := parseRange(m[1], m[2]); ok {
			return r, true
		}
	}
	if m := numberPattern.FindStringSubmatch(text); m != nil {
		if ceiling, ok := parseAmount(m[1]); ok {
			return PriceRange{Min: 0, Max: &ceiling}, true
		}
	}
	return PriceRange{}, false
}

func parseAmount(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseRange(lo, hi string) (PriceRange, bool) {
	floor, ok := parseAmount(lo)
	if !ok {
		return PriceRange{}, false
	}
	ceiling, ok := parseAmount(hi)
	if !ok {
		return PriceRange{}, false
	}
	return PriceRange{Min: floor, Max: &ceiling}, true
}

var (
	integerPattern = regexp.MustCompile(`\d+`)

	// Scanned in this order; the first listed word found anywhere in the text
	// wins, regardless of where it appears.
	guestWords = []struct {
		pattern *regexp.Regexp
		count   int
	}{
		{regexp.MustCompile(`\bone\b`), 1},
		{regexp.MustCompile(`\btwo\b`), 2},
		{regexp.MustCompile(`\bthree\b`), 3},
		{regexp.MustCompile(`\bfour\b`), 4},
		{regexp.MustCompile(`\bfive\b`), 5},
		{regexp.MustCompile(`\bsix\b`), 6},
		{regexp.MustCompile(`\bseven\b`), 7},
		{regexp.MustCompile(`\beight\b`), 8},
		{regexp.MustCompile(`\bnine\b`), 9},
		{regexp.MustCompile(`\bten\b`), 10},
	}
)

// ExtractGuests returns the first integer in the utterance, or failing that
// the first number word from one to ten. Zero is not a guest count.
func ExtractGuests(utterance string) (int, bool) {
	if lit := integerPattern.FindString(utterance); lit != "" {
		n, err := strconv.Atoi(lit)
		if err != nil || n <= 0 {
			return 0, false
		}
		return n, true
	}

	text := strings.ToLower(utterance)
	for _, w := range guestWords {
		if w.pattern.MatchString(text) {
			return w.count, true
		}
	}
	return 0, false
}
