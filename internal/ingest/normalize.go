package ingest

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	scaledRatingRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:/|out of)\s*(\d+(?:[.,]\d+)?)`)
	numberRe       = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	thousandsRe    = regexp.MustCompile(`(\d),(\d{3})(\D|$)`)
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// ParseRating reads a guest rating onto the 0..10 scale. "8.7/10", "9,1",
// "4.5 out of 5" and "Superb 9.2" are understood.
func ParseRating(s string) (float64, bool) {
	s = strings.ToLower(CleanText(s))
	if s == "" {
		return 0, false
	}
	if m := scaledRatingRe.FindStringSubmatch(s); m != nil {
		v, ok1 := parseNumber(m[1])
		best, ok2 := parseNumber(m[2])
		if !ok1 || !ok2 {
			return 0, false
		}
		return ScaleRating(v, best)
	}
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, ok := parseNumber(m)
	if !ok {
		return 0, false
	}
	return ScaleRating(v, 10)
}

// ScaleRating maps v out of best onto 0..10, rounded to one decimal.
func ScaleRating(v, best float64) (float64, bool) {
	if best <= 0 {
		best = 10
	}
	r := v * 10 / best
	if r < 0 || r > 10 || math.IsNaN(r) {
		return 0, false
	}
	return math.Round(r*10) / 10, true
}

// ParsePrice takes the first number in s, e.g. "from €129 per night".
func ParsePrice(s string) (float64, bool) {
	// "1,299" is a thousands separator, "129,50" a decimal comma
	s = thousandsRe.ReplaceAllString(CleanText(s), "$1$2$3")
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	return parseNumber(m)
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func resolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == "" {
		if ref.IsAbs() {
			return ref.String()
		}
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return b.ResolveReference(ref).String()
}
