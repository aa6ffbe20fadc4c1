package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRating(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"8.7/10", 8.7, true},
		{"9,1", 9.1, true},
		{"4.5/5", 9.0, true},
		{"4 out of 5", 8.0, true},
		{"Superb 9.2", 9.2, true},
		{"  7 ", 7.0, true},
		{"12", 0, false},
		{"no score yet", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseRating(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.want, got, 0.0001)
		})
	}
}

func TestScaleRating(t *testing.T) {
	v, ok := ScaleRating(3, 5)
	assert.True(t, ok)
	assert.InDelta(t, 6.0, v, 0.0001)

	v, ok = ScaleRating(8.25, 0)
	assert.True(t, ok)
	assert.InDelta(t, 8.3, v, 0.0001)

	_, ok = ScaleRating(6, 5)
	assert.False(t, ok)
}

func TestParsePrice(t *testing.T) {
	v, ok := ParsePrice("from €129 per night")
	assert.True(t, ok)
	assert.InDelta(t, 129, v, 0.0001)

	v, ok = ParsePrice("$1,299 / week")
	assert.True(t, ok)
	assert.InDelta(t, 1299, v, 0.0001)

	v, ok = ParsePrice("129,50 €")
	assert.True(t, ok)
	assert.InDelta(t, 129.5, v, 0.0001)

	_, ok = ParsePrice("on request")
	assert.False(t, ok)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Sunny Bay Resort", CleanText("  Sunny Bay \n\t Resort "))
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://deals.example/hotels/1", resolveURL("https://deals.example/list", "/hotels/1"))
	assert.Equal(t, "https://other.example/x", resolveURL("https://deals.example/list", "https://other.example/x"))
	assert.Equal(t, "https://other.example/x", resolveURL("", "https://other.example/x"))
	assert.Equal(t, "", resolveURL("", "/relative"))
	assert.Equal(t, "", resolveURL("https://deals.example", "  "))
}
