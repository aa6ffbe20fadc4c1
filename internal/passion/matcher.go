package passion

import (
	"sort"
	"strings"

	"passionmatch-engine/internal/domain"
)

const (
	keywordPoints  = 5
	amenityPoints  = 8
	locationPoints = 10

	ratingBonus     = 5
	ratingBonusOver = 8.0

	maxPassionScore = 50
	maxTotalScore   = 100

	highlyRatedReason = "Highly rated for this experience"
)

// PassionMatch is one selected passion's contribution to a hotel's score.
type PassionMatch struct {
	Passion Category `json:"passion"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// MatchResult is the score of one hotel against a passion selection.
// Matches is sorted by Score, highest first, and never holds zero scores.
type MatchResult struct {
	TotalScore int            `json:"totalScore"`
	Matches    []PassionMatch `json:"matches"`
}

// HotelMatch pairs a hotel with its result and strength label.
type HotelMatch struct {
	Hotel    domain.Hotel `json:"hotel"`
	Result   MatchResult  `json:"result"`
	Strength string       `json:"strength"`
}

// Matcher scores hotels against passion selections. It holds no mutable
// state and is safe for concurrent use.
type Matcher struct {
	catalog *Catalog
}

func NewMatcher(c *Catalog) *Matcher {
	return &Matcher{catalog: c}
}

// Catalog returns the catalog the matcher scores against.
func (m *Matcher) Catalog() *Catalog { return m.catalog }

// CalculatePassionScore scores hotel against the selected passion ids.
// Unknown and repeated ids are skipped.
func (m *Matcher) CalculatePassionScore(hotel domain.Hotel, selected []string) MatchResult {
	res := MatchResult{Matches: []PassionMatch{}}
	if len(selected) == 0 {
		return res
	}

	seen := make(map[string]bool, len(selected))
	for _, id := range selected {
		if seen[id] {
			continue
		}
		seen[id] = true

		cat, ok := m.catalog.get(id)
		if !ok {
			continue
		}
		score, reasons := calculateSinglePassionScore(hotel, cat)
		if score <= 0 {
			continue
		}
		res.TotalScore += score
		res.Matches = append(res.Matches, PassionMatch{
			Passion: cat.clone(),
			Score:   score,
			Reasons: reasons,
		})
	}

	res.TotalScore = clampInt(res.TotalScore, 0, maxTotalScore)
	sort.SliceStable(res.Matches, func(i, j int) bool {
		return res.Matches[i].Score > res.Matches[j].Score
	})
	return res
}

// RankHotels scores every hotel and orders them by total score, highest
// first. Equal scores keep input order.
func (m *Matcher) RankHotels(hotels []domain.Hotel, selected []string) []HotelMatch {
	out := make([]HotelMatch, 0, len(hotels))
	for _, h := range hotels {
		r := m.CalculatePassionScore(h, selected)
		out = append(out, HotelMatch{
			Hotel:    h,
			Result:   r,
			Strength: Strength(r.TotalScore),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.TotalScore > out[j].Result.TotalScore
	})
	return out
}

func calculateSinglePassionScore(h domain.Hotel, cat *Category) (int, []string) {
	score := 0
	reasons := []string{}

	hotelText := strings.ToLower(h.Name + " " + h.Description)
	if hits := matchedTerms(hotelText, cat.Keywords); len(hits) > 0 {
		score += len(hits) * keywordPoints
		reasons = append(reasons, "Matches: "+strings.Join(firstN(hits, 3), ", "))
	}

	facilitiesText := strings.ToLower(strings.Join(h.Facilities, " "))
	if hits := matchedTerms(facilitiesText, cat.AmenityMatches); len(hits) > 0 {
		score += len(hits) * amenityPoints
		reasons = append(reasons, "Has "+strings.Join(firstN(hits, 2), ", "))
	}

	locationText := strings.ToLower(h.Address + " " + h.Location)
	if hits := matchedTerms(locationText, cat.LocationKeywords); len(hits) > 0 {
		score += len(hits) * locationPoints
		reasons = append(reasons, "Located near "+hits[0])
	}

	// The bonus only lifts hotels that already match on content.
	if h.Rating > ratingBonusOver && score > 0 {
		score += ratingBonus
		reasons = append(reasons, highlyRatedReason)
	}

	return clampInt(score, 0, maxPassionScore), reasons
}

// matchedTerms returns the terms contained in text, in term order.
func matchedTerms(text string, terms []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var hits []string
	for _, t := range terms {
		if strings.Contains(text, t) {
			hits = append(hits, t)
		}
	}
	return hits
}

func firstN(xs []string, n int) []string {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
