package domain

import "strings"

// Hotel is the canonical hotel shape the matcher consumes. Callers adapt
// whatever record they hold (search results, scraped cards, API payloads)
// into a Hotel before scoring.
type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Facilities  []string `json:"facilities"`
	Address     string   `json:"address"`
	Location    string   `json:"location"`
	Rating      float64  `json:"rating"` // 0..10, 0 = unknown

	// Set for ingested listings only.
	SourceID string  `json:"sourceId,omitempty"`
	Source   string  `json:"source,omitempty"` // page name / "email"
	URL      string  `json:"url,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// RawHotel is the lenient wire shape. Every field is optional and the
// facility list may arrive as either "facilities" or "amenities".
type RawHotel struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Facilities  []string `json:"facilities"`
	Amenities   []string `json:"amenities"`
	Address     *string  `json:"address"`
	Location    *string  `json:"location"`
	Rating      *float64 `json:"rating"`
	URL         *string  `json:"url"`
	Price       *float64 `json:"price"`
}

// Normalize folds the aliases into a Hotel. Absent text becomes "" and an
// absent list becomes empty. "facilities" wins over "amenities" whenever it
// is present, even empty; blanks and case-insensitive duplicates are dropped.
func (r RawHotel) Normalize() Hotel {
	h := Hotel{
		ID:          deref(r.ID),
		Name:        deref(r.Name),
		Description: deref(r.Description),
		Address:     deref(r.Address),
		Location:    deref(r.Location),
		URL:         deref(r.URL),
	}
	if r.Rating != nil {
		h.Rating = *r.Rating
	}
	if r.Price != nil {
		h.Price = *r.Price
	}
	list := r.Facilities
	if list == nil {
		list = r.Amenities
	}
	h.Facilities = MergeFacilities(list)
	return h
}

// MergeFacilities concatenates facility lists, trimming blanks and dropping
// case-insensitive duplicates while keeping first-seen order.
func MergeFacilities(lists ...[]string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, l := range lists {
		for _, f := range l {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			k := strings.ToLower(f)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, f)
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
