package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"passionmatch-engine/internal/domain"
)

// schema.org types treated as a hotel listing
var lodgingTypes = []string{
	"schema.org/hotel",
	"schema.org/lodgingbusiness",
	"schema.org/resort",
	"schema.org/bedandbreakfast",
	"schema.org/hostel",
	"schema.org/motel",
}

// ParseHotelsHTML extracts hotel listings from a page or newsletter body.
// schema.org microdata is preferred; pages without it fall back to the
// common ".hotel-card" layout. Relative links resolve against baseURL.
func ParseHotelsHTML(r io.Reader, baseURL, source string) ([]domain.Hotel, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse hotels html: %w", err)
	}

	hotels := parseMicrodata(doc, baseURL)
	if len(hotels) == 0 {
		hotels = parseCards(doc, baseURL)
	}

	seen := map[string]bool{}
	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if h.Name == "" {
			continue
		}
		key := strings.ToLower(h.Name + "|" + h.Address)
		if seen[key] {
			continue
		}
		seen[key] = true
		h.Source = source
		if h.SourceID != "" && source != "" {
			h.SourceID = source + ":" + h.SourceID
		}
		if h.Facilities == nil {
			h.Facilities = []string{}
		}
		out = append(out, h)
	}
	return out, nil
}

func isLodgingScope(s *goquery.Selection) bool {
	typ, _ := s.Attr("itemtype")
	typ = strings.ToLower(typ)
	for _, t := range lodgingTypes {
		if strings.Contains(typ, t) {
			return true
		}
	}
	return false
}

func parseMicrodata(doc *goquery.Document, baseURL string) []domain.Hotel {
	var out []domain.Hotel
	doc.Find("[itemscope][itemtype]").Each(func(_ int, scope *goquery.Selection) {
		if !isLodgingScope(scope) {
			return
		}

		var h domain.Hotel
		h.Name = CleanText(propValue(ownProps(scope, "name").First()))
		h.Description = CleanText(propValue(ownProps(scope, "description").First()))

		if addr := ownProps(scope, "address").First(); addr.Length() > 0 {
			h.Address = scopeText(addr)
		}
		h.Location = CleanText(scope.Find(`[itemprop~="addressLocality"]`).First().Text())
		if h.Location == "" {
			h.Location = CleanText(scope.Find(`[itemprop~="addressRegion"]`).First().Text())
		}

		var amenities []string
		ownProps(scope, "amenityFeature").Each(func(_ int, a *goquery.Selection) {
			if _, nested := a.Attr("itemscope"); nested {
				amenities = append(amenities, CleanText(propValue(a.Find(`[itemprop~="name"]`).First())))
				return
			}
			amenities = append(amenities, CleanText(propValue(a)))
		})
		h.Facilities = domain.MergeFacilities(amenities)

		if rv := scope.Find(`[itemprop~="ratingValue"]`).First(); rv.Length() > 0 {
			best := 10.0
			if br := scope.Find(`[itemprop~="bestRating"]`).First(); br.Length() > 0 {
				if v, ok := parseNumber(CleanText(propValue(br))); ok {
					best = v
				}
			}
			if v, ok := parseNumber(CleanText(propValue(rv))); ok {
				if scaled, ok := ScaleRating(v, best); ok {
					h.Rating = scaled
				}
			}
		}

		if p := scope.Find(`[itemprop~="price"], [itemprop~="lowPrice"]`).First(); p.Length() > 0 {
			if v, ok := ParsePrice(propValue(p)); ok {
				h.Price = v
			}
		}

		if u := ownProps(scope, "url").First(); u.Length() > 0 {
			h.URL = resolveURL(baseURL, propValue(u))
		}
		if id, ok := scope.Attr("itemid"); ok {
			h.SourceID = strings.TrimSpace(id)
		}

		out = append(out, h)
	})
	return out
}

// ownProps returns the itemprop elements that belong to scope itself, not to
// a nested itemscope.
func ownProps(scope *goquery.Selection, name string) *goquery.Selection {
	return scope.Find(`[itemprop~="` + name + `"]`).FilterFunction(func(_ int, p *goquery.Selection) bool {
		return p.ParentsFiltered("[itemscope]").First().IsSelection(scope)
	})
}

func propValue(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if v, ok := s.Attr("content"); ok {
		return v
	}
	switch goquery.NodeName(s) {
	case "a", "link":
		v, _ := s.Attr("href")
		return v
	case "img":
		v, _ := s.Attr("src")
		return v
	case "meta":
		return ""
	}
	return s.Text()
}

// scopeText renders a nested itemscope (e.g. PostalAddress) as its property
// values joined with ", ".
func scopeText(s *goquery.Selection) string {
	if _, nested := s.Attr("itemscope"); !nested {
		return CleanText(propValue(s))
	}
	var parts []string
	s.Find("[itemprop]").Each(func(_ int, p *goquery.Selection) {
		if t := CleanText(propValue(p)); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return CleanText(s.Text())
	}
	return strings.Join(parts, ", ")
}

func firstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if t := CleanText(s.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func parseCards(doc *goquery.Document, baseURL string) []domain.Hotel {
	var out []domain.Hotel
	doc.Find(".hotel-card, [data-hotel-id]").Each(func(_ int, card *goquery.Selection) {
		// a [data-hotel-id] wrapper around a .hotel-card is the same listing
		if card.ParentsFiltered(".hotel-card, [data-hotel-id]").Length() > 0 {
			return
		}

		var h domain.Hotel
		h.Name = firstText(card, ".hotel-name", ".name", "h2", "h3", "h4")
		h.Description = firstText(card, ".hotel-description", ".description", "p")
		h.Address = firstText(card, ".hotel-address", ".address")
		h.Location = firstText(card, ".hotel-location", ".location", ".city")

		var amenities []string
		card.Find(".amenities li, .facilities li, .amenity, .facility").Each(func(_ int, a *goquery.Selection) {
			amenities = append(amenities, CleanText(a.Text()))
		})
		if v, ok := card.Attr("data-amenities"); ok {
			amenities = append(amenities, strings.Split(v, ",")...)
		}
		h.Facilities = domain.MergeFacilities(amenities)

		if v, ok := card.Attr("data-rating"); ok {
			h.Rating, _ = ParseRating(v)
		} else if t := firstText(card, ".rating", ".score", ".review-score"); t != "" {
			h.Rating, _ = ParseRating(t)
		}

		if v, ok := card.Attr("data-price"); ok {
			h.Price, _ = ParsePrice(v)
		} else if t := firstText(card, ".price"); t != "" {
			h.Price, _ = ParsePrice(t)
		}

		if href, ok := card.Find("a[href]").First().Attr("href"); ok {
			h.URL = resolveURL(baseURL, href)
		}
		if id, ok := card.Attr("data-hotel-id"); ok {
			h.SourceID = strings.TrimSpace(id)
		}

		out = append(out, h)
	})
	return out
}
