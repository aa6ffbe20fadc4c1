package passion

import (
	"errors"
	"fmt"
	"strings"
)

// Catalog is an immutable, ordered registry of passion categories.
type Catalog struct {
	order []Category
	byID  map[string]int
}

// NewCatalog validates and normalises cats into a Catalog. Terms are trimmed,
// lowercased and de-duplicated in order; ids must be unique and every term
// list must keep at least one term.
func NewCatalog(cats []Category) (*Catalog, error) {
	var errs []string
	c := &Catalog{
		order: make([]Category, 0, len(cats)),
		byID:  make(map[string]int, len(cats)),
	}

	for i, cat := range cats {
		cat.ID = strings.TrimSpace(cat.ID)
		if cat.ID == "" {
			errs = append(errs, fmt.Sprintf("passions[%d].id is required", i))
			continue
		}
		if _, dup := c.byID[cat.ID]; dup {
			errs = append(errs, fmt.Sprintf("passions[%d].id %q is duplicated", i, cat.ID))
			continue
		}

		cat.Keywords = normalizeTerms(cat.Keywords)
		cat.AmenityMatches = normalizeTerms(cat.AmenityMatches)
		cat.LocationKeywords = normalizeTerms(cat.LocationKeywords)

		if len(cat.Keywords) == 0 {
			errs = append(errs, fmt.Sprintf("passions[%d] (%s).keywords must have at least 1 term", i, cat.ID))
		}
		if len(cat.AmenityMatches) == 0 {
			errs = append(errs, fmt.Sprintf("passions[%d] (%s).amenity_matches must have at least 1 term", i, cat.ID))
		}
		if len(cat.LocationKeywords) == 0 {
			errs = append(errs, fmt.Sprintf("passions[%d] (%s).location_keywords must have at least 1 term", i, cat.ID))
		}

		c.byID[cat.ID] = len(c.order)
		c.order = append(c.order, cat)
	}

	if len(errs) > 0 {
		return nil, errors.New("catalog validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return c, nil
}

// All returns the categories in definition order.
func (c *Catalog) All() []Category {
	out := make([]Category, len(c.order))
	for i, cat := range c.order {
		out[i] = cat.clone()
	}
	return out
}

// Get looks up a category by id.
func (c *Catalog) Get(id string) (Category, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Category{}, false
	}
	return c.order[i].clone(), true
}

// Len reports the number of categories.
func (c *Catalog) Len() int { return len(c.order) }

// get returns the stored category without copying; for read-only use inside
// the package.
func (c *Catalog) get(id string) (*Category, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.order[i], true
}

func normalizeTerms(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
