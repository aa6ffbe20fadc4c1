package passion

// Category is a named travel-interest cluster and the three term lists used
// to score a hotel against it. Terms are lowercase; matching is substring
// containment on lowercased hotel text.
type Category struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Icon        string `yaml:"icon" json:"icon"`
	Color       string `yaml:"color" json:"color"`
	Description string `yaml:"description" json:"description"`

	Keywords         []string `yaml:"keywords" json:"keywords"`
	AmenityMatches   []string `yaml:"amenity_matches" json:"amenityMatches"`
	LocationKeywords []string `yaml:"location_keywords" json:"locationKeywords"`
}

func (c Category) clone() Category {
	c.Keywords = append([]string(nil), c.Keywords...)
	c.AmenityMatches = append([]string(nil), c.AmenityMatches...)
	c.LocationKeywords = append([]string(nil), c.LocationKeywords...)
	return c
}
