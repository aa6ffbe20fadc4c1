package passion

var defaultCategories = []Category{
	{
		ID:          "outdoor-adventure",
		Name:        "Outdoor Adventure",
		Icon:        "mountain",
		Color:       "#2E7D32",
		Description: "Hiking, climbing, paddling and anything that gets your heart rate up outside.",
		Keywords:    []string{"adventure", "hiking", "climbing", "trail", "outdoor", "kayak", "rafting", "ski"},
		AmenityMatches: []string{
			"bike rental", "ski storage", "equipment rental", "tour desk", "hiking",
		},
		LocationKeywords: []string{"mountain", "national park", "canyon", "alps", "valley"},
	},
	{
		ID:          "relaxation-wellness",
		Name:        "Relaxation & Wellness",
		Icon:        "spa",
		Color:       "#00897B",
		Description: "Spas, yoga and quiet places to switch off.",
		Keywords: []string{
			"spa", "wellness", "yoga", "massage", "relax", "retreat", "meditation", "tranquil",
		},
		AmenityMatches:   []string{"spa", "yoga", "massage", "sauna", "hot tub", "fitness"},
		LocationKeywords: []string{"lake", "hot spring", "countryside", "secluded", "thermal"},
	},
	{
		ID:          "beach-sun",
		Name:        "Beach & Sun",
		Icon:        "umbrella-beach",
		Color:       "#F9A825",
		Description: "Sand, surf and long afternoons by the water.",
		Keywords:    []string{"beach", "ocean", "seaside", "sunset", "surf", "coastal", "sea view"},
		AmenityMatches: []string{
			"beach access", "private beach", "outdoor pool", "sun terrace", "water sports",
		},
		LocationKeywords: []string{"beach", "coast", "bay", "island", "seafront"},
	},
	{
		ID:          "culture-history",
		Name:        "Culture & History",
		Icon:        "landmark",
		Color:       "#6D4C41",
		Description: "Museums, old towns and centuries of stories.",
		Keywords: []string{
			"museum", "historic", "heritage", "art", "architecture", "cathedral", "gallery", "castle",
		},
		AmenityMatches:   []string{"guided tours", "library", "concierge", "tour desk"},
		LocationKeywords: []string{"old town", "historic center", "historic centre", "unesco", "quarter"},
	},
	{
		ID:          "food-wine",
		Name:        "Food & Wine",
		Icon:        "utensils",
		Color:       "#AD1457",
		Description: "Tasting menus, local markets and a good cellar.",
		Keywords: []string{
			"restaurant", "cuisine", "gourmet", "wine", "culinary", "michelin", "tasting", "chef",
		},
		AmenityMatches:   []string{"restaurant", "wine cellar", "bar", "room service", "breakfast"},
		LocationKeywords: []string{"vineyard", "market", "wine region", "food hall"},
	},
	{
		ID:          "nightlife-entertainment",
		Name:        "Nightlife & Entertainment",
		Icon:        "music",
		Color:       "#5E35B1",
		Description: "Rooftop bars, live music and late nights.",
		Keywords: []string{
			"nightlife", "club", "party", "live music", "cocktail", "rooftop", "entertainment",
		},
		AmenityMatches:   []string{"nightclub", "rooftop bar", "lounge", "24-hour front desk", "casino"},
		LocationKeywords: []string{"entertainment district", "downtown", "strip", "city center"},
	},
	{
		ID:          "family-fun",
		Name:        "Family Fun",
		Icon:        "child",
		Color:       "#1E88E5",
		Description: "Space for the kids and something for everyone.",
		Keywords:    []string{"family", "kids", "children", "playground", "theme park"},
		AmenityMatches: []string{
			"kids club", "playground", "family room", "babysitting", "children's pool",
		},
		LocationKeywords: []string{"theme park", "zoo", "aquarium", "resort area"},
	},
	{
		ID:          "romance",
		Name:        "Romance",
		Icon:        "heart",
		Color:       "#E53935",
		Description: "Intimate stays for two.",
		Keywords: []string{
			"romantic", "couples", "honeymoon", "intimate", "candlelit", "adults only",
		},
		AmenityMatches:   []string{"jacuzzi", "couples massage", "private terrace", "champagne", "room service"},
		LocationKeywords: []string{"seafront", "old town", "lakeside", "vineyard"},
	},
	{
		ID:          "nature-wildlife",
		Name:        "Nature & Wildlife",
		Icon:        "leaf",
		Color:       "#558B2F",
		Description: "Forests, reserves and wildlife on the doorstep.",
		Keywords: []string{
			"nature", "wildlife", "eco", "forest", "safari", "birdwatching", "garden",
		},
		AmenityMatches:   []string{"garden", "nature trail", "eco-friendly", "binocular"},
		LocationKeywords: []string{"forest", "national park", "reserve", "jungle", "countryside"},
	},
	{
		ID:          "business-travel",
		Name:        "Business Travel",
		Icon:        "briefcase",
		Color:       "#455A64",
		Description: "Reliable wifi, meeting rooms and a short ride to the office.",
		Keywords: []string{
			"business", "conference", "meeting", "corporate", "executive", "workspace",
		},
		AmenityMatches:   []string{"business center", "meeting room", "wifi", "airport shuttle", "desk"},
		LocationKeywords: []string{"financial district", "airport", "convention center", "business district"},
	},
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultCategories)
	if err != nil {
		// built-in data; only reachable by editing the table above
		panic(err)
	}
	return c
}
