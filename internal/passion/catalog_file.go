package passion

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the on-disk catalog layout.
//
//	extend_defaults: true
//	passions:
//	  - id: ski-snow
//	    name: Ski & Snow
//	    keywords: [ski, snow, slope]
//	    amenity_matches: [ski storage, ski-in]
//	    location_keywords: [alps, resort]
type CatalogFile struct {
	// ExtendDefaults keeps the built-in categories; entries with a built-in
	// id replace it in place, new ids are appended.
	ExtendDefaults bool       `yaml:"extend_defaults"`
	Passions       []Category `yaml:"passions"`
}

// LoadCatalogFile reads a YAML catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var cf CatalogFile
	if err := yaml.Unmarshal(b, &cf); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	cats := cf.Passions
	if cf.ExtendDefaults {
		cats = mergeCategories(defaultCategories, cf.Passions)
	}
	return NewCatalog(cats)
}

func mergeCategories(base, extra []Category) []Category {
	out := make([]Category, 0, len(base)+len(extra))
	idx := make(map[string]int, len(base))
	for _, c := range base {
		idx[c.ID] = len(out)
		out = append(out, c.clone())
	}
	for _, c := range extra {
		if i, ok := idx[c.ID]; ok {
			out[i] = c
			continue
		}
		idx[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}
