package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SourcesFile struct {
	Pages []Page `yaml:"pages"`
}

// OverlaySources replaces cfg.Ingest.Pages with the list in sourcesPath when
// that file exists and is non-empty.
func OverlaySources(cfg *Config, sourcesPath string) error {
	b, err := os.ReadFile(sourcesPath)
	if err != nil {
		// Missing sources file should not kill startup
		return nil
	}

	var sf SourcesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	if len(sf.Pages) > 0 {
		cfg.Ingest.Pages = sf.Pages
	}
	return nil
}
