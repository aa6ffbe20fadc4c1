package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	UserConfigFile  = "config.yml"
	UserSourcesFile = "sources.yml"
)

// EnsureUserConfig returns the path of the user's config.yml inside dataDir.
// A missing file is seeded from the shipped shippedPath when that parses as
// a config, and from Default otherwise.
func EnsureUserConfig(dataDir string, shippedPath string) (string, error) {
	userPath := filepath.Join(dataDir, UserConfigFile)
	exists, err := fileExists(userPath)
	if err != nil || exists {
		return userPath, err
	}

	if b, err := os.ReadFile(shippedPath); err == nil {
		var probe Config
		if yaml.Unmarshal(b, &probe) == nil {
			if err := writeSynced(userPath, b); err != nil {
				return "", fmt.Errorf("seed config: %w", err)
			}
			return userPath, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read shipped config: %w", err)
	}

	if err := SaveAtomic(userPath, Default()); err != nil {
		return "", fmt.Errorf("write default config: %w", err)
	}
	return userPath, nil
}

// EnsureUserSources copies the shipped sources.yml next to the user config
// once, so the page list can be edited in the data dir. It returns the
// user path even when nothing was shipped.
func EnsureUserSources(dataDir string, shippedPath string) (string, error) {
	userPath := filepath.Join(dataDir, UserSourcesFile)
	exists, err := fileExists(userPath)
	if err != nil || exists {
		return userPath, err
	}

	b, err := os.ReadFile(shippedPath)
	if errors.Is(err, os.ErrNotExist) {
		return userPath, nil
	}
	if err != nil {
		return "", fmt.Errorf("read shipped sources: %w", err)
	}
	if err := writeSynced(userPath, b); err != nil {
		return "", fmt.Errorf("seed sources: %w", err)
	}
	return userPath, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
