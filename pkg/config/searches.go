package config

import (
	"fmt"
	"os"
	"strings"

	"otpctl/pkg/otp"

	"gopkg.in/yaml.v3"
)

// SavedSearch is a named trip search kept in a YAML file.
type SavedSearch struct {
	Name      string                 `yaml:"name"`
	Variables otp.TripQueryVariables `yaml:"search"`
}

type searchFile struct {
	Searches []SavedSearch `yaml:"searches"`
}

// LoadSearches reads the saved searches file at path.
func LoadSearches(path string) ([]SavedSearch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read searches file: %w", err)
	}

	var f searchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse searches YAML: %w", err)
	}

	seen := make(map[string]bool)
	for i, s := range f.Searches {
		if s.Name == "" {
			return nil, fmt.Errorf("search #%d has no name", i+1)
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate search name %q", s.Name)
		}
		seen[key] = true
	}

	return f.Searches, nil
}

// FindSearch looks a search up by name, ignoring case.
func FindSearch(searches []SavedSearch, name string) (SavedSearch, bool) {
	for _, s := range searches {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return SavedSearch{}, false
}
