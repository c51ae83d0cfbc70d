package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"otpctl/pkg/format"
)

const configFile = ".otpctl.json"

// AppConfig holds the preferences remembered between runs
type AppConfig struct {
	DefaultFrom  string   `json:"default_from,omitempty"`
	DefaultTo    string   `json:"default_to,omitempty"`
	DefaultModes []string `json:"default_modes,omitempty"`
	SearchesFile string   `json:"searches_file,omitempty"`
	AccentColor  string   `json:"accent_color,omitempty"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(home, configFile), nil
}

// normalize trims the places, lowercases the modes and drops modes the trip
// API does not know, keeping the first occurrence of each.
func (c *AppConfig) normalize() {
	c.DefaultFrom = strings.TrimSpace(c.DefaultFrom)
	c.DefaultTo = strings.TrimSpace(c.DefaultTo)
	c.SearchesFile = strings.TrimSpace(c.SearchesFile)
	c.AccentColor = strings.TrimSpace(c.AccentColor)

	if len(c.DefaultModes) == 0 {
		c.DefaultModes = nil
		return
	}
	seen := make(map[string]bool, len(c.DefaultModes))
	modes := make([]string, 0, len(c.DefaultModes))
	for _, m := range c.DefaultModes {
		m = strings.ToLower(strings.TrimSpace(m))
		if !format.IsMode(m) || seen[m] {
			continue
		}
		seen[m] = true
		modes = append(modes, m)
	}
	if len(modes) == 0 {
		modes = nil
	}
	c.DefaultModes = modes
}

// ValidateAccentColor accepts what lipgloss can draw: "#rgb", "#rrggbb" or an
// ANSI colour number from 0 to 255.
func ValidateAccentColor(s string) error {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return fmt.Errorf("ANSI colour must be between 0 and 255")
		}
		return nil
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 4) {
		return fmt.Errorf("must be a hex code starting with # or an ANSI colour number")
	}
	for _, r := range strings.ToLower(s[1:]) {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return fmt.Errorf("must be a hex code starting with # or an ANSI colour number")
		}
	}
	return nil
}

// Load reads ~/.otpctl.json. A missing file yields an empty config. Unknown
// modes in the file are dropped.
func Load() (*AppConfig, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &AppConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &AppConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save normalizes cfg and replaces ~/.otpctl.json with it. An invalid accent
// colour is rejected before anything is written.
func Save(cfg *AppConfig) error {
	cfg.normalize()
	if cfg.AccentColor != "" {
		if err := ValidateAccentColor(cfg.AccentColor); err != nil {
			return fmt.Errorf("invalid accent colour %q: %w", cfg.AccentColor, err)
		}
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// write next to the target and rename so a crash never leaves half a file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}
