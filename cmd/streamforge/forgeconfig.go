package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edirooss/streamforge/pkg/forge"
)

// loadForgeConfig reads path over the defaults. Keys absent from the file
// keep their default; an empty path yields the defaults.
func loadForgeConfig(path string) (forge.Config, error) {
	cfg := forge.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return forge.Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return forge.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// saveForgeConfig writes cfg as YAML, readable by the owner only.
func saveForgeConfig(path string, cfg forge.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
