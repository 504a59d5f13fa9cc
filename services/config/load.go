//go:build !rp2040

package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"sniffbridge-go/errcode"
)

// Load reads a bench board plan from a YAML file, validates it and applies
// defaults.
func Load(path string) (*Board, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidConfig, "config.load", err)
	}
	return Parse(raw)
}

// Parse decodes, validates and normalises a YAML board plan.
func Parse(raw []byte) (*Board, error) {
	var b Board
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, errcode.Wrap(errcode.InvalidConfig, "config.parse", err)
	}
	if err := Validate(&b); err != nil {
		return nil, err
	}
	Normalize(&b)
	return &b, nil
}
