// Package config loads the optional TOML defaults file for the dependency
// generator. The file only carries default values for the extraction flags;
// explicit command-line flags always take precedence.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/isseis/go-elfdeps/internal/elfdeps"
)

// ErrEmptyConfigPath is returned when Load is called with an empty path.
var ErrEmptyConfigPath = errors.New("config file path is empty")

// File is the top-level structure of a defaults file.
type File struct {
	Defaults Defaults `toml:"defaults"`
}

// Defaults mirrors elfdeps.Config with pointer booleans so that fields left
// out of the file stay unset and do not override built-in defaults.
type Defaults struct {
	SonameOnly    *bool `toml:"soname_only"`
	FakeSoname    *bool `toml:"fake_soname"`
	FilterSoname  *bool `toml:"filter_soname"`
	RequireInterp *bool `toml:"require_interp"`
	AddArch       *bool `toml:"add_arch"`
	AddNonarch    *bool `toml:"add_nonarch"`
}

// Load reads and parses a defaults file.
func Load(path string) (*File, error) {
	if path == "" {
		return nil, ErrEmptyConfigPath
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var f File
	if err := toml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &f, nil
}

// Apply overrides the fields of cfg for which the file carries a value.
func (d Defaults) Apply(cfg *elfdeps.Config) {
	if d.SonameOnly != nil {
		cfg.SonameOnly = *d.SonameOnly
	}
	if d.FakeSoname != nil {
		cfg.FakeSoname = *d.FakeSoname
	}
	if d.FilterSoname != nil {
		cfg.FilterSoname = *d.FilterSoname
	}
	if d.RequireInterp != nil {
		cfg.RequireInterp = *d.RequireInterp
	}
	if d.AddArch != nil {
		cfg.AddArch = *d.AddArch
	}
	if d.AddNonarch != nil {
		cfg.AddNonarch = *d.AddNonarch
	}
}
