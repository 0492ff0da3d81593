package config

import (
	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/paths"
	toml "github.com/pelletier/go-toml/v2"
)

// Output formats accepted by display.format
const (
	FormatAuto = "auto"
	FormatTerm = "term"
	FormatText = "text"
	FormatJSON = "json"
)

// Settings is the effective amu configuration
type Settings struct {
	Tool     Tool     `koanf:"tool" toml:"tool"`
	Registry Registry `koanf:"registry" toml:"registry"`
	Display  Display  `koanf:"display" toml:"display"`
}

// Tool configures the external link tool
type Tool struct {
	Binary string `koanf:"binary" toml:"binary"`
}

// Registry configures where bindings are persisted
type Registry struct {
	File string `koanf:"file" toml:"file"`
}

// Display configures rendering
type Display struct {
	ConflictLines int    `koanf:"conflict_lines" toml:"conflict_lines"`
	Format        string `koanf:"format" toml:"format"`
}

// RegistryFile resolves the registry location for these settings
func (s *Settings) RegistryFile() string {
	return paths.RegistryFile(s.Registry.File)
}

// Validate checks values that cannot be caught by decoding alone
func (s *Settings) Validate() error {
	if s.Tool.Binary == "" {
		return errors.New(errors.ErrInvalidInput, "tool.binary must not be empty")
	}
	if s.Display.ConflictLines < 0 {
		return errors.Newf(errors.ErrInvalidInput, "display.conflict_lines must not be negative, got %d", s.Display.ConflictLines)
	}
	switch s.Display.Format {
	case FormatAuto, FormatTerm, FormatText, FormatJSON:
	default:
		return errors.Newf(errors.ErrInvalidInput, "display.format must be one of auto, term, text, json; got %q", s.Display.Format).
			WithDetail("format", s.Display.Format)
	}
	return nil
}

// MarshalTOML renders the settings as a TOML document
func (s *Settings) MarshalTOML() ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode settings")
	}
	return data, nil
}
