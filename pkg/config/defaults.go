package config

import (
	_ "embed"

	"github.com/arthur-debert/amu/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded defaults, comments included, as a
// starting point for a settings file
func DefaultsContent() string {
	return string(defaultConfig)
}

// defaultsProvider feeds the embedded defaults to koanf. It only serves
// bytes; a parser must be supplied with it.
type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out, nil
}

func (defaultsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "defaults provider needs a parser")
}
