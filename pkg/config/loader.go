package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/logging"
	"github.com/arthur-debert/amu/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "AMU_"

// Options controls which layers Load reads
type Options struct {
	// SettingsFile overrides the user settings location. Empty uses
	// paths.SettingsFile.
	SettingsFile string

	// Overrides are applied last, keyed by dotted setting name
	Overrides map[string]interface{}
}

// Load builds the effective settings from all layers
func Load(opts Options) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(defaultsProvider{}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load default settings")
	}

	// 2. User settings file, if present
	settingsFile := opts.SettingsFile
	if settingsFile == "" {
		settingsFile = paths.SettingsFile()
	}
	if _, err := os.Stat(settingsFile); err == nil {
		if err := k.Load(file.Provider(settingsFile), parserFor(settingsFile)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", settingsFile).
				WithDetail("path", settingsFile)
		}
		logger.Debug().Str("path", settingsFile).Msg("Loaded settings file")
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat settings file %s", settingsFile).
			WithDetail("path", settingsFile)
	}

	// 3. Environment
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply setting overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to decode settings")
	}

	s.Display.Format = strings.ToLower(strings.TrimSpace(s.Display.Format))
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("tool", s.Tool.Binary).
		Str("registry", s.RegistryFile()).
		Str("format", s.Display.Format).
		Msg("Settings loaded")
	return &s, nil
}

// Default returns the embedded defaults alone
func Default() *Settings {
	k := koanf.New(".")
	if err := k.Load(defaultsProvider{}, toml.Parser()); err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	return &s
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps AMU_SECTION_KEY to section.key. AMU_CONFIG names the registry
// file. Anything else without a section is ignored.
func envKey(s string) string {
	name := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if name == "config" {
		return "registry.file"
	}
	section, key, ok := strings.Cut(name, "_")
	if !ok || key == "" {
		return ""
	}
	return section + "." + key
}
