package registry

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/logging"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of the registry
type document struct {
	Targets map[string][]string `yaml:"targets"`
}

// Store persists a Registry to a YAML file
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry. A missing file yields an empty registry.
func (s *Store) Load() (*Registry, error) {
	logger := logging.GetLogger("registry.store")

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", s.path).Msg("Registry file not found, starting empty")
			return New(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "Failed to read config file %s", s.path).
			WithDetail("path", s.path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "Failed to parse config file").
			WithDetail("path", s.path)
	}

	reg := New()
	for target, sources := range doc.Targets {
		if !filepath.IsAbs(target) {
			logger.Warn().Str("path", s.path).Str("target", target).Msg("Ignoring target with a relative path")
			continue
		}
		target = filepath.Clean(target)
		for _, source := range sources {
			if !filepath.IsAbs(source) {
				logger.Warn().Str("target", target).Str("source", source).Msg("Ignoring source with a relative path")
				continue
			}
			if err := reg.Add(target, filepath.Clean(source)); err != nil {
				logger.Warn().Str("target", target).Str("source", source).Msg("Ignoring duplicate source")
			}
		}
	}

	logger.Debug().Str("path", s.path).Int("targets", reg.Len()).Msg("Registry loaded")
	return reg, nil
}

// Save writes the registry atomically through a temporary file in the same
// directory.
func (s *Store) Save(reg *Registry) error {
	logger := logging.GetLogger("registry.store")

	doc := document{Targets: reg.targets}
	if doc.Targets == nil {
		doc.Targets = map[string][]string{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "Failed to save config file").
			WithDetail("path", s.path)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "Failed to save config file").
			WithDetail("path", s.path)
	}

	if err := writeAtomic(s.path, buf.Bytes()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "Failed to save config file %s", s.path).
			WithDetail("path", s.path)
	}

	logger.Debug().Str("path", s.path).Int("targets", reg.Len()).Msg("Registry saved")
	return nil
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tp := path + ".tmp"

	f, err := os.OpenFile(tp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tp, path)
	}
	if err != nil {
		_ = os.Remove(tp)
	}
	return err
}
