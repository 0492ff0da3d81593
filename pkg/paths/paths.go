package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/amu/pkg/errors"
)

// Environment variable names
const (
	// EnvRegistryFile overrides the registry file location
	EnvRegistryFile = "AMU_CONFIG"

	// EnvSettingsFile overrides the settings file location
	EnvSettingsFile = "AMU_SETTINGS"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// File layout under the XDG directories
const (
	// DirName is the directory name for amu-specific files
	DirName = "amu"

	// RegistryFileName holds the target -> sources bindings
	RegistryFileName = "config.yaml"

	// SettingsFileName holds user settings
	SettingsFileName = "settings.toml"

	// LogFileName is the name of the log file
	LogFileName = "amu.log"
)

// Role tells Normalize which not-found error to report.
type Role int

const (
	RoleSource Role = iota
	RoleTarget
)

// ConfigDir returns $XDG_CONFIG_HOME/amu. XDG variables are re-read on each
// call so that environment changes made after startup are honoured.
func ConfigDir() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, DirName)
}

// StateDir returns $XDG_STATE_HOME/amu
func StateDir() string {
	xdg.Reload()
	return filepath.Join(xdg.StateHome, DirName)
}

// RegistryFile returns the registry location. Precedence: AMU_CONFIG,
// the configured override, the XDG default.
func RegistryFile(configured string) string {
	if p := strings.TrimSpace(os.Getenv(EnvRegistryFile)); p != "" {
		return Expand(p)
	}
	if p := strings.TrimSpace(configured); p != "" {
		return Expand(p)
	}
	return filepath.Join(ConfigDir(), RegistryFileName)
}

// SettingsFile returns the settings file location
func SettingsFile() string {
	if p := strings.TrimSpace(os.Getenv(EnvSettingsFile)); p != "" {
		return Expand(p)
	}
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// LogFile returns the log file location
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// Expand expands a leading ~ to the home directory. It does not access the
// filesystem and leaves ~user forms untouched.
func Expand(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := homeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// Normalize expands, absolutizes and resolves symlinks in path. A missing
// path is reported as SOURCE_NOT_FOUND or TARGET_NOT_FOUND depending on role.
func Normalize(path string, role Role) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(Expand(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", notFound(abs, role)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", abs)
	}

	return resolved, nil
}

// ResolveTarget normalizes an explicit target, or falls back to the current
// working directory when none is given.
func ResolveTarget(target string) (string, error) {
	if strings.TrimSpace(target) != "" {
		return Normalize(target, RoleTarget)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return Normalize(cwd, RoleTarget)
}

// Canonical is Normalize without the existence requirement. A path that
// does not exist is returned absolute but otherwise unresolved, which is how
// it was stored when it did exist.
func Canonical(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(Expand(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return resolved, nil
}

// CanonicalTarget is Canonical with the current directory as default
func CanonicalTarget(target string) (string, error) {
	if strings.TrimSpace(target) != "" {
		return Canonical(target)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return Canonical(cwd)
}

// Exists reports whether path names an existing directory
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// RequireDir fails with the role's not-found error unless path is an
// existing directory.
func RequireDir(path string, role Role) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return notFound(path, role)
	}
	return nil
}

// Abbreviate replaces the home directory prefix with ~ for display
func Abbreviate(path string) string {
	homeDir, err := homeDirectory()
	if err != nil {
		return path
	}

	if path == homeDir {
		return "~"
	}
	rel, err := filepath.Rel(homeDir, path)
	if err != nil || !filepath.IsAbs(path) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return "~/" + rel
}

func notFound(path string, role Role) error {
	if role == RoleTarget {
		return errors.Newf(errors.ErrTargetNotFound, "Target directory does not exist: %s", path).
			WithDetail("path", path)
	}
	return errors.Newf(errors.ErrSourceNotFound, "Source directory does not exist: %s", path).
		WithDetail("path", path)
}

func homeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory")
}
