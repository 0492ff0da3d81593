// Package config handles amu's own settings.
//
// Settings are layered with koanf, later layers winning:
//
//  1. Embedded defaults (embedded/defaults.toml)
//  2. The user settings file, $XDG_CONFIG_HOME/amu/settings.toml or
//     $AMU_SETTINGS. A .yaml or .yml extension selects the YAML parser.
//  3. AMU_<SECTION>_<KEY> environment variables, plus AMU_CONFIG for the
//     registry file
//  4. Explicit overrides, usually from command-line flags
//
// The registry of target bindings is not a setting; it lives in its own
// file managed by package registry.
package config
