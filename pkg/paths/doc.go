// Package paths provides centralized path handling for amu.
//
// It covers two concerns:
//
//   - Locating amu's own files (registry, settings, log) following the XDG
//     Base Directory specification, with environment overrides.
//   - Resolving user supplied source and target directories into the
//     canonical form stored in the registry.
//
// # Environment Variables
//
//   - AMU_CONFIG: registry file location (default: $XDG_CONFIG_HOME/amu/config.yaml)
//   - AMU_SETTINGS: settings file location (default: $XDG_CONFIG_HOME/amu/settings.toml)
//   - XDG_CONFIG_HOME, XDG_STATE_HOME: standard XDG base directories
//
// # Canonical paths
//
// Only canonical paths enter the registry: home-expanded, absolute and with
// every symlink resolved. Expand performs home substitution only and never
// touches the filesystem; Normalize additionally requires the path to exist.
package paths
