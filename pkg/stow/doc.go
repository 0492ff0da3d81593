// Package stow drives GNU Stow, the external tool that creates and removes
// the symlink trees amu manages.
//
// Stow addresses a package by name inside a stow directory, so a source
// path is split into its parent (the -d argument) and its leaf name. Every
// invocation uses --no-folding: each file gets its own link and target
// directories stay real.
//
// Simulated runs (-n -v) write their plan to stderr. Plan returns that text
// unchanged and ParsePlan turns it into Operations for counting and display.
// Decisions are never made from the parsed list.
package stow
