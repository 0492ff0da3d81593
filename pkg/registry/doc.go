// Package registry holds the bindings between target directories and the
// source directories merged into them.
//
// A Registry is plain in-memory data: it enforces that a source appears at
// most once per target and drops a target as soon as its last source goes.
// Store loads and saves it as YAML:
//
//	targets:
//	  /home/user/.config:
//	    - /home/user/dotfiles/config
//	    - /home/user/work/config
//
// Paths are stored exactly as given. Callers canonicalize them first with
// paths.Normalize.
package registry
