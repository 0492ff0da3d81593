package registry

import (
	"sort"

	"github.com/arthur-debert/amu/pkg/errors"
)

// Registry maps a target directory to its sources in registration order
type Registry struct {
	targets map[string][]string
}

// New creates an empty registry
func New() *Registry {
	return &Registry{targets: make(map[string][]string)}
}

// Add registers source under target
func (r *Registry) Add(target, source string) error {
	for _, s := range r.targets[target] {
		if s == source {
			return errors.Newf(errors.ErrAlreadyRegistered, "Already registered: %s -> %s", source, target).
				WithDetail("source", source).
				WithDetail("target", target)
		}
	}
	r.targets[target] = append(r.targets[target], source)
	return nil
}

// Remove unregisters source from target. The target itself is dropped once
// it has no sources left.
func (r *Registry) Remove(target, source string) error {
	sources := r.targets[target]
	for i, s := range sources {
		if s != source {
			continue
		}
		if len(sources) == 1 {
			delete(r.targets, target)
			return nil
		}
		remaining := make([]string, 0, len(sources)-1)
		remaining = append(remaining, sources[:i]...)
		remaining = append(remaining, sources[i+1:]...)
		r.targets[target] = remaining
		return nil
	}
	return errors.Newf(errors.ErrNotRegistered, "Not registered: %s -> %s", source, target).
		WithDetail("source", source).
		WithDetail("target", target)
}

// RemoveTarget drops target and all of its sources, returning them
func (r *Registry) RemoveTarget(target string) []string {
	sources := r.targets[target]
	delete(r.targets, target)
	return sources
}

// SourcesOf returns a copy of target's sources, or nil if target is not
// registered
func (r *Registry) SourcesOf(target string) []string {
	sources, ok := r.targets[target]
	if !ok {
		return nil
	}
	out := make([]string, len(sources))
	copy(out, sources)
	return out
}

// Has reports whether target has at least one source
func (r *Registry) Has(target string) bool {
	_, ok := r.targets[target]
	return ok
}

// Targets returns every registered target in sorted order
func (r *Registry) Targets() []string {
	targets := make([]string, 0, len(r.targets))
	for t := range r.targets {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// TargetsWithSource returns, in sorted order, the targets that list source
func (r *Registry) TargetsWithSource(source string) []string {
	var out []string
	for _, t := range r.Targets() {
		for _, s := range r.targets[t] {
			if s == source {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// IsEmpty reports whether no target is registered
func (r *Registry) IsEmpty() bool {
	return len(r.targets) == 0
}

// Len returns the number of registered targets
func (r *Registry) Len() int {
	return len(r.targets)
}
