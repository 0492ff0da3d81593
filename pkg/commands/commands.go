// Package commands implements amu's operations, one per CLI subcommand.
//
// Each operation loads the registry, does its work through the link tool
// and the classifier, saves the registry when it changed and returns a
// result struct. Rendering and exit codes are left to the caller.
//
//   - Add, Remove: mutate one binding and stop at the first failure
//   - Update, Restore, Clear: walk every selected pair, counting failures
//   - List, Status: read only
package commands

import (
	"github.com/arthur-debert/amu/pkg/filesystem"
	"github.com/arthur-debert/amu/pkg/paths"
	"github.com/arthur-debert/amu/pkg/registry"
	"github.com/arthur-debert/amu/pkg/stow"
)

// Deps are the collaborators shared by every command
type Deps struct {
	Store   *registry.Store
	Planner stow.Planner
	FS      filesystem.FS
}

// Selection is the set of targets a command acts on
type Selection struct {
	Targets []string `json:"targets"`

	// Empty is set when nothing at all is registered
	Empty bool `json:"empty,omitempty"`

	// Unregistered names an explicitly requested target that has no sources
	Unregistered string `json:"unregistered,omitempty"`
}

// Selector picks targets: every target with All, else the given one or the
// current directory.
type Selector struct {
	Target string
	All    bool
}

func (s Selector) resolve(reg *registry.Registry) (Selection, error) {
	if reg.IsEmpty() {
		return Selection{Targets: []string{}, Empty: true}, nil
	}
	if s.All {
		return Selection{Targets: reg.Targets()}, nil
	}

	target, err := paths.CanonicalTarget(s.Target)
	if err != nil {
		return Selection{}, err
	}
	if !reg.Has(target) {
		return Selection{Targets: []string{}, Unregistered: target}, nil
	}
	return Selection{Targets: []string{target}}, nil
}

// Outcome of one (source, target) pair in a batch command
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomePlanned Outcome = "planned"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// PairResult is what a batch command did with one source
type PairResult struct {
	Source  string           `json:"source"`
	Outcome Outcome          `json:"outcome"`
	Error   string           `json:"error,omitempty"`
	Plan    []stow.Operation `json:"plan,omitempty"`
}

// TargetResult groups the pairs of one target
type TargetResult struct {
	Target string       `json:"target"`
	Pairs  []PairResult `json:"pairs"`
}

// BatchResult is returned by Update, Restore and Clear
type BatchResult struct {
	Selection
	DryRun    bool           `json:"dry_run"`
	Results   []TargetResult `json:"results"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
}

func newBatch(sel Selection, dryRun bool) *BatchResult {
	return &BatchResult{Selection: sel, DryRun: dryRun, Results: []TargetResult{}}
}

func (b *BatchResult) record(target string, pair PairResult) {
	switch pair.Outcome {
	case OutcomeApplied, OutcomePlanned:
		b.Succeeded++
	case OutcomeFailed:
		b.Failed++
	case OutcomeSkipped:
		b.Skipped++
	}

	for i := range b.Results {
		if b.Results[i].Target == target {
			b.Results[i].Pairs = append(b.Results[i].Pairs, pair)
			return
		}
	}
	b.Results = append(b.Results, TargetResult{Target: target, Pairs: []PairResult{pair}})
}

// HasFailures reports whether any pair failed
func (b *BatchResult) HasFailures() bool {
	return b.Failed > 0
}
