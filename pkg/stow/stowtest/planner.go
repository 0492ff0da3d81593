// Package stowtest provides an in-memory stow.Planner for tests that must
// not depend on the link tool being installed.
package stowtest

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/amu/pkg/errors"
	"github.com/arthur-debert/amu/pkg/stow"
)

// Call records one Plan or Apply invocation
type Call struct {
	Simulate bool
	Mode     stow.Mode
	Source   string
	Target   string
}

// Planner is a scripted stow.Planner.
//
// Plans returns the transcript for a (mode, source) pair, defaulting to "".
// PlanErr and ApplyErr, when set, are returned from every call of that kind.
// With Link set, Apply creates relative symlinks for every file in source
// (ModeCreate, ModeRefresh) or removes the links that point into source
// (ModeRemove).
type Planner struct {
	mu sync.Mutex

	Plans    map[Key]string
	PlanErr  error
	ApplyErr error
	Link     bool

	calls []Call
}

// Key identifies a scripted plan
type Key struct {
	Mode   stow.Mode
	Source string
}

var _ stow.Planner = (*Planner)(nil)

// New creates a planner that performs real linking on Apply
func New() *Planner {
	return &Planner{Plans: make(map[Key]string), Link: true}
}

// Script sets the transcript returned by Plan for (mode, source)
func (p *Planner) Script(mode stow.Mode, source, transcript string) *Planner {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Plans == nil {
		p.Plans = make(map[Key]string)
	}
	p.Plans[Key{Mode: mode, Source: source}] = transcript
	return p
}

// Calls returns the invocations seen so far
func (p *Planner) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// Applied returns only the Apply invocations
func (p *Planner) Applied() []Call {
	var out []Call
	for _, c := range p.Calls() {
		if !c.Simulate {
			out = append(out, c)
		}
	}
	return out
}

func (p *Planner) Plan(ctx context.Context, mode stow.Mode, source, target string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{Simulate: true, Mode: mode, Source: source, Target: target})

	if _, _, err := stow.SplitSource(source); err != nil {
		return "", err
	}
	if p.PlanErr != nil {
		return "", p.PlanErr
	}
	return p.Plans[Key{Mode: mode, Source: source}], nil
}

func (p *Planner) Apply(ctx context.Context, mode stow.Mode, source, target string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{Mode: mode, Source: source, Target: target})

	if _, _, err := stow.SplitSource(source); err != nil {
		return err
	}
	if p.ApplyErr != nil {
		return p.ApplyErr
	}
	if !p.Link {
		return nil
	}

	switch mode {
	case stow.ModeRemove:
		return unlinkTree(source, target)
	case stow.ModeRefresh:
		if err := unlinkTree(source, target); err != nil {
			return err
		}
		return linkTree(source, target)
	default:
		return linkTree(source, target)
	}
}

// linkTree mirrors source into target without folding: directories are
// created for real and every other entry becomes a relative symlink.
func linkTree(source, target string) error {
	return filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		dst := filepath.Join(target, rel)

		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}

		if info, err := os.Lstat(dst); err == nil {
			if info.Mode()&os.ModeSymlink != 0 {
				if resolved, _ := filepath.EvalSymlinks(dst); resolved == path {
					return nil
				}
			}
			return errors.Newf(errors.ErrLinkTool, "stow command failed: existing target is not owned by stow: %s", rel)
		}

		linkDest, err := filepath.Rel(filepath.Dir(dst), path)
		if err != nil {
			return err
		}
		return os.Symlink(linkDest, dst)
	})
}

// unlinkTree removes links in target that resolve into source
func unlinkTree(source, target string) error {
	return filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(target, rel)
		info, err := os.Lstat(dst)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			return nil
		}
		dest, err := os.Readlink(dst)
		if err != nil {
			return nil
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(dst), dest)
		}
		if filepath.Clean(dest) != path {
			return nil
		}
		return os.Remove(dst)
	})
}
