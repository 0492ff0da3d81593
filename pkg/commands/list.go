package commands

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/amu/pkg/filesystem"
	"github.com/arthur-debert/amu/pkg/linkstate"
	"github.com/arthur-debert/amu/pkg/logging"
)

// ListOptions defines the options for List
type ListOptions struct {
	Selector
	// Verbose also collects the links present in each target
	Verbose bool
}

// Link is a symlink in a target that resolves into a registered source
type Link struct {
	// Path is relative to the target
	Path   string `json:"path"`
	Source string `json:"source"`
}

// ListedTarget is one target with its sources
type ListedTarget struct {
	Target  string   `json:"target"`
	Sources []string `json:"sources"`
	Links   []Link   `json:"links,omitempty"`
}

// ListResult is returned by List
type ListResult struct {
	Selection
	Verbose bool           `json:"verbose"`
	Entries []ListedTarget `json:"entries"`
}

// List reports the sources registered for the selected targets
func List(deps Deps, opts ListOptions) (*ListResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "List").Msg("Executing command")
	defer logging.LogOperationStart(log, "list")()

	reg, err := deps.Store.Load()
	if err != nil {
		return nil, err
	}
	sel, err := opts.Selector.resolve(reg)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Selection: sel, Verbose: opts.Verbose, Entries: []ListedTarget{}}
	walker := linkstate.NewWalker(deps.FS)

	for _, target := range sel.Targets {
		entry := ListedTarget{Target: target, Sources: reg.SourcesOf(target)}
		if opts.Verbose {
			entry.Links = []Link{}
			for _, source := range entry.Sources {
				entry.Links = append(entry.Links, linksInto(deps, walker, source, target)...)
			}
		}
		result.Entries = append(result.Entries, entry)
	}

	log.Info().Int("targets", len(result.Entries)).Msg("Command finished")
	return result, nil
}

// linksInto finds the target symlinks whose destination lies inside source
func linksInto(deps Deps, walker *linkstate.Walker, source, target string) []Link {
	var links []Link
	for _, e := range walker.Walk(source, target) {
		if !e.IsLink() {
			continue
		}
		dest, err := filesystem.LinkDestination(deps.FS, filepath.Join(target, e.RelPath))
		if err != nil || !within(dest, source) {
			continue
		}
		links = append(links, Link{Path: e.RelPath, Source: source})
	}
	return links
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
