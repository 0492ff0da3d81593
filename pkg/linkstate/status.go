package linkstate

import (
	"encoding/json"
	"strings"
)

// Kind is the discriminant of a Status
type Kind int

const (
	KindOK Kind = iota
	KindConflicts
	KindRealFiles
	KindBrokenLinks
	KindPermissionDenied
	KindTargetNotFound
	KindSourceNotFound
)

// Kinds lists every status kind, most severe last
var Kinds = []Kind{
	KindOK,
	KindConflicts,
	KindRealFiles,
	KindBrokenLinks,
	KindPermissionDenied,
	KindTargetNotFound,
	KindSourceNotFound,
}

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindConflicts:
		return "conflicts"
	case KindRealFiles:
		return "real_files"
	case KindBrokenLinks:
		return "broken_links"
	case KindPermissionDenied:
		return "permission_denied"
	case KindTargetNotFound:
		return "target_not_found"
	case KindSourceNotFound:
		return "source_not_found"
	default:
		return "unknown"
	}
}

// Label is the short human description shown next to a source
func (k Kind) Label() string {
	switch k {
	case KindOK:
		return "OK"
	case KindConflicts:
		return "conflicts detected"
	case KindRealFiles:
		return "real files found"
	case KindBrokenLinks:
		return "broken links"
	case KindPermissionDenied:
		return "permission denied"
	case KindTargetNotFound:
		return "target not found"
	case KindSourceNotFound:
		return "source not found"
	default:
		return "unknown"
	}
}

// Status is the state of one (source, target) pair. Only the field that
// belongs to Kind is set: Paths for BrokenLinks and RealFiles, Diagnostics
// for Conflicts, LinkCount for OK and Path for PermissionDenied.
type Status struct {
	Kind        Kind
	Paths       []string
	Diagnostics string
	LinkCount   int
	Path        string
}

func OK(linkCount int) Status {
	return Status{Kind: KindOK, LinkCount: linkCount}
}

func SourceNotFound() Status {
	return Status{Kind: KindSourceNotFound}
}

func TargetNotFound() Status {
	return Status{Kind: KindTargetNotFound}
}

func PermissionDenied(path string) Status {
	return Status{Kind: KindPermissionDenied, Path: path}
}

func BrokenLinks(paths []string) Status {
	return Status{Kind: KindBrokenLinks, Paths: paths}
}

func RealFiles(paths []string) Status {
	return Status{Kind: KindRealFiles, Paths: paths}
}

func Conflicts(diagnostics string) Status {
	return Status{Kind: KindConflicts, Diagnostics: diagnostics}
}

// Severity of this status
func (s Status) Severity() Severity {
	return SeverityOf(s.Kind)
}

type statusJSON struct {
	Status      string    `json:"status"`
	LinkCount   *int      `json:"link_count,omitempty"`
	Paths       *[]string `json:"paths,omitempty"`
	Diagnostics string    `json:"diagnostics,omitempty"`
	Path        string    `json:"path,omitempty"`
}

// MarshalJSON emits the status tag plus the payload of its kind
func (s Status) MarshalJSON() ([]byte, error) {
	out := statusJSON{Status: s.Kind.String()}
	switch s.Kind {
	case KindOK:
		count := s.LinkCount
		out.LinkCount = &count
	case KindBrokenLinks, KindRealFiles:
		paths := s.Paths
		if paths == nil {
			paths = []string{}
		}
		out.Paths = &paths
	case KindConflicts:
		out.Diagnostics = s.Diagnostics
	case KindPermissionDenied:
		out.Path = s.Path
	}
	return json.Marshal(out)
}

// Excerpt returns the first n non-blank lines of text, trimmed. n <= 0
// keeps every line.
func Excerpt(text string, n int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if n > 0 && len(lines) == n {
			break
		}
		lines = append(lines, line)
	}
	return lines
}
