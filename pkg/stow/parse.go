package stow

import (
	"strings"
)

// Action is what a simulated run says it would do with one path
type Action string

const (
	ActionLink     Action = "would-link"
	ActionUnlink   Action = "would-unlink"
	ActionSkip     Action = "would-skip"
	ActionConflict Action = "conflict"
)

// Operation is one entry of a parsed plan. Path is relative to the target.
type Operation struct {
	Action Action `json:"action"`
	Path   string `json:"path"`
	Detail string `json:"detail,omitempty"`
}

// Conflict markers in a simulated run's transcript
const (
	markerConflict       = "CONFLICT"
	markerExistingTarget = "existing target"
)

// HasConflict reports whether a plan transcript announces a conflict
func HasConflict(text string) bool {
	return strings.Contains(text, markerConflict) || strings.Contains(text, markerExistingTarget)
}

// ParsePlan extracts per-path operations from a simulated run's
// transcript, in transcript order. Lines it does not recognise are
// ignored.
func ParsePlan(text string) []Operation {
	var ops []Operation
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if op, ok := parseLine(line); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// Count tallies operations by action
func Count(ops []Operation) map[Action]int {
	counts := make(map[Action]int)
	for _, op := range ops {
		counts[op.Action]++
	}
	return counts
}

func parseLine(line string) (Operation, bool) {
	switch {
	case strings.HasPrefix(line, "UNLINK:"):
		path, _ := splitArrow(strings.TrimPrefix(line, "UNLINK:"))
		return Operation{Action: ActionUnlink, Path: path}, path != ""

	case strings.HasPrefix(line, "LINK:"):
		path, dest := splitArrow(strings.TrimPrefix(line, "LINK:"))
		return Operation{Action: ActionLink, Path: path, Detail: dest}, path != ""

	case strings.HasPrefix(line, "--- Skipping"):
		rest := strings.TrimSpace(strings.TrimPrefix(line, "--- Skipping"))
		path, detail, _ := strings.Cut(rest, " ")
		return Operation{Action: ActionSkip, Path: path, Detail: strings.TrimSpace(detail)}, path != ""

	case strings.HasPrefix(line, "* cannot stow"):
		// * cannot stow SRC over existing target PATH since REASON
		_, rest, ok := strings.Cut(line, "over existing target ")
		if !ok {
			return Operation{}, false
		}
		path, reason, _ := strings.Cut(rest, " since ")
		return Operation{Action: ActionConflict, Path: strings.TrimSpace(path), Detail: strings.TrimSpace(reason)}, true

	case strings.HasPrefix(line, "* existing target"), strings.Contains(line, markerConflict):
		// * existing target is neither a link nor a directory: PATH
		// CONFLICT when stowing PKG: existing target is not owned by stow: PATH
		idx := strings.LastIndex(line, ": ")
		if idx < 0 {
			return Operation{}, false
		}
		return Operation{
			Action: ActionConflict,
			Path:   strings.TrimSpace(line[idx+2:]),
			Detail: strings.TrimSpace(strings.TrimPrefix(line[:idx], "*")),
		}, true
	}
	return Operation{}, false
}

// splitArrow splits "path => dest" and tolerates a missing arrow
func splitArrow(s string) (string, string) {
	path, dest, _ := strings.Cut(strings.TrimSpace(s), "=>")
	return strings.TrimSpace(path), strings.TrimSpace(dest)
}
