package linkstate

import (
	"encoding/json"
	"fmt"
)

// Severity buckets statuses for summaries and exit codes
type Severity string

const (
	SeverityOK      Severity = "ok"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// SeverityOf maps every Kind to its severity. It panics on a kind it does
// not know so that a new status cannot be added without a severity.
func SeverityOf(k Kind) Severity {
	switch k {
	case KindOK:
		return SeverityOK
	case KindBrokenLinks, KindRealFiles, KindConflicts:
		return SeverityWarning
	case KindSourceNotFound, KindTargetNotFound, KindPermissionDenied:
		return SeverityError
	default:
		panic(fmt.Sprintf("linkstate: no severity for status kind %d", int(k)))
	}
}

// Summary counts statuses by severity
type Summary struct {
	OK      int `json:"ok"`
	Warning int `json:"warning"`
	Error   int `json:"error"`
}

// Add counts one status of severity sev
func (s *Summary) Add(sev Severity) {
	switch sev {
	case SeverityOK:
		s.OK++
	case SeverityWarning:
		s.Warning++
	case SeverityError:
		s.Error++
	}
}

// Total is the number of statuses counted
func (s Summary) Total() int {
	return s.OK + s.Warning + s.Error
}

// HasIssues reports whether anything short of ok was counted
func (s Summary) HasIssues() bool {
	return s.Warning+s.Error > 0
}

// SourceResult is the status of one source under a target
type SourceResult struct {
	Source string `json:"source"`
	Status Status `json:"-"`
}

// MarshalJSON flattens the status fields next to the source
func (r SourceResult) MarshalJSON() ([]byte, error) {
	status, err := json.Marshal(r.Status)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(status, &fields); err != nil {
		return nil, err
	}
	source, err := json.Marshal(r.Source)
	if err != nil {
		return nil, err
	}
	fields["source"] = source
	return json.Marshal(fields)
}

// TargetResult groups the sources of one target
type TargetResult struct {
	Target  string         `json:"target"`
	Sources []SourceResult `json:"sources"`
}

// Report collects statuses grouped by target in the order they are added
type Report struct {
	Targets []TargetResult `json:"targets"`
	Summary Summary        `json:"summary"`
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{Targets: []TargetResult{}}
}

// Add records the status of source under target
func (r *Report) Add(target, source string, status Status) {
	r.Summary.Add(status.Severity())

	result := SourceResult{Source: source, Status: status}
	for i := range r.Targets {
		if r.Targets[i].Target == target {
			r.Targets[i].Sources = append(r.Targets[i].Sources, result)
			return
		}
	}
	r.Targets = append(r.Targets, TargetResult{Target: target, Sources: []SourceResult{result}})
}
