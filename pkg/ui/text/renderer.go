// Package text renders command results as lines of human readable text.
//
// The layout is shared by the plain and terminal formats; a Painter
// decides whether the semantic pieces (glyphs, headers, dry-run markers)
// get styled.
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/amu/pkg/commands"
	"github.com/arthur-debert/amu/pkg/linkstate"
	"github.com/arthur-debert/amu/pkg/paths"
	"github.com/arthur-debert/amu/pkg/stow"
	"github.com/arthur-debert/amu/pkg/ui/styles"
)

// Painter applies a named style to a piece of output
type Painter interface {
	Paint(style, s string) string
}

type plain struct{}

func (plain) Paint(_, s string) string { return s }

// Glyphs shown in front of each status line
const (
	GlyphOK    = "✓"
	GlyphWarn  = "!"
	GlyphError = "✗"
)

const dryRunMarker = "[dry-run]"

// Renderer writes results without any styling unless a Painter says
// otherwise. Write errors are sticky for the duration of one call.
type Renderer struct {
	out           io.Writer
	paint         Painter
	conflictLines int
	err           error
}

// New creates a plain text renderer. conflictLines caps the diagnostic
// lines shown for a conflict; zero or less shows all of them.
func New(w io.Writer, conflictLines int) *Renderer {
	return NewStyled(w, plain{}, conflictLines)
}

// NewStyled creates a renderer that styles its output with p
func NewStyled(w io.Writer, p Painter, conflictLines int) *Renderer {
	return &Renderer{out: w, paint: p, conflictLines: conflictLines}
}

// RenderResult renders any command result
func (r *Renderer) RenderResult(result interface{}) error {
	r.err = nil
	switch v := result.(type) {
	case *commands.AddResult:
		r.add(v)
	case *commands.RemoveResult:
		r.remove(v)
	case *commands.UpdateResult:
		r.update(v)
	case *commands.RestoreResult:
		r.restore(v)
	case *commands.ClearResult:
		r.clear(v)
	case *commands.ListResult:
		r.list(v)
	case *commands.StatusResult:
		r.status(v)
	default:
		r.printf("%+v\n", result)
	}
	return r.err
}

// RenderError renders an error as "Error: message"
func (r *Renderer) RenderError(err error) error {
	r.err = nil
	r.line(r.paint.Paint(styles.Error, "Error:") + " " + err.Error())
	return r.err
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	r.err = nil
	r.line(msg)
	return r.err
}

func (r *Renderer) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) line(s string) {
	r.printf("%s\n", s)
}

func (r *Renderer) blank() {
	r.printf("\n")
}

func (r *Renderer) path(p string) string {
	return r.paint.Paint(styles.Path, paths.Abbreviate(p))
}

func (r *Renderer) dry(s string) string {
	return r.paint.Paint(styles.DryRun, dryRunMarker) + " " + s
}

// selection prints the notice for an empty or unmatched selection and
// reports whether there is anything left to render
func (r *Renderer) selection(sel commands.Selection) bool {
	switch {
	case sel.Empty:
		r.line("No targets registered.")
		return false
	case sel.Unregistered != "":
		r.line("Target not registered: " + r.path(sel.Unregistered))
		return false
	}
	return true
}

func (r *Renderer) plan(ops []stow.Operation, indent string) {
	if len(ops) == 0 {
		r.line(indent + r.dry("no changes"))
		return
	}
	for _, op := range ops {
		r.line(indent + r.dry(r.operation(op)))
	}
}

func (r *Renderer) operation(op stow.Operation) string {
	switch op.Action {
	case stow.ActionLink:
		if op.Detail != "" {
			return "link " + op.Path + " => " + op.Detail
		}
		return "link " + op.Path
	case stow.ActionUnlink:
		return "unlink " + op.Path
	case stow.ActionSkip:
		return "skip " + op.Path
	case stow.ActionConflict:
		s := r.paint.Paint(styles.Warning, "conflict") + " " + op.Path
		if op.Detail != "" {
			s += ": " + op.Detail
		}
		return s
	default:
		return string(op.Action) + " " + op.Path
	}
}

func (r *Renderer) add(res *commands.AddResult) {
	if res.DryRun {
		r.line(r.dry(fmt.Sprintf("Would add: %s -> %s", res.Source, res.Target)))
		r.plan(res.Plan, "  ")
		return
	}
	r.line(fmt.Sprintf("%s %s -> %s", r.paint.Paint(styles.Success, "Added:"), res.Source, res.Target))
}

func (r *Renderer) remove(res *commands.RemoveResult) {
	if res.DryRun {
		r.line(r.dry(fmt.Sprintf("Would remove: %s -> %s", res.Source, res.Target)))
		if res.Unlinked {
			r.plan(res.Plan, "  ")
		}
		return
	}
	r.line(fmt.Sprintf("%s %s -> %s", r.paint.Paint(styles.Success, "Removed:"), res.Source, res.Target))
	if !res.Unlinked {
		r.line(r.paint.Paint(styles.Muted, "  (nothing to unlink, source or target is gone)"))
	}
}

func (r *Renderer) update(res *commands.UpdateResult) {
	if !r.selection(res.Selection) {
		return
	}
	if len(res.Results) == 0 {
		r.line("No targets reference " + r.path(res.Source))
		return
	}

	for _, t := range res.Results {
		r.line(r.paint.Paint(styles.Header, "Updating "+paths.Abbreviate(t.Target)+":"))
		for _, p := range t.Pairs {
			switch p.Outcome {
			case commands.OutcomeApplied:
				r.line("  Restowed: " + r.path(p.Source))
			case commands.OutcomePlanned:
				r.line("  " + r.dry("Would restow: "+r.path(p.Source)))
				r.plan(p.Plan, "    ")
			case commands.OutcomeSkipped:
				r.line("  " + r.paint.Paint(styles.Muted, "Skipped (not found):") + " " + r.path(p.Source))
			case commands.OutcomeFailed:
				r.failure("  ", p)
			}
		}
	}
	r.counts(res.BatchResult)
}

func (r *Renderer) restore(res *commands.RestoreResult) {
	if !r.selection(res.Selection) {
		return
	}

	for _, t := range res.Results {
		r.line(r.paint.Paint(styles.Header, "Restoring "+paths.Abbreviate(t.Target)+":"))
		for _, p := range t.Pairs {
			switch p.Outcome {
			case commands.OutcomeApplied:
				r.line("  Restored: " + r.path(p.Source))
			case commands.OutcomePlanned:
				r.line("  " + r.dry("Would restore: "+r.path(p.Source)))
				r.plan(p.Plan, "    ")
			case commands.OutcomeFailed:
				r.failure("  ", p)
			}
		}
	}
	r.counts(res.BatchResult)
}

func (r *Renderer) clear(res *commands.ClearResult) {
	if !r.selection(res.Selection) {
		return
	}

	for _, t := range res.Results {
		if res.DryRun {
			r.line(r.dry("Would clear: " + r.path(t.Target)))
		}
		for _, p := range t.Pairs {
			switch {
			case p.Outcome == commands.OutcomeFailed:
				r.failure("", p)
			case res.DryRun && p.Outcome == commands.OutcomePlanned:
				r.line("  " + r.path(p.Source))
				r.plan(p.Plan, "    ")
			case res.DryRun && p.Outcome == commands.OutcomeSkipped:
				r.line("  " + r.path(p.Source) + " " + r.paint.Paint(styles.Muted, "(not found, would be dropped)"))
			}
		}
	}
	if res.DryRun {
		return
	}

	for _, target := range res.Cleared {
		r.line(r.paint.Paint(styles.Success, "Cleared:") + " " + r.path(target))
	}
	if res.All && !res.HasFailures() {
		r.line("Cleared all registered sources")
	}
}

func (r *Renderer) failure(indent string, p commands.PairResult) {
	r.line(indent + r.paint.Paint(styles.Error, "Failed:") + " " + r.path(p.Source) + ": " + p.Error)
}

func (r *Renderer) counts(b *commands.BatchResult) {
	summary := fmt.Sprintf("%d succeeded, %d failed", b.Succeeded, b.Failed)
	if b.Skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", b.Skipped)
	}
	if b.HasFailures() {
		summary = r.paint.Paint(styles.Warning, summary)
	}
	r.blank()
	r.line(summary)
}

func (r *Renderer) list(res *commands.ListResult) {
	if !r.selection(res.Selection) {
		return
	}

	for i, e := range res.Entries {
		if i > 0 {
			r.blank()
		}
		r.line(r.paint.Paint(styles.Header, paths.Abbreviate(e.Target)+":"))

		if !res.Verbose {
			for _, s := range e.Sources {
				r.line("  - " + r.path(s))
			}
			continue
		}

		r.line("  sources:")
		for _, s := range e.Sources {
			r.line("    - " + r.path(s))
		}
		r.line("  links:")
		if len(e.Links) == 0 {
			r.line(r.paint.Paint(styles.Muted, "    (none)"))
		}
		for _, l := range e.Links {
			r.line("    - " + l.Path + " -> " + r.path(l.Source))
		}
	}
}

func (r *Renderer) status(res *commands.StatusResult) {
	if !r.selection(res.Selection) {
		return
	}

	report := res.Report
	for i, t := range report.Targets {
		if i > 0 {
			r.blank()
		}
		r.line(r.paint.Paint(styles.Header, paths.Abbreviate(t.Target)+":"))
		for _, s := range t.Sources {
			r.source(s)
		}
	}

	r.blank()
	r.line(fmt.Sprintf("Summary: %d OK, %d warnings, %d errors",
		report.Summary.OK, report.Summary.Warning, report.Summary.Error))
}

func (r *Renderer) source(s linkstate.SourceResult) {
	st := s.Status
	name := r.path(s.Source)

	switch st.Kind {
	case linkstate.KindOK:
		r.line(fmt.Sprintf("  %s %s (%s)", r.paint.Paint(styles.Success, GlyphOK), name, linkCount(st.LinkCount)))
	case linkstate.KindBrokenLinks, linkstate.KindRealFiles:
		r.line(fmt.Sprintf("  %s %s (%s)", r.paint.Paint(styles.Warning, GlyphWarn), name, st.Kind.Label()))
		for _, p := range st.Paths {
			r.line("    - " + p)
		}
	case linkstate.KindConflicts:
		r.line(fmt.Sprintf("  %s %s (%s)", r.paint.Paint(styles.Warning, GlyphWarn), name, st.Kind.Label()))
		for _, l := range linkstate.Excerpt(st.Diagnostics, r.conflictLines) {
			r.line("    " + r.paint.Paint(styles.Muted, l))
		}
	case linkstate.KindPermissionDenied:
		r.line(fmt.Sprintf("  %s %s (%s)", r.paint.Paint(styles.Error, GlyphError), name, st.Kind.Label()))
		r.line("    - " + st.Path)
	default:
		r.line(fmt.Sprintf("  %s %s (%s)", r.paint.Paint(styles.Error, GlyphError), name, st.Kind.Label()))
	}
}

func linkCount(n int) string {
	if n == 1 {
		return "1 link"
	}
	return fmt.Sprintf("%d links", n)
}
