// Package report renders the end-of-run summary for scenario execution.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/siftlab/sift/internal/ui/style"
)

// Result is the outcome of a single executed scenario.
type Result struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Report summarizes a run: which scenarios executed, which were skipped by
// change-based selection, and against which branch.
type Report struct {
	// Branch is the target branch, empty when filtering was disabled.
	Branch string
	// Skipped lists scenarios filtered out because none of their sources changed.
	Skipped []string
	// Results holds executed scenarios in execution order.
	Results []Result
}

// Failed returns the number of failed scenarios.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Renderer writes reports to a writer, styling output when the writer
// supports color.
type Renderer struct {
	w    io.Writer
	ok   lipgloss.Style
	fail lipgloss.Style
	skip lipgloss.Style
	dim  lipgloss.Style
}

// NewRenderer creates a Renderer bound to w. Styling degrades to plain text
// when w is not a terminal.
func NewRenderer(w io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		w:    w,
		ok:   lr.NewStyle().Foreground(style.Green),
		fail: lr.NewStyle().Foreground(style.Red),
		skip: lr.NewStyle().Foreground(style.Slate),
		dim:  lr.NewStyle().Foreground(style.Slate),
	}
}

// Render writes the report.
func (r *Renderer) Render(rep Report) {
	var b strings.Builder

	for _, res := range rep.Results {
		icon := r.ok.Render(style.Check)
		if res.Err != nil {
			icon = r.fail.Render(style.Cross)
		}
		fmt.Fprintf(&b, "  %s %-24s %s\n", icon, res.Name, r.dim.Render(formatDuration(res.Duration)))
	}

	for _, name := range rep.Skipped {
		fmt.Fprintf(&b, "  %s %-24s %s\n", r.skip.Render(style.Circle), name, r.dim.Render("skipped (unchanged)"))
	}

	b.WriteString("\n")
	b.WriteString(r.summaryLine(rep))
	b.WriteString("\n")

	_, _ = io.WriteString(r.w, b.String())
}

func (r *Renderer) summaryLine(rep Report) string {
	parts := []string{
		fmt.Sprintf("%d run", len(rep.Results)),
		fmt.Sprintf("%d skipped", len(rep.Skipped)),
	}
	if failed := rep.Failed(); failed > 0 {
		parts = append(parts, r.fail.Render(fmt.Sprintf("%d failed", failed)))
	}
	line := strings.Join(parts, ", ")
	if rep.Branch != "" {
		line += r.dim.Render(fmt.Sprintf(" (against '%s')", rep.Branch))
	}
	return line
}

// NoChangeSummary describes a run where nothing differs from the target
// branch. fetchedAt may be zero when no fetch timestamp is known.
func NoChangeSummary(branch string, fetchedAt time.Time) string {
	summary := fmt.Sprintf("no scenarios have changed relative to the '%s' branch", branch)
	if !fetchedAt.IsZero() {
		summary += fmt.Sprintf(" since the last fetch at %s", fetchedAt.Format("2006-01-02 15:04:05"))
	}
	return summary
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return d.Truncate(time.Second).String()
	case d >= time.Second:
		return d.Truncate(10 * time.Millisecond).String()
	default:
		return d.Truncate(time.Millisecond).String()
	}
}
