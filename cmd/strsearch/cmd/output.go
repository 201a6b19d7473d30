package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/corey/strsearch/internal/domain/bench"
	"github.com/corey/strsearch/internal/domain/corpus"
	"github.com/corey/strsearch/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorRed     = "\033[31m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorGray    = "\033[90m"
)

// painter wraps strings in ANSI codes when enabled.
type painter bool

func (p painter) paint(code, s string) string {
	if !p {
		return s
	}
	return code + s + colorReset
}

const rowFormat = "  %-24s %9s %11s %11s %11s %9s %8s"

// formatSeconds renders a per-call duration with an adaptive unit.
func formatSeconds(s float64) string {
	switch {
	case s < 1e-6:
		return fmt.Sprintf("%.1fns", s*1e9)
	case s < 1e-3:
		return fmt.Sprintf("%.2fµs", s*1e6)
	case s < 1:
		return fmt.Sprintf("%.2fms", s*1e3)
	default:
		return fmt.Sprintf("%.3fs", s)
	}
}

// formatRun renders a run as one block per (text, pattern) pair, rows in
// report order. Baseline rows are dimmed.
//
//	⚡ run #3 │ 75 records │ repeat 5 │ hash direct │ 1.2s
//	  text #2 (9000 bytes, 1a2b3c4d) pattern #0 (150 bytes)
//	  algorithm                 position         min         max        mean  text len  pat len
//	  Knuth-Morris-Pratt            4500    12.34µs ...
func formatRun(run *bench.Run, color bool) string {
	p := painter(color)
	var sb strings.Builder
	sb.WriteString(formatRunHeader(run, color))
	sb.WriteString("\n")

	var last *bench.Record
	for _, r := range run.Table.Rows() {
		if last == nil || r.Text != last.Text || r.Key.Pattern != last.Key.Pattern {
			sb.WriteString("\n")
			sb.WriteString(p.paint(colorCyan, fmt.Sprintf("  text #%d (%d bytes, %08x) pattern #%d (%d bytes)",
				r.Text, r.TextLen, r.TextDigest>>32, r.Key.Pattern, r.PatternLen())))
			sb.WriteString("\n")
			sb.WriteString(p.paint(colorBold, fmt.Sprintf(rowFormat,
				"algorithm", "position", "min", "max", "mean", "text len", "pat len")))
			sb.WriteString("\n")
		}
		last = r
		sb.WriteString(formatRow(r, p))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatRow(r *bench.Record, p painter) string {
	pos := "not found"
	if r.Found() {
		pos = fmt.Sprintf("%d", r.Position)
	}
	line := fmt.Sprintf(rowFormat, r.Algorithm.Title(), pos,
		formatSeconds(r.Min), formatSeconds(r.Max), formatSeconds(r.Mean),
		fmt.Sprintf("%d", r.TextLen), fmt.Sprintf("%d", r.PatternLen()))
	if r.Algorithm.IsBaseline() {
		return p.paint(colorGray, line)
	}
	return line
}

func formatRunHeader(run *bench.Run, color bool) string {
	p := painter(color)
	id := "unsaved run"
	if run.ID != 0 {
		id = fmt.Sprintf("run #%d", run.ID)
	}
	return fmt.Sprintf("%s │ %d texts │ %d records │ repeat %d │ hash %s │ %s",
		p.paint(colorBold, "⚡ "+id), run.Texts, run.Table.Len(), run.Repeat,
		run.HashStrategy, run.Elapsed.Round(time.Millisecond))
}

// formatSummary names the fastest and slowest of each group.
func formatSummary(s bench.Summary, color bool) string {
	p := painter(color)
	var sb strings.Builder
	sb.WriteString(p.paint(colorBold, "Summary"))
	sb.WriteString("\n")
	line := func(label string, r *bench.Record, code string) {
		if r == nil {
			return
		}
		sb.WriteString(fmt.Sprintf("  %-18s %s  %s on text #%d pattern #%d\n",
			label, p.paint(code, fmt.Sprintf("%-24s", r.Algorithm.Title())),
			formatSeconds(r.Min), r.Text, r.Key.Pattern))
	}
	line("fastest algorithm", s.FastestOwn, colorGreen)
	line("slowest algorithm", s.SlowestOwn, colorYellow)
	line("fastest baseline", s.FastestBaseline, colorGreen)
	line("slowest baseline", s.SlowestBaseline, colorYellow)
	return sb.String()
}

// formatDisagreements lists records whose position differs from the reference.
func formatDisagreements(ds []bench.Disagreement, color bool) string {
	if len(ds) == 0 {
		return ""
	}
	p := painter(color)
	var sb strings.Builder
	sb.WriteString(p.paint(colorRed, fmt.Sprintf("✗ %d disagreements", len(ds))))
	sb.WriteString("\n")
	for _, d := range ds {
		sb.WriteString(fmt.Sprintf("  %s: got %d, want %d\n", d.Record.Key, d.Record.Position, d.Want))
	}
	return sb.String()
}

// formatRuns lists stored runs, oldest first.
func formatRuns(runs []ports.RunSummary, color bool) string {
	p := painter(color)
	var sb strings.Builder
	sb.WriteString(p.paint(colorBold, fmt.Sprintf("⚡ %d runs", len(runs))))
	sb.WriteString("\n")
	for _, r := range runs {
		started := time.Unix(0, r.Started).Format(time.DateTime)
		sb.WriteString(fmt.Sprintf("  %s  %s  %d texts  %d records  repeat %d  hash %s  %s\n",
			p.paint(colorCyan, fmt.Sprintf("#%-4d", r.ID)), started, r.Texts, r.Records,
			r.Repeat, r.HashStrategy, time.Duration(r.ElapsedNanos).Round(time.Millisecond)))
	}
	return sb.String()
}

// formatMatch renders one find result line.
func formatMatch(title string, pos int, color bool) string {
	p := painter(color)
	if pos < 0 {
		return fmt.Sprintf("  %-24s %s", title, p.paint(colorYellow, "not found"))
	}
	return fmt.Sprintf("  %-24s %s", title, p.paint(colorGreen, fmt.Sprintf("%d", pos)))
}

// describeText is the one-line identity of a text used in progress output.
func describeText(text string) string {
	return fmt.Sprintf("%d bytes, %s", len(text), corpus.Label(text))
}
