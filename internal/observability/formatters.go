// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/af-prep/internal/descriptor"
	"github.com/jonathan/af-prep/internal/relocate"
	"github.com/jonathan/af-prep/internal/report"
	"github.com/jonathan/af-prep/internal/sequences"
	"github.com/jonathan/af-prep/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeMore appends the "... and N more" trailer when items were cut.
func writeMore(sb *strings.Builder, total int, noun string) {
	if total > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more %s", total-maxItemsToShow, noun))
	}
}

// PrintSequenceResults lists the genes that could not be resolved.
func (p *Printer) PrintSequenceResults(results []sequences.Result) {
	if len(results) == 0 {
		return
	}

	found, missing := sequences.Count(results)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resolved: %d\n", found))
	sb.WriteString(fmt.Sprintf("Missing:  %d", missing))

	shown := 0
	for _, r := range results {
		if r.Found {
			continue
		}
		if shown == 0 {
			sb.WriteString("\n\nUnresolved genes:")
		}
		if shown < maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n  • %s", r.Gene))
		}
		shown++
	}
	writeMore(&sb, shown, "genes")

	p.printBox("SEQUENCE LOOKUP", sb.String())
}

// PrintBuildReport outputs the skipped rows of a descriptor build.
func (p *Printer) PrintBuildReport(r *descriptor.Report) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rows:     %d\n", r.RowsRead))
	sb.WriteString(fmt.Sprintf("Written:  %d\n", r.Written))
	sb.WriteString(fmt.Sprintf("Skipped:  %d", r.Skipped))

	if len(r.MissingAlignments) > 0 {
		count := min(len(r.MissingAlignments), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("\n\nMissing alignments: %s", strings.Join(r.MissingAlignments[:count], ", ")))
		writeMore(&sb, len(r.MissingAlignments), "genes")
	}

	if len(r.Failures) > 0 {
		byReason := make(map[string]int)
		for _, f := range r.Failures {
			byReason[f.Reason]++
		}
		reasons := make([]string, 0, len(byReason))
		for reason := range byReason {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)

		sb.WriteString("\n\nSkipped by reason:")
		for _, reason := range reasons {
			sb.WriteString(fmt.Sprintf("\n  • %s: %d", reason, byReason[reason]))
		}

		count := min(len(r.Failures), maxItemsToShow)
		sb.WriteString("\n\nFirst skipped rows:")
		for _, f := range r.Failures[:count] {
			sb.WriteString("\n  • " + f.String())
		}
		writeMore(&sb, len(r.Failures), "rows")
	}

	p.printBox("JOB DESCRIPTORS", sb.String())
}

// PrintRelocation outputs the jobs skipped by a relocation run.
func (p *Printer) PrintRelocation(r *relocate.Result) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Copied:   %d\n", len(r.Copied)))
	sb.WriteString(fmt.Sprintf("Skipped:  %d", len(r.Skipped)))

	if len(r.Skipped) > 0 {
		count := min(len(r.Skipped), maxItemsToShow)
		sb.WriteString("\n\nJobs without a data file:")
		for _, name := range r.Skipped[:count] {
			sb.WriteString(fmt.Sprintf("\n  • %s", name))
		}
		writeMore(&sb, len(r.Skipped), "jobs")
	}

	p.printBox("RELOCATED OUTPUTS", sb.String())
}

// PrintTopModels outputs the best rows by ranking score. Rows without a score sort last.
func (p *Printer) PrintTopModels(rows []types.ConfidenceRow) {
	if len(rows) == 0 {
		return
	}

	ranked := make([]types.ConfidenceRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].RankingScore, ranked[j].RankingScore
		if a == nil || b == nil {
			return a != nil
		}
		return *a > *b
	})

	var sb strings.Builder
	count := min(len(ranked), maxItemsToShow)
	for i, row := range ranked[:count] {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, row.ModelName))
		sb.WriteString(fmt.Sprintf("   ranking %s  iptm %s  ptm %s",
			orDash(row.RankingScore), orDash(row.IPTM), orDash(row.PTM)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	writeMore(&sb, len(ranked), "models")

	p.printBox("TOP MODELS", sb.String())
}

func orDash(v *float64) string {
	if s := report.FormatCell(v); s != "" {
		return s
	}
	return "-"
}
