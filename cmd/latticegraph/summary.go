package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-latticegraph/pkg/conduction"
	"github.com/dd0wney/cluso-latticegraph/pkg/export"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(12)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

func row(label string, value any) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), fmt.Sprint(value))
}

// renderSummary draws the network statistics box and, when given, the stage
// timings next to it. A negative cycle count is not shown.
func renderSummary(doc export.Document, timings []conduction.StageTiming, cycles int) string {
	stats := []string{
		titleStyle.Render("Network " + doc.RunID),
		row("axis", doc.Axis),
		row("cutoff", doc.Cutoff),
		row("nodes", len(doc.Nodes)),
		row("edges", len(doc.Edges)),
		row("start", joinInts(doc.Start)),
		row("end", joinInts(doc.End)),
	}
	if cycles >= 0 {
		stats = append(stats, row("cycles", cycles))
	}
	boxes := []string{boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, stats...))}

	if len(timings) > 0 {
		lines := []string{titleStyle.Render("Stages")}
		for _, st := range timings {
			lines = append(lines, row(st.Stage, st.Duration))
		}
		boxes = append(boxes, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	for _, w := range doc.Warnings {
		out += "\n" + warnStyle.Render("warning "+w.String())
	}
	return out
}

func joinInts(vals []int) string {
	if len(vals) == 0 {
		return "-"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
