package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// ProgressBar renders a Unicode progress bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d/%d", bar, done, total)
}

// Box draws a framed block using the current theme. width <= 0 sizes the box
// to its widest line.
func Box(lines []string, width int) string {
	t := Current()
	style := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	if width > 0 {
		// Border and padding take two columns on each side.
		inner := width - 4
		if inner < 1 {
			inner = 1
		}
		lines = strings.Split(strings.Join(lines, "\n"), "\n")
		for i, ln := range lines {
			lines[i] = xansi.Truncate(ln, inner, "…")
		}
		style = style.Width(inner + 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}
