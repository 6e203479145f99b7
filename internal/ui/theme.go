package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + symbols + box borders.
// All renderers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, DoneText, Help                      lipgloss.Style
	BoxUnchecked, BoxChecked                      string
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.Color
}

var current = classicTheme()

// savedProfile is the color profile in effect before mono forced Ascii.
var savedProfile *termenv.Profile

func classicTheme() Theme {
	return Theme{
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		DoneText:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:         lipgloss.NewStyle().Faint(true),
		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		Border:       lipgloss.RoundedBorder(),
		BorderColor:  lipgloss.Color("8"),
	}
}

// SetTheme switches the palette. Unknown names fall back to classic.
func SetTheme(name string) {
	name = strings.ToLower(name)
	if name != "mono" && savedProfile != nil {
		lipgloss.SetColorProfile(*savedProfile)
		savedProfile = nil
	}
	switch name {
	case "neon":
		t := classicTheme()
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.BoxUnchecked, t.BoxChecked = "◻", "◼"
		t.BorderColor = lipgloss.Color("13")
		current = t
	case "mono":
		if savedProfile == nil {
			p := lipgloss.ColorProfile()
			savedProfile = &p
		}
		lipgloss.SetColorProfile(termenv.Ascii)
		plain := lipgloss.NewStyle()
		current = Theme{
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
			Selected: plain, DoneText: plain, Help: plain,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.Color(""),
		}
	default: // classic
		current = classicTheme()
	}
}

// Expose what renderers need
func Current() Theme { return current }
