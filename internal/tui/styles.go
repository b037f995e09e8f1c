package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- styling helpers (Lip Gloss) -------

type styles struct {
	title    lipgloss.Style
	count    lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	errorMsg lipgloss.Style
	help     lipgloss.Style
	selected lipgloss.Style

	button        lipgloss.Style
	buttonFocused lipgloss.Style
	remove        lipgloss.Style

	input        lipgloss.Style
	inputFocused lipgloss.Style
	panel        lipgloss.Style
	alert        lipgloss.Style

	bullet string
}

func newStyles(theme string) styles {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	switch strings.ToLower(theme) {
	case "mono":
		plain := lipgloss.NewStyle()
		box = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
		return styles{
			title: plain.Bold(true), count: plain, muted: plain, accent: plain,
			errorMsg: plain.Bold(true), help: plain, selected: plain.Reverse(true),
			button: plain, buttonFocused: plain.Reverse(true), remove: plain,
			input: box, inputFocused: box.Border(lipgloss.DoubleBorder()),
			panel: box, alert: box.Border(lipgloss.DoubleBorder()).Padding(1, 3),
			bullet: "-",
		}
	case "neon":
		return styles{
			title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			count:         lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			muted:         lipgloss.NewStyle().Faint(true),
			accent:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			errorMsg:      lipgloss.NewStyle().Foreground(lipgloss.Color("197")).Bold(true),
			help:          lipgloss.NewStyle().Faint(true),
			selected:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
			button:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
			buttonFocused: lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(lipgloss.Color("51")),
			remove:        lipgloss.NewStyle().Foreground(lipgloss.Color("197")),
			input:         box.BorderForeground(lipgloss.Color("8")),
			inputFocused:  box.BorderForeground(lipgloss.Color("201")),
			panel:         box.BorderForeground(lipgloss.Color("51")),
			alert:         box.BorderForeground(lipgloss.Color("197")).Padding(1, 3),
			bullet:        "◆",
		}
	default:
		return styles{
			title:         lipgloss.NewStyle().Bold(true),
			count:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			muted:         lipgloss.NewStyle().Faint(true),
			accent:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			errorMsg:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			help:          lipgloss.NewStyle().Faint(true),
			selected:      lipgloss.NewStyle().Bold(true).Reverse(true),
			button:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			buttonFocused: lipgloss.NewStyle().Bold(true).Reverse(true),
			remove:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			input:         box.BorderForeground(lipgloss.Color("8")),
			inputFocused:  box.BorderForeground(lipgloss.Color("12")),
			panel:         box.BorderForeground(lipgloss.Color("8")),
			alert:         box.BorderForeground(lipgloss.Color("9")).Padding(1, 3),
			bullet:        "•",
		}
	}
}
