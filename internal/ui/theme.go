package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Index            string
	Bullet                                 string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
}

var current = themeFor("classic")

// SetTheme selects a theme by name; unknown names get classic.
func SetTheme(name string) {
	current = themeFor(name)
	if current.Name == "mono" {
		disableColor = true
	}
}

func themeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m", Index: "\033[93m",
			Bullet: "◆",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
		}
	case "mono":
		return Theme{
			Name:   "mono",
			Bullet: "-",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default:
		return Theme{
			Name:  "classic",
			Title: bold, Muted: fgGray, Accent: fgBlue, Index: dim,
			Bullet: "•",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
		}
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
