package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// lipglossWhite is the foreground used on top of colored layer bands.
var lipglossWhite = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#F8F8F2"}

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals use the
// terminal's own background instead of a down-converted approximation
// that may clash with palettes like Solarized.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme holds the color roles and pre-computed styles for the
// presentation. Styles are created once at startup, not per frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Architecture layer roles
	Device lipgloss.AdaptiveColor
	Edge   lipgloss.AdaptiveColor
	Cloud  lipgloss.AdaptiveColor
	App    lipgloss.AdaptiveColor

	// Series colors for terminal charts
	Temperature lipgloss.AdaptiveColor
	Humidity    lipgloss.AdaptiveColor

	// Progress
	Done lipgloss.AdaptiveColor
	Todo lipgloss.AdaptiveColor

	// UI elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base       lipgloss.Style
	Selected   lipgloss.Style
	Header     lipgloss.Style
	TabActive  lipgloss.Style
	TabDormant lipgloss.Style
	HelpKey    lipgloss.Style
	HelpText   lipgloss.Style
	DoneMark   lipgloss.Style
	TodoMark   lipgloss.Style
	ChartLabel lipgloss.Style
	ChartValue lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Device: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Edge:   lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		Cloud:  lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		App:    lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"}, // Blue

		Temperature: lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red
		Humidity:    lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan

		Done: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Todo: lipgloss.AdaptiveColor{Light: "#888888", Dark: "#44475A"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.TabActive = r.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Underline(true).
		Padding(0, 1)
	t.TabDormant = r.NewStyle().
		Foreground(t.Muted).
		Padding(0, 1)

	t.HelpKey = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.HelpText = r.NewStyle().Foreground(t.Subtext)
	t.DoneMark = r.NewStyle().Foreground(t.Done).Bold(true)
	t.TodoMark = r.NewStyle().Foreground(t.Todo)
	t.ChartLabel = r.NewStyle().Foreground(t.Subtext)
	t.ChartValue = r.NewStyle().Foreground(t.Primary).Bold(true)

	return t
}

// LayerColor maps an architecture layer role to its theme color.
func (t Theme) LayerColor(role string) lipgloss.AdaptiveColor {
	switch role {
	case "device":
		return t.Device
	case "edge":
		return t.Edge
	case "cloud":
		return t.Cloud
	case "app":
		return t.App
	default:
		return t.Subtext
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
