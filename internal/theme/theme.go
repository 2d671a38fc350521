package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/energiflow/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorPurple = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps boxed content areas such as cards and the dashboard.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle is used for secondary text such as notes and counts.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// BannerStyle draws the reminder banner above the main content.
var BannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorPurple).
	Padding(0, 1)

// EnergyStyle returns a color-coded style for the given energy level.
func EnergyStyle(level model.EnergyLevel) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch level {
	case model.EnergyHigh:
		return base.Foreground(ColorYellow)
	case model.EnergyMedium:
		return base.Foreground(ColorBlue)
	case model.EnergyLow:
		return base.Foreground(ColorPurple)
	default:
		return base.Foreground(ColorGray)
	}
}

// EnergyLabel returns the display label for the given energy level.
func EnergyLabel(level model.EnergyLevel) string {
	switch level {
	case model.EnergyHigh:
		return "⚡ High Energy"
	case model.EnergyMedium:
		return "🌤 Medium Energy"
	case model.EnergyLow:
		return "🌙 Low Energy"
	default:
		return string(level)
	}
}
