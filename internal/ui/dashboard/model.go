package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/energiflow/internal/insights"
	"github.com/nhle/energiflow/internal/keys"
	"github.com/nhle/energiflow/internal/model"
	"github.com/nhle/energiflow/internal/theme"
)

// BackMsg asks the parent to leave the dashboard.
type BackMsg struct{}

// SetPreferenceMsg asks the parent to store a new reminder preference.
type SetPreferenceMsg struct {
	Preference model.ReminderWindow
}

// ExportMsg asks the parent to export the stored document.
type ExportMsg struct{}

// ClearAllMsg asks the parent to wipe all data. Only sent after the
// user confirms.
type ClearAllMsg struct{}

// preferenceCycle is the order the r key steps through.
var preferenceCycle = []model.ReminderWindow{
	model.ReminderNone,
	model.ReminderMorning,
	model.ReminderAfternoon,
	model.ReminderEvening,
}

// barWidth is the widest a histogram or share bar renders.
const barWidth = 20

// Model is the insights dashboard view. The parent recomputes the
// summary on demand and pushes it in via SetData.
type Model struct {
	summary    insights.Summary
	preference model.ReminderWindow
	confirming bool
	status     string
	keys       *keys.KeyMap
	width      int
	height     int
}

// New creates a new dashboard view.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetData replaces the displayed summary and preference.
func (m *Model) SetData(s insights.Summary, pref model.ReminderWindow) {
	m.summary = s
	m.preference = pref
	m.confirming = false
}

// SetStatus shows a one-line status message (e.g. the export target).
func (m *Model) SetStatus(status string) {
	m.status = status
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming {
		switch keyMsg.String() {
		case "y":
			m.confirming = false
			return m, func() tea.Msg { return ClearAllMsg{} }
		default:
			m.confirming = false
			return m, nil
		}
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	case key.Matches(keyMsg, m.keys.CyclePreference):
		next := nextPreference(m.preference)
		return m, func() tea.Msg { return SetPreferenceMsg{Preference: next} }
	case key.Matches(keyMsg, m.keys.Export):
		return m, func() tea.Msg { return ExportMsg{} }
	case key.Matches(keyMsg, m.keys.ClearAll):
		m.confirming = true
		return m, nil
	}

	return m, nil
}

func nextPreference(cur model.ReminderWindow) model.ReminderWindow {
	for i, p := range preferenceCycle {
		if p == cur {
			return preferenceCycle[(i+1)%len(preferenceCycle)]
		}
	}
	return model.ReminderNone
}

// View renders the dashboard.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("Insights")

	sections := []string{
		title,
		m.renderOverview(),
		m.renderByEnergy(),
		m.renderAverage(),
		m.renderWeek(),
		m.renderSettings(),
	}
	if m.status != "" {
		sections = append(sections, theme.DimmedStyle.Render(m.status))
	}
	if m.confirming {
		sections = append(sections, theme.BannerStyle.Render("Clear all data? This cannot be undone. (y/N)"))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(sections, "\n\n"))
}

func (m Model) renderOverview() string {
	return fmt.Sprintf("%s completed   %s active",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d", m.summary.CompletedCount)),
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d", m.summary.ActiveCount)),
	)
}

func (m Model) renderByEnergy() string {
	rows := []string{theme.DimmedStyle.Render("Completed by energy level")}
	for _, ec := range m.summary.ByEnergy {
		filled := int(ec.Share / 100 * barWidth)
		bar := theme.EnergyStyle(ec.Level).Render(strings.Repeat("█", filled)) +
			theme.DimmedStyle.Render(strings.Repeat("░", barWidth-filled))
		label := theme.EnergyStyle(ec.Level).Render(fmt.Sprintf("%-7s", ec.Level))
		rows = append(rows, fmt.Sprintf("%s %s %d", label, bar, ec.Count))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderAverage() string {
	if m.summary.CompletedCount == 0 {
		return theme.DimmedStyle.Render("Average task duration: no completions yet")
	}
	return fmt.Sprintf("Average task duration: %s",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d minutes", m.summary.AverageMinutes)))
}

func (m Model) renderWeek() string {
	rows := []string{theme.DimmedStyle.Render("Last 7 days")}
	for _, d := range m.summary.Week {
		filled := d.Count * barWidth / m.summary.WeekMax
		bar := lipgloss.NewStyle().Foreground(theme.ColorBlue).Render(strings.Repeat("█", filled)) +
			theme.DimmedStyle.Render(strings.Repeat("░", barWidth-filled))
		rows = append(rows, fmt.Sprintf("%s %s %d",
			theme.DimmedStyle.Render(d.Day.Format("Mon")), bar, d.Count))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderSettings() string {
	return fmt.Sprintf("Reminder preference: %s\n%s",
		lipgloss.NewStyle().Bold(true).Render(string(m.preference)),
		theme.HelpStyle.Render("r cycle preference · o export · X clear all · esc back"))
}
