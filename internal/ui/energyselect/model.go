package energyselect

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/energiflow/internal/keys"
	"github.com/nhle/energiflow/internal/model"
	"github.com/nhle/energiflow/internal/theme"
)

// SelectedMsg is sent when the user picks an energy level.
type SelectedMsg struct {
	Level model.EnergyLevel
}

// levels lists the selectable options, highest first.
var levels = []model.EnergyLevel{
	model.EnergyHigh,
	model.EnergyMedium,
	model.EnergyLow,
}

// descriptions give each option a short framing line.
var descriptions = map[model.EnergyLevel]string{
	model.EnergyHigh:   "Ready for focused, demanding work",
	model.EnergyMedium: "Steady - routine tasks feel fine",
	model.EnergyLow:    "Running on fumes, keep it light",
}

// Model is the energy selection view.
type Model struct {
	cursor int
	counts map[model.EnergyLevel]int
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new energy selector.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		counts: make(map[model.EnergyLevel]int),
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetTasks recomputes the per-level active task counts shown beside
// each option.
func (m *Model) SetTasks(active []model.Task) {
	counts := make(map[model.EnergyLevel]int)
	for _, t := range active {
		counts[t.EnergyLevel]++
	}
	m.counts = counts
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the energy selector.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(levels)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		level := levels[m.cursor]
		return m, func() tea.Msg { return SelectedMsg{Level: level} }
	}

	return m, nil
}

// View renders the energy selector.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("How's your energy right now?")

	rows := make([]string, 0, len(levels))
	for i, level := range levels {
		label := theme.EnergyStyle(level).Render(theme.EnergyLabel(level))
		desc := theme.DimmedStyle.Render(descriptions[level])
		count := theme.DimmedStyle.Render(fmt.Sprintf("%d open", m.counts[level]))

		line := fmt.Sprintf("%s  %s  %s", label, desc, count)
		if i == m.cursor {
			rows = append(rows, theme.SelectedItemStyle.Render(line))
		} else {
			rows = append(rows, theme.ListItemStyle.Render(line))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(title + "\n" + body)
}
