package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/energiflow/internal/keys"
	"github.com/nhle/energiflow/internal/match"
	"github.com/nhle/energiflow/internal/model"
	"github.com/nhle/energiflow/internal/theme"
)

// CompleteMsg asks the parent to complete the given task.
type CompleteMsg struct {
	TaskID string
}

// DeleteMsg asks the parent to delete the given task.
type DeleteMsg struct {
	TaskID string
}

// EditMsg asks the parent to open the edit form for the given task.
type EditMsg struct {
	TaskID string
}

// NewTaskMsg asks the parent to open the create form.
type NewTaskMsg struct{}

// ChangeEnergyMsg asks the parent to return to the energy selector.
type ChangeEnergyMsg struct{}

// Model is the matched-task list view. The parent recomputes the
// selection from current state on every mutation and pushes it in via
// SetSelection, so this view holds display state only.
type Model struct {
	selection match.Selection
	energy    model.EnergyLevel
	cursor    int
	keys      *keys.KeyMap
	width     int
	height    int
}

// New creates a new task list view.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetSelection replaces the displayed tasks, clamping the cursor.
func (m *Model) SetSelection(sel match.Selection, energy model.EnergyLevel) {
	m.selection = sel
	m.energy = energy
	if m.cursor >= len(sel.Tasks) {
		m.cursor = len(sel.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the task list.
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
		if m.cursor < len(m.selection.Tasks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Complete):
		if t, ok := m.current(); ok {
			return m, func() tea.Msg { return CompleteMsg{TaskID: t.ID} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if t, ok := m.current(); ok {
			return m, func() tea.Msg { return DeleteMsg{TaskID: t.ID} }
		}
	case key.Matches(keyMsg, m.keys.Edit):
		if t, ok := m.current(); ok {
			return m, func() tea.Msg { return EditMsg{TaskID: t.ID} }
		}
	case key.Matches(keyMsg, m.keys.New):
		return m, func() tea.Msg { return NewTaskMsg{} }
	case key.Matches(keyMsg, m.keys.ChangeEnergy):
		return m, func() tea.Msg { return ChangeEnergyMsg{} }
	}

	return m, nil
}

func (m Model) current() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.selection.Tasks) {
		return model.Task{}, false
	}
	return m.selection.Tasks[m.cursor], true
}

// View renders the task list.
func (m Model) View() string {
	header := theme.EnergyStyle(m.energy).Render(theme.EnergyLabel(m.energy))

	if len(m.selection.Tasks) == 0 {
		empty := theme.PanelStyle.Render(
			"No tasks match this energy level.\n\n" +
				theme.HelpStyle.Render("press n to create your first task"),
		)
		return lipgloss.NewStyle().Padding(1, 2).Render(header + "\n\n" + empty)
	}

	rows := make([]string, 0, len(m.selection.Tasks)+2)
	rows = append(rows, theme.DimmedStyle.Render("Start small. Momentum builds."), "")

	for i, t := range m.selection.Tasks {
		rows = append(rows, m.renderCard(t, i == m.cursor))
	}

	if m.selection.Hidden > 0 {
		plural := ""
		if m.selection.Hidden > 1 {
			plural = "s"
		}
		rows = append(rows, theme.DimmedStyle.Render(
			fmt.Sprintf("+ %d more task%s available after these", m.selection.Hidden, plural),
		))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().Padding(1, 2).Render(header + "\n" + body)
}

// renderCard renders a single task line: duration, title, then any
// flexible marker and note.
func (m Model) renderCard(t model.Task, selected bool) string {
	duration := theme.DimmedStyle.Render(fmt.Sprintf("%3dm", t.EffectiveMinutes()))

	line := fmt.Sprintf("%s  %s", duration, t.Title)
	if t.Flexible {
		line += theme.DimmedStyle.Render("  ~flex")
	}
	if t.Note != "" {
		line += theme.DimmedStyle.Render("  · " + t.Note)
	}

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
