package taskform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/energiflow/internal/model"
	"github.com/nhle/energiflow/internal/task"
	"github.com/nhle/energiflow/internal/theme"
)

// CreatedMsg is dispatched when a new task is submitted via the form.
type CreatedMsg struct {
	Draft task.Draft
}

// UpdatedMsg is dispatched when an existing task is edited via the form.
type UpdatedMsg struct {
	TaskID string
	Update task.Update
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title      string
	energy     model.EnergyLevel
	estimate   model.TimeEstimate
	customTime string
	note       string
	flexible   bool
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{energy: model.EnergyMedium, estimate: model.Estimate15m},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new task, defaulting
// the energy field to the user's current selection.
func (m *Model) StartCreate(defaultEnergy model.EnergyLevel) tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.energy = defaultEnergy
	if m.fb.energy == "" {
		m.fb.energy = model.EnergyMedium
	}
	m.fb.estimate = model.Estimate15m
	m.fb.customTime = ""
	m.fb.note = ""
	m.fb.flexible = false
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(t model.Task) tea.Cmd {
	m.editMode = true
	m.editID = t.ID
	m.fb.title = t.Title
	m.fb.energy = t.EnergyLevel
	m.fb.estimate = t.EstimatedTime
	if t.CustomTime != nil {
		m.fb.customTime = strconv.Itoa(*t.CustomTime)
	} else {
		m.fb.customTime = ""
	}
	m.fb.note = t.Note
	m.fb.flexible = t.Flexible
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What would you like to get done?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewSelect[model.EnergyLevel]().
				Title("Energy Level").
				Options(
					huh.NewOption("High - focused, demanding", model.EnergyHigh),
					huh.NewOption("Medium - routine work", model.EnergyMedium),
					huh.NewOption("Low - light and easy", model.EnergyLow),
				).
				Value(&m.fb.energy),
			huh.NewSelect[model.TimeEstimate]().
				Title("Estimated Time").
				Options(
					huh.NewOption("5 minutes", model.Estimate5m),
					huh.NewOption("15 minutes", model.Estimate15m),
					huh.NewOption("30 minutes", model.Estimate30m),
					huh.NewOption("Custom", model.EstimateCustom),
				).
				Value(&m.fb.estimate),
			huh.NewInput().
				Title("Custom Minutes").
				Placeholder("only used with a custom estimate").
				Value(&m.fb.customTime).
				Validate(validateOptionalMinutes),
			huh.NewText().
				Title("Note").
				Placeholder("Optional details...").
				Value(&m.fb.note),
			huh.NewConfirm().
				Title("Flexible?").
				Description("Show this task at adjacent energy levels too").
				Value(&m.fb.flexible),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	var customTime *int
	if m.fb.estimate == model.EstimateCustom {
		if n, err := strconv.Atoi(strings.TrimSpace(m.fb.customTime)); err == nil && n > 0 {
			customTime = &n
		}
	}

	if m.editMode {
		id := m.editID
		title := m.fb.title
		energy := m.fb.energy
		estimate := m.fb.estimate
		note := m.fb.note
		flexible := m.fb.flexible
		u := task.Update{
			Title:         &title,
			EnergyLevel:   &energy,
			EstimatedTime: &estimate,
			CustomTime:    customTime,
			Note:          &note,
			Flexible:      &flexible,
		}
		return func() tea.Msg { return UpdatedMsg{TaskID: id, Update: u} }
	}

	d := task.Draft{
		Title:         m.fb.title,
		EnergyLevel:   m.fb.energy,
		EstimatedTime: m.fb.estimate,
		CustomTime:    customTime,
		Note:          m.fb.note,
		Flexible:      m.fb.flexible,
	}
	return func() tea.Msg { return CreatedMsg{Draft: d} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalMinutes(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number of minutes")
	}
	return nil
}
