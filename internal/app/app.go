// Package app hosts the root Bubble Tea model. It owns the AppData
// document, routes between views, and funnels every mutation through
// the same path: apply in memory, re-evaluate the reminder, persist.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/energiflow/internal/insights"
	"github.com/nhle/energiflow/internal/keys"
	"github.com/nhle/energiflow/internal/match"
	"github.com/nhle/energiflow/internal/model"
	"github.com/nhle/energiflow/internal/reminder"
	"github.com/nhle/energiflow/internal/store"
	"github.com/nhle/energiflow/internal/task"
	"github.com/nhle/energiflow/internal/theme"
	"github.com/nhle/energiflow/internal/ui"
	"github.com/nhle/energiflow/internal/ui/dashboard"
	"github.com/nhle/energiflow/internal/ui/energyselect"
	"github.com/nhle/energiflow/internal/ui/taskform"
	"github.com/nhle/energiflow/internal/ui/tasklist"
)

// dataSavedMsg is sent after the document has been written. The write
// is best-effort, so there is nothing to inspect.
type dataSavedMsg struct{}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewEnergy ViewState = iota
	ViewTasks
	ViewForm
	ViewDashboard
)

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	layout       ui.Layout
	store        store.DataStore
	repo         *task.Repository
	keys         *keys.KeyMap
	energyView   energyselect.Model
	taskView     tasklist.Model
	formView     taskform.Model
	dashView     dashboard.Model
	showReminder bool
	ready        bool
}

// New creates the root model over an already-loaded document.
func New(s store.DataStore, data *model.AppData) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		currentView: ViewEnergy,
		store:       s,
		repo:        task.NewRepository(data),
		keys:        k,
		energyView:  energyselect.New(k, 80, 24),
		taskView:    tasklist.New(k, 80, 24),
		formView:    taskform.New(80, 24),
		dashView:    dashboard.New(k, 80, 24),
	}
	m.refreshViews()
	m.evaluateReminder()
	return m
}

// Init is a no-op; the document is loaded before the program starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.energyView.SetSize(w, h)
		m.taskView.SetSize(w, h)
		m.formView.SetSize(w, h)
		m.dashView.SetSize(w, h)
		return m.updateActiveView(msg)

	case energyselect.SelectedMsg:
		m.repo.SetEnergy(msg.Level)
		m.showReminder = false
		m.currentView = ViewTasks
		m.refreshViews()
		return m, m.persist()

	case tasklist.CompleteMsg:
		m.repo.Complete(msg.TaskID)
		m.refreshViews()
		m.evaluateReminder()
		return m, m.persist()

	case tasklist.DeleteMsg:
		m.repo.Delete(msg.TaskID)
		m.refreshViews()
		return m, m.persist()

	case tasklist.EditMsg:
		for _, t := range m.repo.Data().Tasks {
			if t.ID == msg.TaskID {
				m.currentView = ViewForm
				return m, m.formView.StartEdit(t)
			}
		}
		return m, nil

	case tasklist.NewTaskMsg:
		m.currentView = ViewForm
		return m, m.formView.StartCreate(m.repo.Data().UserState.CurrentEnergy)

	case tasklist.ChangeEnergyMsg:
		m.currentView = ViewEnergy
		m.refreshViews()
		return m, nil

	case taskform.CreatedMsg:
		// The form validates the title; a rejected draft just falls
		// through with no state change.
		if _, err := m.repo.Create(msg.Draft); err == nil {
			m.refreshViews()
			m.evaluateReminder()
		}
		m.currentView = m.afterFormView()
		return m, m.persist()

	case taskform.UpdatedMsg:
		m.repo.Edit(msg.TaskID, msg.Update)
		m.refreshViews()
		m.currentView = m.afterFormView()
		return m, m.persist()

	case taskform.CancelMsg:
		m.currentView = m.afterFormView()
		return m, nil

	case dashboard.BackMsg:
		m.currentView = m.afterFormView()
		return m, nil

	case dashboard.SetPreferenceMsg:
		m.repo.SetReminderPreference(msg.Preference)
		m.evaluateReminder()
		m.refreshViews()
		return m, m.persist()

	case dashboard.ExportMsg:
		return m, m.exportData()

	case exportDoneMsg:
		if msg.err != nil {
			m.dashView.SetStatus("export failed")
		} else {
			m.dashView.SetStatus("exported to " + msg.path)
		}
		return m, nil

	case dashboard.ClearAllMsg:
		m.store.Clear()
		m.repo = task.NewRepository(m.store.Load())
		m.showReminder = false
		m.currentView = ViewEnergy
		m.refreshViews()
		return m, nil

	case dataSavedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveView(msg)
}

// handleKey applies global bindings, then delegates to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The form owns the keyboard while it is open.
	if m.currentView != ViewForm {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Dashboard):
			if m.currentView != ViewDashboard {
				m.currentView = ViewDashboard
				m.refreshViews()
				return m, nil
			}

		case m.showReminder && key.Matches(msg, m.keys.Dismiss):
			m.dismissReminder()
			return m, m.persist()

		case m.showReminder && key.Matches(msg, m.keys.ChangeEnergy):
			// Acting on the reminder dismisses it and routes back to
			// the energy selector.
			m.dismissReminder()
			m.currentView = ViewEnergy
			m.refreshViews()
			return m, m.persist()
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView forwards a message to the view currently on screen.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewEnergy:
		m.energyView, cmd = m.energyView.Update(msg)
	case ViewTasks:
		m.taskView, cmd = m.taskView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	}
	return m, cmd
}

// View renders the frame: header, optional reminder banner, active
// view, status bar.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.layout.RenderHeader("EnergiFlow", m.headerStatus())

	content := m.activeViewContent()
	if m.showReminder && m.currentView != ViewForm {
		banner := theme.BannerStyle.Render(
			"It's been a while. Pick an energy level and knock out one small task.  (e pick energy · x dismiss)",
		)
		content = lipgloss.JoinVertical(lipgloss.Left, banner, content)
	}

	statusBar := m.layout.RenderStatusBar(m.statusHints())
	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) activeViewContent() string {
	switch m.currentView {
	case ViewEnergy:
		return m.energyView.View()
	case ViewTasks:
		return m.taskView.View()
	case ViewForm:
		return m.formView.View()
	case ViewDashboard:
		return m.dashView.View()
	default:
		return ""
	}
}

func (m Model) headerStatus() string {
	state := m.repo.Data().UserState
	if state.CurrentEnergy == "" {
		return fmt.Sprintf("%d open", len(m.repo.Active()))
	}
	return fmt.Sprintf("%s · %d open", state.CurrentEnergy, len(m.repo.Active()))
}

func (m Model) statusHints() string {
	switch m.currentView {
	case ViewEnergy:
		return "j/k move · enter select · i insights · q quit"
	case ViewTasks:
		return "c complete · E edit · d delete · n new · e energy · i insights · q quit"
	case ViewForm:
		return "tab/enter advance · esc cancel"
	case ViewDashboard:
		return "r reminder preference · o export · X clear all · esc back · q quit"
	default:
		return ""
	}
}

// afterFormView picks where to land when a form, dialog, or the
// dashboard closes: the task list if an energy is selected, else the
// selector.
func (m Model) afterFormView() ViewState {
	if m.repo.Data().UserState.CurrentEnergy != "" {
		return ViewTasks
	}
	return ViewEnergy
}

// refreshViews pushes fresh derived data into every view. Matching and
// insights are pure, so recomputing on each mutation is cheap and keeps
// the views from holding their own copies of state.
func (m *Model) refreshViews() {
	active := m.repo.Active()
	m.energyView.SetTasks(active)

	state := m.repo.Data().UserState
	m.taskView.SetSelection(match.Select(active, state.CurrentEnergy), state.CurrentEnergy)
	m.dashView.SetData(insights.Compute(m.repo.Data().Tasks, time.Now()), state.ReminderPreference)
}

// evaluateReminder re-runs the reminder rule against current state.
// It only ever raises the banner; the banner is lowered explicitly by
// dismissal or an energy selection.
func (m *Model) evaluateReminder() {
	if reminder.Evaluate(m.repo.Data(), model.NowMillis()) {
		m.showReminder = true
	}
}

func (m *Model) dismissReminder() {
	reminder.Dismiss(m.repo.Data(), model.NowMillis())
	m.showReminder = false
}

// persist snapshots the document synchronously and writes it in the
// background. The snapshot happens before the command runs, so a later
// mutation can never interleave with the serialization of this one.
func (m Model) persist() tea.Cmd {
	data := m.repo.Data()
	snap := *data
	snap.Tasks = append([]model.Task(nil), data.Tasks...)

	s := m.store
	return func() tea.Msg {
		s.Save(&snap)
		return dataSavedMsg{}
	}
}
