package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/energiflow/internal/model"
	"github.com/nhle/energiflow/internal/task"
	"github.com/nhle/energiflow/internal/ui/dashboard"
	"github.com/nhle/energiflow/internal/ui/energyselect"
	"github.com/nhle/energiflow/internal/ui/taskform"
	"github.com/nhle/energiflow/internal/ui/tasklist"
	"github.com/nhle/energiflow/tests/testutil"
)

// step applies a message and runs any produced commands to completion,
// feeding resulting messages back in, so mutations and their persist
// commands both land.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	mdl, cmd := m.Update(msg)
	m = mdl.(Model)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		mdl, cmd = m.Update(out)
		m = mdl.(Model)
	}
	return m
}

func newTestApp(t *testing.T) Model {
	t.Helper()

	s := testutil.NewTestStore(t)
	return New(s, s.Load())
}

func TestEnergySelectionRoutesToTasks(t *testing.T) {
	m := newTestApp(t)

	before := m.repo.Data().UserState.LastActivityAt
	time.Sleep(2 * time.Millisecond)
	m = step(t, m, energyselect.SelectedMsg{Level: model.EnergyLow})

	if m.currentView != ViewTasks {
		t.Errorf("view = %v, want ViewTasks", m.currentView)
	}
	state := m.repo.Data().UserState
	if state.CurrentEnergy != model.EnergyLow {
		t.Errorf("currentEnergy = %q, want low", state.CurrentEnergy)
	}
	if state.LastActivityAt <= before {
		t.Error("selecting energy must record activity")
	}
}

func TestMutationsArePersisted(t *testing.T) {
	s := testutil.NewTestStore(t)
	m := New(s, s.Load())

	m = step(t, m, energyselect.SelectedMsg{Level: model.EnergyMedium})
	m = step(t, m, taskform.CreatedMsg{Draft: task.Draft{
		Title:         "Sort the inbox",
		EnergyLevel:   model.EnergyMedium,
		EstimatedTime: model.Estimate15m,
	}})

	reloaded := s.Load()
	if len(reloaded.Tasks) != 1 || reloaded.Tasks[0].Title != "Sort the inbox" {
		t.Fatalf("created task did not reach the store: %+v", reloaded.Tasks)
	}

	m = step(t, m, tasklist.CompleteMsg{TaskID: reloaded.Tasks[0].ID})

	reloaded = s.Load()
	if reloaded.Tasks[0].CompletedAt == nil {
		t.Error("completion did not reach the store")
	}
}

func TestRejectedDraftLeavesStateUnchanged(t *testing.T) {
	m := newTestApp(t)
	m = step(t, m, energyselect.SelectedMsg{Level: model.EnergyMedium})

	m = step(t, m, taskform.CreatedMsg{Draft: task.Draft{Title: "   "}})

	if len(m.repo.Data().Tasks) != 0 {
		t.Errorf("whitespace-only title created a task")
	}
	if m.currentView != ViewTasks {
		t.Errorf("view = %v, want ViewTasks", m.currentView)
	}
}

func TestReminderBannerLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	data := s.Load()
	data.UserState.ReminderPreference = model.ReminderMorning
	data.UserState.LastActivityAt = model.NowMillis() - 20*60*60*1000
	activityBefore := data.UserState.LastActivityAt

	m := New(s, data)
	if !m.showReminder {
		t.Fatal("expected the banner after 20h of idleness")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	if m.showReminder {
		t.Error("dismissal should lower the banner")
	}
	state := m.repo.Data().UserState
	if state.LastReminderShown == nil {
		t.Fatal("dismissal must record lastReminderShown")
	}
	if state.LastActivityAt != activityBefore {
		t.Error("dismissal must not touch lastActivityAt")
	}

	reloaded := s.Load()
	if reloaded.UserState.LastReminderShown == nil {
		t.Error("dismissal did not reach the store")
	}
}

func TestEnergySelectionLowersBanner(t *testing.T) {
	s := testutil.NewTestStore(t)
	data := s.Load()
	data.UserState.ReminderPreference = model.ReminderEvening
	data.UserState.LastActivityAt = model.NowMillis() - 20*60*60*1000

	m := New(s, data)
	if !m.showReminder {
		t.Fatal("expected the banner")
	}

	m = step(t, m, energyselect.SelectedMsg{Level: model.EnergyHigh})
	if m.showReminder {
		t.Error("picking an energy level should lower the banner")
	}
}

func TestClearAllResetsToDefaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	m := New(s, s.Load())

	m = step(t, m, energyselect.SelectedMsg{Level: model.EnergyLow})
	m = step(t, m, taskform.CreatedMsg{Draft: task.Draft{
		Title:         "Doomed",
		EnergyLevel:   model.EnergyLow,
		EstimatedTime: model.Estimate5m,
	}})

	m = step(t, m, dashboard.ClearAllMsg{})

	if len(m.repo.Data().Tasks) != 0 {
		t.Error("clear-all left tasks behind")
	}
	if m.currentView != ViewEnergy {
		t.Errorf("view = %v, want ViewEnergy after clearing", m.currentView)
	}
	if reloaded := s.Load(); len(reloaded.Tasks) != 0 {
		t.Error("clear-all left the stored document behind")
	}
}

func TestPreferenceChangePersists(t *testing.T) {
	s := testutil.NewTestStore(t)
	m := New(s, s.Load())

	m = step(t, m, dashboard.SetPreferenceMsg{Preference: model.ReminderAfternoon})

	if got := m.repo.Data().UserState.ReminderPreference; got != model.ReminderAfternoon {
		t.Errorf("preference = %q, want afternoon", got)
	}
	if got := s.Load().UserState.ReminderPreference; got != model.ReminderAfternoon {
		t.Errorf("stored preference = %q, want afternoon", got)
	}
}
