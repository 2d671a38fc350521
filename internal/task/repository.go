// Package task implements create/update/delete/complete operations and
// derived views over the task collection of an AppData document.
package task

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/energiflow/internal/model"
)

// ErrEmptyTitle is returned when a draft title is empty after trimming.
var ErrEmptyTitle = errors.New("task title is empty")

// Draft holds the user-supplied fields for a new task.
type Draft struct {
	Title         string
	EnergyLevel   model.EnergyLevel
	EstimatedTime model.TimeEstimate
	CustomTime    *int
	Note          string
	Flexible      bool
}

// Update holds a partial task edit; nil fields are left unchanged.
type Update struct {
	Title         *string
	EnergyLevel   *model.EnergyLevel
	EstimatedTime *model.TimeEstimate
	CustomTime    *int
	Note          *string
	Flexible      *bool
}

// Repository applies task and user-state mutations to an explicit
// AppData document owned by the caller. It keeps no state of its own
// beyond the document handle, so the caller decides when to persist.
type Repository struct {
	data *model.AppData
	now  func() int64
}

// NewRepository wraps the given document.
func NewRepository(data *model.AppData) *Repository {
	return &Repository{data: data, now: model.NowMillis}
}

// Data returns the wrapped document.
func (r *Repository) Data() *model.AppData {
	return r.data
}

// Create validates the draft, appends a new task, and records user
// activity. The draft is rejected when its trimmed title is empty.
func (r *Repository) Create(d Draft) (*model.Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	now := r.now()
	t := model.Task{
		ID:            uuid.NewString(),
		Title:         title,
		EnergyLevel:   d.EnergyLevel,
		EstimatedTime: d.EstimatedTime,
		Note:          d.Note,
		Flexible:      d.Flexible,
		CreatedAt:     now,
	}
	if d.EstimatedTime == model.EstimateCustom {
		t.CustomTime = d.CustomTime
	}

	r.data.Tasks = append(r.data.Tasks, t)
	r.data.UserState.LastActivityAt = now
	return &r.data.Tasks[len(r.data.Tasks)-1], nil
}

// Complete marks the task with the given id as completed and records
// user activity. Unknown ids and already-completed tasks are no-ops;
// completion is a one-way transition and the original timestamp is
// never overwritten.
func (r *Repository) Complete(id string) {
	for i := range r.data.Tasks {
		if r.data.Tasks[i].ID != id {
			continue
		}
		if r.data.Tasks[i].CompletedAt != nil {
			return
		}
		now := r.now()
		r.data.Tasks[i].CompletedAt = &now
		r.data.UserState.LastActivityAt = now
		return
	}
}

// Delete removes the task with the given id; no-op when absent.
func (r *Repository) Delete(id string) {
	for i := range r.data.Tasks {
		if r.data.Tasks[i].ID == id {
			r.data.Tasks = append(r.data.Tasks[:i], r.data.Tasks[i+1:]...)
			return
		}
	}
}

// Edit merges the non-nil fields of u into the task with the given id;
// no-op when absent. Edits do not count as activity for reminder
// purposes, so LastActivityAt is left alone.
func (r *Repository) Edit(id string, u Update) {
	for i := range r.data.Tasks {
		if r.data.Tasks[i].ID != id {
			continue
		}
		t := &r.data.Tasks[i]
		if u.Title != nil {
			if title := strings.TrimSpace(*u.Title); title != "" {
				t.Title = title
			}
		}
		if u.EnergyLevel != nil {
			t.EnergyLevel = *u.EnergyLevel
		}
		if u.EstimatedTime != nil {
			t.EstimatedTime = *u.EstimatedTime
		}
		if u.CustomTime != nil {
			t.CustomTime = u.CustomTime
		}
		if u.Note != nil {
			t.Note = *u.Note
		}
		if u.Flexible != nil {
			t.Flexible = *u.Flexible
		}
		if t.EstimatedTime != model.EstimateCustom {
			t.CustomTime = nil
		}
		return
	}
}

// SetEnergy records the user's selected energy level as activity.
func (r *Repository) SetEnergy(e model.EnergyLevel) {
	r.data.UserState.CurrentEnergy = e
	r.data.UserState.LastActivityAt = r.now()
}

// SetReminderPreference updates the reminder preference without
// counting as activity.
func (r *Repository) SetReminderPreference(w model.ReminderWindow) {
	r.data.UserState.ReminderPreference = w
}

// Active returns the tasks without a completion timestamp, preserving
// stored order.
func (r *Repository) Active() []model.Task {
	out := make([]model.Task, 0, len(r.data.Tasks))
	for _, t := range r.data.Tasks {
		if !t.Completed() {
			out = append(out, t)
		}
	}
	return out
}

// Completed returns the tasks with a completion timestamp, preserving
// stored order.
func (r *Repository) Completed() []model.Task {
	out := make([]model.Task, 0, len(r.data.Tasks))
	for _, t := range r.data.Tasks {
		if t.Completed() {
			out = append(out, t)
		}
	}
	return out
}
