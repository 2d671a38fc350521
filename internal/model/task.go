package model

import "time"

// EnergyLevel is the user-reported capacity state used to filter tasks.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// Rank returns the position of the level under the total order
// low(1) < medium(2) < high(3). Unknown levels rank as 0.
func (e EnergyLevel) Rank() int {
	switch e {
	case EnergyLow:
		return 1
	case EnergyMedium:
		return 2
	case EnergyHigh:
		return 3
	default:
		return 0
	}
}

// TimeEstimate is the declared size of a task.
type TimeEstimate string

const (
	Estimate5m     TimeEstimate = "5m"
	Estimate15m    TimeEstimate = "15m"
	Estimate30m    TimeEstimate = "30m"
	EstimateCustom TimeEstimate = "custom"
)

// ReminderWindow is the user's re-engagement prompt preference.
// Only the none/not-none distinction currently affects behavior; the
// time-of-day values are stored for forward compatibility.
type ReminderWindow string

const (
	ReminderNone      ReminderWindow = "none"
	ReminderMorning   ReminderWindow = "morning"
	ReminderAfternoon ReminderWindow = "afternoon"
	ReminderEvening   ReminderWindow = "evening"
)

// defaultCustomMinutes is used when a custom task carries no customTime.
const defaultCustomMinutes = 30

// Task is a single to-do item.
type Task struct {
	// ID is the unique, immutable identifier for this task.
	ID string `json:"id"`

	// Title is the human-readable summary; never empty after creation.
	Title string `json:"title"`

	// EnergyLevel is the capacity state this task is declared for.
	EnergyLevel EnergyLevel `json:"energyLevel"`

	// EstimatedTime is the declared duration bucket.
	EstimatedTime TimeEstimate `json:"estimatedTime"`

	// CustomTime is the duration in minutes when EstimatedTime is "custom".
	CustomTime *int `json:"customTime,omitempty"`

	// Note is optional free-form detail text.
	Note string `json:"note,omitempty"`

	// Flexible marks the task as eligible for display one energy rank
	// above or below its own level.
	Flexible bool `json:"flexible"`

	// CreatedAt is the creation time in epoch milliseconds.
	CreatedAt int64 `json:"createdAt"`

	// CompletedAt is the completion time in epoch milliseconds.
	// A task is active iff CompletedAt is nil; completion is one-way.
	CompletedAt *int64 `json:"completedAt,omitempty"`
}

// Completed reports whether the task has been completed.
func (t Task) Completed() bool {
	return t.CompletedAt != nil
}

// EffectiveMinutes returns the minute value used for ordering and
// averages: the literal bucket value for fixed estimates, CustomTime
// for custom tasks, and 30 when a custom task has no usable CustomTime.
func (t Task) EffectiveMinutes() int {
	switch t.EstimatedTime {
	case Estimate5m:
		return 5
	case Estimate15m:
		return 15
	case Estimate30m:
		return 30
	default:
		if t.CustomTime != nil && *t.CustomTime > 0 {
			return *t.CustomTime
		}
		return defaultCustomMinutes
	}
}

// UserState holds per-user session state persisted alongside the tasks.
type UserState struct {
	// CurrentEnergy is the last energy level the user selected, if any.
	CurrentEnergy EnergyLevel `json:"currentEnergy,omitempty"`

	// LastActivityAt is the epoch-millisecond time of the most recent
	// task-affecting action. Monotonically non-decreasing.
	LastActivityAt int64 `json:"lastActivityAt"`

	// ReminderPreference controls whether re-engagement prompts appear.
	ReminderPreference ReminderWindow `json:"reminderPreference"`

	// LastReminderShown is the epoch-millisecond time the reminder was
	// last dismissed; nil when it has never been shown.
	LastReminderShown *int64 `json:"lastReminderShown,omitempty"`
}

// AppData is the root aggregate and the unit of persistence.
type AppData struct {
	Tasks     []Task    `json:"tasks"`
	UserState UserState `json:"userState"`
}

// DefaultAppData returns the document used when nothing has been saved
// yet or the stored document cannot be read.
func DefaultAppData() *AppData {
	return &AppData{
		Tasks: []Task{},
		UserState: UserState{
			LastActivityAt:     NowMillis(),
			ReminderPreference: ReminderNone,
		},
	}
}

// NowMillis returns the current time in epoch milliseconds, the unit
// all persisted timestamps use.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
