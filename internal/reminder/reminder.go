// Package reminder decides when to surface a re-engagement prompt.
package reminder

import "github.com/nhle/energiflow/internal/model"

// Thresholds in hours. The activity floor keeps the prompt out of the
// current day; the re-show floor keeps repeated re-evaluations from
// stacking prompts.
const (
	activityFloorHours = 18
	reShowFloorHours   = 12
)

const millisPerHour = 60 * 60 * 1000

// ShouldRemind reports whether the re-engagement prompt should appear.
// All timestamps are epoch milliseconds; lastReminderShown is nil when
// the prompt has never been shown, which always satisfies the re-show
// floor. A preference of none is a hard opt-out.
func ShouldRemind(now, lastActivityAt int64, lastReminderShown *int64, pref model.ReminderWindow) bool {
	if pref == model.ReminderNone {
		return false
	}
	if now-lastActivityAt < activityFloorHours*millisPerHour {
		return false
	}
	if lastReminderShown != nil && now-*lastReminderShown < reShowFloorHours*millisPerHour {
		return false
	}
	return true
}

// Evaluate applies ShouldRemind to the document's current user state.
func Evaluate(data *model.AppData, now int64) bool {
	s := data.UserState
	return ShouldRemind(now, s.LastActivityAt, s.LastReminderShown, s.ReminderPreference)
}

// Dismiss records that the prompt was shown at now. It deliberately
// leaves LastActivityAt alone: dismissing (or acting on) a reminder is
// not task activity.
func Dismiss(data *model.AppData, now int64) {
	data.UserState.LastReminderShown = &now
}
