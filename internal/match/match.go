// Package match computes the ordered, capped set of tasks to show for
// a target energy level.
package match

import (
	"sort"

	"github.com/nhle/energiflow/internal/model"
)

// MaxVisible caps how many tasks are surfaced at once; the remainder
// is reported as a hidden count so callers can render "+N more".
const MaxVisible = 5

// Selection is the result of matching tasks against an energy level.
type Selection struct {
	// Tasks is the ordered display list, at most MaxVisible long.
	Tasks []model.Task

	// Hidden is how many eligible tasks fell past the cap.
	Hidden int
}

// Eligible reports whether a task may be shown at the target level:
// an exact level match, or a flexible task whose level is exactly one
// rank away from the target.
func Eligible(t model.Task, target model.EnergyLevel) bool {
	if t.EnergyLevel == target {
		return true
	}
	if !t.Flexible {
		return false
	}
	d := t.EnergyLevel.Rank() - target.Rank()
	return d == 1 || d == -1
}

// Select filters tasks for the target energy level, orders them by
// effective duration ascending with earlier createdAt breaking ties,
// and caps the result at MaxVisible. Pure; safe to call on every render.
func Select(tasks []model.Task, target model.EnergyLevel) Selection {
	eligible := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if Eligible(t, target) {
			eligible = append(eligible, t)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		mi, mj := eligible[i].EffectiveMinutes(), eligible[j].EffectiveMinutes()
		if mi != mj {
			return mi < mj
		}
		return eligible[i].CreatedAt < eligible[j].CreatedAt
	})

	if len(eligible) <= MaxVisible {
		return Selection{Tasks: eligible}
	}
	return Selection{
		Tasks:  eligible[:MaxVisible],
		Hidden: len(eligible) - MaxVisible,
	}
}
