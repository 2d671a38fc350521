// Package insights computes summary statistics over the task
// collection for the dashboard view.
package insights

import (
	"math"
	"time"

	"github.com/nhle/energiflow/internal/model"
)

// weekDays is the size of the rolling completion histogram.
const weekDays = 7

// EnergyCount is the completed-task tally for one energy level.
type EnergyCount struct {
	Level model.EnergyLevel
	Count int

	// Share is the percentage of all completed tasks at this level;
	// 0 when nothing has been completed.
	Share float64
}

// DayCount is the completion tally for one calendar day.
type DayCount struct {
	// Day is local midnight at the start of the counted day.
	Day   time.Time
	Count int
}

// Summary holds everything the dashboard renders. All values are
// derived; recomputing on every render is safe.
type Summary struct {
	CompletedCount int
	ActiveCount    int

	// ByEnergy lists completed counts for high, medium, low in that order.
	ByEnergy []EnergyCount

	// AverageMinutes is the rounded mean effective duration of completed
	// tasks; 0 when nothing has been completed.
	AverageMinutes int

	// Week holds the last 7 calendar days ending today, oldest first.
	Week []DayCount

	// WeekMax is the largest single-day count in Week, floored at 1 so
	// bar scaling never divides by zero.
	WeekMax int
}

// Compute builds a Summary from the task collection. Day buckets use
// calendar days in now's location, so tasks completed exactly at
// midnight land in the day that starts there.
func Compute(tasks []model.Task, now time.Time) Summary {
	var completed []model.Task
	active := 0
	for _, t := range tasks {
		if t.Completed() {
			completed = append(completed, t)
		} else {
			active++
		}
	}

	s := Summary{
		CompletedCount: len(completed),
		ActiveCount:    active,
		ByEnergy:       byEnergy(completed),
		AverageMinutes: averageMinutes(completed),
	}
	s.Week, s.WeekMax = weekHistogram(completed, now)
	return s
}

func byEnergy(completed []model.Task) []EnergyCount {
	levels := []model.EnergyLevel{model.EnergyHigh, model.EnergyMedium, model.EnergyLow}
	out := make([]EnergyCount, len(levels))
	for i, lvl := range levels {
		n := 0
		for _, t := range completed {
			if t.EnergyLevel == lvl {
				n++
			}
		}
		ec := EnergyCount{Level: lvl, Count: n}
		if len(completed) > 0 {
			ec.Share = float64(n) / float64(len(completed)) * 100
		}
		out[i] = ec
	}
	return out
}

func averageMinutes(completed []model.Task) int {
	if len(completed) == 0 {
		return 0
	}
	sum := 0
	for _, t := range completed {
		sum += t.EffectiveMinutes()
	}
	return int(math.Round(float64(sum) / float64(len(completed))))
}

func weekHistogram(completed []model.Task, now time.Time) ([]DayCount, int) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	week := make([]DayCount, weekDays)
	max := 1
	for i := 0; i < weekDays; i++ {
		start := today.AddDate(0, 0, i-(weekDays-1))
		end := start.AddDate(0, 0, 1)
		startMs, endMs := start.UnixMilli(), end.UnixMilli()

		n := 0
		for _, t := range completed {
			if t.CompletedAt != nil && *t.CompletedAt >= startMs && *t.CompletedAt < endMs {
				n++
			}
		}
		week[i] = DayCount{Day: start, Count: n}
		if n > max {
			max = n
		}
	}
	return week, max
}
