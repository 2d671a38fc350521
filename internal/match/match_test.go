package match_test

import (
	"fmt"
	"testing"

	"github.com/nhle/energiflow/internal/match"
	"github.com/nhle/energiflow/internal/model"
)

func mkTask(id string, level model.EnergyLevel, flexible bool, est model.TimeEstimate, createdAt int64) model.Task {
	return model.Task{
		ID:            id,
		Title:         id,
		EnergyLevel:   level,
		EstimatedTime: est,
		Flexible:      flexible,
		CreatedAt:     createdAt,
	}
}

func TestEligible(t *testing.T) {
	cases := []struct {
		level    model.EnergyLevel
		flexible bool
		target   model.EnergyLevel
		want     bool
	}{
		{model.EnergyLow, false, model.EnergyLow, true},
		{model.EnergyLow, false, model.EnergyMedium, false},
		{model.EnergyLow, true, model.EnergyMedium, true},
		{model.EnergyMedium, true, model.EnergyLow, true},
		{model.EnergyMedium, true, model.EnergyHigh, true},
		// Distance 2 never matches, flexible or not.
		{model.EnergyLow, true, model.EnergyHigh, false},
		{model.EnergyHigh, true, model.EnergyLow, false},
		{model.EnergyHigh, false, model.EnergyHigh, true},
		// Same level matches regardless of the flexible flag.
		{model.EnergyMedium, false, model.EnergyMedium, true},
	}

	for _, tc := range cases {
		name := fmt.Sprintf("%s flexible=%v target=%s", tc.level, tc.flexible, tc.target)
		t.Run(name, func(t *testing.T) {
			task := mkTask("t", tc.level, tc.flexible, model.Estimate5m, 0)
			if got := match.Eligible(task, tc.target); got != tc.want {
				t.Errorf("Eligible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSelectFiltering(t *testing.T) {
	tasks := []model.Task{
		mkTask("exact", model.EnergyMedium, false, model.Estimate5m, 1),
		mkTask("rigid-low", model.EnergyLow, false, model.Estimate5m, 2),
		mkTask("flex-low", model.EnergyLow, true, model.Estimate5m, 3),
		mkTask("flex-high", model.EnergyHigh, true, model.Estimate5m, 4),
	}

	sel := match.Select(tasks, model.EnergyMedium)

	got := make(map[string]bool)
	for _, task := range sel.Tasks {
		got[task.ID] = true
	}
	for _, id := range []string{"exact", "flex-low", "flex-high"} {
		if !got[id] {
			t.Errorf("expected %s in selection", id)
		}
	}
	if got["rigid-low"] {
		t.Error("non-flexible task leaked across energy levels")
	}
}

func TestSelectExcludesDistanceTwo(t *testing.T) {
	tasks := []model.Task{
		mkTask("flex-low", model.EnergyLow, true, model.Estimate5m, 1),
	}
	if sel := match.Select(tasks, model.EnergyHigh); len(sel.Tasks) != 0 {
		t.Errorf("flexible low task shown at high energy: %+v", sel.Tasks)
	}
}

func TestSelectOrdering(t *testing.T) {
	forty := 40
	tasks := []model.Task{
		mkTask("c-30", model.EnergyLow, false, model.Estimate30m, 1),
		mkTask("e-custom40", model.EnergyLow, false, model.EstimateCustom, 2),
		mkTask("a-5", model.EnergyLow, false, model.Estimate5m, 3),
		mkTask("b-15", model.EnergyLow, false, model.Estimate15m, 4),
		// Same duration as c-30 but created earlier: wins the tie.
		mkTask("tie-early", model.EnergyLow, false, model.Estimate30m, 0),
		// Custom with no minutes sorts as 30.
		mkTask("d-customnil", model.EnergyLow, false, model.EstimateCustom, 5),
	}
	tasks[1].CustomTime = &forty

	sel := match.Select(tasks, model.EnergyLow)

	want := []string{"a-5", "b-15", "tie-early", "c-30", "d-customnil"}
	if len(sel.Tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(sel.Tasks), len(want))
	}
	for i, id := range want {
		if sel.Tasks[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, sel.Tasks[i].ID, id)
		}
	}
	if sel.Hidden != 1 {
		t.Errorf("hidden = %d, want 1", sel.Hidden)
	}
}

func TestSelectCapAndHiddenCount(t *testing.T) {
	cases := []struct {
		eligible   int
		wantShown  int
		wantHidden int
	}{
		{0, 0, 0},
		{3, 3, 0},
		{5, 5, 0},
		{6, 5, 1},
		{12, 5, 7},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d eligible", tc.eligible), func(t *testing.T) {
			var tasks []model.Task
			for i := 0; i < tc.eligible; i++ {
				tasks = append(tasks, mkTask(fmt.Sprintf("t%d", i), model.EnergyHigh, false, model.Estimate5m, int64(i)))
			}

			sel := match.Select(tasks, model.EnergyHigh)
			if len(sel.Tasks) != tc.wantShown {
				t.Errorf("shown = %d, want %d", len(sel.Tasks), tc.wantShown)
			}
			if sel.Hidden != tc.wantHidden {
				t.Errorf("hidden = %d, want %d", sel.Hidden, tc.wantHidden)
			}
		})
	}
}
