package model_test

import (
	"testing"

	"github.com/nhle/energiflow/internal/model"
)

func TestEnergyLevelRank(t *testing.T) {
	cases := []struct {
		level model.EnergyLevel
		want  int
	}{
		{model.EnergyLow, 1},
		{model.EnergyMedium, 2},
		{model.EnergyHigh, 3},
		{model.EnergyLevel("bogus"), 0},
	}

	for _, tc := range cases {
		if got := tc.level.Rank(); got != tc.want {
			t.Errorf("Rank(%q) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestEffectiveMinutes(t *testing.T) {
	custom := 45
	zero := 0

	cases := []struct {
		name string
		task model.Task
		want int
	}{
		{"5m bucket", model.Task{EstimatedTime: model.Estimate5m}, 5},
		{"15m bucket", model.Task{EstimatedTime: model.Estimate15m}, 15},
		{"30m bucket", model.Task{EstimatedTime: model.Estimate30m}, 30},
		{"custom with minutes", model.Task{EstimatedTime: model.EstimateCustom, CustomTime: &custom}, 45},
		{"custom without minutes defaults to 30", model.Task{EstimatedTime: model.EstimateCustom}, 30},
		{"custom with zero minutes defaults to 30", model.Task{EstimatedTime: model.EstimateCustom, CustomTime: &zero}, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.task.EffectiveMinutes(); got != tc.want {
				t.Errorf("EffectiveMinutes = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDefaultAppData(t *testing.T) {
	data := model.DefaultAppData()

	if data.Tasks == nil || len(data.Tasks) != 0 {
		t.Errorf("tasks should be an empty slice, got %v", data.Tasks)
	}
	if data.UserState.ReminderPreference != model.ReminderNone {
		t.Errorf("default preference = %q, want none", data.UserState.ReminderPreference)
	}
	if data.UserState.LastActivityAt == 0 {
		t.Error("lastActivityAt should default to now")
	}
	if data.UserState.CurrentEnergy != "" {
		t.Errorf("currentEnergy should start unset, got %q", data.UserState.CurrentEnergy)
	}
}
