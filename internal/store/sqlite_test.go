package store_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/nhle/energiflow/internal/model"
	"github.com/nhle/energiflow/internal/store"
	"github.com/nhle/energiflow/tests/testutil"
)

func sampleData() *model.AppData {
	custom := 45
	completed := int64(1_700_000_500_000)
	shown := int64(1_700_000_400_000)
	return &model.AppData{
		Tasks: []model.Task{
			{
				ID:            "a",
				Title:         "Water the plants",
				EnergyLevel:   model.EnergyLow,
				EstimatedTime: model.Estimate5m,
				Flexible:      true,
				CreatedAt:     1_700_000_000_000,
			},
			{
				ID:            "b",
				Title:         "Write the report",
				EnergyLevel:   model.EnergyHigh,
				EstimatedTime: model.EstimateCustom,
				CustomTime:    &custom,
				Note:          "draft first",
				CreatedAt:     1_700_000_100_000,
				CompletedAt:   &completed,
			},
		},
		UserState: model.UserState{
			CurrentEnergy:      model.EnergyMedium,
			LastActivityAt:     1_700_000_200_000,
			ReminderPreference: model.ReminderEvening,
			LastReminderShown:  &shown,
		},
	}
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)

	data := s.Load()
	if len(data.Tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(data.Tasks))
	}
	if data.UserState.ReminderPreference != model.ReminderNone {
		t.Errorf("default preference = %q, want none", data.UserState.ReminderPreference)
	}
	if data.UserState.LastActivityAt == 0 {
		t.Error("default lastActivityAt should be now, not zero")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)

	want := sampleData()
	s.Save(want)

	got := s.Load()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := testutil.NewTestStore(t)

	first := sampleData()
	s.Save(first)

	second := sampleData()
	second.Tasks = second.Tasks[:1]
	s.Save(second)

	got := s.Load()
	if len(got.Tasks) != 1 {
		t.Errorf("expected the later document to win, got %d tasks", len(got.Tasks))
	}
}

func TestClear(t *testing.T) {
	s := testutil.NewTestStore(t)

	s.Save(sampleData())
	s.Clear()

	got := s.Load()
	if len(got.Tasks) != 0 {
		t.Errorf("expected a default document after clear, got %d tasks", len(got.Tasks))
	}
}

func TestExportRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)

	want := sampleData()
	s.Save(want)

	out, err := s.Export()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got model.AppData
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(&got, want) {
		t.Errorf("export round trip mismatch:\n got %+v\nwant %+v", &got, want)
	}
}

func TestPersistedFieldNames(t *testing.T) {
	// The stored document must keep the field names and encodings of
	// previously saved data: camelCase keys, epoch-millisecond ints,
	// string enum tags.
	s := testutil.NewTestStore(t)
	s.Save(sampleData())

	out, err := s.Export()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decoding export: %v", err)
	}

	tasks, ok := doc["tasks"].([]any)
	if !ok || len(tasks) != 2 {
		t.Fatalf("tasks field missing or wrong: %v", doc["tasks"])
	}
	taskObj := tasks[1].(map[string]any)
	for _, field := range []string{"id", "title", "energyLevel", "estimatedTime", "customTime", "note", "flexible", "createdAt", "completedAt"} {
		if _, ok := taskObj[field]; !ok {
			t.Errorf("task missing field %q", field)
		}
	}
	if taskObj["energyLevel"] != "high" {
		t.Errorf("energyLevel encoded as %v, want \"high\"", taskObj["energyLevel"])
	}
	if taskObj["createdAt"] != float64(1_700_000_100_000) {
		t.Errorf("createdAt encoded as %v, want integer millis", taskObj["createdAt"])
	}

	state, ok := doc["userState"].(map[string]any)
	if !ok {
		t.Fatalf("userState field missing: %v", doc["userState"])
	}
	for _, field := range []string{"currentEnergy", "lastActivityAt", "reminderPreference", "lastReminderShown"} {
		if _, ok := state[field]; !ok {
			t.Errorf("userState missing field %q", field)
		}
	}
}

func TestLoadAcceptsDocumentsFromOlderBuilds(t *testing.T) {
	// A document written by the original schema, with optional fields
	// absent, must load without error.
	s := testutil.NewTestStore(t)

	legacy := `{
		"tasks": [
			{"id":"x","title":"Stretch","energyLevel":"low","estimatedTime":"5m","flexible":false,"createdAt":1700000000000}
		],
		"userState": {"lastActivityAt":1700000000000,"reminderPreference":"none"}
	}`

	var data model.AppData
	if err := json.Unmarshal([]byte(legacy), &data); err != nil {
		t.Fatalf("legacy document rejected: %v", err)
	}
	s.Save(&data)

	got := s.Load()
	if len(got.Tasks) != 1 || got.Tasks[0].Title != "Stretch" {
		t.Errorf("legacy document did not survive: %+v", got)
	}
	if got.Tasks[0].CompletedAt != nil || got.Tasks[0].CustomTime != nil {
		t.Error("absent optional fields must stay nil")
	}
}

var _ store.DataStore = (*store.SQLiteStore)(nil)
