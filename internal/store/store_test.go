package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
)

func TestDecodeResult_RoundTripsScheduleStatsAndWarnings(t *testing.T) {
	staffID := uuid.New()
	reqID := uuid.New()
	weekStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	want := model.ScheduleResult{
		Schedule: model.Schedule{
			ID:            uuid.New(),
			WeekStartDate: weekStart,
			Shifts: []model.ScheduledShift{
				{ID: uuid.New(), RequirementID: reqID, StaffID: staffID, Date: weekStart, DayOfWeek: 1, StartHour: 9, EndHour: 17},
			},
		},
		Stats: model.ScheduleStats{
			TotalShifts:        1,
			FilledShifts:       1,
			HoursPerStaff:      map[uuid.UUID]int{staffID: 8},
			TotalHours:         8,
			RequiredHours:      8,
			CoveredHours:       8,
			CoveragePercentage: 100,
			FairnessIndex:      0,
		},
		Warnings: []model.ScheduleWarning{
			model.UnfilledWarning(reqID, "not enough eligible staff"),
		},
		Score: 1234.5,
	}

	scheduleJSON, err := json.Marshal(want.Schedule)
	if err != nil {
		t.Fatalf("marshal schedule: %v", err)
	}
	statsJSON, err := json.Marshal(want.Stats)
	if err != nil {
		t.Fatalf("marshal stats: %v", err)
	}
	warningsJSON, err := json.Marshal(want.Warnings)
	if err != nil {
		t.Fatalf("marshal warnings: %v", err)
	}

	got, err := decodeResult(scheduleJSON, statsJSON, warningsJSON, want.Score)
	if err != nil {
		t.Fatalf("decodeResult: %v", err)
	}

	if got.Schedule.ID != want.Schedule.ID || len(got.Schedule.Shifts) != 1 {
		t.Errorf("schedule = %+v, want %+v", got.Schedule, want.Schedule)
	}
	if got.Stats.HoursPerStaff[staffID] != 8 {
		t.Errorf("hoursPerStaff[staffID] = %d, want 8", got.Stats.HoursPerStaff[staffID])
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Kind != model.WarningUnfilled {
		t.Errorf("warnings = %+v, want one unfilled warning", got.Warnings)
	}
	if got.Score != want.Score {
		t.Errorf("score = %v, want %v", got.Score, want.Score)
	}
}

func TestDecodeResult_InvalidScheduleJSONErrors(t *testing.T) {
	_, err := decodeResult([]byte("not json"), []byte("{}"), []byte("[]"), 0)
	if err == nil {
		t.Fatal("expected an error decoding invalid schedule JSON")
	}
}
