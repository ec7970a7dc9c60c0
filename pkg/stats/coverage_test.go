package stats

import (
	"testing"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
)

func TestCompute_FullCoverageNoGaps(t *testing.T) {
	staff := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	req := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 17, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff:        []model.Staff{staff},
		Availability: []model.AvailabilityWindow{{StaffID: staff.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17}},
		Requirements: []model.ShiftRequirement{req},
	}

	state := model.NewState()
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: req.ID, StaffID: staff.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17}, 8, 9, 17)

	got, warnings := Compute(problem, state)

	if got.CoveragePercentage != 100 {
		t.Errorf("CoveragePercentage = %v, want 100", got.CoveragePercentage)
	}
	if len(got.UncoveredGaps) != 0 {
		t.Errorf("expected no gaps, got %v", got.UncoveredGaps)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestCompute_ReportsPartialGap(t *testing.T) {
	staff := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	req := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 17, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff:        []model.Staff{staff},
		Availability: []model.AvailabilityWindow{{StaffID: staff.ID, DayOfWeek: 1, StartHour: 9, EndHour: 13}},
		Requirements: []model.ShiftRequirement{req},
	}

	state := model.NewState()
	// Shift recorded at the full requirement interval, but the staff
	// member only actually covers 9-13 (bestWindow).
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: req.ID, StaffID: staff.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17}, 4, 9, 13)

	got, _ := Compute(problem, state)

	if len(got.UncoveredGaps) != 1 {
		t.Fatalf("expected one gap, got %v", got.UncoveredGaps)
	}
	gap := got.UncoveredGaps[0]
	if gap.StartHour != 13 || gap.EndHour != 17 {
		t.Errorf("gap = [%d,%d), want [13,17)", gap.StartHour, gap.EndHour)
	}
	if got.CoveredHours != 4 {
		t.Errorf("CoveredHours = %d, want 4", got.CoveredHours)
	}
}

func TestCompute_OverDemandReportsZeroFilledShifts(t *testing.T) {
	s1 := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 8}
	s2 := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 8}
	req := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 17, MinStaff: 3, MaxStaff: 3}

	problem := model.Problem{
		Staff: []model.Staff{s1, s2},
		Availability: []model.AvailabilityWindow{
			{StaffID: s1.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17},
			{StaffID: s2.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17},
		},
		Requirements: []model.ShiftRequirement{req},
	}

	state := model.NewState()
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: req.ID, StaffID: s1.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17}, 8, 9, 17)
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: req.ID, StaffID: s2.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17}, 8, 9, 17)

	got, _ := Compute(problem, state)

	if got.TotalShifts != 1 {
		t.Errorf("TotalShifts = %d, want 1 (count of requirements, not minStaff headcount)", got.TotalShifts)
	}
	if got.FilledShifts != 0 {
		t.Errorf("FilledShifts = %d, want 0 (requirement still short of minStaff=3 everywhere)", got.FilledShifts)
	}
	if got.CoveredHours != 16 {
		t.Errorf("CoveredHours = %d, want 16", got.CoveredHours)
	}
	if got.RequiredHours != 24 {
		t.Errorf("RequiredHours = %d, want 24", got.RequiredHours)
	}
	want := float64(16) / float64(24) * 100
	if got.CoveragePercentage != want {
		t.Errorf("CoveragePercentage = %v, want %v", got.CoveragePercentage, want)
	}
}

func TestCompute_FlagsUndertime(t *testing.T) {
	staff := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40, MinHoursPerWeek: 20}
	req := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 13, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff:        []model.Staff{staff},
		Availability: []model.AvailabilityWindow{{StaffID: staff.ID, DayOfWeek: 1, StartHour: 9, EndHour: 13}},
		Requirements: []model.ShiftRequirement{req},
	}

	state := model.NewState()
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: req.ID, StaffID: staff.ID, DayOfWeek: 1, StartHour: 9, EndHour: 13}, 4, 9, 13)

	_, warnings := Compute(problem, state)

	if len(warnings) != 1 || warnings[0].Kind != model.WarningUndertime {
		t.Fatalf("expected one undertime warning, got %v", warnings)
	}
}
