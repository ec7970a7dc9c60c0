package assign

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
)

var sunday = time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)

func TestRun_SingleFit(t *testing.T) {
	staff := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	req := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 17, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff:        []model.Staff{staff},
		Availability: []model.AvailabilityWindow{{StaffID: staff.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17}},
		Requirements: []model.ShiftRequirement{req},
		Constraints:  model.DefaultConstraints(),
	}

	result := Run(problem, problem.Requirements, sunday, nil)

	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
	if len(result.State.Shifts) != 1 {
		t.Fatalf("expected one shift, got %d", len(result.State.Shifts))
	}
	if result.State.HoursAssigned[staff.ID] != 8 {
		t.Errorf("HoursAssigned = %d, want 8", result.State.HoursAssigned[staff.ID])
	}
}

func TestRun_OverDemandEmitsUnfilled(t *testing.T) {
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
		Constraints:  model.DefaultConstraints(),
	}

	result := Run(problem, problem.Requirements, sunday, nil)

	if len(result.State.Shifts) != 2 {
		t.Fatalf("expected 2 shifts, got %d", len(result.State.Shifts))
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Kind != model.WarningUnfilled {
		t.Fatalf("expected one unfilled warning, got %v", result.Warnings)
	}
}

func TestRun_MaxHoursGate(t *testing.T) {
	staff := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 6}
	r1 := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 13, MinStaff: 1, MaxStaff: 1}
	r2 := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 14, EndHour: 18, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff:        []model.Staff{staff},
		Availability: []model.AvailabilityWindow{{StaffID: staff.ID, DayOfWeek: 1, StartHour: 8, EndHour: 20}},
		Requirements: []model.ShiftRequirement{r1, r2},
		Constraints:  model.DefaultConstraints(),
	}

	result := Run(problem, problem.Requirements, sunday, nil)

	if result.State.HoursAssigned[staff.ID] != 4 {
		t.Errorf("HoursAssigned = %d, want 4 (never 8: max hours gate)", result.State.HoursAssigned[staff.ID])
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected exactly one unfilled warning, got %v", result.Warnings)
	}
}

func TestRun_SplitShiftRecordsRequirementInterval(t *testing.T) {
	staff := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	req := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 17, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff:        []model.Staff{staff},
		Availability: []model.AvailabilityWindow{{StaffID: staff.ID, DayOfWeek: 1, StartHour: 9, EndHour: 13}},
		Requirements: []model.ShiftRequirement{req},
		Constraints: model.Constraints{
			AllowSplitShifts: true,
			MinOverlapHours:  2,
		},
	}

	result := Run(problem, problem.Requirements, sunday, nil)

	if len(result.State.Shifts) != 1 {
		t.Fatalf("expected one shift")
	}
	shift := result.State.Shifts[0]
	if shift.StartHour != 9 || shift.EndHour != 17 {
		t.Errorf("recorded interval = [%d,%d), want [9,17) (requirement interval, not worked window)", shift.StartHour, shift.EndHour)
	}
	if result.State.HoursAssigned[staff.ID] != 4 {
		t.Errorf("HoursAssigned = %d, want 4 (the worked window)", result.State.HoursAssigned[staff.ID])
	}
}

func TestRunSeeded_SkipsRequirementAlreadyAtMinStaffFromSeed(t *testing.T) {
	locked := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	fresh := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	req := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 17, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff: []model.Staff{locked, fresh},
		Availability: []model.AvailabilityWindow{
			{StaffID: locked.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17},
			{StaffID: fresh.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17},
		},
		Requirements: []model.ShiftRequirement{req},
		Constraints:  model.DefaultConstraints(),
	}

	seeded := model.NewState()
	lockedShift := model.ScheduledShift{ID: uuid.New(), RequirementID: req.ID, StaffID: locked.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17, IsLocked: true}
	seeded.Insert(lockedShift, 8, 9, 17)

	result := RunSeeded(problem, problem.Requirements, sunday, nil, seeded)

	if len(result.State.Shifts) != 1 {
		t.Fatalf("expected the seeded shift alone, got %d shifts", len(result.State.Shifts))
	}
	if result.State.Shifts[0].StaffID != locked.ID {
		t.Errorf("fresh assignment pass overwrote the seeded locked shift")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no unfilled warning, requirement was already satisfied by the seed: %v", result.Warnings)
	}
}

func TestRunSeeded_TopsUpPartiallySeededRequirement(t *testing.T) {
	locked := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	fresh := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	req := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 17, MinStaff: 2, MaxStaff: 2}

	problem := model.Problem{
		Staff: []model.Staff{locked, fresh},
		Availability: []model.AvailabilityWindow{
			{StaffID: locked.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17},
			{StaffID: fresh.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17},
		},
		Requirements: []model.ShiftRequirement{req},
		Constraints:  model.DefaultConstraints(),
	}

	seeded := model.NewState()
	lockedShift := model.ScheduledShift{ID: uuid.New(), RequirementID: req.ID, StaffID: locked.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17, IsLocked: true}
	seeded.Insert(lockedShift, 8, 9, 17)

	result := RunSeeded(problem, problem.Requirements, sunday, nil, seeded)

	if len(result.State.Shifts) != 2 {
		t.Fatalf("expected the seeded shift plus one fresh assignment, got %d", len(result.State.Shifts))
	}
}
