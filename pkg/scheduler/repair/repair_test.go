package repair

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
)

var sunday = time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)

func TestRun_SwapsFromOverToGap(t *testing.T) {
	staffA := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	staffB := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}

	r1 := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 12, MinStaff: 1, MaxStaff: 2}
	r2 := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 13, EndHour: 16, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff: []model.Staff{staffA, staffB},
		Availability: []model.AvailabilityWindow{
			{StaffID: staffA.ID, DayOfWeek: 1, StartHour: 9, EndHour: 16},
			{StaffID: staffB.ID, DayOfWeek: 1, StartHour: 9, EndHour: 12},
		},
		Requirements: []model.ShiftRequirement{r1, r2},
		Constraints:  model.DefaultConstraints(),
	}

	// Both staff landed on r1 (over-covered); r2 is a gap.
	state := model.NewState()
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: r1.ID, StaffID: staffA.ID, Date: sunday.AddDate(0, 0, 1), DayOfWeek: 1, StartHour: 9, EndHour: 12}, 3, 9, 12)
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: r1.ID, StaffID: staffB.ID, Date: sunday.AddDate(0, 0, 1), DayOfWeek: 1, StartHour: 9, EndHour: 12}, 3, 9, 12)

	Run(problem, state)

	if countAssigned(state, r2.ID) != 1 {
		t.Fatalf("expected r2 to be filled by the swap, got %d assignments", countAssigned(state, r2.ID))
	}
	if countAssigned(state, r1.ID) != 1 {
		t.Fatalf("expected r1 to drop back to 1 assignment, got %d", countAssigned(state, r1.ID))
	}
	// staffB cannot cover r2 (only available 9-12), so staffA must be the one moved.
	if idx := state.IndexOf(r2.ID, staffA.ID); idx == -1 {
		t.Error("expected staffA to be reassigned to r2")
	}
}

func TestRun_DoesNotDrainOverCoveredSourceBelowMinStaffAcrossTwoGaps(t *testing.T) {
	staffA := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	staffB := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}

	r1 := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 12, MinStaff: 1, MaxStaff: 2}
	r2 := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 13, EndHour: 16, MinStaff: 1, MaxStaff: 1}
	r3 := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 17, EndHour: 20, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff: []model.Staff{staffA, staffB},
		Availability: []model.AvailabilityWindow{
			{StaffID: staffA.ID, DayOfWeek: 1, StartHour: 9, EndHour: 20},
			{StaffID: staffB.ID, DayOfWeek: 1, StartHour: 9, EndHour: 20},
		},
		Requirements: []model.ShiftRequirement{r1, r2, r3},
		Constraints:  model.DefaultConstraints(),
	}

	// r1 has exactly one surplus above its minStaff; r2 and r3 are both
	// gaps that could each draw that one surplus staff member from r1.
	// Only one swap may happen — r1 must never drop below its own
	// minStaff just because two different gaps tried to draw from it.
	state := model.NewState()
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: r1.ID, StaffID: staffA.ID, DayOfWeek: 1, StartHour: 9, EndHour: 12}, 3, 9, 12)
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: r1.ID, StaffID: staffB.ID, DayOfWeek: 1, StartHour: 9, EndHour: 12}, 3, 9, 12)

	Run(problem, state)

	if got := countAssigned(state, r1.ID); got < r1.MinStaff {
		t.Fatalf("r1 dropped to %d assignments, below its own minStaff %d", got, r1.MinStaff)
	}
	filled := countAssigned(state, r2.ID) + countAssigned(state, r3.ID)
	if filled != 1 {
		t.Fatalf("expected exactly one of r2/r3 to be filled from r1's single surplus, got %d", filled)
	}
}

func TestRun_RespectsLockedAssignments(t *testing.T) {
	staffA := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}
	staffB := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40}

	r1 := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 12, MinStaff: 1, MaxStaff: 2}
	r2 := model.ShiftRequirement{ID: uuid.New(), DayOfWeek: 1, StartHour: 13, EndHour: 16, MinStaff: 1, MaxStaff: 1}

	problem := model.Problem{
		Staff: []model.Staff{staffA, staffB},
		Availability: []model.AvailabilityWindow{
			{StaffID: staffA.ID, DayOfWeek: 1, StartHour: 9, EndHour: 16}, // could cover r2 if moved
			{StaffID: staffB.ID, DayOfWeek: 1, StartHour: 9, EndHour: 12}, // cannot cover r2
		},
		Requirements: []model.ShiftRequirement{r1, r2},
		Constraints:  model.DefaultConstraints(),
	}

	state := model.NewState()
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: r1.ID, StaffID: staffA.ID, IsLocked: true, DayOfWeek: 1, StartHour: 9, EndHour: 12}, 3, 9, 12)
	state.Insert(model.ScheduledShift{ID: uuid.New(), RequirementID: r1.ID, StaffID: staffB.ID, DayOfWeek: 1, StartHour: 9, EndHour: 12}, 3, 9, 12)

	Run(problem, state)

	// r1 is over-covered (2 assigned, minStaff 1); the only staff who
	// could actually cover r2 is staffA, but staffA's r1 assignment is
	// locked, so the swap must not happen and r2 stays a gap.
	if countAssigned(state, r2.ID) != 0 {
		t.Error("locked assignment must not be moved even though its requirement is over-covered")
	}
}
