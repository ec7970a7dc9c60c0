// Package eligibility decides whether a staff member can legally
// cover a requirement given the current per-solve state. It is the
// single gate re-checked at every insertion point (assignment,
// swap-repair, gap-fill): no path may assume an earlier check is
// still valid after the state has mutated.
package eligibility

import (
	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler/timeutil"
)

// Input bundles everything IsEligible needs to evaluate one
// (staff, requirement) pair against the current state.
type Input struct {
	Staff       model.Staff
	Requirement model.ShiftRequirement
	// Windows is staff's own availability windows only.
	Windows     []model.AvailabilityWindow
	State       *model.State
	Constraints model.Constraints
}

// IsEligible reports whether all four rules hold: qualification
// superset, window eligibility, no day-conflict, and the hard
// max-hours gate.
func IsEligible(in Input) bool {
	return QualificationMatch(in.Staff, in.Requirement) &&
		WindowEligible(in.Windows, in.Requirement, in.Constraints) &&
		!HasDayConflict(in.State, in.Staff.ID, in.Requirement) &&
		WithinMaxHours(in.Staff, in.State, in.Requirement, in.Windows, in.Constraints)
}

// QualificationMatch reports whether staff's qualifications are a
// superset of the requirement's required set.
func QualificationMatch(staff model.Staff, req model.ShiftRequirement) bool {
	return staff.HasQualifications(req.Qualifications)
}

// WindowEligible implements rule 2: in full-shift mode, some
// availability window must fully contain the requirement interval;
// in split mode, the best single-window overlap must meet
// min(minOverlapHours, duration).
func WindowEligible(windows []model.AvailabilityWindow, req model.ShiftRequirement, constraints model.Constraints) bool {
	if !constraints.AllowSplitShifts {
		return timeutil.FullyContains(windows, req.DayOfWeek, req.StartHour, req.EndHour)
	}
	need := constraints.MinOverlapHours
	if d := req.Duration(); d < need {
		need = d
	}
	return timeutil.Overlap(windows, req.DayOfWeek, req.StartHour, req.EndHour) >= need
}

// HasDayConflict implements rule 3: no existing assignment window for
// this staff on this day may intersect the requirement's interval.
func HasDayConflict(state *model.State, staffID uuid.UUID, req model.ShiftRequirement) bool {
	return state.HasDayConflict(staffID, req.DayOfWeek, req.StartHour, req.EndHour)
}

// WithinMaxHours implements rule 4, the hard max-hours gate: the
// staff's projected hours after taking this requirement must not
// exceed their own MaxHoursPerWeek nor the global
// constraints.MaxHoursPerStaff cap, if set. This MUST be re-checked
// at every insertion point; no earlier pass may assume it still holds.
func WithinMaxHours(staff model.Staff, state *model.State, req model.ShiftRequirement, windows []model.AvailabilityWindow, constraints model.Constraints) bool {
	worked := timeutil.HoursWorked(windows, req.DayOfWeek, req.StartHour, req.EndHour, constraints.AllowSplitShifts)
	projected := state.HoursAssigned[staff.ID] + worked
	if projected > staff.MaxHoursPerWeek {
		return false
	}
	if constraints.MaxHoursPerStaff != nil && projected > *constraints.MaxHoursPerStaff {
		return false
	}
	return true
}
