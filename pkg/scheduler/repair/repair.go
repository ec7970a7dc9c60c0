// Package repair implements the swap-repair pass: it moves assignees
// from over-covered requirements to under-covered ones, checking
// eligibility against the projected state after the move.
package repair

import (
	"sort"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler/eligibility"
	"github.com/weekshift/weekshift/pkg/scheduler/timeutil"
)

// Run partitions requirements into gap (fewer than minStaff assigned)
// and over (more than minStaff), then for each gap requirement (in
// day/startHour order) tries to pull a staff member off an
// over-covered requirement, in place, until the gap reaches minStaff
// or no swap remains. isLocked assignments are never moved.
func Run(problem model.Problem, state *model.State) {
	requirementsByID := make(map[uuid.UUID]model.ShiftRequirement, len(problem.Requirements))
	for _, r := range problem.Requirements {
		requirementsByID[r.ID] = r
	}

	gaps, overIDs := partition(problem.Requirements, state)
	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].DayOfWeek != gaps[j].DayOfWeek {
			return gaps[i].DayOfWeek < gaps[j].DayOfWeek
		}
		return gaps[i].StartHour < gaps[j].StartHour
	})

	windowsByStaff := problem.AvailabilityByStaff()
	staffByID := problem.StaffByID()

	for _, gap := range gaps {
		need := gap.MinStaff - countAssigned(state, gap.ID)
		for need > 0 {
			if !trySwap(problem, state, gap, overIDs, requirementsByID, windowsByStaff, staffByID) {
				break
			}
			need--
		}
	}
}

func partition(requirements []model.ShiftRequirement, state *model.State) (gaps []model.ShiftRequirement, overIDs []uuid.UUID) {
	for _, req := range requirements {
		n := countAssigned(state, req.ID)
		switch {
		case n < req.MinStaff:
			gaps = append(gaps, req)
		case n > req.MinStaff:
			overIDs = append(overIDs, req.ID)
		}
	}
	return
}

func countAssigned(state *model.State, requirementID uuid.UUID) int {
	n := 0
	for _, s := range state.Shifts {
		if s.RequirementID == requirementID {
			n++
		}
	}
	return n
}

// trySwap looks for one staff member currently on an over-covered
// requirement who could instead cover gap, removes them from the
// over-covered requirement, and reassigns them to gap. Returns false
// if no such staff member exists.
func trySwap(
	problem model.Problem,
	state *model.State,
	gap model.ShiftRequirement,
	overIDs []uuid.UUID,
	requirementsByID map[uuid.UUID]model.ShiftRequirement,
	windowsByStaff map[uuid.UUID][]model.AvailabilityWindow,
	staffByID map[uuid.UUID]model.Staff,
) bool {
	overSet := make(map[uuid.UUID]struct{}, len(overIDs))
	for _, id := range overIDs {
		overSet[id] = struct{}{}
	}

	for idx, shift := range state.Shifts {
		if _, isOver := overSet[shift.RequirementID]; !isOver {
			continue
		}
		if shift.IsLocked {
			continue
		}
		if shift.StaffID == uuid.Nil {
			continue
		}
		// Staff already assigned to the gap requirement: skip.
		if state.IndexOf(gap.ID, shift.StaffID) != -1 {
			continue
		}

		overReq, ok := requirementsByID[shift.RequirementID]
		if !ok {
			continue
		}
		staff := staffByID[shift.StaffID]
		windows := windowsByStaff[shift.StaffID]

		// Project the state as if this assignment were already removed,
		// then test eligibility for the gap requirement against it.
		oldWorked := workedHours(windows, overReq, problem.Constraints)
		oldStart, oldEnd := workedWindow(windows, overReq, problem.Constraints)

		projected := state.Clone()
		if removeIdx := projected.IndexOf(shift.RequirementID, shift.StaffID); removeIdx != -1 {
			projected.Remove(removeIdx, oldWorked, oldStart, oldEnd)
		}

		in := eligibility.Input{Staff: staff, Requirement: gap, Windows: windows, State: projected, Constraints: problem.Constraints}
		if !eligibility.IsEligible(in) {
			continue
		}

		// overIDs was computed once before any swaps; a prior swap this
		// run may already have pulled overReq back down to its minStaff.
		// Re-check against the live state so two gaps never drain the
		// same source requirement below its own floor.
		if countAssigned(state, overReq.ID)-1 < overReq.MinStaff {
			continue
		}

		// Commit: remove from over, insert into gap.
		newWorked := workedHours(windows, gap, problem.Constraints)
		newStart, newEnd := workedWindow(windows, gap, problem.Constraints)

		state.Remove(idx, oldWorked, oldStart, oldEnd)
		state.Insert(model.ScheduledShift{
			ID:            uuid.New(),
			RequirementID: gap.ID,
			StaffID:       staff.ID,
			Date:          shift.Date.AddDate(0, 0, gap.DayOfWeek-shift.DayOfWeek),
			DayOfWeek:     gap.DayOfWeek,
			StartHour:     gap.StartHour,
			EndHour:       gap.EndHour,
			LocationID:    gap.LocationID,
		}, newWorked, newStart, newEnd)
		return true
	}

	return false
}

func workedHours(windows []model.AvailabilityWindow, req model.ShiftRequirement, constraints model.Constraints) int {
	return timeutil.HoursWorked(windows, req.DayOfWeek, req.StartHour, req.EndHour, constraints.AllowSplitShifts)
}

func workedWindow(windows []model.AvailabilityWindow, req model.ShiftRequirement, constraints model.Constraints) (int, int) {
	if !constraints.AllowSplitShifts {
		return req.StartHour, req.EndHour
	}
	if s, e, ok := timeutil.BestWindow(windows, req.DayOfWeek, req.StartHour, req.EndHour); ok {
		return s, e
	}
	return req.StartHour, req.EndHour
}
