// Package gapfill implements the hour-by-hour gap-fill pass that runs
// after swap-repair: it looks for sub-intervals of a requirement still
// under minStaff and tries to patch them with staff who have at least
// a one-hour overlap with the uncovered range.
package gapfill

import (
	"time"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler/timeutil"
)

// MaxIterations bounds the fixed-point loop: each iteration patches at
// most one gap per requirement, so a handful of requirements each
// needing several staff can take several passes to converge.
const MaxIterations = 20

// hourRange is a half-open [Start,End) sub-interval of a requirement.
type hourRange struct {
	Start, End int
}

// Run repeatedly sweeps problem.Requirements looking for
// under-covered hour ranges and assigning one eligible staff member
// per range per iteration, until an iteration makes no progress or
// MaxIterations is reached. isLocked shifts are never touched; they
// only ever contribute coverage.
func Run(problem model.Problem, weekStart time.Time, state *model.State) {
	windowsByStaff := problem.AvailabilityByStaff()
	staffAssigned := assignedStaffIndex(problem.Requirements, state)

	for iter := 0; iter < MaxIterations; iter++ {
		progressed := false

		for _, req := range problem.Requirements {
			gaps := findGaps(req, state, windowsByStaff)
			if len(gaps) == 0 {
				continue
			}

			// Patch the first gap this pass; the next iteration will
			// pick up any range still short.
			gap := gaps[0]
			c, ok := bestCandidate(problem, req, gap, state, windowsByStaff, staffAssigned[req.ID])
			if !ok {
				continue
			}

			insert(state, c, req, weekStart, windowsByStaff[c.ID], problem.Constraints)
			staffAssigned[req.ID][c.ID] = struct{}{}
			progressed = true
		}

		if !progressed {
			break
		}
	}
}

func assignedStaffIndex(requirements []model.ShiftRequirement, state *model.State) map[uuid.UUID]map[uuid.UUID]struct{} {
	idx := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(requirements))
	for _, r := range requirements {
		idx[r.ID] = make(map[uuid.UUID]struct{})
	}
	for _, s := range state.Shifts {
		if set, ok := idx[s.RequirementID]; ok {
			set[s.StaffID] = struct{}{}
		}
	}
	return idx
}

// findGaps computes hour-by-hour coverage for req from the shifts
// currently assigned to it (using each assignee's bestWindow, so a
// split-shift assignment only counts the hours actually worked) and
// returns the maximal contiguous ranges where coverage < MinStaff.
func findGaps(req model.ShiftRequirement, state *model.State, windowsByStaff map[uuid.UUID][]model.AvailabilityWindow) []hourRange {
	if req.MinStaff <= 0 {
		return nil
	}

	coverage := make([]int, req.EndHour-req.StartHour)
	for _, s := range state.Shifts {
		if s.RequirementID != req.ID {
			continue
		}
		start, end := workedInterval(windowsByStaff[s.StaffID], req)
		for h := start; h < end; h++ {
			coverage[h-req.StartHour]++
		}
	}

	var gaps []hourRange
	inGap := false
	var start int
	for h := req.StartHour; h < req.EndHour; h++ {
		short := coverage[h-req.StartHour] < req.MinStaff
		if short && !inGap {
			inGap, start = true, h
		}
		if !short && inGap {
			gaps = append(gaps, hourRange{Start: start, End: h})
			inGap = false
		}
	}
	if inGap {
		gaps = append(gaps, hourRange{Start: start, End: req.EndHour})
	}
	return gaps
}

func workedInterval(windows []model.AvailabilityWindow, req model.ShiftRequirement) (int, int) {
	if s, e, ok := timeutil.BestWindow(windows, req.DayOfWeek, req.StartHour, req.EndHour); ok {
		return s, e
	}
	return req.StartHour, req.EndHour
}

// gapCandidate is a ranking entry: a staff member eligible to cover at
// least part of gap.
type gapCandidate struct {
	model.Staff
	overlapHours   int
	remainingHours int
}

// bestCandidate ranks staff not already on req by larger overlap with
// the gap range first, then by larger remaining capacity, and returns
// the top one. A candidate must: not already be assigned to req, be
// qualification-compatible, overlap the gap range by at least one
// hour, have no day-conflict for the requirement's full interval, and
// fit under max hours once the requirement's worked hours are added
// (its full duration, or the best single-window overlap in split
// mode). The shift is always recorded at the requirement's full
// interval.
func bestCandidate(
	problem model.Problem,
	req model.ShiftRequirement,
	gap hourRange,
	state *model.State,
	windowsByStaff map[uuid.UUID][]model.AvailabilityWindow,
	already map[uuid.UUID]struct{},
) (gapCandidate, bool) {
	var best gapCandidate
	found := false

	for _, staff := range problem.Staff {
		if _, ok := already[staff.ID]; ok {
			continue
		}
		if !staff.HasQualifications(req.Qualifications) {
			continue
		}
		windows := windowsByStaff[staff.ID]

		overlap := timeutil.Overlap(windows, req.DayOfWeek, gap.Start, gap.End)
		if overlap < 1 {
			continue
		}
		if state.HasDayConflict(staff.ID, req.DayOfWeek, req.StartHour, req.EndHour) {
			continue
		}

		worked := timeutil.HoursWorked(windows, req.DayOfWeek, req.StartHour, req.EndHour, problem.Constraints.AllowSplitShifts)
		projected := state.HoursAssigned[staff.ID] + worked
		if projected > staff.MaxHoursPerWeek {
			continue
		}
		if problem.Constraints.MaxHoursPerStaff != nil && projected > *problem.Constraints.MaxHoursPerStaff {
			continue
		}

		remaining := staff.MaxHoursPerWeek - state.HoursAssigned[staff.ID]
		c := gapCandidate{Staff: staff, overlapHours: overlap, remainingHours: remaining}

		if !found || c.overlapHours > best.overlapHours ||
			(c.overlapHours == best.overlapHours && c.remainingHours > best.remainingHours) {
			best, found = c, true
		}
	}

	return best, found
}

func insert(state *model.State, staff model.Staff, req model.ShiftRequirement, weekStart time.Time, windows []model.AvailabilityWindow, constraints model.Constraints) {
	workedStart, workedEnd := req.StartHour, req.EndHour
	if constraints.AllowSplitShifts {
		if s, e, ok := timeutil.BestWindow(windows, req.DayOfWeek, req.StartHour, req.EndHour); ok {
			workedStart, workedEnd = s, e
		}
	}
	workedHours := workedEnd - workedStart

	shift := model.ScheduledShift{
		ID:            uuid.New(),
		RequirementID: req.ID,
		StaffID:       staff.ID,
		DayOfWeek:     req.DayOfWeek,
		StartHour:     req.StartHour,
		EndHour:       req.EndHour,
		Date:          model.DateFor(weekStart, req.DayOfWeek),
		LocationID:    req.LocationID,
	}
	state.Insert(shift, workedHours, workedStart, workedEnd)
}
