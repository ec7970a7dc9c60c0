// Package stats computes post-solve coverage and fairness metrics
// over a finished schedule: how well requirements were filled, which
// hour ranges were not, and how evenly hours landed across staff.
package stats

import (
	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler/timeutil"
)

// Compute derives the full ScheduleStats for a solved state: coverage
// totals, per-staff hours, uncovered gaps, the fairness index, and any
// undertime warnings. It does not mutate state.
func Compute(problem model.Problem, state *model.State) (model.ScheduleStats, []model.ScheduleWarning) {
	windowsByStaff := problem.AvailabilityByStaff()

	totalShifts := len(problem.Requirements)
	filledShifts := 0
	requiredHours := 0
	coveredHours := 0
	var gaps []model.UncoveredGap

	for _, req := range problem.Requirements {
		requiredHours += req.Duration() * req.MinStaff

		coverage := hourCoverage(req, state, windowsByStaff)
		covered, reqGaps := summarizeCoverage(req, coverage)
		coveredHours += covered
		gaps = append(gaps, reqGaps...)

		if len(reqGaps) == 0 {
			filledShifts++
		}
	}

	coveragePct := 100.0
	if requiredHours > 0 {
		coveragePct = float64(coveredHours) / float64(requiredHours) * 100
	}

	hoursPerStaff := make(map[uuid.UUID]int, len(state.HoursAssigned))
	totalHours := 0
	for id, h := range state.HoursAssigned {
		hoursPerStaff[id] = h
		totalHours += h
	}

	stats := model.ScheduleStats{
		TotalShifts:        totalShifts,
		FilledShifts:       filledShifts,
		HoursPerStaff:      hoursPerStaff,
		TotalHours:         totalHours,
		RequiredHours:      requiredHours,
		CoveredHours:       coveredHours,
		CoveragePercentage: coveragePct,
		UncoveredGaps:      gaps,
		FairnessIndex:      Gini(hoursSlice(state)),
	}

	return stats, hourWarnings(problem, state)
}

// hourCoverage returns a per-hour assigned-staff count across
// [req.StartHour, req.EndHour), counting each assignee's bestWindow
// worked interval rather than the full requirement interval.
func hourCoverage(req model.ShiftRequirement, state *model.State, windowsByStaff map[uuid.UUID][]model.AvailabilityWindow) []int {
	coverage := make([]int, req.EndHour-req.StartHour)
	for _, s := range state.Shifts {
		if s.RequirementID != req.ID {
			continue
		}
		windows := windowsByStaff[s.StaffID]
		start, end := req.StartHour, req.EndHour
		if ws, we, ok := timeutil.BestWindow(windows, req.DayOfWeek, req.StartHour, req.EndHour); ok {
			start, end = ws, we
		}
		for h := start; h < end; h++ {
			coverage[h-req.StartHour]++
		}
	}
	return coverage
}

// summarizeCoverage sums the hours actually covered up to MinStaff
// (extra staff above MinStaff don't count as "more" coverage) and
// collects the maximal gap ranges still short of MinStaff.
func summarizeCoverage(req model.ShiftRequirement, coverage []int) (coveredHours int, gaps []model.UncoveredGap) {
	inGap := false
	var gapStart int

	for h := req.StartHour; h < req.EndHour; h++ {
		n := coverage[h-req.StartHour]
		if n > req.MinStaff {
			n = req.MinStaff
		}
		coveredHours += n

		short := coverage[h-req.StartHour] < req.MinStaff
		if short && !inGap {
			inGap, gapStart = true, h
		}
		if !short && inGap {
			gaps = append(gaps, model.UncoveredGap{RequirementID: req.ID, DayOfWeek: req.DayOfWeek, StartHour: gapStart, EndHour: h})
			inGap = false
		}
	}
	if inGap {
		gaps = append(gaps, model.UncoveredGap{RequirementID: req.ID, DayOfWeek: req.DayOfWeek, StartHour: gapStart, EndHour: req.EndHour})
	}
	return
}

// hourWarnings flags staff whose assigned hours fell short of their
// configured weekly minimum.
func hourWarnings(problem model.Problem, state *model.State) []model.ScheduleWarning {
	var warnings []model.ScheduleWarning

	for _, s := range problem.Staff {
		if s.MinHoursPerWeek <= 0 {
			continue
		}
		if assigned := state.HoursAssigned[s.ID]; assigned < s.MinHoursPerWeek {
			staffID := s.ID
			warnings = append(warnings, model.ScheduleWarning{
				Kind:    model.WarningUndertime,
				Message: "assigned hours fell short of the configured weekly minimum",
				StaffID: &staffID,
			})
		}
	}

	return warnings
}

func hoursSlice(state *model.State) []float64 {
	values := make([]float64, 0, len(state.HoursAssigned))
	for _, h := range state.HoursAssigned {
		values = append(values, float64(h))
	}
	return values
}
