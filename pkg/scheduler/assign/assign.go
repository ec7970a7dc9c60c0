// Package assign implements the assignment core: a single greedy pass
// over an already-ordered requirement list that fills each
// requirement up to minStaff and updates hour/window state as it goes.
package assign

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler/eligibility"
	"github.com/weekshift/weekshift/pkg/scheduler/timeutil"
)

// Result is the outcome of one assignment pass.
type Result struct {
	State    *model.State
	Warnings []model.ScheduleWarning
}

// candidate is a ranking entry for one eligible staff member against
// one requirement.
type candidate struct {
	staff           model.Staff
	windows         []model.AvailabilityWindow
	remainingHours  int
	availabilityHrs int
	jitter          float64
}

// Run performs one single pass: for each requirement in order, it
// ranks eligible staff by remaining capacity, then (with balanceHours)
// by fewest assigned hours, then by total weekly availability, takes
// up to minStaff, and records an unfilled warning for any shortfall.
func Run(problem model.Problem, ordered []model.ShiftRequirement, weekStart time.Time, rng *rand.Rand) Result {
	return RunSeeded(problem, ordered, weekStart, rng, model.NewState())
}

// RunSeeded is Run against a caller-supplied starting state rather
// than an empty one. regenerate uses this to pre-load locked
// assignments before the pass runs, so a requirement that already has
// its locked headcount is skipped and a partially-locked one is only
// topped up to minStaff.
func RunSeeded(problem model.Problem, ordered []model.ShiftRequirement, weekStart time.Time, rng *rand.Rand, state *model.State) Result {
	windowsByStaff := problem.AvailabilityByStaff()
	var warnings []model.ScheduleWarning

	for _, req := range ordered {
		already := countAssigned(state, req.ID)
		if already >= req.MinStaff {
			continue
		}

		candidates := rankCandidates(problem, req, windowsByStaff, state, rng)

		filled := already
		for _, c := range candidates {
			if filled >= req.MinStaff {
				break
			}
			// Defensive re-check: ranking must not have staled the gate.
			in := eligibility.Input{Staff: c.staff, Requirement: req, Windows: c.windows, State: state, Constraints: problem.Constraints}
			if !eligibility.IsEligible(in) {
				continue
			}
			insert(state, c.staff, req, c.windows, problem.Constraints, weekStart)
			filled++
		}

		if filled < req.MinStaff {
			warnings = append(warnings, model.UnfilledWarning(req.ID, "not enough eligible staff to reach minStaff"))
		}
	}

	return Result{State: state, Warnings: warnings}
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

func rankCandidates(problem model.Problem, req model.ShiftRequirement, windowsByStaff map[uuid.UUID][]model.AvailabilityWindow, state *model.State, rng *rand.Rand) []candidate {
	var candidates []candidate
	for _, s := range problem.Staff {
		windows := windowsByStaff[s.ID]
		in := eligibility.Input{Staff: s, Requirement: req, Windows: windows, State: state, Constraints: problem.Constraints}
		if !eligibility.IsEligible(in) {
			continue
		}
		jitter := 0.0
		if rng != nil {
			jitter = rng.Float64() * 0.01
		}
		candidates = append(candidates, candidate{
			staff:           s,
			windows:         windows,
			remainingHours:  s.MaxHoursPerWeek - state.HoursAssigned[s.ID],
			availabilityHrs: model.TotalWeeklyHours(windows),
			jitter:          jitter,
		})
	}

	balance := problem.Constraints.BalanceHours
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.remainingHours != b.remainingHours {
			return a.remainingHours > b.remainingHours
		}
		if balance {
			assignedA := a.staff.MaxHoursPerWeek - a.remainingHours
			assignedB := b.staff.MaxHoursPerWeek - b.remainingHours
			if assignedA != assignedB {
				return assignedA < assignedB
			}
		}
		if a.availabilityHrs != b.availabilityHrs {
			return a.availabilityHrs > b.availabilityHrs
		}
		return a.jitter < b.jitter
	})

	return candidates
}

// insert records a new assignment at the requirement's interval,
// updating hours and the staff's assigned window for that day.
func insert(state *model.State, staff model.Staff, req model.ShiftRequirement, windows []model.AvailabilityWindow, constraints model.Constraints, weekStart time.Time) {
	// The "really worked" interval used for hour-accounting and
	// day-conflict bookkeeping: the full requirement, or its
	// BestWindow in split mode.
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
		Date:          model.DateFor(weekStart, req.DayOfWeek),
		DayOfWeek:     req.DayOfWeek,
		StartHour:     req.StartHour,
		EndHour:       req.EndHour,
		LocationID:    req.LocationID,
	}
	state.Insert(shift, workedHours, workedStart, workedEnd)
}
