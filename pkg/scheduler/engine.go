// Package scheduler exposes the solve-core's external API: solve,
// solve_variants, and regenerate. Everything underneath (scarcity,
// order, assign, repair, gapfill, stats, score, variant) is
// orchestrated from here; callers never reach into those packages
// directly.
package scheduler

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler/assign"
	"github.com/weekshift/weekshift/pkg/scheduler/gapfill"
	"github.com/weekshift/weekshift/pkg/scheduler/order"
	"github.com/weekshift/weekshift/pkg/scheduler/repair"
	"github.com/weekshift/weekshift/pkg/scheduler/scarcity"
	"github.com/weekshift/weekshift/pkg/scheduler/score"
	"github.com/weekshift/weekshift/pkg/scheduler/timeutil"
	"github.com/weekshift/weekshift/pkg/scheduler/variant"
	"github.com/weekshift/weekshift/pkg/stats"

	"github.com/weekshift/weekshift/internal/metrics"
	"github.com/weekshift/weekshift/pkg/logger"
)

// Engine is the solve core's entry point. It carries no per-solve
// state of its own; every method is safe to call concurrently from
// multiple goroutines since each solve owns its own model.State.
type Engine struct {
	log *logger.SchedulerLogger
}

// NewEngine returns an Engine ready to solve.
func NewEngine() *Engine {
	return &Engine{log: logger.NewSchedulerLogger()}
}

// Solve runs one deterministic candidate for problem given seed.
func (e *Engine) Solve(problem model.Problem, seed int64) model.ScheduleResult {
	start := time.Now()
	e.log.StartSolve(problem.WeekStartDate.Format("2006-01-02"), len(problem.Staff), len(problem.Requirements))

	result := variant.Generate(problem, problem.WeekStartDate, 1, 1, seed)
	best := stampID(result.Variants[result.BestIndex])

	e.recordOutcome("solve", start, best)
	return best
}

// SolveVariants runs numCandidates candidates and returns the
// numTopVariants highest-scored, distinct-signature schedules.
func (e *Engine) SolveVariants(problem model.Problem, numCandidates, numTopVariants int, seed int64) variant.Result {
	start := time.Now()
	e.log.StartSolve(problem.WeekStartDate.Format("2006-01-02"), len(problem.Staff), len(problem.Requirements))

	result := variant.Generate(problem, problem.WeekStartDate, numCandidates, numTopVariants, seed)
	for i, v := range result.Variants {
		result.Variants[i] = stampID(v)
	}
	if len(result.Variants) > 0 {
		e.recordOutcome("solve_variants", start, result.Variants[result.BestIndex])
	}
	return result
}

// Regenerate re-solves problem under newConstraints while preserving
// every shift in existing that is flagged isLocked or named in
// newConstraints.LockedShiftIds. Fresh assignments can never collide
// with a preserved one on the same (requirement, staff, day) — the
// eligibility day-conflict gate rejects that before it is ever
// recorded — so no separate post-hoc conflict removal pass is needed.
func (e *Engine) Regenerate(problem model.Problem, existing model.Schedule, newConstraints model.Constraints, seed int64) model.ScheduleResult {
	start := time.Now()

	locked := lockedShifts(existing, newConstraints)

	effective := newConstraints
	effective.LockedShiftIDs = lockedIDSet(locked)

	merged := problem
	merged.Constraints = effective

	state := model.NewState()
	windowsByStaff := merged.AvailabilityByStaff()
	for _, shift := range locked {
		shift.IsLocked = true
		workedStart, workedEnd := shift.StartHour, shift.EndHour
		if effective.AllowSplitShifts {
			if s, en, ok := timeutil.BestWindow(windowsByStaff[shift.StaffID], shift.DayOfWeek, shift.StartHour, shift.EndHour); ok {
				workedStart, workedEnd = s, en
			}
		}
		state.Insert(shift, workedEnd-workedStart, workedStart, workedEnd)
	}

	rng := rand.New(rand.NewSource(seed))
	scarcityCounts := scarcity.Analyze(merged)
	ordered := order.Order(merged.Requirements, order.ScarcityFirst, scarcityCounts, rng)

	assigned := assign.RunSeeded(merged, ordered, merged.WeekStartDate, rng, state)
	repair.Run(merged, assigned.State)
	gapfill.Run(merged, merged.WeekStartDate, assigned.State)

	st, hourWarnings := stats.Compute(merged, assigned.State)
	warnings := append(append([]model.ScheduleWarning{}, assigned.Warnings...), hourWarnings...)
	candidateScore := score.Compute(merged, st, warnings)

	result := model.ScheduleResult{
		Schedule: model.Schedule{
			ID:            uuid.New(),
			WeekStartDate: merged.WeekStartDate,
			Shifts:        assigned.State.Shifts,
			GeneratedAt:   merged.WeekStartDate,
		},
		Stats:    st,
		Warnings: warnings,
		Score:    candidateScore,
	}

	e.recordOutcome("regenerate", start, result)
	return result
}

// lockedShifts returns every shift from existing that must survive
// into the regenerated schedule: already isLocked, or named in
// newConstraints.LockedShiftIds.
func lockedShifts(existing model.Schedule, newConstraints model.Constraints) []model.ScheduledShift {
	var locked []model.ScheduledShift
	for _, shift := range existing.Shifts {
		if shift.IsLocked {
			locked = append(locked, shift)
			continue
		}
		if newConstraints.LockedShiftIDs != nil {
			if _, ok := newConstraints.LockedShiftIDs[shift.ID]; ok {
				locked = append(locked, shift)
			}
		}
	}
	return locked
}

// stampID assigns a fresh identity to a candidate's Schedule so the
// history store has something to key on; the variant generator itself
// stays identity-free since most candidates are discarded after scoring.
func stampID(result model.ScheduleResult) model.ScheduleResult {
	result.Schedule.ID = uuid.New()
	return result
}

func lockedIDSet(locked []model.ScheduledShift) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(locked))
	for _, s := range locked {
		set[s.ID] = struct{}{}
	}
	return set
}

func (e *Engine) recordOutcome(operation string, start time.Time, result model.ScheduleResult) {
	duration := time.Since(start)
	metrics.RecordSolve(operation, true, duration)
	metrics.SetSolutionScore(result.Score)
	metrics.SetFairnessGini(result.Stats.FairnessIndex)
	metrics.SetCoverageRate(result.Stats.CoveragePercentage)
	e.log.SolveComplete(duration, result.Stats.CoveragePercentage, result.Score)
}
