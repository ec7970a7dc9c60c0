// Package score implements the scalar scoring formula the variant
// generator uses to rank candidate schedules.
package score

import (
	"github.com/weekshift/weekshift/pkg/model"
)

// penalty per warning kind. Coverage terms dominate; these are
// secondary. Overtime is a defense-in-depth term: the max-hours
// invariant guarantees it is never actually earned.
func penalty(kind model.WarningKind) float64 {
	switch kind {
	case model.WarningUnfilled:
		return 200
	case model.WarningOvertime:
		return 100
	case model.WarningUndertime:
		return 50
	case model.WarningQualificationMismatch:
		return 300
	case model.WarningPreferenceIgnored:
		return 20
	default:
		return 30
	}
}

// Compute returns the scalar score for one candidate's stats and
// warnings; problem supplies the staff list balanceBonus checks.
func Compute(problem model.Problem, stats model.ScheduleStats, warnings []model.ScheduleWarning) float64 {
	uncoveredHours := stats.RequiredHours - stats.CoveredHours
	if uncoveredHours < 0 {
		uncoveredHours = 0
	}

	fillRatio := 0.0
	if stats.TotalShifts > 0 {
		fillRatio = float64(stats.FilledShifts) / float64(stats.TotalShifts)
	} else {
		fillRatio = float64(stats.FilledShifts)
	}

	score := 1000*float64(stats.CoveredHours) +
		100*stats.CoveragePercentage +
		500*fillRatio +
		balanceBonus(problem, stats) -
		5000*float64(uncoveredHours)

	for _, w := range warnings {
		score -= penalty(w.Kind)
	}

	return score
}

// balanceBonus is 200 iff every staff member is within their own max
// hours (and, if set, the global max) and is either unused or at/above
// their own min hours.
func balanceBonus(problem model.Problem, stats model.ScheduleStats) float64 {
	for _, s := range problem.Staff {
		hours := stats.HoursPerStaff[s.ID]
		if hours > s.MaxHoursPerWeek {
			return 0
		}
		if problem.Constraints.MaxHoursPerStaff != nil && hours > *problem.Constraints.MaxHoursPerStaff {
			return 0
		}
		if hours != 0 && hours < s.MinHoursPerWeek {
			return 0
		}
	}
	return 200
}
