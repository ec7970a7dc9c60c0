// Package order produces a visiting order over a problem's
// requirements for a named strategy. All strategies are deterministic
// given the input and an RNG seed.
package order

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
)

// Strategy names a requirement-ordering heuristic.
type Strategy string

const (
	ScarcityFirst Strategy = "scarcity-first"
	MinStaffFirst Strategy = "min-staff-first"
	LongestFirst  Strategy = "longest-first"
	Chronological Strategy = "chronological"
	Random        Strategy = "random"
)

// Strategies lists every named strategy, in the order the variant
// generator plans its runs (one block of runs per strategy).
var Strategies = []Strategy{ScarcityFirst, MinStaffFirst, LongestFirst, Chronological, Random}

// Order returns a new slice holding problem's requirements sorted per
// strategy. scarcityCounts is required for ScarcityFirst; rng is
// required for Random (and used nowhere else, so other strategies are
// safe to call with a nil rng).
func Order(requirements []model.ShiftRequirement, strategy Strategy, scarcityCounts map[uuid.UUID]int, rng *rand.Rand) []model.ShiftRequirement {
	ordered := make([]model.ShiftRequirement, len(requirements))
	copy(ordered, requirements)

	switch strategy {
	case ScarcityFirst:
		sort.SliceStable(ordered, func(i, j int) bool {
			ci, cj := scarcityCounts[ordered[i].ID], scarcityCounts[ordered[j].ID]
			if ci != cj {
				return ci < cj
			}
			if di, dj := ordered[i].Duration(), ordered[j].Duration(); di != dj {
				return di > dj
			}
			return chronologicalLess(ordered[i], ordered[j])
		})
	case MinStaffFirst:
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].MinStaff != ordered[j].MinStaff {
				return ordered[i].MinStaff > ordered[j].MinStaff
			}
			return chronologicalLess(ordered[i], ordered[j])
		})
	case LongestFirst:
		sort.SliceStable(ordered, func(i, j int) bool {
			if di, dj := ordered[i].Duration(), ordered[j].Duration(); di != dj {
				return di > dj
			}
			return chronologicalLess(ordered[i], ordered[j])
		})
	case Chronological:
		sort.SliceStable(ordered, func(i, j int) bool {
			return chronologicalLess(ordered[i], ordered[j])
		})
	case Random:
		fisherYates(ordered, rng)
	default:
		sort.SliceStable(ordered, func(i, j int) bool {
			return chronologicalLess(ordered[i], ordered[j])
		})
	}

	return ordered
}

func chronologicalLess(a, b model.ShiftRequirement) bool {
	if a.DayOfWeek != b.DayOfWeek {
		return a.DayOfWeek < b.DayOfWeek
	}
	return a.StartHour < b.StartHour
}

// fisherYates shuffles in place using rng.
func fisherYates(reqs []model.ShiftRequirement, rng *rand.Rand) {
	for i := len(reqs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		reqs[i], reqs[j] = reqs[j], reqs[i]
	}
}
