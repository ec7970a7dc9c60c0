// Package scarcity counts, for each requirement, how many staff could
// legally cover it independent of any assignment state — the scarcity
// the requirement orderer uses to visit thin requirements first.
package scarcity

import (
	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
	"github.com/weekshift/weekshift/pkg/scheduler/eligibility"
)

// Analyze counts, per requirement, the staff satisfying qualification
// and window eligibility against an empty state — current hours and
// existing assignments are deliberately ignored, since scarcity is a
// structural property of the problem, not of a particular solve.
func Analyze(problem model.Problem) map[uuid.UUID]int {
	windowsByStaff := problem.AvailabilityByStaff()

	counts := make(map[uuid.UUID]int, len(problem.Requirements))
	for _, req := range problem.Requirements {
		count := 0
		for _, s := range problem.Staff {
			if !eligibility.QualificationMatch(s, req) {
				continue
			}
			if !eligibility.WindowEligible(windowsByStaff[s.ID], req, problem.Constraints) {
				continue
			}
			count++
		}
		counts[req.ID] = count
	}
	return counts
}
