package model

import (
	"time"

	"github.com/google/uuid"
)

// Constraints enumerates the solve-wide options spec.md's external API
// accepts. The zero value is not the set of documented defaults
// (BalanceHours, RespectPreferences, MinOverlapHours, SolveSeconds and
// SolutionPoolSize all differ); DefaultConstraints returns those.
type Constraints struct {
	// MinHoursPerStaff is a global advisory lower bound (warnings only).
	MinHoursPerStaff *int `json:"min_hours_per_staff,omitempty"`
	// MaxHoursPerStaff is a global hard upper bound, additional to each
	// staff member's own MaxHoursPerWeek.
	MaxHoursPerStaff *int `json:"max_hours_per_staff,omitempty"`
	// BalanceHours, when true (the default), prefers fewer assigned
	// hours as the secondary ranking key in the assignment core.
	BalanceHours bool `json:"balance_hours"`
	// RespectPreferences is reserved; this core does not read
	// preferences beyond eligibility.
	RespectPreferences bool `json:"respect_preferences"`
	// LockedShiftIDs names assignments that Regenerate must preserve.
	LockedShiftIDs map[uuid.UUID]struct{} `json:"locked_shift_ids,omitempty"`
	// AllowSplitShifts enables partial-window eligibility.
	AllowSplitShifts bool `json:"allow_split_shifts"`
	// MinOverlapHours is the minimum overlap required in split mode.
	MinOverlapHours int `json:"min_overlap_hours"`
	// SolveSeconds is reserved for the external OR-solver collaborator;
	// ignored by this core.
	SolveSeconds int `json:"solve_seconds"`
	// SolutionPoolSize is the default numTopVariants.
	SolutionPoolSize int `json:"solution_pool_size"`
}

// DefaultConstraints returns the documented defaults.
func DefaultConstraints() Constraints {
	return Constraints{
		BalanceHours:       true,
		RespectPreferences: true,
		MinOverlapHours:    2,
		SolveSeconds:       10,
		SolutionPoolSize:   3,
	}
}

// Problem is the complete, immutable input to a solve.
type Problem struct {
	Staff          []Staff               `json:"staff"`
	Availability   []AvailabilityWindow  `json:"availability"`
	Requirements   []ShiftRequirement    `json:"requirements"`
	Locations      []Location            `json:"locations,omitempty"`
	Qualifications []Qualification       `json:"qualifications,omitempty"`
	WeekStartDate  time.Time             `json:"week_start_date"`
	Constraints    Constraints           `json:"constraints"`
}

// StaffByID indexes the staff list for O(1) lookup.
func (p Problem) StaffByID() map[uuid.UUID]Staff {
	out := make(map[uuid.UUID]Staff, len(p.Staff))
	for _, s := range p.Staff {
		out[s.ID] = s
	}
	return out
}

// AvailabilityByStaff groups the flat availability list by staff id.
func (p Problem) AvailabilityByStaff() map[uuid.UUID][]AvailabilityWindow {
	out := make(map[uuid.UUID][]AvailabilityWindow)
	for _, w := range p.Availability {
		out[w.StaffID] = append(out[w.StaffID], w)
	}
	return out
}
