package model

import (
	"time"

	"github.com/google/uuid"
)

// ShiftRequirement is a slot to be covered. maxStaff is advisory for
// the core and is never checked: the assignment core stops at
// minStaff and the swap-repair pass only fills a requirement up to
// minStaff, but the gap-fill pass keeps adding staff while some hour
// is short of minStaff, so a requirement whose assignees each cover
// only part of its interval can end up above minStaff and maxStaff.
type ShiftRequirement struct {
	ID             uuid.UUID `json:"id"`
	LocationID     string    `json:"location_id,omitempty"`
	DayOfWeek      int       `json:"day_of_week"` // 0..6, 0 = Sunday
	StartHour      int       `json:"start_hour"`
	EndHour        int       `json:"end_hour"`
	Qualifications []string  `json:"qualifications,omitempty"`
	MinStaff       int       `json:"min_staff"`
	MaxStaff       int       `json:"max_staff"`
}

// Duration returns the requirement's length in hours.
func (r ShiftRequirement) Duration() int {
	return r.EndHour - r.StartHour
}

// ScheduledShift is an assignment of one staff member to one
// requirement. The interval recorded is always the requirement's
// interval, not the staff's partial worked window — callers recover
// the worked window from availability via bestWindow at stats time.
type ScheduledShift struct {
	ID            uuid.UUID `json:"id"`
	RequirementID uuid.UUID `json:"requirement_id"`
	StaffID       uuid.UUID `json:"staff_id"`
	Date          time.Time `json:"date"`
	DayOfWeek     int       `json:"day_of_week"`
	StartHour     int       `json:"start_hour"`
	EndHour       int       `json:"end_hour"`
	LocationID    string    `json:"location_id,omitempty"`
	IsLocked      bool      `json:"is_locked"`
}

// Hours returns the recorded interval's length.
func (s ScheduledShift) Hours() int {
	return s.EndHour - s.StartHour
}

// Overlaps reports whether two shifts on the same staff member's
// calendar occupy the same day and share an hour.
func (s ScheduledShift) Overlaps(other ScheduledShift) bool {
	return s.DayOfWeek == other.DayOfWeek && intervalsOverlap(s.StartHour, s.EndHour, other.StartHour, other.EndHour)
}

// Schedule is a complete candidate week of shifts.
type Schedule struct {
	ID            uuid.UUID        `json:"id"`
	WeekStartDate time.Time        `json:"week_start_date"`
	Shifts        []ScheduledShift `json:"shifts"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// DateFor resolves a day-of-week into a concrete date relative to a
// week start (which is itself assumed to be the Sunday of that week).
func DateFor(weekStart time.Time, dayOfWeek int) time.Time {
	return weekStart.AddDate(0, 0, dayOfWeek)
}

// UncoveredGap is a maximal contiguous hour range of a requirement
// where coverage fell short of minStaff.
type UncoveredGap struct {
	RequirementID uuid.UUID `json:"requirement_id"`
	DayOfWeek     int       `json:"day_of_week"`
	StartHour     int       `json:"start_hour"`
	EndHour       int       `json:"end_hour"`
}

// ScheduleStats is deterministic from the final assignment list and
// the problem inputs.
type ScheduleStats struct {
	TotalShifts        int               `json:"total_shifts"`
	FilledShifts       int               `json:"filled_shifts"`
	HoursPerStaff      map[uuid.UUID]int `json:"hours_per_staff"`
	TotalHours         int               `json:"total_hours"`
	RequiredHours      int               `json:"required_hours"`
	CoveredHours       int               `json:"covered_hours"`
	CoveragePercentage float64           `json:"coverage_percentage"`
	UncoveredGaps      []UncoveredGap    `json:"uncovered_gaps"`
	// FairnessIndex is the Gini coefficient of HoursPerStaff: 0 when
	// every staff member carries the same hours, approaching 1 as hours
	// concentrate on fewer people.
	// Informative only; not named by the assignment invariants.
	FairnessIndex float64 `json:"fairness_index"`
}

// ScheduleResult is the return value of every solver entry point.
type ScheduleResult struct {
	Schedule Schedule          `json:"schedule"`
	Stats    ScheduleStats     `json:"stats"`
	Warnings []ScheduleWarning `json:"warnings"`
	Score    float64           `json:"score"`
}
