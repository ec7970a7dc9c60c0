package model

import "github.com/google/uuid"

// Staff is immutable for the duration of a solve.
type Staff struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Color           string    `json:"color,omitempty"`
	EmploymentType  string    `json:"employment_type,omitempty"`
	MaxHoursPerWeek int       `json:"max_hours_per_week"`
	MinHoursPerWeek int       `json:"min_hours_per_week"`
	Qualifications  []string  `json:"qualifications,omitempty"`
}

// HasQualification reports whether the staff carries the given
// qualification id.
func (s Staff) HasQualification(id string) bool {
	for _, q := range s.Qualifications {
		if q == id {
			return true
		}
	}
	return false
}

// HasQualifications reports whether the staff's qualification set is a
// superset of required.
func (s Staff) HasQualifications(required []string) bool {
	for _, q := range required {
		if !s.HasQualification(q) {
			return false
		}
	}
	return true
}

// AvailabilityWindow declares that a staff member can work some hours
// on a given day of the week. Multiple windows per staff per day are
// allowed; windows are never merged (see pkg/scheduler/timeutil).
type AvailabilityWindow struct {
	StaffID   uuid.UUID `json:"staff_id"`
	DayOfWeek int       `json:"day_of_week"` // 0..6, 0 = Sunday
	StartHour int       `json:"start_hour"`  // inclusive, 0..23
	EndHour   int       `json:"end_hour"`    // exclusive, 1..24
}

// Duration returns the window's length in hours.
func (w AvailabilityWindow) Duration() int {
	return w.EndHour - w.StartHour
}

// WindowsForStaff filters a flat availability list down to one staff
// member's windows.
func WindowsForStaff(all []AvailabilityWindow, staffID uuid.UUID) []AvailabilityWindow {
	var out []AvailabilityWindow
	for _, w := range all {
		if w.StaffID == staffID {
			out = append(out, w)
		}
	}
	return out
}

// TotalWeeklyHours sums the duration of every window, used by the
// assignment core to rank abundant-availability staff ahead of
// narrowly-available ones.
func TotalWeeklyHours(windows []AvailabilityWindow) int {
	total := 0
	for _, w := range windows {
		total += w.Duration()
	}
	return total
}
