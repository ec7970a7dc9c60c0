package model

import "github.com/google/uuid"

// AssignedWindow is the worked interval recorded against a staff
// member's day for double-booking and hour-accounting purposes.
type AssignedWindow struct {
	DayOfWeek int
	StartHour int
	EndHour   int
}

// State is the per-solve mutable state threaded through the
// assignment core, swap-repair, and gap-fill passes. Inputs (Staff,
// AvailabilityWindow, ShiftRequirement) are read-only during a solve;
// State is the only thing that changes.
type State struct {
	HoursAssigned   map[uuid.UUID]int
	AssignedWindows map[uuid.UUID][]AssignedWindow
	Shifts          []ScheduledShift
}

// NewState returns an empty state ready for a fresh solve.
func NewState() *State {
	return &State{
		HoursAssigned:   make(map[uuid.UUID]int),
		AssignedWindows: make(map[uuid.UUID][]AssignedWindow),
	}
}

// HasDayConflict reports whether staffID already has an assigned
// window on dayOfWeek overlapping [startHour,endHour).
func (st *State) HasDayConflict(staffID uuid.UUID, dayOfWeek, startHour, endHour int) bool {
	for _, w := range st.AssignedWindows[staffID] {
		if w.DayOfWeek == dayOfWeek && intervalsOverlap(w.StartHour, w.EndHour, startHour, endHour) {
			return true
		}
	}
	return false
}

// Insert records a new shift: appends it to Shifts, adds its worked
// hours to HoursAssigned, and records workedStart/workedEnd (the
// bestWindow interval, which may be a strict subinterval of the
// shift's own interval in split mode) against the staff's day.
func (st *State) Insert(shift ScheduledShift, workedHours, workedStart, workedEnd int) {
	st.Shifts = append(st.Shifts, shift)
	st.HoursAssigned[shift.StaffID] += workedHours
	st.AssignedWindows[shift.StaffID] = append(st.AssignedWindows[shift.StaffID], AssignedWindow{
		DayOfWeek: shift.DayOfWeek,
		StartHour: workedStart,
		EndHour:   workedEnd,
	})
}

// Remove deletes the shift at index idx from Shifts, subtracts its
// worked hours from HoursAssigned, and removes the matching assigned
// window for that staff/day/interval.
func (st *State) Remove(idx int, workedHours, workedStart, workedEnd int) {
	shift := st.Shifts[idx]
	st.Shifts = append(st.Shifts[:idx], st.Shifts[idx+1:]...)
	st.HoursAssigned[shift.StaffID] -= workedHours

	windows := st.AssignedWindows[shift.StaffID]
	for i, w := range windows {
		if w.DayOfWeek == shift.DayOfWeek && w.StartHour == workedStart && w.EndHour == workedEnd {
			st.AssignedWindows[shift.StaffID] = append(windows[:i], windows[i+1:]...)
			break
		}
	}
}

// IndexOf returns the index of the shift assigned to
// (requirementID, staffID), or -1 if none exists.
func (st *State) IndexOf(requirementID, staffID uuid.UUID) int {
	for i, s := range st.Shifts {
		if s.RequirementID == requirementID && s.StaffID == staffID {
			return i
		}
	}
	return -1
}

// Clone produces a deep-enough copy for speculative mutation (used by
// the swap-repair pass to project the state after a removal).
func (st *State) Clone() *State {
	clone := NewState()
	for k, v := range st.HoursAssigned {
		clone.HoursAssigned[k] = v
	}
	for k, v := range st.AssignedWindows {
		windows := make([]AssignedWindow, len(v))
		copy(windows, v)
		clone.AssignedWindows[k] = windows
	}
	clone.Shifts = make([]ScheduledShift, len(st.Shifts))
	copy(clone.Shifts, st.Shifts)
	return clone
}
