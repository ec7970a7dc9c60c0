// Package model defines the core data model of the scheduling engine.
package model

import (
	"time"

	"github.com/google/uuid"
)

// WarningKind enumerates the taxonomy a ScheduleResult reports problems
// through. No kind is fatal; a solve always returns a result.
type WarningKind string

const (
	WarningUnfilled              WarningKind = "unfilled"
	WarningOvertime              WarningKind = "overtime"
	WarningUndertime             WarningKind = "undertime"
	WarningPreferenceIgnored     WarningKind = "preference_ignored"
	WarningQualificationMismatch WarningKind = "qualification_mismatch"
)

// BaseModel carries the fields every generated entity needs.
type BaseModel struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBaseModel creates a BaseModel with a fresh id, stamped at t.
func NewBaseModel(t time.Time) BaseModel {
	return BaseModel{ID: uuid.New(), CreatedAt: t}
}

// Location is a pass-through entity: the core never reasons about it
// beyond carrying the opaque id referenced by ShiftRequirement.LocationID.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Qualification is a pass-through entity, referenced by id from Staff
// and ShiftRequirement.
type Qualification struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ScheduleWarning reports a non-fatal condition found while solving.
type ScheduleWarning struct {
	Kind          WarningKind `json:"kind"`
	Message       string      `json:"message"`
	StaffID       *uuid.UUID  `json:"staff_id,omitempty"`
	RequirementID *uuid.UUID  `json:"requirement_id,omitempty"`
}

// UnfilledWarning builds a warning for a requirement that did not reach
// minStaff during assignment.
func UnfilledWarning(requirementID uuid.UUID, msg string) ScheduleWarning {
	id := requirementID
	return ScheduleWarning{Kind: WarningUnfilled, Message: msg, RequirementID: &id}
}

// intervalsOverlap reports whether [aStart,aEnd) and [bStart,bEnd) share
// any hour.
func intervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// overlapHours returns the number of hours [aStart,aEnd) and
// [bStart,bEnd) have in common.
func overlapHours(aStart, aEnd, bStart, bEnd int) int {
	lo := aStart
	if bStart > lo {
		lo = bStart
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
