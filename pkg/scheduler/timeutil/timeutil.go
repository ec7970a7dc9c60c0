// Package timeutil implements hour-interval math on integer hours
// 0–24: the overlap primitives every other scheduler package builds on.
package timeutil

import "github.com/weekshift/weekshift/pkg/model"

// overlapHours returns how many hours [aStart,aEnd) and [bStart,bEnd)
// share.
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

// Overlap returns the maximum overlap, in hours, between
// [shiftStart,shiftEnd) and any single window in windows restricted
// to day. It is deliberately the max over a single window, not the
// union: a staff member with 9–11 and 14–16 windows cannot cover a
// 9–16 requirement with more than a 2-hour chunk, because that is the
// largest single stretch they would actually stand.
func Overlap(windows []model.AvailabilityWindow, day, shiftStart, shiftEnd int) int {
	best := 0
	for _, w := range windows {
		if w.DayOfWeek != day {
			continue
		}
		if o := overlapHours(w.StartHour, w.EndHour, shiftStart, shiftEnd); o > best {
			best = o
		}
	}
	return best
}

// BestWindow returns the actual interval achieving Overlap's maximum,
// used to record what a staff member "really" works for stats and
// display. ok is false if no window on day overlaps at all.
func BestWindow(windows []model.AvailabilityWindow, day, shiftStart, shiftEnd int) (start, end int, ok bool) {
	best := 0
	for _, w := range windows {
		if w.DayOfWeek != day {
			continue
		}
		lo := w.StartHour
		if shiftStart > lo {
			lo = shiftStart
		}
		hi := w.EndHour
		if shiftEnd < hi {
			hi = shiftEnd
		}
		if hi > lo && hi-lo > best {
			best = hi - lo
			start, end, ok = lo, hi, true
		}
	}
	return
}

// FullyContains reports whether some window on day fully contains
// [shiftStart,shiftEnd).
func FullyContains(windows []model.AvailabilityWindow, day, shiftStart, shiftEnd int) bool {
	for _, w := range windows {
		if w.DayOfWeek == day && w.StartHour <= shiftStart && w.EndHour >= shiftEnd {
			return true
		}
	}
	return false
}

// HoursWorked returns the requirement's full duration when
// allowSplit is false; otherwise the best single-window overlap on
// that day.
func HoursWorked(windows []model.AvailabilityWindow, day, shiftStart, shiftEnd int, allowSplit bool) int {
	if !allowSplit {
		return shiftEnd - shiftStart
	}
	return Overlap(windows, day, shiftStart, shiftEnd)
}
