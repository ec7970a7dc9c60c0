package timeutil

import (
	"testing"

	"github.com/weekshift/weekshift/pkg/model"
)

func windows(intervals ...[3]int) []model.AvailabilityWindow {
	out := make([]model.AvailabilityWindow, len(intervals))
	for i, iv := range intervals {
		out[i] = model.AvailabilityWindow{DayOfWeek: iv[0], StartHour: iv[1], EndHour: iv[2]}
	}
	return out
}

func TestOverlap_MaxSingleWindow(t *testing.T) {
	tests := []struct {
		name    string
		windows []model.AvailabilityWindow
		day     int
		start   int
		end     int
		want    int
	}{
		{
			name:    "split across lunch break yields smaller chunk, not the union",
			windows: windows([3]int{1, 9, 11}, [3]int{1, 14, 16}),
			day:     1,
			start:   9,
			end:     16,
			want:    2,
		},
		{
			name:    "single window fully inside requirement",
			windows: windows([3]int{1, 10, 12}),
			day:     1,
			start:   9,
			end:     17,
			want:    2,
		},
		{
			name:    "no window on that day",
			windows: windows([3]int{2, 9, 17}),
			day:     1,
			start:   9,
			end:     17,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(tt.windows, tt.day, tt.start, tt.end); got != tt.want {
				t.Errorf("Overlap() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBestWindow(t *testing.T) {
	ws := windows([3]int{1, 9, 13}, [3]int{1, 14, 18})
	start, end, ok := BestWindow(ws, 1, 9, 17)
	if !ok {
		t.Fatal("expected a best window")
	}
	if start != 9 || end != 13 {
		t.Errorf("BestWindow() = [%d,%d), want [9,13)", start, end)
	}
}

func TestFullyContains(t *testing.T) {
	ws := windows([3]int{1, 9, 17})
	if !FullyContains(ws, 1, 9, 17) {
		t.Error("expected full containment")
	}
	if FullyContains(ws, 1, 8, 17) {
		t.Error("expected no containment when requirement starts earlier")
	}
}

func TestHoursWorked(t *testing.T) {
	ws := windows([3]int{1, 9, 13})
	if got := HoursWorked(ws, 1, 9, 17, false); got != 8 {
		t.Errorf("full-shift mode HoursWorked() = %d, want 8", got)
	}
	if got := HoursWorked(ws, 1, 9, 17, true); got != 4 {
		t.Errorf("split mode HoursWorked() = %d, want 4", got)
	}
}
