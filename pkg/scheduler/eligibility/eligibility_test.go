package eligibility

import (
	"testing"

	"github.com/google/uuid"

	"github.com/weekshift/weekshift/pkg/model"
)

func TestIsEligible(t *testing.T) {
	staff := model.Staff{ID: uuid.New(), MaxHoursPerWeek: 40, Qualifications: []string{"cpr"}}
	req := model.ShiftRequirement{
		ID:             uuid.New(),
		DayOfWeek:      1,
		StartHour:      9,
		EndHour:        17,
		Qualifications: []string{"cpr"},
		MinStaff:       1,
		MaxStaff:       1,
	}

	tests := []struct {
		name        string
		windows     []model.AvailabilityWindow
		constraints model.Constraints
		prior       func(st *model.State)
		want        bool
	}{
		{
			name:        "fully available, qualified",
			windows:     []model.AvailabilityWindow{{DayOfWeek: 1, StartHour: 9, EndHour: 17}},
			constraints: model.DefaultConstraints(),
			want:        true,
		},
		{
			name:        "partial availability, full-shift mode rejects",
			windows:     []model.AvailabilityWindow{{DayOfWeek: 1, StartHour: 9, EndHour: 13}},
			constraints: model.DefaultConstraints(),
			want:        false,
		},
		{
			name:    "partial availability, split mode with enough overlap accepts",
			windows: []model.AvailabilityWindow{{DayOfWeek: 1, StartHour: 9, EndHour: 13}},
			constraints: model.Constraints{
				AllowSplitShifts: true,
				MinOverlapHours:  2,
			},
			want: true,
		},
		{
			name:        "existing day conflict rejects",
			windows:     []model.AvailabilityWindow{{DayOfWeek: 1, StartHour: 9, EndHour: 17}},
			constraints: model.DefaultConstraints(),
			prior: func(st *model.State) {
				st.Insert(model.ScheduledShift{StaffID: staff.ID, DayOfWeek: 1, StartHour: 12, EndHour: 14}, 2, 12, 14)
			},
			want: false,
		},
		{
			name:        "max hours gate rejects when the shift would exceed capacity",
			windows:     []model.AvailabilityWindow{{DayOfWeek: 1, StartHour: 9, EndHour: 17}},
			constraints: model.DefaultConstraints(),
			prior: func(st *model.State) {
				st.HoursAssigned[staff.ID] = 36
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := model.NewState()
			if tt.prior != nil {
				tt.prior(state)
			}
			in := Input{Staff: staff, Requirement: req, Windows: tt.windows, State: state, Constraints: tt.constraints}
			if got := IsEligible(in); got != tt.want {
				t.Errorf("IsEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQualificationMatch(t *testing.T) {
	staff := model.Staff{Qualifications: []string{"cpr"}}
	req := model.ShiftRequirement{Qualifications: []string{"cpr", "forklift"}}
	if QualificationMatch(staff, req) {
		t.Error("expected mismatch when staff lacks one required qualification")
	}
}
