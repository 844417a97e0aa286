package schedule_test

import (
	"testing"

	"github.com/warp/roster-engine/schedule"
)

func regular(id int, start, end string) schedule.Assignment {
	return schedule.Assignment{EmployeeID: id, StartTime: start, EndTime: end, Type: schedule.AssignmentRegular}
}

func TestLegacySlots(t *testing.T) {
	cases := []struct {
		name          string
		assignments   []schedule.Assignment
		wantMorning   *int
		wantAfternoon *int
	}{
		{
			name:          "classic split",
			assignments:   []schedule.Assignment{regular(1, "08:00", "12:00"), regular(2, "12:00", "18:00")},
			wantMorning:   intPtr(1),
			wantAfternoon: intPtr(2),
		},
		{
			name: "noon start fills both when alone",
			// A 12:00 start is at-or-before noon and at-or-after noon.
			assignments:   []schedule.Assignment{regular(3, "12:00", "18:00")},
			wantMorning:   intPtr(3),
			wantAfternoon: intPtr(3),
		},
		{
			name:          "first match wins",
			assignments:   []schedule.Assignment{regular(1, "08:00", "12:00"), regular(2, "09:00", "13:00")},
			wantMorning:   intPtr(1),
			wantAfternoon: intPtr(2),
		},
		{
			name: "oncall rows ignored",
			assignments: []schedule.Assignment{
				{EmployeeID: 5, StartTime: "08:00", EndTime: "17:00", Type: schedule.AssignmentOncall},
			},
		},
		{
			name: "empty day",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			morning, afternoon := schedule.LegacySlots(tc.assignments)
			if !samePtr(morning, tc.wantMorning) {
				t.Errorf("morning = %v, want %v", deref(morning), deref(tc.wantMorning))
			}
			if !samePtr(afternoon, tc.wantAfternoon) {
				t.Errorf("afternoon = %v, want %v", deref(afternoon), deref(tc.wantAfternoon))
			}
		})
	}
}

func TestApplyLegacySlots_PreservesOncall(t *testing.T) {
	oncall := 6
	entry := schedule.Entry{
		Assignments:      []schedule.Assignment{regular(1, "08:00", "12:00")},
		OncallEmployeeID: &oncall,
	}

	schedule.ApplyLegacySlots(&entry)

	if entry.MorningEmployeeID == nil || *entry.MorningEmployeeID != 1 {
		t.Errorf("morning = %v, want 1", deref(entry.MorningEmployeeID))
	}
	if entry.OncallEmployeeID == nil || *entry.OncallEmployeeID != 6 {
		t.Errorf("oncall = %v, want untouched 6", deref(entry.OncallEmployeeID))
	}
}

func samePtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
