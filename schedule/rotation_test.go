package schedule_test

import (
	"testing"

	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/schedule"
)

func poolOf(ids ...int) []roster.Employee {
	pool := make([]roster.Employee, len(ids))
	for i, id := range ids {
		pool[i] = roster.Employee{ID: id, WeekendRotation: true, Active: true}
	}
	return pool
}

func intPtr(n int) *int { return &n }

func TestStartIndex(t *testing.T) {
	pool := poolOf(5, 6, 9)

	cases := []struct {
		name   string
		pool   []roster.Employee
		lastID *int
		want   int
	}{
		{"nil cursor starts at head", pool, nil, 0},
		{"advances past last server", pool, intPtr(5), 1},
		{"wraps at pool end", pool, intPtr(9), 0},
		{"departed member restarts at head", pool, intPtr(7), 0},
		{"empty pool", nil, intPtr(5), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := schedule.StartIndex(tc.pool, tc.lastID); got != tc.want {
				t.Errorf("StartIndex = %d, want %d", got, tc.want)
			}
		})
	}
}
