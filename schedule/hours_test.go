package schedule_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/roster-engine/schedule"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWindowHours(t *testing.T) {
	assert.True(t, schedule.WindowHours("08:00", "12:00").Equal(dec("4")))
	assert.True(t, schedule.WindowHours("09:00", "13:30").Equal(dec("4.5")))
	assert.True(t, schedule.WindowHours("08:00", "17:00").Equal(dec("9")))

	// Malformed or inverted windows contribute nothing.
	assert.True(t, schedule.WindowHours("12:00", "08:00").IsZero())
	assert.True(t, schedule.WindowHours("8:00", "12:00").IsZero())
	assert.True(t, schedule.WindowHours("08:00", "08:00").IsZero())
}

func TestWorkload(t *testing.T) {
	oncall := 6
	sched := &schedule.PeriodSchedule{
		Entries: []schedule.Entry{
			{
				Date: "2025-06-02",
				Assignments: []schedule.Assignment{
					{EmployeeID: 1, StartTime: "08:00", EndTime: "12:00", Type: schedule.AssignmentRegular},
					{EmployeeID: 2, StartTime: "12:00", EndTime: "18:00", Type: schedule.AssignmentRegular},
				},
			},
			{
				Date: "2025-06-03",
				Assignments: []schedule.Assignment{
					{EmployeeID: 1, StartTime: "09:00", EndTime: "13:30", Type: schedule.AssignmentRegular},
				},
			},
			{
				Date:             "2025-06-07",
				OncallEmployeeID: &oncall,
				Assignments: []schedule.Assignment{
					{EmployeeID: 6, StartTime: "08:00", EndTime: "17:00", Type: schedule.AssignmentOncall},
				},
			},
		},
	}

	workload := schedule.Workload(sched)
	require.Len(t, workload, 3)

	// Sorted by ascending employee id.
	assert.Equal(t, 1, workload[0].EmployeeID)
	assert.Equal(t, 2, workload[1].EmployeeID)
	assert.Equal(t, 6, workload[2].EmployeeID)

	// Employee 1: 4h + 4.5h over two days, all regular.
	assert.Equal(t, 2, workload[0].Days)
	assert.True(t, workload[0].RegularHours.Equal(dec("8.5")), "got %s", workload[0].RegularHours)
	assert.True(t, workload[0].OncallHours.IsZero())
	assert.True(t, workload[0].TotalHours.Equal(dec("8.5")))

	// Employee 6: one 9h on-call day.
	assert.Equal(t, 1, workload[2].Days)
	assert.True(t, workload[2].OncallHours.Equal(dec("9")))
	assert.True(t, workload[2].RegularHours.IsZero())
}

func TestWorkload_EmptySchedule(t *testing.T) {
	workload := schedule.Workload(&schedule.PeriodSchedule{})
	assert.Empty(t, workload)
}
