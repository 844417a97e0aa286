/*
hours.go - Scheduled-hours workload summary

PURPOSE:
  Aggregates a stored period's entries into per-employee scheduled hours,
  split regular vs on-call. Windows like 09:00-13:30 yield fractional hours,
  so arithmetic uses decimal.Decimal to avoid floating-point drift across a
  month of entries.
*/
package schedule

import (
	"sort"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// WorkloadEntry is one employee's aggregate over a period.
type WorkloadEntry struct {
	EmployeeID   int
	Days         int
	RegularHours decimal.Decimal
	OncallHours  decimal.Decimal
	TotalHours   decimal.Decimal
}

// WindowHours returns the duration of an HH:MM window in hours. Malformed
// or inverted windows (which validation keeps out of stored schedules)
// contribute zero.
func WindowHours(start, end string) decimal.Decimal {
	s, okS := minutes(start)
	e, okE := minutes(end)
	if !okS || !okE || e <= s {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(e - s)).Div(sixty)
}

func minutes(hhmm string) (int, bool) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, false
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// Workload sums scheduled hours per employee across the whole period,
// ordered by ascending employee id.
func Workload(s *PeriodSchedule) []WorkloadEntry {
	byID := map[int]*WorkloadEntry{}
	daysSeen := map[int]map[string]bool{}

	for _, entry := range s.Entries {
		for _, a := range entry.Assignments {
			w := byID[a.EmployeeID]
			if w == nil {
				w = &WorkloadEntry{EmployeeID: a.EmployeeID}
				byID[a.EmployeeID] = w
				daysSeen[a.EmployeeID] = map[string]bool{}
			}

			hours := WindowHours(a.StartTime, a.EndTime)
			if a.Type == AssignmentOncall {
				w.OncallHours = w.OncallHours.Add(hours)
			} else {
				w.RegularHours = w.RegularHours.Add(hours)
			}
			w.TotalHours = w.TotalHours.Add(hours)

			if !daysSeen[a.EmployeeID][entry.Date] {
				daysSeen[a.EmployeeID][entry.Date] = true
				w.Days++
			}
		}
	}

	out := make([]WorkloadEntry, 0, len(byID))
	for _, w := range byID {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}
