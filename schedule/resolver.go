/*
resolver.go - Per-day assignment resolution

PURPOSE:
  Computes the full assignment list and holiday/status metadata for exactly
  one calendar date. This is a pure function of its input: no I/O, no clock,
  no randomness. The period generator owns rotation index bookkeeping and
  cursor persistence; the resolver only consumes the index it is handed.

ALGORITHM (per day):
  1. Derive the weekday tag and MM-DD month-day from the date.
  2. Holiday = first active holiday matching the month-day.
  3. Every employee whose work-day set includes the weekday gets a regular
     assignment with their effective window (custom override or default).
     ALL working employees are assigned, not merely the first morning/
     afternoon match - the single-slot-per-shift behavior is legacy-only
     and handled as a projection in legacy.go.
  4. On Saturday/Sunday with a non-empty pool, weekendPool[index mod size]
     is on call. The fixed 08:00-17:00 on-call row is appended only when
     that employee is not already in the day's assignments.
  5. Status: holiday beats oncall beats normal.

SEE ALSO:
  - generator.go: drives this across a period
  - rotation.go: where the index comes from
*/
package schedule

import (
	"time"

	"github.com/warp/roster-engine/roster"
)

// DayInput carries everything ResolveDay needs for one date.
type DayInput struct {
	Date time.Time

	// Active roster and active holiday set. Ingestion validation has
	// already run; the resolver does not re-validate.
	Employees []roster.Employee
	Holidays  []roster.Holiday

	// Ordered weekend-rotation pool and the current index for this date's
	// slot. Only consulted on Saturday/Sunday. An empty pool disables
	// on-call for the day.
	WeekendPool   []roster.Employee
	RotationIndex int
}

// ResolveDay computes a single day's schedule entry. The entry id is left
// zero; the generator assigns ordinals.
func ResolveDay(in DayInput) Entry {
	day := roster.WeekdayOf(in.Date)
	monthDay := roster.MonthDayOf(in.Date)

	entry := Entry{
		Date:        FormatDate(in.Date),
		DayOfWeek:   day,
		Assignments: []Assignment{},
		Status:      StatusNormal,
	}

	if h := roster.FindHoliday(in.Holidays, monthDay); h != nil {
		entry.IsHoliday = true
		name := h.Name
		entry.HolidayName = &name
	}

	// Regular assignments: every working employee, effective window.
	working := map[int]bool{}
	for _, e := range in.Employees {
		if !e.Active || !e.WorksOn(day) {
			continue
		}
		w := e.WindowFor(day)
		entry.Assignments = append(entry.Assignments, Assignment{
			EmployeeID: e.ID,
			StartTime:  w.Start,
			EndTime:    w.End,
			Type:       AssignmentRegular,
		})
		working[e.ID] = true
	}

	// Weekend on-call slot.
	if day.IsWeekend() && len(in.WeekendPool) > 0 {
		pick := in.WeekendPool[in.RotationIndex%len(in.WeekendPool)]
		id := pick.ID
		entry.OncallEmployeeID = &id

		// No duplicate row when the on-call employee already works today.
		if !working[pick.ID] {
			entry.Assignments = append(entry.Assignments, Assignment{
				EmployeeID: pick.ID,
				StartTime:  OncallStart,
				EndTime:    OncallEnd,
				Type:       AssignmentOncall,
			})
		}
	}

	switch {
	case entry.IsHoliday:
		entry.Status = StatusHoliday
	case entry.OncallEmployeeID != nil:
		entry.Status = StatusOncall
	}

	return entry
}
