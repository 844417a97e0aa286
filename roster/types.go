/*
Package roster holds the employee and holiday records the scheduling engine
consumes.

PURPOSE:
  Pure data model, no behavior beyond validation and derived lookups. The
  schedule package never sees malformed records: everything crossing the
  ingestion boundary goes through Validate() first.

KEY CONCEPTS:
  Weekday:     lowercase tag enum (monday..sunday) used for work-day sets and
               custom schedule keys. Mapped from time.Weekday so Go's
               0=Sunday convention never leaks into stored data.
  ShiftWindow: an HH:MM start/end pair. Windows are compared lexically, which
               is safe because HH:MM is zero-padded 24-hour.
  Weekend pool: the ordered subset of active employees eligible for the
               Saturday/Sunday on-call rotation. Order is stable (ascending
               id), because rotation indices are positions into this pool.

SEE ALSO:
  - validate.go: ingestion validation rules
  - schedule package: consumes these records
*/
package roster

import (
	"sort"
	"time"
)

// =============================================================================
// WEEKDAY TAGS
// =============================================================================

// Weekday is a lowercase weekday tag as stored in employee work-day sets.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays lists every tag in calendar order starting Monday.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf maps a calendar date to its weekday tag.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// IsWeekend reports whether the tag is a rotation day.
func (w Weekday) IsWeekend() bool { return w == Saturday || w == Sunday }

// Valid reports whether the tag is one of the seven known weekdays.
func (w Weekday) Valid() bool {
	for _, d := range AllWeekdays {
		if w == d {
			return true
		}
	}
	return false
}

// =============================================================================
// SHIFT WINDOW
// =============================================================================

// ShiftWindow is an HH:MM start/end pair for a single day's shift.
type ShiftWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee is a roster member. JSON tags follow the legacy wire format so
// older consumers keep working.
type Employee struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	WorkDays []Weekday `json:"workDays"`

	// Default daily shift boundaries, HH:MM 24-hour.
	ShiftStart string `json:"shiftStart"`
	ShiftEnd   string `json:"shiftEnd"`

	// Per-weekday overrides. When present for a day, replaces the default
	// window for that day's regular assignment only.
	CustomSchedule map[Weekday]ShiftWindow `json:"customSchedule,omitempty"`

	// Eligibility for the Saturday/Sunday on-call rotation pool.
	WeekendRotation bool `json:"weekendRotation"`

	// Soft delete: inactive employees are excluded from generation and
	// listings but retained for historical schedule integrity.
	Active bool `json:"active"`
}

// WorksOn reports whether the employee's work-day set includes the given day.
func (e Employee) WorksOn(day Weekday) bool {
	for _, d := range e.WorkDays {
		if d == day {
			return true
		}
	}
	return false
}

// WindowFor resolves the effective shift window for a day: the custom
// schedule override when present, else the default boundaries.
func (e Employee) WindowFor(day Weekday) ShiftWindow {
	if w, ok := e.CustomSchedule[day]; ok {
		return w
	}
	return ShiftWindow{Start: e.ShiftStart, End: e.ShiftEnd}
}

// ActiveEmployees filters a roster down to active members.
func ActiveEmployees(employees []Employee) []Employee {
	var out []Employee
	for _, e := range employees {
		if e.Active {
			out = append(out, e)
		}
	}
	return out
}

// WeekendPool returns the ordered rotation pool: active, weekend-eligible
// employees sorted by ascending id. Rotation indices are positions into this
// slice, so the order must be stable regardless of input order.
func WeekendPool(employees []Employee) []Employee {
	var pool []Employee
	for _, e := range employees {
		if e.Active && e.WeekendRotation {
			pool = append(pool, e)
		}
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	return pool
}

// =============================================================================
// HOLIDAY
// =============================================================================

// HolidayType distinguishes the national calendar from the Recife regional
// one. The generation algorithm treats both identically; the distinction is
// presentation-only.
type HolidayType string

const (
	HolidayNational HolidayType = "national"
	HolidayRecife   HolidayType = "recife"
)

// Holiday is a year-independent recurring holiday keyed by month-day.
type Holiday struct {
	ID int `json:"id"`

	// Date is MM-DD; the holiday recurs annually.
	Date string `json:"date"`

	Name   string      `json:"name"`
	Type   HolidayType `json:"type"`
	Active bool        `json:"active"`
}

// MonthDayOf formats a calendar date as the MM-DD key holidays are matched on.
func MonthDayOf(t time.Time) string { return t.Format("01-02") }

// ActiveHolidays filters the holiday set down to active entries.
func ActiveHolidays(holidays []Holiday) []Holiday {
	var out []Holiday
	for _, h := range holidays {
		if h.Active {
			out = append(out, h)
		}
	}
	return out
}

// FindHoliday returns the first active holiday matching the month-day, by
// ascending id so lookups stay deterministic even if duplicate month-days
// slipped past ingestion. Returns nil if none match.
func FindHoliday(holidays []Holiday, monthDay string) *Holiday {
	var found *Holiday
	for i := range holidays {
		h := holidays[i]
		if !h.Active || h.Date != monthDay {
			continue
		}
		if found == nil || h.ID < found.ID {
			found = &h
		}
	}
	return found
}
