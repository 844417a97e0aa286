/*
Package schedule is the generation engine: given a roster, a holiday calendar
and the persisted weekend-rotation cursor, it deterministically produces the
day-by-day shift assignments for a week or month and advances the cursor.

PURPOSE:
  Three cooperating parts, leaves first:

  Rotation cursor (rotation.go):
    Persisted pointer tracking who last served Saturday/Sunday on-call.
    The engine reads it once per generation and writes it once at the end.

  Assignment resolver (resolver.go):
    Pure function computing one calendar day's entry. No I/O, no clock,
    no randomness: identical inputs always yield an identical entry.

  Period generator (generator.go):
    Drives the resolver across every date of the period, threads the
    rotation index forward over weekend days, and commits the cursor
    after all entries are computed.

KEY CONCEPTS IN THIS FILE (types.go):
  - Period: inclusive date bounds with day iteration
  - Assignment: one employee's window on one day, tagged regular/oncall
  - Entry: the per-date record of who works and in what capacity
  - PeriodSchedule: the stored record for a generated week or month

DESIGN PRINCIPLES:
  1. Determinism: entry ids are ordinals, never clock-derived
  2. Assignments are the sole source of truth; the legacy three-slot
     fields are a projection (legacy.go)
  3. The engine performs no partial commit: entries and cursor update
     succeed together or not at all

SEE ALSO:
  - resolver.go: per-day algorithm
  - generator.go: period iteration and cursor commit
  - legacy.go: backward-compatible slot projection
*/
package schedule

import (
	"errors"
	"time"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a period ends before it starts.
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrPeriodTooLong is returned for periods longer than a calendar month.
	// Generation is a bounded loop; nothing in this system spans more.
	ErrPeriodTooLong = errors.New("period exceeds 31 days")

	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// =============================================================================
// DATES AND PERIODS
// =============================================================================

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(dateLayout) }

// PeriodKind tags a stored schedule as a weekly or monthly span. Both run
// through the same generator; only the bounds differ.
type PeriodKind string

const (
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
)

// Period is an inclusive date range.
type Period struct {
	Start time.Time
	End   time.Time
}

// WeekFrom returns the 7-day period starting at the given date.
func WeekFrom(start time.Time) Period {
	return Period{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthFrom returns the period from the given date through the last day of
// that month.
func MonthFrom(start time.Time) Period {
	end := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, start.Location()).AddDate(0, 0, -1)
	return Period{Start: start, End: end}
}

// Days returns every date in the period in ascending order.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Len returns the number of days in the period.
func (p Period) Len() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Validate checks the period bounds against the generation limits.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	if p.Len() > 31 {
		return ErrPeriodTooLong
	}
	return nil
}

func (p Period) String() string {
	return "[" + FormatDate(p.Start) + ", " + FormatDate(p.End) + "]"
}

// =============================================================================
// ASSIGNMENTS AND ENTRIES
// =============================================================================

// AssignmentType tags an assignment's capacity.
type AssignmentType string

const (
	AssignmentRegular AssignmentType = "regular"
	AssignmentOncall  AssignmentType = "oncall"
	AssignmentHoliday AssignmentType = "holiday"
)

// The on-call slot always uses this fixed window, regardless of the
// employee's own shift hours.
const (
	OncallStart = "08:00"
	OncallEnd   = "17:00"
)

// Assignment is one employee's window on one day.
type Assignment struct {
	EmployeeID int            `json:"employeeId"`
	StartTime  string         `json:"startTime"`
	EndTime    string         `json:"endTime"`
	Type       AssignmentType `json:"type"`
}

// EntryStatus is the derived per-day summary.
type EntryStatus string

const (
	StatusNormal  EntryStatus = "normal"
	StatusHoliday EntryStatus = "holiday"
	StatusOncall  EntryStatus = "oncall"
)

// Entry is the per-date record of a generated schedule. JSON tags follow the
// legacy wire format.
//
// Assignments is the source of truth. MorningEmployeeID and
// AfternoonEmployeeID are a projection for older consumers, filled in at the
// boundary by ApplyLegacySlots, never by the resolver. OncallEmployeeID is
// rotation output: it is set whenever the rotation selected someone for the
// day, even when that person was already regularly scheduled and therefore
// got no extra assignment row.
type Entry struct {
	ID        int            `json:"id"`
	Date      string         `json:"date"`
	DayOfWeek roster.Weekday `json:"dayOfWeek"`

	Assignments []Assignment `json:"assignments"`

	MorningEmployeeID   *int `json:"morningEmployeeId"`
	AfternoonEmployeeID *int `json:"afternoonEmployeeId"`
	OncallEmployeeID    *int `json:"oncallEmployeeId"`

	IsHoliday   bool        `json:"isHoliday"`
	HolidayName *string     `json:"holidayName"`
	Status      EntryStatus `json:"status"`
}

// =============================================================================
// PERIOD SCHEDULE - The stored record
// =============================================================================

// PeriodSchedule is a generated week or month: one entry per date in
// [Start, End], ordered by date.
type PeriodSchedule struct {
	ID      int        `json:"id"`
	Kind    PeriodKind `json:"kind"`
	Start   string     `json:"start"`
	End     string     `json:"end"`
	Entries []Entry    `json:"entries"`

	// Record-creation timestamp. Excluded from determinism guarantees.
	CreatedAt time.Time `json:"createdAt"`
}

// EntryFor returns a pointer to the entry for the given date, or nil.
func (s *PeriodSchedule) EntryFor(date string) *Entry {
	for i := range s.Entries {
		if s.Entries[i].Date == date {
			return &s.Entries[i]
		}
	}
	return nil
}
