package roster

import (
	"errors"
	"fmt"
	"regexp"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyName is returned when a record's display name is blank.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrInvalidTime is returned for shift boundaries not in HH:MM 24-hour form.
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")

	// ErrWindowInverted is returned when a shift window ends at or before it starts.
	ErrWindowInverted = errors.New("shift end must be after shift start")

	// ErrInvalidWeekday is returned for unknown weekday tags.
	ErrInvalidWeekday = errors.New("invalid weekday tag")

	// ErrNoWorkDays is returned when an employee has an empty work-day set.
	ErrNoWorkDays = errors.New("at least one work day required")

	// ErrInvalidMonthDay is returned for holiday dates not in MM-DD form.
	ErrInvalidMonthDay = errors.New("invalid date, expected MM-DD")

	// ErrInvalidHolidayType is returned for holiday types outside the known calendars.
	ErrInvalidHolidayType = errors.New("invalid holiday type")
)

var (
	timeRe     = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)
	monthDayRe = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)
)

// ValidTime reports whether s is a zero-padded HH:MM 24-hour time.
func ValidTime(s string) bool { return timeRe.MatchString(s) }

// ValidMonthDay reports whether s is a zero-padded MM-DD month-day.
func ValidMonthDay(s string) bool { return monthDayRe.MatchString(s) }

// validateWindow checks format and ordering of a start/end pair. Lexical
// comparison is correct for zero-padded HH:MM.
func validateWindow(start, end string) error {
	if !ValidTime(start) {
		return fmt.Errorf("%w: %q", ErrInvalidTime, start)
	}
	if !ValidTime(end) {
		return fmt.Errorf("%w: %q", ErrInvalidTime, end)
	}
	if end <= start {
		return fmt.Errorf("%w: %s-%s", ErrWindowInverted, start, end)
	}
	return nil
}

// Validate checks an employee record at the ingestion boundary. The engine
// assumes records that reach it have passed this.
func (e Employee) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("employee: %w", ErrEmptyName)
	}
	if len(e.WorkDays) == 0 {
		return fmt.Errorf("employee %q: %w", e.Name, ErrNoWorkDays)
	}
	for _, d := range e.WorkDays {
		if !d.Valid() {
			return fmt.Errorf("employee %q: %w: %q", e.Name, ErrInvalidWeekday, d)
		}
	}
	if err := validateWindow(e.ShiftStart, e.ShiftEnd); err != nil {
		return fmt.Errorf("employee %q: %w", e.Name, err)
	}
	for day, w := range e.CustomSchedule {
		if !day.Valid() {
			return fmt.Errorf("employee %q custom schedule: %w: %q", e.Name, ErrInvalidWeekday, day)
		}
		if err := validateWindow(w.Start, w.End); err != nil {
			return fmt.Errorf("employee %q custom schedule for %s: %w", e.Name, day, err)
		}
	}
	return nil
}

// Validate checks a holiday record at the ingestion boundary.
func (h Holiday) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("holiday: %w", ErrEmptyName)
	}
	if !ValidMonthDay(h.Date) {
		return fmt.Errorf("holiday %q: %w: %q", h.Name, ErrInvalidMonthDay, h.Date)
	}
	if h.Type != HolidayNational && h.Type != HolidayRecife {
		return fmt.Errorf("holiday %q: %w: %q", h.Name, ErrInvalidHolidayType, h.Type)
	}
	return nil
}
