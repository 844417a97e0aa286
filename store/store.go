// Package store defines the persistence interfaces the engine's collaborators
// implement.
//
// PURPOSE:
//   The engine itself only depends on schedule.RotationStore; everything else
//   here is the boundary plumbing for roster records and stored schedules.
//   Two implementations ship: store/sqlite (production) and store/memory
//   (tests, dev).
//
// CONVENTIONS:
//   - Get* returns (nil, nil) when the record does not exist; callers decide
//     whether that is a 404 or a lazy-generation trigger.
//   - Update*/Delete* return ErrNotFound for missing records.
//   - Deletes are soft for roster records (active=false) so historical
//     schedules keep resolving ids; stored schedules delete outright.
package store

import (
	"context"
	"errors"

	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/schedule"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrNotFound is returned by updates/deletes against missing records.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateMonthDay is returned when an active holiday already
	// occupies the month-day. Uniqueness is an ingestion-time constraint;
	// the resolver must never have to tie-break duplicates.
	ErrDuplicateMonthDay = errors.New("active holiday already exists for month-day")

	// ErrScheduleExists is returned when a schedule is already stored for
	// the period kind and start date.
	ErrScheduleExists = errors.New("schedule already exists for period")
)

// =============================================================================
// INTERFACES
// =============================================================================

// EmployeeStore persists roster members. Listings include inactive records;
// callers filter with roster.ActiveEmployees.
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]roster.Employee, error)
	GetEmployee(ctx context.Context, id int) (*roster.Employee, error)
	CreateEmployee(ctx context.Context, e *roster.Employee) error
	UpdateEmployee(ctx context.Context, e roster.Employee) error
	// DeleteEmployee soft-deletes: the record stays for historical
	// schedule integrity.
	DeleteEmployee(ctx context.Context, id int) error
}

// HolidayStore persists the recurring holiday calendar.
type HolidayStore interface {
	ListHolidays(ctx context.Context) ([]roster.Holiday, error)
	GetHoliday(ctx context.Context, id int) (*roster.Holiday, error)
	CreateHoliday(ctx context.Context, h *roster.Holiday) error
	UpdateHoliday(ctx context.Context, h roster.Holiday) error
	DeleteHoliday(ctx context.Context, id int) error
}

// ScheduleStore persists generated period schedules.
type ScheduleStore interface {
	ListSchedules(ctx context.Context) ([]schedule.PeriodSchedule, error)
	GetSchedule(ctx context.Context, id int) (*schedule.PeriodSchedule, error)
	// GetScheduleByPeriod looks up the stored schedule for a period kind
	// and start date.
	GetScheduleByPeriod(ctx context.Context, kind schedule.PeriodKind, start string) (*schedule.PeriodSchedule, error)
	CreateSchedule(ctx context.Context, s *schedule.PeriodSchedule) error
	UpdateSchedule(ctx context.Context, s schedule.PeriodSchedule) error
	DeleteSchedule(ctx context.Context, id int) error
}

// Store is the full persistence surface the API layer wires up.
type Store interface {
	EmployeeStore
	HolidayStore
	ScheduleStore
	schedule.RotationStore
}
