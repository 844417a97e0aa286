/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements store.Store (roster, holidays, schedules, rotation cursor)
  using SQLite. In production the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

KEY TABLES:
  employees:      roster records; work days and custom windows as JSON
  holidays:       recurring month-day calendar
  schedules:      one row per generated period; entries as JSON
  rotation_state: the singleton cursor (always exactly one row, id=1)

UNIQUENESS:
  - At most one ACTIVE holiday per month-day (partial unique index); the
    resolver never tie-breaks duplicates.
  - At most one stored schedule per (kind, period_start).

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of WAL mode. The generation
  critical section itself lives in schedule.Generator; this mutex only
  protects individual statements.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/roster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - store/store.go: interface definitions
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/schedule"
	"github.com/warp/roster-engine/store"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) a SQLite store at the given path. Use ":memory:"
// for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		work_days_json TEXT NOT NULL,
		shift_start TEXT NOT NULL,
		shift_end TEXT NOT NULL,
		custom_schedule_json TEXT,
		weekend_rotation BOOLEAN NOT NULL DEFAULT FALSE,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE TABLE IF NOT EXISTS holidays (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		month_day TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);

	-- Ingestion-time uniqueness: one active holiday per month-day.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_active_month_day
		ON holidays(month_day) WHERE active = 1;

	CREATE TABLE IF NOT EXISTS schedules (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		entries_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(kind, period_start)
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_kind_start
		ON schedules(kind, period_start);

	-- Singleton rotation cursor.
	CREATE TABLE IF NOT EXISTS rotation_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		last_saturday_employee_id INTEGER,
		last_sunday_employee_id INTEGER,
		week_count INTEGER NOT NULL DEFAULT 0
	);

	INSERT OR IGNORE INTO rotation_state (id) VALUES (1);
	`

	_, err := s.db.Exec(schema)
	return err
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

// ListEmployees returns every roster record, active or not, ordered by id.
func (s *Store) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, work_days_json, shift_start, shift_end,
		       custom_schedule_json, weekend_rotation, active
		FROM employees ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []roster.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetEmployee returns a roster record by id, or nil if absent.
func (s *Store) GetEmployee(ctx context.Context, id int) (*roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, work_days_json, shift_start, shift_end,
		       custom_schedule_json, weekend_rotation, active
		FROM employees WHERE id = ?`, id)

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEmployee inserts a new roster record and fills in its assigned id.
func (s *Store) CreateEmployee(ctx context.Context, e *roster.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	workDays, customSchedule, err := marshalEmployee(*e)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO employees
			(name, work_days_json, shift_start, shift_end, custom_schedule_json, weekend_rotation, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Name, workDays, e.ShiftStart, e.ShiftEnd, customSchedule, e.WeekendRotation, e.Active)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = int(id)
	return nil
}

// UpdateEmployee replaces a roster record.
func (s *Store) UpdateEmployee(ctx context.Context, e roster.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	workDays, customSchedule, err := marshalEmployee(e)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE employees SET
			name = ?, work_days_json = ?, shift_start = ?, shift_end = ?,
			custom_schedule_json = ?, weekend_rotation = ?, active = ?
		WHERE id = ?`,
		e.Name, workDays, e.ShiftStart, e.ShiftEnd, customSchedule, e.WeekendRotation, e.Active, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return requireRow(res)
}

// DeleteEmployee soft-deletes a roster record.
func (s *Store) DeleteEmployee(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE employees SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func marshalEmployee(e roster.Employee) (workDays string, customSchedule sql.NullString, err error) {
	wd, err := json.Marshal(e.WorkDays)
	if err != nil {
		return "", sql.NullString{}, err
	}
	if len(e.CustomSchedule) > 0 {
		cs, err := json.Marshal(e.CustomSchedule)
		if err != nil {
			return "", sql.NullString{}, err
		}
		customSchedule = sql.NullString{String: string(cs), Valid: true}
	}
	return string(wd), customSchedule, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (roster.Employee, error) {
	var (
		e              roster.Employee
		workDays       string
		customSchedule sql.NullString
	)

	err := row.Scan(&e.ID, &e.Name, &workDays, &e.ShiftStart, &e.ShiftEnd,
		&customSchedule, &e.WeekendRotation, &e.Active)
	if err != nil {
		return e, err
	}

	if err := json.Unmarshal([]byte(workDays), &e.WorkDays); err != nil {
		return e, fmt.Errorf("failed to decode work days: %w", err)
	}
	if customSchedule.Valid && customSchedule.String != "" {
		if err := json.Unmarshal([]byte(customSchedule.String), &e.CustomSchedule); err != nil {
			return e, fmt.Errorf("failed to decode custom schedule: %w", err)
		}
	}
	return e, nil
}

// =============================================================================
// HOLIDAY STORE
// =============================================================================

// ListHolidays returns every holiday, active or not, ordered by month-day.
func (s *Store) ListHolidays(ctx context.Context) ([]roster.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, month_day, name, type, active FROM holidays ORDER BY month_day ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []roster.Holiday
	for rows.Next() {
		var h roster.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Type, &h.Active); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// GetHoliday returns a holiday by id, or nil if absent.
func (s *Store) GetHoliday(ctx context.Context, id int) (*roster.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var h roster.Holiday
	err := s.db.QueryRowContext(ctx,
		`SELECT id, month_day, name, type, active FROM holidays WHERE id = ?`, id).
		Scan(&h.ID, &h.Date, &h.Name, &h.Type, &h.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateHoliday inserts a holiday and fills in its assigned id. A second
// active holiday on the same month-day maps to store.ErrDuplicateMonthDay.
func (s *Store) CreateHoliday(ctx context.Context, h *roster.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO holidays (month_day, name, type, active) VALUES (?, ?, ?, ?)`,
		h.Date, h.Name, h.Type, h.Active)
	if err != nil {
		if isUniqueConstraintError(err) {
			return store.ErrDuplicateMonthDay
		}
		return fmt.Errorf("failed to create holiday: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = int(id)
	return nil
}

// UpdateHoliday replaces a holiday record.
func (s *Store) UpdateHoliday(ctx context.Context, h roster.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE holidays SET month_day = ?, name = ?, type = ?, active = ? WHERE id = ?`,
		h.Date, h.Name, h.Type, h.Active, h.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return store.ErrDuplicateMonthDay
		}
		return fmt.Errorf("failed to update holiday: %w", err)
	}
	return requireRow(res)
}

// DeleteHoliday soft-deletes a holiday.
func (s *Store) DeleteHoliday(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE holidays SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// =============================================================================
// SCHEDULE STORE
// =============================================================================

// ListSchedules returns all stored period schedules, newest period first.
func (s *Store) ListSchedules(ctx context.Context) ([]schedule.PeriodSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, period_start, period_end, entries_json, created_at
		FROM schedules ORDER BY period_start DESC, kind ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []schedule.PeriodSchedule
	for rows.Next() {
		ps, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, ps)
	}
	return schedules, rows.Err()
}

// GetSchedule returns a stored schedule by id, or nil if absent.
func (s *Store) GetSchedule(ctx context.Context, id int) (*schedule.PeriodSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, period_start, period_end, entries_json, created_at
		FROM schedules WHERE id = ?`, id)

	ps, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

// GetScheduleByPeriod returns the stored schedule for a kind and start date,
// or nil if none has been generated yet.
func (s *Store) GetScheduleByPeriod(ctx context.Context, kind schedule.PeriodKind, start string) (*schedule.PeriodSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, period_start, period_end, entries_json, created_at
		FROM schedules WHERE kind = ? AND period_start = ?`, string(kind), start)

	ps, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

// CreateSchedule stores a generated schedule and fills in its assigned id.
func (s *Store) CreateSchedule(ctx context.Context, ps *schedule.PeriodSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := json.Marshal(ps.Entries)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO schedules (kind, period_start, period_end, entries_json, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(ps.Kind), ps.Start, ps.End, string(entries), ps.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if isUniqueConstraintError(err) {
			return store.ErrScheduleExists
		}
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ps.ID = int(id)
	return nil
}

// UpdateSchedule replaces a stored schedule's entries and bounds.
func (s *Store) UpdateSchedule(ctx context.Context, ps schedule.PeriodSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := json.Marshal(ps.Entries)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE schedules SET kind = ?, period_start = ?, period_end = ?, entries_json = ?
		WHERE id = ?`,
		string(ps.Kind), ps.Start, ps.End, string(entries), ps.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return store.ErrScheduleExists
		}
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	return requireRow(res)
}

// DeleteSchedule removes a stored schedule.
func (s *Store) DeleteSchedule(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanSchedule(row rowScanner) (schedule.PeriodSchedule, error) {
	var (
		ps        schedule.PeriodSchedule
		entries   string
		createdAt string
	)

	err := row.Scan(&ps.ID, &ps.Kind, &ps.Start, &ps.End, &entries, &createdAt)
	if err != nil {
		return ps, err
	}

	if err := json.Unmarshal([]byte(entries), &ps.Entries); err != nil {
		return ps, fmt.Errorf("failed to decode schedule entries: %w", err)
	}
	ps.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return ps, nil
}

// =============================================================================
// ROTATION CURSOR (schedule.RotationStore)
// =============================================================================

// Get reads the singleton rotation cursor.
func (s *Store) Get(ctx context.Context) (schedule.RotationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		state    schedule.RotationState
		saturday sql.NullInt64
		sunday   sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT last_saturday_employee_id, last_sunday_employee_id, week_count
		FROM rotation_state WHERE id = 1`).
		Scan(&saturday, &sunday, &state.WeekCount)
	if err != nil {
		return state, fmt.Errorf("failed to read rotation state: %w", err)
	}

	if saturday.Valid {
		id := int(saturday.Int64)
		state.LastSaturdayEmployeeID = &id
	}
	if sunday.Valid {
		id := int(sunday.Int64)
		state.LastSundayEmployeeID = &id
	}
	return state, nil
}

// Put replaces the singleton rotation cursor.
func (s *Store) Put(ctx context.Context, state schedule.RotationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var saturday, sunday any
	if state.LastSaturdayEmployeeID != nil {
		saturday = *state.LastSaturdayEmployeeID
	}
	if state.LastSundayEmployeeID != nil {
		sunday = *state.LastSundayEmployeeID
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE rotation_state
		SET last_saturday_employee_id = ?, last_sunday_employee_id = ?, week_count = ?
		WHERE id = 1`,
		saturday, sunday, state.WeekCount)
	if err != nil {
		return fmt.Errorf("failed to write rotation state: %w", err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
