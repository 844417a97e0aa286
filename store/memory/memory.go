// Package memory provides an in-memory store.Store (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/schedule"
	"github.com/warp/roster-engine/store"
)

// Store implements store.Store with maps. Safe for concurrent use. Records
// are copied on the way in and out so callers cannot alias internal state.
type Store struct {
	mu sync.RWMutex

	employees map[int]roster.Employee
	holidays  map[int]roster.Holiday
	schedules map[int]schedule.PeriodSchedule
	rotation  schedule.RotationState

	nextEmployeeID int
	nextHolidayID  int
	nextScheduleID int
}

func New() *Store {
	return &Store{
		employees:      make(map[int]roster.Employee),
		holidays:       make(map[int]roster.Holiday),
		schedules:      make(map[int]schedule.PeriodSchedule),
		nextEmployeeID: 1,
		nextHolidayID:  1,
		nextScheduleID: 1,
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (m *Store) ListEmployees(_ context.Context) ([]roster.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]roster.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, copyEmployee(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Store) GetEmployee(_ context.Context, id int) (*roster.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	e = copyEmployee(e)
	return &e, nil
}

func (m *Store) CreateEmployee(_ context.Context, e *roster.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = m.nextEmployeeID
	m.nextEmployeeID++
	m.employees[e.ID] = copyEmployee(*e)
	return nil
}

func (m *Store) UpdateEmployee(_ context.Context, e roster.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.employees[e.ID]; !ok {
		return store.ErrNotFound
	}
	m.employees[e.ID] = copyEmployee(e)
	return nil
}

func (m *Store) DeleteEmployee(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.employees[id]
	if !ok {
		return store.ErrNotFound
	}
	e.Active = false
	m.employees[id] = e
	return nil
}

func copyEmployee(e roster.Employee) roster.Employee {
	out := e
	out.WorkDays = append([]roster.Weekday(nil), e.WorkDays...)
	if e.CustomSchedule != nil {
		out.CustomSchedule = make(map[roster.Weekday]roster.ShiftWindow, len(e.CustomSchedule))
		for k, v := range e.CustomSchedule {
			out.CustomSchedule[k] = v
		}
	}
	return out
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (m *Store) ListHolidays(_ context.Context) ([]roster.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]roster.Holiday, 0, len(m.holidays))
	for _, h := range m.holidays {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Store) GetHoliday(_ context.Context, id int) (*roster.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.holidays[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (m *Store) CreateHoliday(_ context.Context, h *roster.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h.Active && m.activeMonthDayTakenLocked(h.Date, 0) {
		return store.ErrDuplicateMonthDay
	}

	h.ID = m.nextHolidayID
	m.nextHolidayID++
	m.holidays[h.ID] = *h
	return nil
}

func (m *Store) UpdateHoliday(_ context.Context, h roster.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.holidays[h.ID]; !ok {
		return store.ErrNotFound
	}
	if h.Active && m.activeMonthDayTakenLocked(h.Date, h.ID) {
		return store.ErrDuplicateMonthDay
	}
	m.holidays[h.ID] = h
	return nil
}

func (m *Store) DeleteHoliday(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.holidays[id]
	if !ok {
		return store.ErrNotFound
	}
	h.Active = false
	m.holidays[id] = h
	return nil
}

func (m *Store) activeMonthDayTakenLocked(monthDay string, exceptID int) bool {
	for _, other := range m.holidays {
		if other.Active && other.Date == monthDay && other.ID != exceptID {
			return true
		}
	}
	return false
}

// =============================================================================
// SCHEDULES
// =============================================================================

func (m *Store) ListSchedules(_ context.Context) ([]schedule.PeriodSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]schedule.PeriodSchedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		out = append(out, copySchedule(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start > out[j].Start
		}
		return out[i].Kind < out[j].Kind
	})
	return out, nil
}

func (m *Store) GetSchedule(_ context.Context, id int) (*schedule.PeriodSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.schedules[id]
	if !ok {
		return nil, nil
	}
	s = copySchedule(s)
	return &s, nil
}

func (m *Store) GetScheduleByPeriod(_ context.Context, kind schedule.PeriodKind, start string) (*schedule.PeriodSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.schedules {
		if s.Kind == kind && s.Start == start {
			s = copySchedule(s)
			return &s, nil
		}
	}
	return nil, nil
}

func (m *Store) CreateSchedule(_ context.Context, s *schedule.PeriodSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.schedules {
		if other.Kind == s.Kind && other.Start == s.Start {
			return store.ErrScheduleExists
		}
	}

	s.ID = m.nextScheduleID
	m.nextScheduleID++
	m.schedules[s.ID] = copySchedule(*s)
	return nil
}

func (m *Store) UpdateSchedule(_ context.Context, s schedule.PeriodSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.schedules[s.ID]; !ok {
		return store.ErrNotFound
	}
	for _, other := range m.schedules {
		if other.ID != s.ID && other.Kind == s.Kind && other.Start == s.Start {
			return store.ErrScheduleExists
		}
	}
	m.schedules[s.ID] = copySchedule(s)
	return nil
}

func (m *Store) DeleteSchedule(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.schedules[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.schedules, id)
	return nil
}

func copySchedule(s schedule.PeriodSchedule) schedule.PeriodSchedule {
	out := s
	out.Entries = make([]schedule.Entry, len(s.Entries))
	for i, e := range s.Entries {
		ce := e
		ce.Assignments = append([]schedule.Assignment(nil), e.Assignments...)
		out.Entries[i] = ce
	}
	return out
}

// =============================================================================
// ROTATION CURSOR
// =============================================================================

func (m *Store) Get(_ context.Context) (schedule.RotationState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rotation, nil
}

func (m *Store) Put(_ context.Context, state schedule.RotationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotation = state
	return nil
}
