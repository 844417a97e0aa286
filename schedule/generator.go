/*
generator.go - Period generation and cursor commit

PURPOSE:
  Produces entries for every date of a requested week or month, threading
  the Saturday and Sunday rotation indices forward independently across the
  period, then commits the rotation cursor exactly once.

CONCURRENCY:
  Two interleaved generations would corrupt the cursor's read-modify-write
  cycle (the same employee picked twice in a row, or skipped). A single
  mutex serializes the whole read -> compute -> write span, so at most one
  generation is in flight at a time. Generation is a bounded loop of at
  most 31 days; there is no cancellation beyond the context handed to the
  cursor store.

ATOMICITY:
  The cursor is persisted only after every entry is computed. A failed
  generation never leaves the cursor partially advanced.

ROTATION EDGE CASE:
  Pools with fewer than two members do not rotate at all - weekend days get
  normal (or holiday) status with no on-call slot. A one-member "rotation"
  is treated as roster misconfiguration rather than silently assigning the
  same person every weekend.

SEE ALSO:
  - resolver.go: per-day computation
  - rotation.go: cursor record and start-index rule
*/
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/warp/roster-engine/roster"
)

// GenerateInput describes one generation request.
type GenerateInput struct {
	Kind   PeriodKind
	Period Period

	// Full roster and holiday set; the generator filters to active records.
	Employees []roster.Employee
	Holidays  []roster.Holiday
}

// Generator builds period schedules and owns the rotation cursor's critical
// section.
type Generator struct {
	mu       sync.Mutex
	rotation RotationStore

	// now stamps CreatedAt on generated schedules. Overridable in tests.
	now func() time.Time
}

// NewGenerator creates a generator backed by the given cursor store.
func NewGenerator(rotation RotationStore) *Generator {
	return &Generator{rotation: rotation, now: time.Now}
}

// Generate computes the full period schedule and advances the rotation
// cursor. The returned schedule is not yet a stored record; persisting it is
// the caller's responsibility.
func (g *Generator) Generate(ctx context.Context, in GenerateInput) (*PeriodSchedule, error) {
	if err := in.Period.Validate(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cursor, err := g.rotation.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rotation cursor: %w", err)
	}

	active := roster.ActiveEmployees(in.Employees)
	holidays := roster.ActiveHolidays(in.Holidays)

	pool := roster.WeekendPool(active)
	if len(pool) < 2 {
		pool = nil
	}

	satIdx := StartIndex(pool, cursor.LastSaturdayEmployeeID)
	sunIdx := StartIndex(pool, cursor.LastSundayEmployeeID)

	var lastSaturdayID, lastSundayID *int

	sched := &PeriodSchedule{
		Kind:      in.Kind,
		Start:     FormatDate(in.Period.Start),
		End:       FormatDate(in.Period.End),
		CreatedAt: g.now(),
	}

	for i, date := range in.Period.Days() {
		dayIn := DayInput{
			Date:        date,
			Employees:   active,
			Holidays:    holidays,
			WeekendPool: pool,
		}

		day := roster.WeekdayOf(date)
		switch day {
		case roster.Saturday:
			dayIn.RotationIndex = satIdx
		case roster.Sunday:
			dayIn.RotationIndex = sunIdx
		}

		entry := ResolveDay(dayIn)
		entry.ID = i + 1
		sched.Entries = append(sched.Entries, entry)

		if len(pool) > 0 && entry.OncallEmployeeID != nil {
			switch day {
			case roster.Saturday:
				lastSaturdayID = entry.OncallEmployeeID
				satIdx = (satIdx + 1) % len(pool)
			case roster.Sunday:
				lastSundayID = entry.OncallEmployeeID
				sunIdx = (sunIdx + 1) % len(pool)
			}
		}
	}

	// Cursor records who last served, never the next unused index. Only
	// touched when rotation actually ran in this period.
	if lastSaturdayID != nil || lastSundayID != nil {
		if lastSaturdayID != nil {
			cursor.LastSaturdayEmployeeID = lastSaturdayID
		}
		if lastSundayID != nil {
			cursor.LastSundayEmployeeID = lastSundayID
		}
		cursor.WeekCount++
		if err := g.rotation.Put(ctx, cursor); err != nil {
			return nil, fmt.Errorf("persist rotation cursor: %w", err)
		}
	}

	return sched, nil
}
