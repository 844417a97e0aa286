package schedule

import (
	"context"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// ROTATION CURSOR - Persisted weekend-rotation position
// =============================================================================

// RotationState is the singleton cursor recording who last served weekend
// on-call. The next period's starting index is always computed fresh from
// these ids against the current pool, so the cursor survives roster changes.
type RotationState struct {
	LastSaturdayEmployeeID *int `json:"lastSaturdayEmployeeId"`
	LastSundayEmployeeID   *int `json:"lastSundayEmployeeId"`

	// WeekCount counts rotation cycles executed. Diagnostic only; position
	// logic never reads it.
	WeekCount int `json:"weekCount"`
}

// RotationStore persists the rotation cursor. Get has no side effects; Put
// replaces the whole record atomically.
type RotationStore interface {
	Get(ctx context.Context) (RotationState, error)
	Put(ctx context.Context, state RotationState) error
}

// StartIndex computes the pool index due next for a weekend slot. With no
// recorded last server (or one no longer in the pool) rotation starts at the
// head; otherwise it is the position after the last server, wrapping.
func StartIndex(pool []roster.Employee, lastID *int) int {
	if len(pool) == 0 {
		return 0
	}
	if lastID == nil {
		return 0
	}
	for i, e := range pool {
		if e.ID == *lastID {
			return (i + 1) % len(pool)
		}
	}
	return 0
}
