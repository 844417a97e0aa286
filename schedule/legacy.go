package schedule

// =============================================================================
// LEGACY SLOT PROJECTION
// =============================================================================
// Older consumers modeled each day as at most one morning, one afternoon and
// one on-call employee. The assignments list is the source of truth; these
// fields are a pure projection applied at the boundary after generation and
// after manual entry edits. The resolver never calls this.

// LegacySlots derives the morning/afternoon single-slot ids from a day's
// regular assignments: the first whose start is at or before noon, and the
// first whose start is at or after noon. Lexical comparison is safe for
// zero-padded HH:MM.
func LegacySlots(assignments []Assignment) (morning, afternoon *int) {
	for i := range assignments {
		a := assignments[i]
		if a.Type != AssignmentRegular {
			continue
		}
		if morning == nil && a.StartTime <= "12:00" {
			id := a.EmployeeID
			morning = &id
		}
		if afternoon == nil && a.StartTime >= "12:00" {
			id := a.EmployeeID
			afternoon = &id
		}
	}
	return morning, afternoon
}

// ApplyLegacySlots fills the entry's projection fields in place. The on-call
// id is rotation output already carried by the entry and is left untouched.
func ApplyLegacySlots(e *Entry) {
	e.MorningEmployeeID, e.AfternoonEmployeeID = LegacySlots(e.Assignments)
}

// ApplyLegacySlotsAll projects every entry of a schedule.
func ApplyLegacySlotsAll(s *PeriodSchedule) {
	for i := range s.Entries {
		ApplyLegacySlots(&s.Entries[i])
	}
}
