/*
seed.go - Default roster and holiday data

PURPOSE:
  Seeds an empty database with the default team roster and the recurring
  holiday calendar (Brazilian national holidays plus São João, observed in
  Recife). Idempotent: an already-populated store is left untouched.

SEE ALSO:
  - cmd/server/main.go: invokes seeding on startup when enabled
*/
package api

import (
	"context"
	"fmt"

	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/store"
)

var defaultEmployees = []roster.Employee{
	{
		Name:       "João Miranda",
		WorkDays:   []roster.Weekday{roster.Monday, roster.Tuesday, roster.Wednesday, roster.Thursday, roster.Friday},
		ShiftStart: "08:00",
		ShiftEnd:   "12:00",
		Active:     true,
	},
	{
		Name:       "Ana Silva",
		WorkDays:   []roster.Weekday{roster.Monday, roster.Tuesday, roster.Wednesday, roster.Thursday, roster.Friday},
		ShiftStart: "12:00",
		ShiftEnd:   "18:00",
		Active:     true,
	},
	{
		Name:       "Marcos Costa",
		WorkDays:   []roster.Weekday{roster.Tuesday, roster.Wednesday, roster.Thursday, roster.Friday},
		ShiftStart: "08:00",
		ShiftEnd:   "12:00",
		Active:     true,
	},
	{
		Name:       "Lucas Ferreira",
		WorkDays:   []roster.Weekday{roster.Tuesday, roster.Wednesday, roster.Thursday, roster.Friday},
		ShiftStart: "12:00",
		ShiftEnd:   "18:00",
		Active:     true,
	},
	{
		Name:            "Kellen Silva",
		WorkDays:        []roster.Weekday{roster.Saturday, roster.Sunday},
		ShiftStart:      "08:00",
		ShiftEnd:        "18:00",
		WeekendRotation: true,
		Active:          true,
	},
	{
		Name:            "Maicon Rocha",
		WorkDays:        []roster.Weekday{roster.Saturday, roster.Sunday},
		ShiftStart:      "08:00",
		ShiftEnd:        "18:00",
		WeekendRotation: true,
		Active:          true,
	},
}

var defaultHolidays = []roster.Holiday{
	{Date: "01-01", Name: "Confraternização Universal", Type: roster.HolidayNational, Active: true},
	{Date: "06-24", Name: "São João", Type: roster.HolidayRecife, Active: true},
	{Date: "09-07", Name: "Independência do Brasil", Type: roster.HolidayNational, Active: true},
	{Date: "10-12", Name: "Nossa Senhora Aparecida", Type: roster.HolidayNational, Active: true},
	{Date: "11-02", Name: "Finados", Type: roster.HolidayNational, Active: true},
	{Date: "11-15", Name: "Proclamação da República", Type: roster.HolidayNational, Active: true},
	{Date: "12-25", Name: "Natal", Type: roster.HolidayNational, Active: true},
}

// SeedDefaults populates an empty store with the default roster and holiday
// calendar. No-op when either table already has records.
func SeedDefaults(ctx context.Context, st store.Store) error {
	employees, err := st.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("failed to check roster: %w", err)
	}
	if len(employees) == 0 {
		for _, e := range defaultEmployees {
			e := e
			if err := st.CreateEmployee(ctx, &e); err != nil {
				return fmt.Errorf("failed to seed employee %q: %w", e.Name, err)
			}
		}
	}

	holidays, err := st.ListHolidays(ctx)
	if err != nil {
		return fmt.Errorf("failed to check holidays: %w", err)
	}
	if len(holidays) == 0 {
		for _, h := range defaultHolidays {
			h := h
			if err := st.CreateHoliday(ctx, &h); err != nil {
				return fmt.Errorf("failed to seed holiday %q: %w", h.Name, err)
			}
		}
	}

	return nil
}
