/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO: Response types returned to clients

WIRE FORMAT:
  camelCase keys throughout. Roster and schedule domain types already carry
  the wire tags, so list/detail responses serialize them directly; DTOs
  exist where the wire shape diverges from the domain shape (workload
  hours as JSON numbers, the rotation-state view).

VALIDATION:
  Request types carry validator struct tags, including the custom hhmm and
  monthday rules registered in validate.go. Handlers run validation before
  touching domain types.

SEE ALSO:
  - validate.go: validator setup and custom rules
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/schedule"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ShiftWindowRequest is one custom per-day window.
type ShiftWindowRequest struct {
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

// CreateEmployeeRequest is the request to create a roster member.
type CreateEmployeeRequest struct {
	Name            string                        `json:"name" validate:"required"`
	WorkDays        []string                      `json:"workDays" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	ShiftStart      string                        `json:"shiftStart" validate:"required,hhmm"`
	ShiftEnd        string                        `json:"shiftEnd" validate:"required,hhmm"`
	CustomSchedule  map[string]ShiftWindowRequest `json:"customSchedule" validate:"omitempty,dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys"`
	WeekendRotation bool                          `json:"weekendRotation"`
}

// UpdateEmployeeRequest replaces a roster member. Active is optional and
// defaults to the stored value, so a plain edit never deactivates anyone.
type UpdateEmployeeRequest struct {
	CreateEmployeeRequest
	Active *bool `json:"active"`
}

// CreateHolidayRequest is the request to create a recurring holiday.
type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required,monthday"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=national recife"`
}

// UpdateHolidayRequest replaces a holiday. Active optional, as above.
type UpdateHolidayRequest struct {
	CreateHolidayRequest
	Active *bool `json:"active"`
}

// GenerateScheduleRequest asks for a weekly schedule starting at the given
// date (inclusive, 7 days).
type GenerateScheduleRequest struct {
	WeekStart string `json:"weekStart" validate:"required,datetime=2006-01-02"`
}

// AssignmentRequest is one shift row in a manual entry edit.
type AssignmentRequest struct {
	EmployeeID int    `json:"employeeId" validate:"required,min=1"`
	StartTime  string `json:"startTime" validate:"required,hhmm"`
	EndTime    string `json:"endTime" validate:"required,hhmm"`
	Type       string `json:"type" validate:"required,oneof=regular oncall"`
}

// UpdateEntryRequest replaces one day's assignments. The morning/afternoon
// slot ids and the day status are recomputed server-side; the on-call id may
// be overridden explicitly (null clears it).
type UpdateEntryRequest struct {
	Assignments      []AssignmentRequest `json:"assignments" validate:"required,dive"`
	OncallEmployeeID *int                `json:"oncallEmployeeId" validate:"omitempty,min=1"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WorkloadDTO is one employee's scheduled-hours summary over a period.
// Hours are JSON numbers; internal arithmetic is decimal.
type WorkloadDTO struct {
	EmployeeID   int     `json:"employeeId"`
	Name         string  `json:"name,omitempty"`
	Days         int     `json:"days"`
	RegularHours float64 `json:"regularHours"`
	OncallHours  float64 `json:"oncallHours"`
	TotalHours   float64 `json:"totalHours"`
}

// RotationPoolMemberDTO is one eligible weekend-rotation member.
type RotationPoolMemberDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RotationStateDTO is the rotation cursor plus the current eligible pool.
type RotationStateDTO struct {
	LastSaturdayEmployeeID *int                    `json:"lastSaturdayEmployeeId"`
	LastSundayEmployeeID   *int                    `json:"lastSundayEmployeeId"`
	WeekCount              int                     `json:"weekCount"`
	WeekendPool            []RotationPoolMemberDTO `json:"weekendPool"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func (req CreateEmployeeRequest) toEmployee() roster.Employee {
	e := roster.Employee{
		Name:            req.Name,
		ShiftStart:      req.ShiftStart,
		ShiftEnd:        req.ShiftEnd,
		WeekendRotation: req.WeekendRotation,
		Active:          true,
	}
	for _, d := range req.WorkDays {
		e.WorkDays = append(e.WorkDays, roster.Weekday(d))
	}
	if len(req.CustomSchedule) > 0 {
		e.CustomSchedule = make(map[roster.Weekday]roster.ShiftWindow, len(req.CustomSchedule))
		for d, w := range req.CustomSchedule {
			e.CustomSchedule[roster.Weekday(d)] = roster.ShiftWindow{Start: w.Start, End: w.End}
		}
	}
	return e
}

func (req CreateHolidayRequest) toHoliday() roster.Holiday {
	return roster.Holiday{
		Date:   req.Date,
		Name:   req.Name,
		Type:   roster.HolidayType(req.Type),
		Active: true,
	}
}

func (req AssignmentRequest) toAssignment() schedule.Assignment {
	return schedule.Assignment{
		EmployeeID: req.EmployeeID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Type:       schedule.AssignmentType(req.Type),
	}
}
