/*
handlers.go - HTTP API handlers for the shift scheduling system

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees              List roster (all records)
    POST   /api/employees              Create roster member
    GET    /api/employees/{id}         Get roster member
    PUT    /api/employees/{id}         Replace roster member
    DELETE /api/employees/{id}         Soft-delete roster member

  Holidays:
    GET    /api/holidays               List recurring holidays
    POST   /api/holidays               Create holiday
    PUT    /api/holidays/{id}          Replace holiday
    DELETE /api/holidays/{id}          Soft-delete holiday

  Schedules:
    GET    /api/schedules                     List stored schedules
    GET    /api/schedules/{id}                Get stored schedule
    GET    /api/schedules/week/{start}        Get stored weekly schedule
    GET    /api/schedules/month/{start}       Get monthly schedule (generates lazily)
    POST   /api/schedules/generate            Generate weekly schedule
    PUT    /api/schedules/{id}/entries/{date} Manual entry edit
    GET    /api/schedules/{id}/workload       Per-employee scheduled hours
    DELETE /api/schedules/{id}                Delete stored schedule

  Rotation:
    GET    /api/rotation-state         Cursor plus current weekend pool

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (validator tags + domain Validate)
  3. Call domain logic (generator, resolver, store)
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (duplicate month-day, period already generated)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - seed.go: Default roster and holiday data
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/schedule"
	"github.com/warp/roster-engine/store"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     store.Store
	Generator *schedule.Generator
}

// NewHandler creates a handler over the given store, with a generator bound
// to the store's rotation cursor.
func NewHandler(st store.Store) *Handler {
	return &Handler{
		Store:     st,
		Generator: schedule.NewGenerator(st),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the active roster. Soft-deleted records stay in the
// store for schedule integrity but are not listed.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	active := roster.ActiveEmployees(employees)
	if active == nil {
		active = []roster.Employee{}
	}
	writeJSON(w, http.StatusOK, active)
}

// GetEmployee returns a single roster member.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

// CreateEmployee creates a new roster member.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err), nil)
		return
	}

	emp := req.toEmployee()
	if err := emp.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}

	if err := h.Store.CreateEmployee(r.Context(), &emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, emp)
}

// UpdateEmployee replaces a roster member.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err), nil)
		return
	}

	current, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	emp := req.toEmployee()
	emp.ID = id
	emp.Active = current.Active
	if req.Active != nil {
		emp.Active = *req.Active
	}
	if err := emp.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}

	if err := h.Store.UpdateEmployee(r.Context(), emp); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

// DeleteEmployee soft-deletes a roster member. The record stays so stored
// schedules keep resolving its id.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the active recurring holiday calendar.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	active := roster.ActiveHolidays(holidays)
	if active == nil {
		active = []roster.Holiday{}
	}
	writeJSON(w, http.StatusOK, active)
}

// CreateHoliday creates a recurring holiday. At most one active holiday per
// month-day; a second maps to 409.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err), nil)
		return
	}

	hol := req.toHoliday()
	if err := hol.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday", err)
		return
	}

	if err := h.Store.CreateHoliday(r.Context(), &hol); err != nil {
		if errors.Is(err, store.ErrDuplicateMonthDay) {
			writeError(w, http.StatusConflict, "Active holiday already exists for this date", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, hol)
}

// UpdateHoliday replaces a holiday record.
func (h *Handler) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req UpdateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err), nil)
		return
	}

	current, err := h.Store.GetHoliday(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get holiday", err)
		return
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "Holiday not found", nil)
		return
	}

	hol := req.toHoliday()
	hol.ID = id
	hol.Active = current.Active
	if req.Active != nil {
		hol.Active = *req.Active
	}
	if err := hol.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday", err)
		return
	}

	if err := h.Store.UpdateHoliday(r.Context(), hol); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Holiday not found", nil)
		case errors.Is(err, store.ErrDuplicateMonthDay):
			writeError(w, http.StatusConflict, "Active holiday already exists for this date", nil)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update holiday", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, hol)
}

// DeleteHoliday soft-deletes a holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Holiday not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// ListSchedules returns all stored period schedules.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Store.ListSchedules(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedules", err)
		return
	}
	if schedules == nil {
		schedules = []schedule.PeriodSchedule{}
	}
	writeJSON(w, http.StatusOK, schedules)
}

// GetSchedule returns one stored schedule by id.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	sched, err := h.Store.GetSchedule(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedule", err)
		return
	}
	if sched == nil {
		writeError(w, http.StatusNotFound, "Schedule not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

// GetWeekSchedule returns the stored weekly schedule starting at {start}.
// Weekly schedules are generated explicitly via POST /api/schedules/generate.
func (h *Handler) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	start := chi.URLParam(r, "start")
	if _, err := schedule.ParseDate(start); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return
	}

	sched, err := h.Store.GetScheduleByPeriod(r.Context(), schedule.PeriodWeekly, start)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedule", err)
		return
	}
	if sched == nil {
		writeError(w, http.StatusNotFound, "No schedule generated for this week", nil)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

// GetMonthSchedule returns the monthly schedule containing {start},
// generating and storing it on first access. The date is normalized to the
// first of its month, so any day within the month addresses the same record.
func (h *Handler) GetMonthSchedule(w http.ResponseWriter, r *http.Request) {
	day, err := schedule.ParseDate(chi.URLParam(r, "start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return
	}
	monthStart := day.AddDate(0, 0, 1-day.Day())
	startKey := schedule.FormatDate(monthStart)

	ctx := r.Context()
	sched, err := h.Store.GetScheduleByPeriod(ctx, schedule.PeriodMonthly, startKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedule", err)
		return
	}
	if sched != nil {
		writeJSON(w, http.StatusOK, sched)
		return
	}

	sched, err = h.generateAndStore(r, schedule.PeriodMonthly, schedule.MonthFrom(monthStart))
	if err != nil {
		// Lost a lazy-generation race: the stored schedule wins.
		if errors.Is(err, store.ErrScheduleExists) {
			if sched, err = h.Store.GetScheduleByPeriod(ctx, schedule.PeriodMonthly, startKey); err == nil && sched != nil {
				writeJSON(w, http.StatusOK, sched)
				return
			}
		}
		writeError(w, http.StatusInternalServerError, "Failed to generate schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

// GenerateWeekSchedule generates and stores a weekly schedule.
func (h *Handler) GenerateWeekSchedule(w http.ResponseWriter, r *http.Request) {
	var req GenerateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err), nil)
		return
	}

	start, err := schedule.ParseDate(req.WeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid weekStart (use YYYY-MM-DD)", err)
		return
	}

	sched, err := h.generateAndStore(r, schedule.PeriodWeekly, schedule.WeekFrom(start))
	if err != nil {
		if errors.Is(err, store.ErrScheduleExists) {
			writeError(w, http.StatusConflict, "Schedule already generated for this week", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to generate schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, sched)
}

// generateAndStore runs the generator over the current roster and persists
// the result. Legacy slot projection happens here, at the boundary.
func (h *Handler) generateAndStore(r *http.Request, kind schedule.PeriodKind, period schedule.Period) (*schedule.PeriodSchedule, error) {
	ctx := r.Context()

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	holidays, err := h.Store.ListHolidays(ctx)
	if err != nil {
		return nil, err
	}

	sched, err := h.Generator.Generate(ctx, schedule.GenerateInput{
		Kind:      kind,
		Period:    period,
		Employees: employees,
		Holidays:  holidays,
	})
	if err != nil {
		return nil, err
	}

	schedule.ApplyLegacySlotsAll(sched)
	if err := h.Store.CreateSchedule(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// UpdateEntry replaces one day's assignments in a stored schedule. The
// single-slot projections and the day status are recomputed; holiday flags
// are left as generated.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	date := chi.URLParam(r, "date")
	if _, err := schedule.ParseDate(date); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry date (use YYYY-MM-DD)", err)
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err), nil)
		return
	}

	ctx := r.Context()
	sched, err := h.Store.GetSchedule(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedule", err)
		return
	}
	if sched == nil {
		writeError(w, http.StatusNotFound, "Schedule not found", nil)
		return
	}

	entry := sched.EntryFor(date)
	if entry == nil {
		writeError(w, http.StatusNotFound, "No entry for this date in the schedule", nil)
		return
	}

	assignments := make([]schedule.Assignment, len(req.Assignments))
	for i, a := range req.Assignments {
		assignments[i] = a.toAssignment()
	}
	entry.Assignments = assignments
	entry.OncallEmployeeID = req.OncallEmployeeID
	schedule.ApplyLegacySlots(entry)

	switch {
	case entry.IsHoliday:
		entry.Status = schedule.StatusHoliday
	case entry.OncallEmployeeID != nil:
		entry.Status = schedule.StatusOncall
	default:
		entry.Status = schedule.StatusNormal
	}

	if err := h.Store.UpdateSchedule(ctx, *sched); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// GetWorkload returns per-employee scheduled hours for a stored schedule.
func (h *Handler) GetWorkload(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	sched, err := h.Store.GetSchedule(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedule", err)
		return
	}
	if sched == nil {
		writeError(w, http.StatusNotFound, "Schedule not found", nil)
		return
	}

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	names := make(map[int]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	workload := schedule.Workload(sched)
	dtos := make([]WorkloadDTO, len(workload))
	for i, wl := range workload {
		regular, _ := wl.RegularHours.Float64()
		oncall, _ := wl.OncallHours.Float64()
		total, _ := wl.TotalHours.Float64()
		dtos[i] = WorkloadDTO{
			EmployeeID:   wl.EmployeeID,
			Name:         names[wl.EmployeeID],
			Days:         wl.Days,
			RegularHours: regular,
			OncallHours:  oncall,
			TotalHours:   total,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// DeleteSchedule removes a stored schedule. The rotation cursor is not
// rewound; regeneration continues the rotation from wherever it left off.
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteSchedule(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Schedule not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete schedule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ROTATION HANDLERS
// =============================================================================

// GetRotationState returns the rotation cursor and the current weekend pool.
func (h *Handler) GetRotationState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := h.Store.Get(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get rotation state", err)
		return
	}

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	pool := roster.WeekendPool(roster.ActiveEmployees(employees))
	members := make([]RotationPoolMemberDTO, len(pool))
	for i, e := range pool {
		members[i] = RotationPoolMemberDTO{ID: e.ID, Name: e.Name}
	}

	writeJSON(w, http.StatusOK, RotationStateDTO{
		LastSaturdayEmployeeID: state.LastSaturdayEmployeeID,
		LastSundayEmployeeID:   state.LastSundayEmployeeID,
		WeekCount:              state.WeekCount,
		WeekendPool:            members,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func urlID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "Invalid id", nil)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
