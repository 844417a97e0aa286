/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Roster CRUD and validation errors
- Holiday uniqueness conflict mapping
- Weekly generation, monthly lazy generation, entry edits
- Rotation state and workload views
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/schedule"
	"github.com/warp/roster-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()
	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	srv := httptest.NewServer(NewRouter(NewHandler(st)))
	t.Cleanup(srv.Close)
	return srv, st
}

func seededServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()
	srv, st := newTestServer(t)
	if err := SeedDefaults(context.Background(), st); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
	return srv, st
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return out
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

// =============================================================================
// EMPLOYEE ENDPOINT TESTS
// =============================================================================

func TestCreateEmployee_Success(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", CreateEmployeeRequest{
		Name:       "João Miranda",
		WorkDays:   []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		ShiftStart: "08:00",
		ShiftEnd:   "12:00",
	})
	wantStatus(t, resp, http.StatusCreated)

	emp := decode[roster.Employee](t, resp)
	if emp.ID != 1 || emp.Name != "João Miranda" || !emp.Active {
		t.Errorf("created employee = %+v", emp)
	}
}

func TestCreateEmployee_ValidationErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		req  CreateEmployeeRequest
	}{
		{"missing name", CreateEmployeeRequest{WorkDays: []string{"monday"}, ShiftStart: "08:00", ShiftEnd: "12:00"}},
		{"no work days", CreateEmployeeRequest{Name: "X", ShiftStart: "08:00", ShiftEnd: "12:00"}},
		{"bad weekday", CreateEmployeeRequest{Name: "X", WorkDays: []string{"funday"}, ShiftStart: "08:00", ShiftEnd: "12:00"}},
		{"unpadded time", CreateEmployeeRequest{Name: "X", WorkDays: []string{"monday"}, ShiftStart: "8:00", ShiftEnd: "12:00"}},
		{"inverted window", CreateEmployeeRequest{Name: "X", WorkDays: []string{"monday"}, ShiftStart: "14:00", ShiftEnd: "09:00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", tc.req)
			wantStatus(t, resp, http.StatusBadRequest)
			resp.Body.Close()
		})
	}
}

func TestUpdateEmployee_PreservesActiveByDefault(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()

	emp := roster.Employee{
		Name: "Marcos Costa", Active: true,
		WorkDays:   []roster.Weekday{roster.Tuesday},
		ShiftStart: "08:00", ShiftEnd: "12:00",
	}
	if err := st.CreateEmployee(ctx, &emp); err != nil {
		t.Fatal(err)
	}

	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/employees/%d", srv.URL, emp.ID), UpdateEmployeeRequest{
		CreateEmployeeRequest: CreateEmployeeRequest{
			Name:       "Marcos Costa",
			WorkDays:   []string{"tuesday", "wednesday"},
			ShiftStart: "08:00",
			ShiftEnd:   "13:00",
		},
	})
	wantStatus(t, resp, http.StatusOK)

	updated := decode[roster.Employee](t, resp)
	if !updated.Active {
		t.Error("plain edit deactivated the employee")
	}
	if updated.ShiftEnd != "13:00" || len(updated.WorkDays) != 2 {
		t.Errorf("updated = %+v", updated)
	}
}

func TestDeleteEmployee_SoftDelete(t *testing.T) {
	srv, st := seededServer(t)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/employees/1", nil)
	wantStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	emp, err := st.GetEmployee(context.Background(), 1)
	if err != nil || emp == nil {
		t.Fatalf("record should survive soft delete: %v %v", emp, err)
	}
	if emp.Active {
		t.Error("employee still active after delete")
	}

	// Listings exclude the soft-deleted record.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees", nil)
	wantStatus(t, resp, http.StatusOK)
	list := decode[[]roster.Employee](t, resp)
	if len(list) != 5 {
		t.Errorf("active list = %d employees, want 5", len(list))
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/employees/999", nil)
	wantStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

// =============================================================================
// HOLIDAY ENDPOINT TESTS
// =============================================================================

func TestCreateHoliday_DuplicateMonthDayConflict(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/holidays", CreateHolidayRequest{
		Date: "12-25", Name: "Natal", Type: "national",
	})
	wantStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/holidays", CreateHolidayRequest{
		Date: "12-25", Name: "Duplicate", Type: "national",
	})
	wantStatus(t, resp, http.StatusConflict)
	resp.Body.Close()
}

func TestCreateHoliday_RejectsDayMonthOrder(t *testing.T) {
	srv, _ := newTestServer(t)

	// "24-06" is DD-MM; the wire format is MM-DD.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/holidays", CreateHolidayRequest{
		Date: "24-06", Name: "São João", Type: "recife",
	})
	wantStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()
}

// =============================================================================
// SCHEDULE ENDPOINT TESTS
// =============================================================================

func TestGenerateWeekSchedule(t *testing.T) {
	srv, _ := seededServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/schedules/generate", GenerateScheduleRequest{WeekStart: "2025-06-02"})
	wantStatus(t, resp, http.StatusCreated)
	sched := decode[schedule.PeriodSchedule](t, resp)

	if sched.Kind != schedule.PeriodWeekly || len(sched.Entries) != 7 {
		t.Fatalf("schedule = kind %s, %d entries", sched.Kind, len(sched.Entries))
	}

	// Seeded pool is Kellen(5)/Maicon(6); first generation starts at Kellen.
	sat := sched.EntryFor("2025-06-07")
	if sat == nil || sat.OncallEmployeeID == nil || *sat.OncallEmployeeID != 5 {
		t.Errorf("saturday on-call = %+v, want employee 5", sat)
	}
	if sat.Status != schedule.StatusOncall {
		t.Errorf("saturday status = %s, want oncall", sat.Status)
	}

	// Legacy projection on a regular weekday.
	mon := sched.EntryFor("2025-06-02")
	if mon == nil || mon.MorningEmployeeID == nil || mon.AfternoonEmployeeID == nil {
		t.Errorf("monday legacy slots = %+v", mon)
	}

	// Second generation for the same week conflicts.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/schedules/generate", GenerateScheduleRequest{WeekStart: "2025-06-02"})
	wantStatus(t, resp, http.StatusConflict)
	resp.Body.Close()

	// The stored week is retrievable by start date.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/schedules/week/2025-06-02", nil)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestGetMonthSchedule_LazyGeneration(t *testing.T) {
	srv, _ := seededServer(t)

	// First access generates.
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/schedules/month/2025-06-15", nil)
	wantStatus(t, resp, http.StatusOK)
	first := decode[schedule.PeriodSchedule](t, resp)

	if first.Start != "2025-06-01" || first.End != "2025-06-30" {
		t.Fatalf("period = %s..%s, want normalized month", first.Start, first.End)
	}
	if len(first.Entries) != 30 {
		t.Fatalf("entries = %d, want 30", len(first.Entries))
	}

	// Any date in the month resolves to the same stored record.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/schedules/month/2025-06-01", nil)
	wantStatus(t, resp, http.StatusOK)
	second := decode[schedule.PeriodSchedule](t, resp)
	if second.ID != first.ID {
		t.Errorf("second access id = %d, want stored %d", second.ID, first.ID)
	}

	// Holiday seeded for June 24 shows up in the generated month.
	saoJoao := first.EntryFor("2025-06-24")
	if saoJoao == nil || !saoJoao.IsHoliday || saoJoao.Status != schedule.StatusHoliday {
		t.Errorf("june 24 entry = %+v, want holiday", saoJoao)
	}
}

func TestUpdateEntry_RecomputesProjectionAndStatus(t *testing.T) {
	srv, _ := seededServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/schedules/generate", GenerateScheduleRequest{WeekStart: "2025-06-02"})
	wantStatus(t, resp, http.StatusCreated)
	sched := decode[schedule.PeriodSchedule](t, resp)

	url := fmt.Sprintf("%s/api/schedules/%d/entries/2025-06-03", srv.URL, sched.ID)
	resp = doJSON(t, http.MethodPut, url, UpdateEntryRequest{
		Assignments: []AssignmentRequest{
			{EmployeeID: 2, StartTime: "08:00", EndTime: "12:00", Type: "regular"},
			{EmployeeID: 1, StartTime: "12:00", EndTime: "18:00", Type: "regular"},
		},
	})
	wantStatus(t, resp, http.StatusOK)
	entry := decode[schedule.Entry](t, resp)

	if entry.MorningEmployeeID == nil || *entry.MorningEmployeeID != 2 {
		t.Errorf("morning = %v, want 2", entry.MorningEmployeeID)
	}
	if entry.AfternoonEmployeeID == nil || *entry.AfternoonEmployeeID != 1 {
		t.Errorf("afternoon = %v, want 1", entry.AfternoonEmployeeID)
	}
	if entry.OncallEmployeeID != nil {
		t.Errorf("on-call = %v, want cleared on a weekday edit", entry.OncallEmployeeID)
	}
	if entry.Status != schedule.StatusNormal {
		t.Errorf("status = %s, want normal", entry.Status)
	}

	// The edit persisted.
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/schedules/%d", srv.URL, sched.ID), nil)
	wantStatus(t, resp, http.StatusOK)
	stored := decode[schedule.PeriodSchedule](t, resp)
	if e := stored.EntryFor("2025-06-03"); e == nil || len(e.Assignments) != 2 {
		t.Errorf("stored entry = %+v", e)
	}

	// Unknown date in the period: 404.
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/schedules/%d/entries/2025-07-01", srv.URL, sched.ID), UpdateEntryRequest{
		Assignments: []AssignmentRequest{{EmployeeID: 1, StartTime: "08:00", EndTime: "12:00", Type: "regular"}},
	})
	wantStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestGetWorkload(t *testing.T) {
	srv, _ := seededServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/schedules/generate", GenerateScheduleRequest{WeekStart: "2025-06-02"})
	wantStatus(t, resp, http.StatusCreated)
	sched := decode[schedule.PeriodSchedule](t, resp)

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/schedules/%d/workload", srv.URL, sched.ID), nil)
	wantStatus(t, resp, http.StatusOK)
	workload := decode[[]WorkloadDTO](t, resp)

	if len(workload) == 0 {
		t.Fatal("empty workload for a generated week")
	}
	byID := map[int]WorkloadDTO{}
	for _, w := range workload {
		byID[w.EmployeeID] = w
	}

	// João (id=1): Mon-Fri, 4h mornings.
	if w := byID[1]; w.Days != 5 || w.RegularHours != 20 || w.Name != "João Miranda" {
		t.Errorf("workload[1] = %+v", w)
	}
}

func TestDeleteSchedule(t *testing.T) {
	srv, _ := seededServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/schedules/generate", GenerateScheduleRequest{WeekStart: "2025-06-02"})
	wantStatus(t, resp, http.StatusCreated)
	sched := decode[schedule.PeriodSchedule](t, resp)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/schedules/%d", srv.URL, sched.ID), nil)
	wantStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/schedules/%d", srv.URL, sched.ID), nil)
	wantStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

// =============================================================================
// ROTATION STATE TESTS
// =============================================================================

func TestGetRotationState(t *testing.T) {
	srv, _ := seededServer(t)

	// Fresh cursor.
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/rotation-state", nil)
	wantStatus(t, resp, http.StatusOK)
	state := decode[RotationStateDTO](t, resp)

	if state.LastSaturdayEmployeeID != nil || state.WeekCount != 0 {
		t.Errorf("fresh state = %+v", state)
	}
	if len(state.WeekendPool) != 2 || state.WeekendPool[0].Name != "Kellen Silva" {
		t.Errorf("pool = %+v, want seeded Kellen+Maicon", state.WeekendPool)
	}

	// Cursor advances after a generation.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/schedules/generate", GenerateScheduleRequest{WeekStart: "2025-06-02"})
	wantStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/rotation-state", nil)
	wantStatus(t, resp, http.StatusOK)
	state = decode[RotationStateDTO](t, resp)

	if state.WeekCount != 1 {
		t.Errorf("weekCount = %d, want 1", state.WeekCount)
	}
	if state.LastSaturdayEmployeeID == nil || *state.LastSaturdayEmployeeID != 5 {
		t.Errorf("lastSaturday = %v, want 5", state.LastSaturdayEmployeeID)
	}
	if state.LastSundayEmployeeID == nil || *state.LastSundayEmployeeID != 5 {
		t.Errorf("lastSunday = %v, want 5", state.LastSundayEmployeeID)
	}
}
