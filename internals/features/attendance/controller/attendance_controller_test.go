package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	attModel "qrstudio_backend/internals/features/attendance/model"
	"qrstudio_backend/internals/features/attendance/service"
	helperAuth "qrstudio_backend/internals/helpers/auth"
	"qrstudio_backend/internals/helpers/civiltime"
	"qrstudio_backend/internals/helpers/odoo"
	authMw "qrstudio_backend/internals/middlewares/auth"
)

type memStore struct {
	mu       sync.Mutex
	open     []attModel.AttendanceRecord
	history  []attModel.AttendanceRecord
	findErr  error
	closeErr error
	created  []attModel.CreateValues
	closed   []int64
}

func (s *memStore) FindOpen(ctx context.Context, employeeID int64) ([]attModel.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open, s.findErr
}

func (s *memStore) Create(ctx context.Context, v attModel.CreateValues) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, v)
	return 900, nil
}

func (s *memStore) Close(ctx context.Context, id int64, v attModel.CloseValues) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closeErr != nil {
		return s.closeErr
	}
	s.closed = append(s.closed, id)
	return nil
}

func (s *memStore) ListByEmployee(ctx context.Context, employeeID int64, w *civiltime.Window) ([]attModel.AttendanceRecord, error) {
	return s.history, nil
}

const testSecret = "test-secret"

var fixedNow = time.Date(2026, 2, 24, 18, 55, 0, 0, time.UTC) // 13:55 Lima

func newApp(store *memStore) *fiber.App {
	ctl := NewAttendanceController(service.NewReconciler(store, civiltime.Lima))
	ctl.Now = func() time.Time { return fixedNow }

	app := fiber.New()
	api := app.Group("/api", authMw.AuthJWT(authMw.AuthJWTOpts{Secret: testSecret, Optional: true}))
	api.Post("/assistance", ctl.History)
	api.Post("/assistance/in", ctl.CheckIn)
	api.Post("/assistance/out", ctl.CheckOut)
	return app
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
	Details   json.RawMessage `json:"details"`
	Errors    map[string][]string
}

func post(t *testing.T, app *fiber.App, path, body, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, env
}

func lima(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := civiltime.ParseOdoo(s, civiltime.Lima)
	if err != nil {
		t.Fatal(err)
	}
	return tm
}

func TestCheckInCreated(t *testing.T) {
	store := &memStore{}
	status, env := post(t, newApp(store), "/api/assistance/in", `{"userId":"42","latitude":-12.04,"longitude":-77.03}`, "")
	if status != fiber.StatusCreated || !env.Success {
		t.Fatalf("got %d %+v", status, env)
	}
	var data struct {
		Action  string `json:"action"`
		ID      int64  `json:"id"`
		CheckIn string `json:"check_in"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if data.Action != string(attModel.ActionOpenedCheckIn) || data.ID != 900 || data.CheckIn != "2026-02-24 13:55:00" {
		t.Fatalf("unexpected data %+v", data)
	}
	if len(store.created) != 1 || store.created[0].Geo == nil {
		t.Fatalf("geo must be forwarded: %+v", store.created)
	}
}

func TestCheckInConflict(t *testing.T) {
	store := &memStore{open: []attModel.AttendanceRecord{{ID: 7, EmployeeID: 42, CheckInAt: lima(t, "2026-02-24 07:25:00")}}}
	status, env := post(t, newApp(store), "/api/assistance/in", `{"userId":42}`, "")
	if status != fiber.StatusConflict || env.ErrorCode != "OPEN_CHECKOUT_REQUIRED" {
		t.Fatalf("got %d %+v", status, env)
	}
	if !strings.Contains(env.Message, "mar, 24 feb 2026, 07:25") || !strings.Contains(env.Message, "6,5 horas") {
		t.Fatalf("unexpected message %q", env.Message)
	}
	var d struct {
		RecordID  int64   `json:"recordId"`
		CheckIn   string  `json:"checkIn"`
		HoursOpen float64 `json:"hoursOpen"`
	}
	_ = json.Unmarshal(env.Details, &d)
	if d.RecordID != 7 || d.CheckIn != "2026-02-24 07:25:00" || d.HoursOpen != 6.5 {
		t.Fatalf("unexpected details %+v", d)
	}
	if len(store.created) != 0 {
		t.Fatal("conflict must not create")
	}
}

func TestCheckInAutoCloseFailed(t *testing.T) {
	store := &memStore{
		open:     []attModel.AttendanceRecord{{ID: 7, EmployeeID: 42, CheckInAt: lima(t, "2026-02-20 08:00:00")}},
		closeErr: &odoo.OperationError{Message: "write failed"},
	}
	status, env := post(t, newApp(store), "/api/assistance/in", `{"userId":42}`, "")
	if status != fiber.StatusConflict || env.ErrorCode != "AUTO_CLOSE_FAILED" {
		t.Fatalf("got %d %+v", status, env)
	}
	if len(store.created) != 0 {
		t.Fatal("must not create after failed auto-close")
	}
}

func TestCheckInAutoClosed(t *testing.T) {
	store := &memStore{open: []attModel.AttendanceRecord{{ID: 7, EmployeeID: 42, CheckInAt: lima(t, "2026-02-22 08:00:00")}}}
	status, env := post(t, newApp(store), "/api/assistance/in", `{"userId":42}`, "")
	if status != fiber.StatusCreated {
		t.Fatalf("got %d %+v", status, env)
	}
	var data struct {
		Action     string `json:"action"`
		AutoClosed struct {
			RecordID int64  `json:"recordId"`
			CheckOut string `json:"checkOut"`
		} `json:"auto_closed"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if data.Action != string(attModel.ActionAutoClosedThenOpened) || data.AutoClosed.RecordID != 7 || data.AutoClosed.CheckOut != "2026-02-22 23:59:59" {
		t.Fatalf("unexpected data %+v", data)
	}
}

func TestInvalidIDIs400(t *testing.T) {
	app := newApp(&memStore{})
	for _, body := range []string{`{"userId":0}`, `{"userId":-1}`, `{}`} {
		status, env := post(t, app, "/api/assistance/in", body, "")
		if status != fiber.StatusBadRequest || env.ErrorCode != "INVALID_ID" {
			t.Fatalf("%s: got %d %+v", body, status, env)
		}
	}
	status, _ := post(t, app, "/api/assistance/in", `{"userId":"abc"}`, "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("non-numeric id: got %d", status)
	}
}

func TestInvalidCoordinatesIs422(t *testing.T) {
	status, env := post(t, newApp(&memStore{}), "/api/assistance/in", `{"userId":42,"latitude":123,"longitude":0}`, "")
	if status != fiber.StatusUnprocessableEntity || len(env.Errors["latitude"]) == 0 {
		t.Fatalf("got %d %+v", status, env)
	}
}

func TestOdooDownIs502(t *testing.T) {
	store := &memStore{findErr: &odoo.CommunicationError{Err: errors.New("connection refused")}}
	status, env := post(t, newApp(store), "/api/assistance/in", `{"userId":42}`, "")
	if status != fiber.StatusBadGateway || env.ErrorCode != "ODOO_UNAVAILABLE" {
		t.Fatalf("got %d %+v", status, env)
	}
}

func TestCheckOut(t *testing.T) {
	store := &memStore{}
	status, env := post(t, newApp(store), "/api/assistance/out", `{"registryId":"7"}`, "")
	if status != fiber.StatusOK || len(store.closed) != 1 || store.closed[0] != 7 {
		t.Fatalf("got %d %+v closed=%v", status, env, store.closed)
	}
}

func TestHistoryToday(t *testing.T) {
	out := lima(t, "2026-02-24 12:00:00")
	store := &memStore{history: []attModel.AttendanceRecord{
		{ID: 1, EmployeeID: 42, CheckInAt: lima(t, "2026-02-24 08:00:00"), CheckOutAt: &out, WorkedHours: 4},
	}}
	status, env := post(t, newApp(store), "/api/assistance", `{"userId":42}`, "")
	if status != fiber.StatusOK {
		t.Fatalf("got %d %+v", status, env)
	}
	var data struct {
		Count  int    `json:"count"`
		Filter string `json:"filter"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if data.Count != 1 || data.Filter != "today" {
		t.Fatalf("unexpected data %+v", data)
	}
}

func TestTokenForOtherEmployeeIsForbidden(t *testing.T) {
	tok, _, err := helperAuth.IssueToken(testSecret, time.Hour, helperAuth.Claims{EmployeeID: 5, Role: helperAuth.RoleUser}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	app := newApp(&memStore{})

	status, _ := post(t, app, "/api/assistance/in", `{"userId":42}`, tok)
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	status, _ = post(t, app, "/api/assistance/in", `{"userId":5}`, tok)
	if status != fiber.StatusCreated {
		t.Fatalf("own employee must pass, got %d", status)
	}
}
