package repository

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	attModel "qrstudio_backend/internals/features/attendance/model"
	"qrstudio_backend/internals/features/attendance/service"
	"qrstudio_backend/internals/helpers/civiltime"
	"qrstudio_backend/internals/helpers/odoo"
)

type searchCall struct {
	Model  string
	Domain odoo.Domain
	Fields []string
	Opts   odoo.SearchOptions
}

type writeCall struct {
	IDs    []int64
	Values map[string]any
}

// fakeClient membalas search_read dengan JSON mentah supaya decoding row ikut diuji.
type fakeClient struct {
	rows     string
	writeOK  bool
	writeErr error

	searches []searchCall
	creates  []map[string]any
	writes   []writeCall
}

func (f *fakeClient) SearchRead(ctx context.Context, model string, domain odoo.Domain, fields []string, opts odoo.SearchOptions, out any) error {
	f.searches = append(f.searches, searchCall{Model: model, Domain: domain, Fields: fields, Opts: opts})
	if f.rows == "" {
		f.rows = "[]"
	}
	return json.Unmarshal([]byte(f.rows), out)
}

func (f *fakeClient) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	f.creates = append(f.creates, values)
	return 55, nil
}

func (f *fakeClient) Write(ctx context.Context, model string, ids []int64, values map[string]any) (bool, error) {
	f.writes = append(f.writes, writeCall{IDs: ids, Values: values})
	return f.writeOK, f.writeErr
}

func TestFindOpenHasNoDateFilter(t *testing.T) {
	fc := &fakeClient{rows: `[
		{"id": 7, "employee_id": [42, "Ana Torres"], "check_in": "2026-02-20 08:15:00", "check_out": false, "worked_hours": 0}
	]`}
	s := NewOdooStore(fc, civiltime.Lima)

	recs, err := s.FindOpen(context.Background(), 42)
	if err != nil {
		t.Fatalf("FindOpen: %v", err)
	}

	want := odoo.Domain{
		[]any{"employee_id", "=", int64(42)},
		[]any{"check_out", "=", false},
	}
	if len(fc.searches) != 1 || !reflect.DeepEqual(fc.searches[0].Domain, want) {
		t.Fatalf("unexpected domain %#v", fc.searches)
	}
	if fc.searches[0].Model != odoo.ModelAttendance || fc.searches[0].Opts.Order != "check_in desc" {
		t.Fatalf("unexpected search %+v", fc.searches[0])
	}
	if len(recs) != 1 || !recs[0].IsOpen() || recs[0].EmployeeName != "Ana Torres" {
		t.Fatalf("unexpected records %+v", recs)
	}
	if got := civiltime.FormatOdoo(recs[0].CheckInAt, civiltime.Lima); got != "2026-02-20 08:15:00" {
		t.Fatalf("check_in must be read as civil time, got %s", got)
	}
}

func TestListByEmployeeWindow(t *testing.T) {
	fc := &fakeClient{rows: `[
		{"id": 9, "employee_id": [42, "Ana"], "check_in": "2026-02-24 08:00:00", "check_out": "2026-02-24 12:30:00", "worked_hours": 4.5}
	]`}
	s := NewOdooStore(fc, civiltime.Lima)
	now, _ := civiltime.ParseOdoo("2026-02-24 13:00:00", civiltime.Lima)
	w := civiltime.Today(now, civiltime.Lima)

	recs, err := s.ListByEmployee(context.Background(), 42, &w)
	if err != nil {
		t.Fatalf("ListByEmployee: %v", err)
	}
	want := odoo.Domain{
		[]any{"employee_id", "=", int64(42)},
		[]any{"check_in", ">=", "2026-02-24 00:00:00"},
		[]any{"check_in", "<=", "2026-02-24 23:59:59"},
	}
	if !reflect.DeepEqual(fc.searches[0].Domain, want) {
		t.Fatalf("unexpected domain %#v", fc.searches[0].Domain)
	}
	if fc.searches[0].Opts.Limit != 1000 {
		t.Fatalf("unexpected limit %d", fc.searches[0].Opts.Limit)
	}
	if len(recs) != 1 || recs[0].IsOpen() || recs[0].WorkedHours != 4.5 {
		t.Fatalf("unexpected records %+v", recs)
	}
	if got := civiltime.FormatOdoo(*recs[0].CheckOutAt, civiltime.Lima); got != "2026-02-24 12:30:00" {
		t.Fatalf("unexpected check_out %s", got)
	}

	if _, err := s.ListByEmployee(context.Background(), 42, nil); err != nil {
		t.Fatalf("ListByEmployee all: %v", err)
	}
	if len(fc.searches[1].Domain) != 1 {
		t.Fatalf("all history must only filter by employee, got %#v", fc.searches[1].Domain)
	}
}

const malformedRows = `[
	{"id": 1, "employee_id": [42, "Ana"], "check_in": false, "check_out": false},
	{"id": 2, "employee_id": [42, "Ana"], "check_in": "not a date", "check_out": false},
	{"id": 3, "employee_id": [42, "Ana"], "check_in": "2026-02-24 08:00:00", "check_out": false}
]`

func TestHistorySkipsMalformedRows(t *testing.T) {
	s := NewOdooStore(&fakeClient{rows: malformedRows}, civiltime.Lima)

	recs, err := s.ListByEmployee(context.Background(), 42, nil)
	if err != nil {
		t.Fatalf("ListByEmployee: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != 3 {
		t.Fatalf("expected only record 3, got %+v", recs)
	}
}

func TestFindOpenRejectsMalformedRows(t *testing.T) {
	s := NewOdooStore(&fakeClient{rows: malformedRows}, civiltime.Lima)

	recs, err := s.FindOpen(context.Background(), 42)
	if _, ok := odoo.AsOperation(err); !ok {
		t.Fatalf("expected OperationError, got recs=%+v err=%v", recs, err)
	}
}

func TestUnreadableOpenRecordBlocksCheckIn(t *testing.T) {
	fc := &fakeClient{rows: `[
		{"id": 7, "employee_id": [42, "Ana"], "check_in": "2026-02-24T08:00:00", "check_out": false}
	]`}
	rec := service.NewReconciler(NewOdooStore(fc, civiltime.Lima), civiltime.Lima)

	now := time.Date(2026, 2, 24, 18, 55, 0, 0, time.UTC)
	act, err := rec.ResolveAttendanceAction(context.Background(), 42, now, nil)
	if err == nil {
		t.Fatalf("expected error, got action %+v", act)
	}
	if len(fc.creates) != 0 || len(fc.writes) != 0 {
		t.Fatalf("no write may happen while an open record is unreadable: creates=%v writes=%v", fc.creates, fc.writes)
	}
}

func TestCreateWritesGeoOnlyWhenEnabled(t *testing.T) {
	acc := 8.0
	geo := &attModel.Geo{Latitude: -12.05, Longitude: -77.04, Accuracy: &acc}
	v := attModel.CreateValues{EmployeeID: 42, CheckInAt: "2026-02-24 08:00:00", Geo: geo}

	fc := &fakeClient{}
	id, err := NewOdooStore(fc, civiltime.Lima).Create(context.Background(), v)
	if err != nil || id != 55 {
		t.Fatalf("Create: id=%d err=%v", id, err)
	}
	if _, ok := fc.creates[0]["x_latitude"]; ok {
		t.Fatal("geo fields must not be sent when disabled")
	}

	fc = &fakeClient{}
	if _, err := NewOdooStore(fc, civiltime.Lima, WithGeoFields(true)).Create(context.Background(), v); err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := map[string]any{
		"employee_id": int64(42),
		"check_in":    "2026-02-24 08:00:00",
		"x_latitude":  -12.05,
		"x_longitude": -77.04,
		"x_accuracy":  8.0,
	}
	if !reflect.DeepEqual(fc.creates[0], want) {
		t.Fatalf("unexpected values %#v", fc.creates[0])
	}
}

func TestCloseUsesCheckoutGeoFields(t *testing.T) {
	fc := &fakeClient{writeOK: true}
	s := NewOdooStore(fc, civiltime.Lima, WithGeoFields(true))

	err := s.Close(context.Background(), 7, attModel.CloseValues{
		CheckOutAt: "2026-02-24 17:00:00",
		Geo:        &attModel.Geo{Latitude: 1, Longitude: 2},
	})
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	want := map[string]any{"check_out": "2026-02-24 17:00:00", "x_latitude_out": 1.0, "x_longitude_out": 2.0}
	if len(fc.writes) != 1 || !reflect.DeepEqual(fc.writes[0].IDs, []int64{7}) || !reflect.DeepEqual(fc.writes[0].Values, want) {
		t.Fatalf("unexpected writes %+v", fc.writes)
	}
}

func TestCloseFalseResultIsOperationError(t *testing.T) {
	fc := &fakeClient{writeOK: false}
	err := NewOdooStore(fc, civiltime.Lima).Close(context.Background(), 7, attModel.CloseValues{CheckOutAt: "2026-02-24 17:00:00"})
	if _, ok := odoo.AsOperation(err); !ok {
		t.Fatalf("expected OperationError, got %v", err)
	}
}

func TestCloseErrorPassesThrough(t *testing.T) {
	commErr := &odoo.CommunicationError{Err: errors.New("timeout")}
	fc := &fakeClient{writeErr: commErr}
	err := NewOdooStore(fc, civiltime.Lima).Close(context.Background(), 7, attModel.CloseValues{CheckOutAt: "x"})
	if !odoo.IsCommunication(err) {
		t.Fatalf("expected CommunicationError, got %v", err)
	}
}

func TestReadsGeoWhenEnabled(t *testing.T) {
	fc := &fakeClient{rows: `[
		{"id": 3, "employee_id": [42, "Ana"], "check_in": "2026-02-24 08:00:00", "check_out": false,
		 "x_latitude": -12.1, "x_longitude": -77.0, "x_accuracy": false,
		 "x_latitude_out": false, "x_longitude_out": false, "x_accuracy_out": false}
	]`}
	s := NewOdooStore(fc, civiltime.Lima, WithGeoFields(true))

	recs, err := s.FindOpen(context.Background(), 42)
	if err != nil {
		t.Fatalf("FindOpen: %v", err)
	}
	if len(fc.searches[0].Fields) != len(baseFields)+6 {
		t.Fatalf("geo fields not requested: %v", fc.searches[0].Fields)
	}
	g := recs[0].CheckInGeo
	if g == nil || g.Latitude != -12.1 || g.Accuracy != nil {
		t.Fatalf("unexpected check-in geo %+v", g)
	}
	if recs[0].CheckOutGeo != nil {
		t.Fatal("check-out geo must be nil")
	}
}

func TestNilLocationDefaultsToLima(t *testing.T) {
	s := NewOdooStore(&fakeClient{}, nil)
	if s.loc != civiltime.Lima {
		t.Fatal("expected Lima")
	}
}
