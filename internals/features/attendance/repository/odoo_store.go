// internals/features/attendance/repository/odoo_store.go
package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	attModel "qrstudio_backend/internals/features/attendance/model"
	"qrstudio_backend/internals/helpers/civiltime"
	"qrstudio_backend/internals/helpers/odoo"
)

// Client = subset odoo.Client yang dipakai store.
type Client interface {
	SearchRead(ctx context.Context, model string, domain odoo.Domain, fields []string, opts odoo.SearchOptions, out any) error
	Create(ctx context.Context, model string, values map[string]any) (int64, error)
	Write(ctx context.Context, model string, ids []int64, values map[string]any) (bool, error)
}

/* ====================== FIELDS ====================== */

var (
	baseFields   = []string{"id", "employee_id", "check_in", "check_out", "worked_hours"}
	geoInFields  = []string{"x_latitude", "x_longitude", "x_accuracy"}
	geoOutFields = []string{"x_latitude_out", "x_longitude_out", "x_accuracy_out"}
)

// GeoFieldNames = semua field GPS custom di hr.attendance.
func GeoFieldNames() []string {
	out := make([]string, 0, len(geoInFields)+len(geoOutFields))
	out = append(out, geoInFields...)
	return append(out, geoOutFields...)
}

const (
	historyLimit = 1000
	orderNewest  = "check_in desc"
)

// row = bentuk mentah search_read hr.attendance.
type row struct {
	ID          int64          `json:"id"`
	EmployeeID  odoo.Many2One  `json:"employee_id"`
	CheckIn     odoo.OptString `json:"check_in"`
	CheckOut    odoo.OptString `json:"check_out"`
	WorkedHours odoo.OptFloat  `json:"worked_hours"`

	Latitude     odoo.OptFloat `json:"x_latitude"`
	Longitude    odoo.OptFloat `json:"x_longitude"`
	Accuracy     odoo.OptFloat `json:"x_accuracy"`
	LatitudeOut  odoo.OptFloat `json:"x_latitude_out"`
	LongitudeOut odoo.OptFloat `json:"x_longitude_out"`
	AccuracyOut  odoo.OptFloat `json:"x_accuracy_out"`
}

/* ====================== STORE ====================== */

// OdooStore = Store attendance di atas hr.attendance.
type OdooStore struct {
	client    Client
	loc       *time.Location
	geoFields bool
}

type Option func(*OdooStore)

// WithGeoFields: baca/tulis field GPS custom (x_latitude dkk).
func WithGeoFields(enabled bool) Option {
	return func(s *OdooStore) { s.geoFields = enabled }
}

func NewOdooStore(client Client, loc *time.Location, opts ...Option) *OdooStore {
	if loc == nil {
		loc = civiltime.Lima
	}
	s := &OdooStore{client: client, loc: loc}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *OdooStore) fields() []string {
	if !s.geoFields {
		return baseFields
	}
	return append(append([]string{}, baseFields...), GeoFieldNames()...)
}

// FindOpen: semua record employee yang belum check-out, terbaru dulu.
func (s *OdooStore) FindOpen(ctx context.Context, employeeID int64) ([]attModel.AttendanceRecord, error) {
	domain := odoo.Domain{}.
		And("employee_id", "=", employeeID).
		And("check_out", "=", false)
	return s.search(ctx, domain, odoo.SearchOptions{Order: orderNewest}, true)
}

func (s *OdooStore) ListByEmployee(ctx context.Context, employeeID int64, window *civiltime.Window) ([]attModel.AttendanceRecord, error) {
	domain := odoo.Domain{}.And("employee_id", "=", employeeID)
	if window != nil {
		from, to := window.Bounds(s.loc)
		domain = domain.And("check_in", ">=", from).And("check_in", "<=", to)
	}
	return s.search(ctx, domain, odoo.SearchOptions{Limit: historyLimit, Order: orderNewest}, false)
}

func (s *OdooStore) Create(ctx context.Context, v attModel.CreateValues) (int64, error) {
	values := map[string]any{
		"employee_id": v.EmployeeID,
		"check_in":    v.CheckInAt,
	}
	s.putGeo(values, v.Geo, geoInFields)
	return s.client.Create(ctx, odoo.ModelAttendance, values)
}

func (s *OdooStore) Close(ctx context.Context, recordID int64, v attModel.CloseValues) error {
	values := map[string]any{"check_out": v.CheckOutAt}
	s.putGeo(values, v.Geo, geoOutFields)

	ok, err := s.client.Write(ctx, odoo.ModelAttendance, []int64{recordID}, values)
	if err != nil {
		return err
	}
	if !ok {
		return &odoo.OperationError{
			Message: fmt.Sprintf("write on %s %d returned false", odoo.ModelAttendance, recordID),
		}
	}
	return nil
}

func (s *OdooStore) putGeo(values map[string]any, g *attModel.Geo, names []string) {
	if g == nil || !s.geoFields {
		return
	}
	values[names[0]] = g.Latitude
	values[names[1]] = g.Longitude
	if g.Accuracy != nil {
		values[names[2]] = *g.Accuracy
	}
}

// strict=true: baris rusak jadi error. Record open yang tidak terbaca tetap open di Odoo,
// kalau dilewati reconciler akan membuat record open kedua.
func (s *OdooStore) search(ctx context.Context, domain odoo.Domain, opts odoo.SearchOptions, strict bool) ([]attModel.AttendanceRecord, error) {
	var rows []row
	if err := s.client.SearchRead(ctx, odoo.ModelAttendance, domain, s.fields(), opts, &rows); err != nil {
		return nil, err
	}

	out := make([]attModel.AttendanceRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := s.toRecord(r)
		if err != nil && strict {
			return nil, &odoo.OperationError{
				Message: fmt.Sprintf("unreadable open %s id=%d: %v", odoo.ModelAttendance, r.ID, err),
			}
		}
		if err != nil {
			// history: record rusak dilewati, jangan gagalkan semua
			log.Printf("[WARN] skip hr.attendance id=%d: %v", r.ID, err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *OdooStore) toRecord(r row) (attModel.AttendanceRecord, error) {
	if !r.CheckIn.Valid {
		return attModel.AttendanceRecord{}, fmt.Errorf("missing check_in")
	}
	checkIn, err := civiltime.ParseOdoo(r.CheckIn.Value, s.loc)
	if err != nil {
		return attModel.AttendanceRecord{}, err
	}

	rec := attModel.AttendanceRecord{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID.ID,
		EmployeeName: r.EmployeeID.Name,
		CheckInAt:    checkIn,
		WorkedHours:  r.WorkedHours.Value,
		CheckInGeo:   toGeo(r.Latitude, r.Longitude, r.Accuracy),
		CheckOutGeo:  toGeo(r.LatitudeOut, r.LongitudeOut, r.AccuracyOut),
	}
	if r.CheckOut.Valid {
		co, err := civiltime.ParseOdoo(r.CheckOut.Value, s.loc)
		if err != nil {
			return attModel.AttendanceRecord{}, err
		}
		rec.CheckOutAt = &co
	}
	return rec, nil
}

func toGeo(lat, lng, acc odoo.OptFloat) *attModel.Geo {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	g := &attModel.Geo{Latitude: lat.Value, Longitude: lng.Value}
	if acc.Valid {
		a := acc.Value
		g.Accuracy = &a
	}
	return g
}
