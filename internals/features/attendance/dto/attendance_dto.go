// internals/features/attendance/dto/attendance_dto.go
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	attModel "qrstudio_backend/internals/features/attendance/model"
	"qrstudio_backend/internals/helpers/civiltime"
)

/* ===================== FLEXIBLE ID ===================== */

// FlexibleID menerima angka (42) atau string numerik ("42").
// Nilai <= 0 tidak ditolak di sini; reconciler yang memvalidasi.
type FlexibleID int64

func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("id %q is not numeric", s)
		}
		*f = FlexibleID(n)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or numeric string")
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("id %s is not an integer", n)
	}
	*f = FlexibleID(v)
	return nil
}

func (f FlexibleID) Int64() int64 { return int64(f) }

/* ===================== REQUESTS ===================== */

// GeoInput = koordinat opsional dari browser (navigator.geolocation).
type GeoInput struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Accuracy  *float64 `json:"accuracy" validate:"omitempty,gte=0"`
}

// ToModel → nil bila lat/lng tidak lengkap.
func (g GeoInput) ToModel() *attModel.Geo {
	if g.Latitude == nil || g.Longitude == nil {
		return nil
	}
	return &attModel.Geo{Latitude: *g.Latitude, Longitude: *g.Longitude, Accuracy: g.Accuracy}
}

type HistoryRequest struct {
	UserID     FlexibleID `json:"userId"`
	AllHistory bool       `json:"allHistory"`
}

type CheckInRequest struct {
	UserID FlexibleID `json:"userId"`
	GeoInput
}

type CheckOutRequest struct {
	RegistryID FlexibleID `json:"registryId"`
	GeoInput
}

/* ===================== RESPONSES ===================== */

type GeoResponse struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// RecordResponse: timestamp dikembalikan dalam format store (zona sipil).
type RecordResponse struct {
	ID           int64        `json:"id"`
	EmployeeID   int64        `json:"employee_id"`
	EmployeeName string       `json:"employee_name,omitempty"`
	CheckIn      string       `json:"check_in"`
	CheckOut     *string      `json:"check_out"`
	WorkedHours  float64      `json:"worked_hours"`
	WorkedLabel  string       `json:"worked_label"`
	IsOpen       bool         `json:"is_open"`
	CheckInGeo   *GeoResponse `json:"check_in_geo,omitempty"`
	CheckOutGeo  *GeoResponse `json:"check_out_geo,omitempty"`
}

type HistoryResponse struct {
	Result     []RecordResponse `json:"result"`
	Count      int              `json:"count"`
	Filter     string           `json:"filter"`
	TotalHours float64          `json:"total_hours"`
}

type AutoClosedResponse struct {
	RecordID  int64   `json:"recordId"`
	CheckIn   string  `json:"checkIn"`
	CheckOut  string  `json:"checkOut"`
	HoursOpen float64 `json:"hoursOpen"`
}

type CheckInResponse struct {
	Action     attModel.ActionKind `json:"action"`
	ID         int64               `json:"id"`
	EmployeeID int64               `json:"employee_id"`
	CheckIn    string              `json:"check_in"`
	AutoClosed *AutoClosedResponse `json:"auto_closed,omitempty"`
	Shared     bool                `json:"shared,omitempty"`
}

type CheckOutResponse struct {
	Action   attModel.ActionKind `json:"action"`
	ID       int64               `json:"id"`
	CheckOut string              `json:"check_out"`
	Shared   bool                `json:"shared,omitempty"`
}

// ConflictDetails = details pada response 409.
type ConflictDetails struct {
	RecordID  int64   `json:"recordId"`
	CheckIn   string  `json:"checkIn"`
	HoursOpen float64 `json:"hoursOpen"`
}

/* ===================== MAPPERS ===================== */

func toGeoResponse(g *attModel.Geo) *GeoResponse {
	if g == nil {
		return nil
	}
	return &GeoResponse{Latitude: g.Latitude, Longitude: g.Longitude, Accuracy: g.Accuracy}
}

func NewRecordResponse(r attModel.AttendanceRecord, loc *time.Location) RecordResponse {
	out := RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		CheckIn:      civiltime.FormatOdoo(r.CheckInAt, loc),
		WorkedHours:  r.WorkedHours,
		WorkedLabel:  civiltime.FormatHoursMinutes(r.WorkedHours),
		IsOpen:       r.IsOpen(),
		CheckInGeo:   toGeoResponse(r.CheckInGeo),
		CheckOutGeo:  toGeoResponse(r.CheckOutGeo),
	}
	if r.CheckOutAt != nil {
		s := civiltime.FormatOdoo(*r.CheckOutAt, loc)
		out.CheckOut = &s
	}
	return out
}

func NewHistoryResponse(h attModel.History, loc *time.Location) HistoryResponse {
	out := HistoryResponse{
		Result:     make([]RecordResponse, 0, len(h.Records)),
		Filter:     h.Filter,
		TotalHours: h.TotalHours,
	}
	for _, r := range h.Records {
		out.Result = append(out.Result, NewRecordResponse(r, loc))
	}
	out.Count = len(out.Result)
	return out
}

func NewCheckInResponse(a attModel.Action) CheckInResponse {
	out := CheckInResponse{
		Action:     a.Kind,
		ID:         a.RecordID,
		EmployeeID: a.EmployeeID,
		CheckIn:    a.CheckInAt,
		Shared:     a.Shared,
	}
	if a.AutoClosed != nil {
		out.AutoClosed = &AutoClosedResponse{
			RecordID:  a.AutoClosed.RecordID,
			CheckIn:   a.AutoClosed.CheckInAt,
			CheckOut:  a.AutoClosed.CheckOutAt,
			HoursOpen: a.AutoClosed.HoursOpen,
		}
	}
	return out
}

func NewCheckOutResponse(a attModel.Action) CheckOutResponse {
	return CheckOutResponse{Action: a.Kind, ID: a.RecordID, CheckOut: a.CheckOutAt, Shared: a.Shared}
}

func NewConflictDetails(c *attModel.OpenConflict) ConflictDetails {
	return ConflictDetails{RecordID: c.RecordID, CheckIn: c.CheckInAt, HoursOpen: c.HoursOpen}
}
