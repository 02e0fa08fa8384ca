// internals/features/attendance/model/attendance_model.go
package model

import "time"

// AttendanceRecord = satu baris hr.attendance.
// CheckOutAt == nil → record masih terbuka.
type AttendanceRecord struct {
	ID           int64      `json:"id"`
	EmployeeID   int64      `json:"employee_id"`
	EmployeeName string     `json:"employee_name,omitempty"`
	CheckInAt    time.Time  `json:"check_in"`
	CheckOutAt   *time.Time `json:"check_out,omitempty"`
	WorkedHours  float64    `json:"worked_hours"`

	CheckInGeo  *Geo `json:"check_in_geo,omitempty"`
	CheckOutGeo *Geo `json:"check_out_geo,omitempty"`
}

func (r AttendanceRecord) IsOpen() bool { return r.CheckOutAt == nil }

// Geo hanya deskriptif, tidak dipakai untuk keputusan reconcile.
type Geo struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Nilai yang dikirim ke store. Timestamp sudah diformat di zona sipil.
type CreateValues struct {
	EmployeeID int64
	CheckInAt  string
	Geo        *Geo
}

type CloseValues struct {
	CheckOutAt string
	Geo        *Geo
}

type ActionKind string

const (
	ActionOpenedCheckIn                ActionKind = "opened_check_in"
	ActionAutoClosedThenOpened         ActionKind = "auto_closed_then_opened"
	ActionRejectedOpenCheckoutRequired ActionKind = "rejected_open_checkout_required"
	ActionClosedOk                     ActionKind = "closed_ok"
)

// Action = hasil keputusan reconciler.
type Action struct {
	Kind       ActionKind `json:"kind"`
	EmployeeID int64      `json:"employee_id,omitempty"`

	// RecordID = record yang dibuat (check-in) atau ditutup (check-out)
	RecordID   int64  `json:"record_id,omitempty"`
	CheckInAt  string `json:"check_in,omitempty"`
	CheckOutAt string `json:"check_out,omitempty"`

	AutoClosed *AutoClosed   `json:"auto_closed,omitempty"`
	Conflict   *OpenConflict `json:"conflict,omitempty"`

	// >1 artinya store punya lebih dari satu record terbuka (anomali)
	OpenRecordsFound int `json:"open_records_found,omitempty"`

	// Shared = hasil dibagi dengan request paralel untuk employee yang sama
	Shared bool `json:"shared,omitempty"`
}

type AutoClosed struct {
	RecordID   int64   `json:"record_id"`
	CheckInAt  string  `json:"check_in"`
	CheckOutAt string  `json:"check_out"`
	HoursOpen  float64 `json:"hours_open"`
}

// OpenConflict: bukan error, user harus check-out dulu.
type OpenConflict struct {
	RecordID  int64   `json:"record_id"`
	CheckInAt string  `json:"check_in"`
	HoursOpen float64 `json:"hours_open"`
	Message   string  `json:"message"`
}

// History = hasil query riwayat attendance.
type History struct {
	Records    []AttendanceRecord `json:"records"`
	Filter     string             `json:"filter"` // all | today
	TotalHours float64            `json:"total_hours"`
}

// ReconcileEvent dikirim ke audit recorder setelah tiap keputusan.
type ReconcileEvent struct {
	Operation  string // check_in | check_out
	EmployeeID int64
	RecordID   int64
	Action     Action
	Err        error
	At         time.Time
}
