// internals/features/diagnostic/model/gps_report_model.go
package model

import (
	"time"

	"qrstudio_backend/internals/helpers/odoo"
)

const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusInfo    = "info"
	StatusError   = "error"
)

type SampleValue struct {
	AttendanceID int64  `json:"attendanceId"`
	Value        any    `json:"value"`
	CheckIn      string `json:"checkIn,omitempty"`
}

type FieldReport struct {
	Name         string        `json:"name"`
	Exists       bool          `json:"exists"`
	HasData      bool          `json:"hasData"`
	SampleValues []SampleValue `json:"sampleValues"`
}

type FieldGroups struct {
	CheckIn  map[string]*FieldReport `json:"checkin"`
	CheckOut map[string]*FieldReport `json:"checkout"`
	// Missing: field yang disebut di pesan error Odoo
	Missing []string `json:"missing,omitempty"`
}

type TestResults struct {
	FieldsExist   bool     `json:"fieldsExist"`
	HasData       bool     `json:"hasData"`
	SampleRecords int      `json:"sampleRecords"`
	// TotalRecords nil kalau search_count gagal
	TotalRecords *int64   `json:"totalRecords,omitempty"`
	Errors        []string `json:"errors"`
}

// FieldMeta = baris ir.model.fields.
type FieldMeta struct {
	Name             string         `json:"name"`
	FieldDescription odoo.OptString `json:"field_description"`
	TType            odoo.OptString `json:"ttype"`
	State            odoo.OptString `json:"state"`
}

type Metadata struct {
	FieldsInModel  int         `json:"fieldsInModel"`
	ExpectedFields int         `json:"expectedFields"`
	Fields         []FieldMeta `json:"fields"`
}

type OdooTarget struct {
	URL      string `json:"url"`
	Database string `json:"db"`
}

// GPSReport = hasil diagnostik field GPS custom di hr.attendance.
type GPSReport struct {
	Success         bool        `json:"success"`
	Timestamp       time.Time   `json:"timestamp"`
	Odoo            OdooTarget  `json:"odoo"`
	Fields          FieldGroups `json:"fields"`
	TestResults     TestResults `json:"testResults"`
	Metadata        *Metadata   `json:"metadata,omitempty"`
	Recommendations []string    `json:"recommendations"`
	Status          string      `json:"status"`
	Message         string      `json:"message"`
}
