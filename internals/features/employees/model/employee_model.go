// internals/features/employees/model/employee_model.go
package model

import "qrstudio_backend/internals/helpers/odoo"

// Employee = baris hr.employee yang dipakai app (login + daftar).
type Employee struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	WorkEmail        odoo.OptString `json:"work_email"`
	WorkPhone        odoo.OptString `json:"work_phone"`
	IdentificationID odoo.OptString `json:"identification_id"`
	Image128         odoo.OptString `json:"image_128"`
	Active           bool           `json:"active"`
}

var EmployeeFields = []string{"id", "name", "work_email", "work_phone", "identification_id", "image_128", "active"}

// NewEmployee = nilai create hr.employee dari form registrasi.
type NewEmployee struct {
	Name             string
	WorkEmail        string
	WorkPhone        string
	IdentificationID string
}
