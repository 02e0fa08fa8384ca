// internals/features/tasks/model/analytic_line_model.go
package model

import "qrstudio_backend/internals/helpers/odoo"

// AnalyticLine = baris timesheet account.analytic.line.
type AnalyticLine struct {
	ID         int64          `json:"id"`
	Date       odoo.OptString `json:"date"`
	ProjectID  odoo.Many2One  `json:"project_id"`
	TaskID     odoo.Many2One  `json:"task_id"`
	Name       odoo.OptString `json:"name"`
	UnitAmount odoo.OptFloat  `json:"unit_amount"`
	SOLine     odoo.Many2One  `json:"so_line"`
}

var AnalyticLineFields = []string{"date", "project_id", "task_id", "name", "unit_amount", "so_line"}
