// internals/features/tasks/repository/task_repository.go
package repository

import (
	"context"

	taskModel "qrstudio_backend/internals/features/tasks/model"
	"qrstudio_backend/internals/helpers/odoo"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

type Client interface {
	SearchRead(ctx context.Context, model string, domain odoo.Domain, fields []string, opts odoo.SearchOptions, out any) error
}

type TaskRepository struct {
	client Client
}

func NewTaskRepository(client Client) *TaskRepository {
	return &TaskRepository{client: client}
}

// ListByEmployee: timesheet milik employee, terbaru dulu.
// limit <= 0 → DefaultLimit, dipotong di MaxLimit.
func (r *TaskRepository) ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]taskModel.AnalyticLine, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	domain := odoo.Domain{}.And("employee_id", "=", employeeID)
	var out []taskModel.AnalyticLine
	if err := r.client.SearchRead(ctx, odoo.ModelAnalyticLine, domain, taskModel.AnalyticLineFields,
		odoo.SearchOptions{Limit: limit, Order: "date desc, id desc"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []taskModel.AnalyticLine{}
	}
	return out, nil
}
