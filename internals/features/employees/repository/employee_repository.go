// internals/features/employees/repository/employee_repository.go
package repository

import (
	"context"
	"strings"

	empModel "qrstudio_backend/internals/features/employees/model"
	"qrstudio_backend/internals/helpers/odoo"
)

type Client interface {
	SearchRead(ctx context.Context, model string, domain odoo.Domain, fields []string, opts odoo.SearchOptions, out any) error
	Create(ctx context.Context, model string, values map[string]any) (int64, error)
}

const listLimit = 100

type EmployeeRepository struct {
	client Client
}

func NewEmployeeRepository(client Client) *EmployeeRepository {
	return &EmployeeRepository{client: client}
}

/* ====================== READ ====================== */

// ListActive: employee aktif, urut nama.
func (r *EmployeeRepository) ListActive(ctx context.Context) ([]empModel.Employee, error) {
	var out []empModel.Employee
	domain := odoo.Domain{}.And("active", "=", true)
	if err := r.client.SearchRead(ctx, odoo.ModelEmployee, domain, empModel.EmployeeFields,
		odoo.SearchOptions{Limit: listLimit, Order: "name asc"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []empModel.Employee{}
	}
	return out, nil
}

// FindActiveByEmail: work_email case-insensitive (=ilike tanpa wildcard).
// nil, nil kalau tidak ketemu.
func (r *EmployeeRepository) FindActiveByEmail(ctx context.Context, email string) (*empModel.Employee, error) {
	email = strings.TrimSpace(email)
	domain := odoo.Domain{}.
		And("active", "=", true).
		And("work_email", "=ilike", email)

	var out []empModel.Employee
	if err := r.client.SearchRead(ctx, odoo.ModelEmployee, domain, empModel.EmployeeFields,
		odoo.SearchOptions{Limit: 2}, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

/* ====================== WRITE ====================== */

func (r *EmployeeRepository) Create(ctx context.Context, e empModel.NewEmployee) (int64, error) {
	values := map[string]any{
		"name":              strings.TrimSpace(e.Name),
		"work_email":        strings.ToLower(strings.TrimSpace(e.WorkEmail)),
		"active":            true,
		"identification_id": strings.TrimSpace(e.IdentificationID),
	}
	if p := strings.TrimSpace(e.WorkPhone); p != "" {
		values["work_phone"] = p
	}
	return r.client.Create(ctx, odoo.ModelEmployee, values)
}
