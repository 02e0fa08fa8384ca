// internals/features/employees/dto/employee_dto.go
package dto

import (
	"time"

	empModel "qrstudio_backend/internals/features/employees/model"
	"qrstudio_backend/internals/features/employees/service"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

type RegisterRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
	DNI   string `json:"dni" validate:"required,min=8,max=20"`
}

func (r RegisterRequest) ToModel() empModel.NewEmployee {
	return empModel.NewEmployee{
		Name:             r.Name,
		WorkEmail:        r.Email,
		WorkPhone:        r.Phone,
		IdentificationID: r.DNI,
	}
}

type EmployeeResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"work_email"`
	Phone    string `json:"work_phone,omitempty"`
	Image128 string `json:"image_128,omitempty"`
}

// DNI tidak pernah dikirim balik ke client.
func NewEmployeeResponse(e empModel.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.WorkEmail.Value,
		Phone:    e.WorkPhone.Value,
		Image128: e.Image128.Value,
	}
}

func NewEmployeeList(list []empModel.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, NewEmployeeResponse(e))
	}
	return out
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   time.Time         `json:"expires_at"`
	Role        string            `json:"role"`
	Employee    *EmployeeResponse `json:"employee,omitempty"`
}

func NewLoginResponse(r service.LoginResult) LoginResponse {
	out := LoginResponse{
		AccessToken: r.Token,
		TokenType:   "Bearer",
		ExpiresAt:   r.ExpiresAt,
		Role:        r.Role,
	}
	if r.Employee != nil {
		e := NewEmployeeResponse(*r.Employee)
		out.Employee = &e
	}
	return out
}
