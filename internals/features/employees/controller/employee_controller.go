package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	empDTO "qrstudio_backend/internals/features/employees/dto"
	"qrstudio_backend/internals/features/employees/service"
	helper "qrstudio_backend/internals/helpers"
	helperAuth "qrstudio_backend/internals/helpers/auth"
)

type EmployeeController struct {
	Service *service.EmployeeService
}

func NewEmployeeController(s *service.EmployeeService) *EmployeeController {
	return &EmployeeController{Service: s}
}

// POST /api/users/login
func (h *EmployeeController) Login(c *fiber.Ctx) error {
	var req empDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Role == "" {
		req.Role = helperAuth.RoleUser
	}

	res, err := h.Service.Login(c.UserContext(), req.Email, req.Password, req.Role)
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Usuario no encontrado")
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Credenciales incorrectas")
	case err != nil:
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Inicio de sesión exitoso", empDTO.NewLoginResponse(res))
}

// POST /api/users/register
func (h *EmployeeController) Register(c *fiber.Ctx) error {
	var req empDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	id, err := h.Service.Register(c.UserContext(), req.ToModel())
	if errors.Is(err, service.ErrEmailTaken) {
		return helper.JsonError(c, fiber.StatusConflict, "El correo ya está registrado")
	}
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Empleado registrado", fiber.Map{"id": id})
}

// GET /api/users/employees (admin)
func (h *EmployeeController) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"result": empDTO.NewEmployeeList(list),
		"count":  len(list),
	})
}
