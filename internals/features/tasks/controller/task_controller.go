package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	taskDTO "qrstudio_backend/internals/features/tasks/dto"
	taskModel "qrstudio_backend/internals/features/tasks/model"
	helper "qrstudio_backend/internals/helpers"
	helperAuth "qrstudio_backend/internals/helpers/auth"
)

type Lister interface {
	ListByEmployee(ctx context.Context, employeeID int64, limit int) ([]taskModel.AnalyticLine, error)
}

type TaskController struct {
	Repo Lister
}

func NewTaskController(repo Lister) *TaskController {
	return &TaskController{Repo: repo}
}

// POST /api/task
func (h *TaskController) List(c *fiber.Ctx) error {
	var req taskDTO.TaskListRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.UserID <= 0 {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "INVALID_ID",
			"userId debe ser un número entero positivo", fiber.Map{"field": "userId"})
	}
	if err := helperAuth.EnsureEmployee(c, req.UserID.Int64()); err != nil {
		return helper.JsonFromError(c, err)
	}

	lines, err := h.Repo.ListByEmployee(c.UserContext(), req.UserID.Int64(), req.Limit)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", taskDTO.NewTaskListResponse(lines))
}
