package route

import (
	"github.com/gofiber/fiber/v2"

	taskCtrl "qrstudio_backend/internals/features/tasks/controller"
	"qrstudio_backend/internals/features/tasks/repository"
)

// TaskRoutes → POST /task
func TaskRoutes(r fiber.Router, client repository.Client) {
	ctl := taskCtrl.NewTaskController(repository.NewTaskRepository(client))
	r.Post("/task", ctl.List)
}
