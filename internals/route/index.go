// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	attRoute "qrstudio_backend/internals/features/attendance/route"
	attService "qrstudio_backend/internals/features/attendance/service"
	diagRoute "qrstudio_backend/internals/features/diagnostic/route"
	diagService "qrstudio_backend/internals/features/diagnostic/service"
	empRoute "qrstudio_backend/internals/features/employees/route"
	empService "qrstudio_backend/internals/features/employees/service"
	taskRoute "qrstudio_backend/internals/features/tasks/route"
	taskRepo "qrstudio_backend/internals/features/tasks/repository"
	authMw "qrstudio_backend/internals/middlewares/auth"
)

var startTime = time.Now()

// Deps = semua yang dirakit main.go.
type Deps struct {
	Health       HealthDeps
	Reconciler   *attService.Reconciler
	Employees    *empService.EmployeeService
	Tasks        taskRepo.Client
	GPS          *diagService.GPSDiagnostic
	JWTSecret    string
	AuthRequired bool
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up base routes...")
	BaseRoutes(app, d.Health)

	api := app.Group("/api")

	// login / register tanpa token
	log.Println("[INFO] Mounting employee routes...")
	empRoute.EmployeeRoutes(api, d.Employees, d.JWTSecret)

	// AUTH_REQUIRED=false → token opsional, tapi kalau dikirim tetap diverifikasi
	log.Printf("[INFO] Setting up PRIVATE group (auth required=%v)...", d.AuthRequired)
	private := api.Group("",
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:   d.JWTSecret,
			Optional: !d.AuthRequired,
		}),
	)

	log.Println("[INFO] Mounting attendance routes...")
	attRoute.AttendanceRoutes(private, d.Reconciler)

	log.Println("[INFO] Mounting task routes...")
	taskRoute.TaskRoutes(private, d.Tasks)

	log.Println("[INFO] Mounting diagnostic routes...")
	diagRoute.DiagnosticRoutes(private, d.GPS)
}
