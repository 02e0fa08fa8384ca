package route

import (
	"github.com/gofiber/fiber/v2"

	diagCtrl "qrstudio_backend/internals/features/diagnostic/controller"
	"qrstudio_backend/internals/features/diagnostic/service"
)

// DiagnosticRoutes → GET /diagnostic/gps-fields
func DiagnosticRoutes(r fiber.Router, gps *service.GPSDiagnostic) {
	ctl := diagCtrl.NewDiagnosticController(gps)
	r.Get("/diagnostic/gps-fields", ctl.GPSFields)
}
