package controller

import (
	"github.com/gofiber/fiber/v2"

	"qrstudio_backend/internals/features/diagnostic/service"
)

type DiagnosticController struct {
	GPS *service.GPSDiagnostic
}

func NewDiagnosticController(gps *service.GPSDiagnostic) *DiagnosticController {
	return &DiagnosticController{GPS: gps}
}

// GET /api/diagnostic/gps-fields
// Laporan dikirim apa adanya (bukan envelope), status selalu 200.
func (h *DiagnosticController) GPSFields(c *fiber.Ctx) error {
	return c.JSON(h.GPS.Run(c.UserContext()))
}
