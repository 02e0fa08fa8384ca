package route

import (
	"github.com/gofiber/fiber/v2"

	attCtrl "qrstudio_backend/internals/features/attendance/controller"
	"qrstudio_backend/internals/features/attendance/service"
	rateLimiter "qrstudio_backend/internals/middlewares"
)

// AttendanceRoutes → /assistance, /assistance/in, /assistance/out
func AttendanceRoutes(r fiber.Router, rec *service.Reconciler) {
	ctl := attCtrl.NewAttendanceController(rec)

	g := r.Group("/assistance")
	g.Post("/", ctl.History)
	g.Post("/in", rateLimiter.ScanRateLimiter(), ctl.CheckIn)
	g.Post("/out", rateLimiter.ScanRateLimiter(), ctl.CheckOut)
}
