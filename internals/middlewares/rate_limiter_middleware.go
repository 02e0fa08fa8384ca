package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "qrstudio_backend/internals/helpers"
)

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, 1*time.Minute, "Demasiadas solicitudes. Inténtalo de nuevo más tarde.")
}

// Rate limiter untuk scan QR (check-in/check-out): satu HP jarang scan > 10x/menit
func ScanRateLimiter() fiber.Handler {
	return newLimiter(10, 1*time.Minute, "Demasiados registros en poco tiempo. Espera un momento.")
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, 1*time.Minute, "Demasiados intentos de inicio de sesión. Inténtalo en unos minutos.")
}

// Rate limiter untuk register route
func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "Demasiados intentos de registro. Espera unos minutos.")
}
