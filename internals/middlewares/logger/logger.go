package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"qrstudio_backend/internals/helpers/civiltime"
)

// LoggerMiddleware untuk mencatat semua request (jam di zona sipil)
func LoggerMiddleware(timeZone string) fiber.Handler {
	if timeZone == "" {
		timeZone = civiltime.DefaultZone
	}
	return logger.New(logger.Config{
		TimeFormat: civiltime.OdooLayout,
		TimeZone:   timeZone,
		Format:     "[${time}] ${ip} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
