package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"

	"qrstudio_backend/internals/middlewares/logger"
)

type Options struct {
	AllowedOrigins []string
	TimeZone       string
	RequestTimeout time.Duration
	Production     bool
}

// SetupMiddlewares memasang middleware global dengan urutan tetap:
// recover → request-id → logger → cors → compress → limiter.
func SetupMiddlewares(app *fiber.App, o Options) {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 15 * time.Second
	}
	app.Use(RecoveryMiddleware(!o.Production))
	app.Use(RequestID(o.RequestTimeout))
	app.Use(logger.LoggerMiddleware(o.TimeZone))
	app.Use(CorsMiddleware(o.AllowedOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(GlobalRateLimiter())
}
