package routes

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"qrstudio_backend/internals/helpers/odoo"
)

const (
	checkUp       = "up"
	checkDown     = "down"
	checkDisabled = "disabled"

	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"

	healthTimeout = 3 * time.Second
)

// VersionChecker = odoo.Client.Version; diganti fake di test.
type VersionChecker interface {
	Version(ctx context.Context) (odoo.VersionInfo, error)
}

type HealthDeps struct {
	Odoo       VersionChecker
	OdooConfig odoo.Config
	// PingDB nil → audit DB tidak dipakai
	PingDB      func(ctx context.Context) error
	Version     string
	Environment string
}

type CheckStatus struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime int64  `json:"responseTime,omitempty"` // ms
}

type HealthResult struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Uptime      float64                `json:"uptime"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment,omitempty"`
	Checks      map[string]CheckStatus `json:"checks"`
}

func BaseRoutes(app *fiber.App, d HealthDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("QR Studio attendance backend 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		res := runHealth(c.UserContext(), d)
		if res.Status != StatusHealthy {
			log.Printf("[WARN] health %s: %+v", res.Status, res.Checks)
		}
		code := fiber.StatusOK
		if res.Status == StatusUnhealthy {
			code = fiber.StatusServiceUnavailable
		}
		c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
		return c.Status(code).JSON(res)
	})

	// HEAD /health: cek env saja, tanpa round-trip Odoo
	app.Head("/health", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
		if d.OdooConfig.Validate() != nil {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}
		return c.SendStatus(fiber.StatusOK)
	})
}

func runHealth(ctx context.Context, d HealthDeps) HealthResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	checks := map[string]CheckStatus{
		"environment": checkEnvironment(d.OdooConfig),
		"odoo":        checkOdoo(ctx, d.Odoo),
		"audit_db":    checkDB(ctx, d.PingDB),
	}
	checks["api"] = CheckStatus{Status: checkUp, Message: "API funcionando", ResponseTime: time.Since(start).Milliseconds()}

	// Odoo / env mati → unhealthy; audit DB mati cuma degraded
	status := StatusHealthy
	switch {
	case checks["environment"].Status == checkDown, checks["odoo"].Status == checkDown:
		status = StatusUnhealthy
	case checks["audit_db"].Status == checkDown:
		status = StatusDegraded
	}

	return HealthResult{
		Status:      status,
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(startTime).Seconds(),
		Version:     d.Version,
		Environment: d.Environment,
		Checks:      checks,
	}
}

func checkEnvironment(cfg odoo.Config) CheckStatus {
	if err := cfg.Validate(); err != nil {
		return CheckStatus{Status: checkDown, Message: err.Error()}
	}
	return CheckStatus{Status: checkUp, Message: "Todas las variables de entorno configuradas"}
}

func checkOdoo(ctx context.Context, v VersionChecker) CheckStatus {
	if v == nil {
		return CheckStatus{Status: checkDown, Message: "Cliente Odoo no inicializado"}
	}
	start := time.Now()
	info, err := v.Version(ctx)
	ms := time.Since(start).Milliseconds()
	if err != nil {
		return CheckStatus{Status: checkDown, Message: err.Error(), ResponseTime: ms}
	}
	return CheckStatus{Status: checkUp, Message: "Odoo " + info.ServerVersion, ResponseTime: ms}
}

func checkDB(ctx context.Context, ping func(context.Context) error) CheckStatus {
	if ping == nil {
		return CheckStatus{Status: checkDisabled, Message: "Auditoría desactivada"}
	}
	start := time.Now()
	if err := ping(ctx); err != nil {
		return CheckStatus{Status: checkDown, Message: err.Error(), ResponseTime: time.Since(start).Milliseconds()}
	}
	return CheckStatus{Status: checkUp, ResponseTime: time.Since(start).Milliseconds()}
}
