package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"qrstudio_backend/internals/configs"
	database "qrstudio_backend/internals/databases"
	attRepo "qrstudio_backend/internals/features/attendance/repository"
	attService "qrstudio_backend/internals/features/attendance/service"
	auditService "qrstudio_backend/internals/features/audit/service"
	diagService "qrstudio_backend/internals/features/diagnostic/service"
	empRepo "qrstudio_backend/internals/features/employees/repository"
	empService "qrstudio_backend/internals/features/employees/service"
	helper "qrstudio_backend/internals/helpers"
	"qrstudio_backend/internals/helpers/odoo"
	middlewares "qrstudio_backend/internals/middlewares"
	routes "qrstudio_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		// error yang lolos dari handler tetap pakai envelope JSON
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})

	// ⚙️ middleware dasar
	middlewares.SetupMiddlewares(app, middlewares.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		TimeZone:       cfg.CivilTimezone,
		RequestTimeout: cfg.Odoo.Timeout + 5*time.Second,
		Production:     cfg.Environment == "production",
	})
	app.Use(etag.New())

	// 🔌 Odoo client (wajib)
	odooClient, err := odoo.NewClient(cfg.Odoo)
	if err != nil {
		log.Fatalf("odoo client: %v", err)
	}
	loc := cfg.Location()
	log.Printf("[INFO] zona waktu sipil: %s", loc)

	// 🔌 DB audit (opsional)
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	database.TunePool(db)

	recOpts := []attService.Option{}
	var pingDB func(ctx context.Context) error
	if db != nil {
		if err := auditService.Migrate(db); err != nil {
			log.Fatalf("audit migrate: %v", err)
		}
		recOpts = append(recOpts, attService.WithRecorder(auditService.NewAuditService(db)))
		pingDB = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	store := attRepo.NewOdooStore(odooClient, loc, attRepo.WithGeoFields(cfg.GPSFields))
	reconciler := attService.NewReconciler(store, loc, recOpts...)

	employees := empService.NewEmployeeService(empRepo.NewEmployeeRepository(odooClient), empService.AuthConfig{
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTTTL,
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		Health: routes.HealthDeps{
			Odoo:        odooClient,
			OdooConfig:  cfg.Odoo,
			PingDB:      pingDB,
			Version:     cfg.Version,
			Environment: cfg.Environment,
		},
		Reconciler:   reconciler,
		Employees:    employees,
		Tasks:        odooClient,
		GPS:          diagService.NewGPSDiagnostic(odooClient, odooClient.URL(), odooClient.Database()),
		JWTSecret:    cfg.JWTSecret,
		AuthRequired: cfg.AuthRequired,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(db)
	log.Println("👋 server stopped")
}
