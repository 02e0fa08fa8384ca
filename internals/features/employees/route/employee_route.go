package route

import (
	"github.com/gofiber/fiber/v2"

	empCtrl "qrstudio_backend/internals/features/employees/controller"
	"qrstudio_backend/internals/features/employees/service"
	helperAuth "qrstudio_backend/internals/helpers/auth"
	rateLimiter "qrstudio_backend/internals/middlewares"
	authMw "qrstudio_backend/internals/middlewares/auth"
)

// EmployeeRoutes → /users/login, /users/register, /users/employees
func EmployeeRoutes(r fiber.Router, s *service.EmployeeService, jwtSecret string) {
	ctl := empCtrl.NewEmployeeController(s)

	g := r.Group("/users")
	g.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	g.Post("/register", rateLimiter.RegisterRateLimiter(), ctl.Register)

	// 🔐 daftar employee hanya untuk admin
	// tanpa JWT_SECRET tidak ada token valid, OnlyRoles selalu menolak
	g.Get("/employees",
		authMw.AuthJWT(authMw.AuthJWTOpts{Secret: jwtSecret, Optional: jwtSecret == ""}),
		authMw.OnlyRoles("Solo administradores", helperAuth.RoleAdmin),
		ctl.List,
	)
}
