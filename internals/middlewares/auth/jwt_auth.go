// internals/middlewares/auth/jwt_auth.go
package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	helperAuth "qrstudio_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret string
	// Optional=true → request tanpa Bearer tetap lolos (AUTH_REQUIRED=false);
	// token yang dikirim tetap diverifikasi.
	Optional bool
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" && !o.Optional {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		}
		if raw == "" {
			if o.Optional {
				return c.Next()
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		if secret == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		// 2) Parse + verifikasi algoritma
		claims, err := helperAuth.ParseToken(secret, raw)
		if err != nil {
			log.Printf("[WARN] AuthJWT %s %s: %v", c.Method(), c.Path(), err)
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		// 3) Hydrate locals
		c.Locals(helperAuth.LocClaims, claims)
		c.Locals(helperAuth.LocRole, claims.Role)
		if claims.EmployeeID > 0 {
			c.Locals(helperAuth.LocEmployeeID, claims.EmployeeID)
		}
		return c.Next()
	}
}
