// internals/helpers/auth/claims.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Key Locals yang diisi middleware AuthJWT
const (
	LocClaims     = "jwt_claims"
	LocEmployeeID = "employee_id"
	LocRole       = "role"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const issuer = "qrstudio"

// Claims = isi access token. EmployeeID = id hr.employee (0 untuk admin env).
type Claims struct {
	EmployeeID int64  `json:"employee_id,omitempty"`
	Role       string `json:"role"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken menandatangani claims dengan HS256.
func IssueToken(secret string, ttl time.Duration, c Claims, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	exp := now.Add(ttl)
	c.Issuer = issuer
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(exp)
	if c.Subject == "" && c.EmployeeID > 0 {
		c.Subject = fmt.Sprintf("%d", c.EmployeeID)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken memverifikasi signature (HMAC saja) + exp.
func ParseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

/* ====================== CTX ====================== */

func ClaimsFromCtx(c *fiber.Ctx) (*Claims, bool) {
	cl, ok := c.Locals(LocClaims).(*Claims)
	return cl, ok && cl != nil
}

func RoleFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocRole).(string); ok {
		return s
	}
	return ""
}

// EnsureEmployee: tanpa token (auth opsional) → lolos; admin → lolos;
// user hanya boleh mengakses employee_id miliknya sendiri.
func EnsureEmployee(c *fiber.Ctx, employeeID int64) error {
	cl, ok := ClaimsFromCtx(c)
	if !ok {
		return nil
	}
	if cl.Role == RoleAdmin {
		return nil
	}
	if cl.EmployeeID != employeeID {
		return fiber.NewError(fiber.StatusForbidden, "No puedes operar sobre otro empleado")
	}
	return nil
}
