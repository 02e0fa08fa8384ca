// internals/features/employees/service/auth_service.go
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	empModel "qrstudio_backend/internals/features/employees/model"
	helperAuth "qrstudio_backend/internals/helpers/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// Repository = akses hr.employee.
type Repository interface {
	ListActive(ctx context.Context) ([]empModel.Employee, error)
	FindActiveByEmail(ctx context.Context, email string) (*empModel.Employee, error)
	Create(ctx context.Context, e empModel.NewEmployee) (int64, error)
}

type AuthConfig struct {
	JWTSecret         string
	JWTTTL            time.Duration
	AdminEmail        string
	AdminPasswordHash string // bcrypt
}

type EmployeeService struct {
	repo Repository
	cfg  AuthConfig
	now  func() time.Time
}

func NewEmployeeService(repo Repository, cfg AuthConfig) *EmployeeService {
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 12 * time.Hour
	}
	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	return &EmployeeService{repo: repo, cfg: cfg, now: time.Now}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Role      string
	Employee  *empModel.Employee // nil untuk admin
}

/* ====================== LOGIN ====================== */

// Login: role "admin" → kredensial env (bcrypt); role "user" → email hr.employee + DNI.
func (s *EmployeeService) Login(ctx context.Context, email, password, role string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if role == helperAuth.RoleAdmin {
		return s.loginAdmin(email, password)
	}

	emp, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if emp == nil {
		return LoginResult{}, ErrEmployeeNotFound
	}
	dni := strings.TrimSpace(emp.IdentificationID.Value)
	if dni == "" || subtle.ConstantTimeCompare([]byte(dni), []byte(strings.TrimSpace(password))) != 1 {
		return LoginResult{}, ErrInvalidCredentials
	}

	claims := helperAuth.Claims{
		EmployeeID: emp.ID,
		Role:       helperAuth.RoleUser,
		Name:       emp.Name,
		Email:      email,
	}
	tok, exp, err := helperAuth.IssueToken(s.cfg.JWTSecret, s.cfg.JWTTTL, claims, s.now())
	if err != nil {
		return LoginResult{}, err
	}
	log.Printf("[INFO] login employee id=%d", emp.ID)
	return LoginResult{Token: tok, ExpiresAt: exp, Role: helperAuth.RoleUser, Employee: emp}, nil
}

func (s *EmployeeService) loginAdmin(email, password string) (LoginResult, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPasswordHash == "" {
		log.Println("[WARN] login admin ditolak: ADMIN_EMAIL / ADMIN_PASSWORD_HASH belum diset")
		return LoginResult{}, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.AdminEmail)) != 1 {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, exp, err := helperAuth.IssueToken(s.cfg.JWTSecret, s.cfg.JWTTTL, helperAuth.Claims{
		Role:  helperAuth.RoleAdmin,
		Email: email,
	}, s.now())
	if err != nil {
		return LoginResult{}, err
	}
	log.Printf("[INFO] login admin %s", email)
	return LoginResult{Token: tok, ExpiresAt: exp, Role: helperAuth.RoleAdmin}, nil
}

/* ====================== EMPLOYEES ====================== */

func (s *EmployeeService) List(ctx context.Context) ([]empModel.Employee, error) {
	return s.repo.ListActive(ctx)
}

// Register membuat hr.employee baru; email harus belum dipakai employee aktif.
func (s *EmployeeService) Register(ctx context.Context, e empModel.NewEmployee) (int64, error) {
	existing, err := s.repo.FindActiveByEmail(ctx, e.WorkEmail)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrEmailTaken
	}
	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return 0, err
	}
	log.Printf("[INFO] employee baru id=%d", id)
	return id, nil
}
