package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"qrstudio_backend/internals/helpers/civiltime"
	"qrstudio_backend/internals/helpers/odoo"
)

// =======================
// APP CONFIG
// =======================

type AppConfig struct {
	Port        string
	Environment string
	Version     string

	Odoo odoo.Config

	// GPSFields=true → x_latitude/x_longitude/x_accuracy(_out) ada di hr.attendance
	GPSFields bool

	// Zona sipil untuk semua timestamp attendance (default America/Lima)
	CivilTimezone string

	JWTSecret string
	JWTTTL    time.Duration
	// AuthRequired=true → route attendance/task wajib Bearer token
	AuthRequired bool

	AdminEmail        string
	AdminPasswordHash string // bcrypt

	AllowedOrigins []string

	DB DBConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Enabled = audit DB opsional; tanpa DB_HOST, audit log dimatikan.
func (d DBConfig) Enabled() bool {
	return strings.TrimSpace(d.Host) != ""
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=qrstudio&options=-c statement_timeout=3000",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

func (c AppConfig) Location() *time.Location {
	return civiltime.Load(c.CivilTimezone)
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

// Load membaca ENV (panggil LoadEnv lebih dulu) menjadi AppConfig.
func Load() (AppConfig, error) {
	uid, err := parseInt64("ODOO_USER_ID", 0)
	if err != nil {
		return AppConfig{}, err
	}
	odooTimeout, err := parseDuration("ODOO_TIMEOUT", 10*time.Second)
	if err != nil {
		return AppConfig{}, err
	}
	jwtTTL, err := parseDuration("JWT_TTL", 12*time.Hour)
	if err != nil {
		return AppConfig{}, err
	}

	cfg := AppConfig{
		Port:        GetEnv("PORT", "3000"),
		Environment: GetEnv("APP_ENV", GetEnv("RAILWAY_ENVIRONMENT", "development")),
		Version:     GetEnv("APP_VERSION", "2.0.0"),
		Odoo: odoo.Config{
			URL:      GetEnv("ODOO_URL"),
			Database: GetEnv("ODOO_DATABASE"),
			UID:      uid,
			APIKey:   GetEnv("ODOO_API_KEY"),
			Timeout:  odooTimeout,
		},
		GPSFields:         parseBool("ODOO_GPS_FIELDS", false),
		CivilTimezone:     GetEnv("CIVIL_TIMEZONE", civiltime.DefaultZone),
		JWTSecret:         GetEnv("JWT_SECRET"),
		JWTTTL:            jwtTTL,
		AuthRequired:      parseBool("AUTH_REQUIRED", false),
		AdminEmail:        strings.ToLower(strings.TrimSpace(GetEnv("ADMIN_EMAIL"))),
		AdminPasswordHash: GetEnv("ADMIN_PASSWORD_HASH"),
		AllowedOrigins:    splitCSV(GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		DB: DBConfig{
			Host:     GetEnv("DB_HOST"),
			Port:     GetEnv("DB_PORT", "5432"),
			User:     GetEnv("DB_USER"),
			Password: GetEnv("DB_PASSWORD"),
			Name:     GetEnv("DB_NAME"),
			SSLMode:  GetEnv("DB_SSLMODE", "require"),
		},
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
		if cfg.AuthRequired {
			return AppConfig{}, fmt.Errorf("AUTH_REQUIRED=true but JWT_SECRET is empty")
		}
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
	if err := cfg.Odoo.Validate(); err != nil {
		log.Printf("❌ %v", err)
	}
	return cfg, nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func parseInt64(key string, fallback int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
