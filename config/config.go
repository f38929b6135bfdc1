package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	CORSAllowedOrigins []string
	// MatchAutoStartInterval of zero disables the auto-start job.
	MatchAutoStartInterval time.Duration
	Location               *time.Location

	AdminEmail    string
	AdminPassword string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

const (
	defaultPort              = "8080"
	defaultTimezone          = "Asia/Seoul"
	defaultAutoStartInterval = time.Minute
)

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := getenv("SERVER_PORT")
	if portStr == "" {
		portStr = defaultPort
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	interval := defaultAutoStartInterval
	if v := getenv("MATCH_AUTOSTART_INTERVAL"); v != "" {
		interval, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MATCH_AUTOSTART_INTERVAL environment variable: %w", err)
		}
		if interval < 0 {
			return nil, fmt.Errorf("MATCH_AUTOSTART_INTERVAL must not be negative, got %s", interval)
		}
	}

	tz := getenv("TIMEZONE")
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE environment variable: %w", err)
	}

	adminEmail, adminPassword := getenv("ADMIN_EMAIL"), getenv("ADMIN_PASSWORD")
	if (adminEmail == "") != (adminPassword == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	cfg := &Config{
		DatabaseURL:            dbURL,
		JWTSecretKey:           jwtKey,
		ServerPort:             port,
		CORSAllowedOrigins:     splitList(getenv("CORS_ALLOWED_ORIGINS")),
		MatchAutoStartInterval: interval,
		Location:               loc,
		AdminEmail:             adminEmail,
		AdminPassword:          adminPassword,
		R2AccountID:            getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:          getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:      getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:           getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:        getenv("R2_PUBLIC_BASE_URL"),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
