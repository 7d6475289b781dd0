// Package config собирает настройки приложения из флагов и переменных окружения
package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит настройки приложения
type Config struct {
	RunAddr       string
	GRPCAddr      string
	BaseURL       string
	DatabaseDSN   string
	JWTSecret     string
	CookieTTL     time.Duration
	TrustedSubnet string
}

// NewConfig создаёт и возвращает новый объект Config. Значения по умолчанию
// перекрываются флагами командной строки, а те - переменными окружения.
// Файл .env, если он есть, подгружается до чтения окружения.
func NewConfig() (*Config, error) {
	// .env необязателен, его отсутствие не является ошибкой
	_ = godotenv.Load()

	cfg := &Config{
		RunAddr:       ":8080",
		GRPCAddr:      ":3200",
		BaseURL:       "http://localhost:8080",
		DatabaseDSN:   "",
		JWTSecret:     "default_jwt_secret",
		CookieTTL:     24 * time.Hour,
		TrustedSubnet: "",
	}

	// Регистрируем флаги
	flagRunAddr := flag.String("a", cfg.RunAddr, "address and port to run HTTP server")
	flagGRPCAddr := flag.String("g", cfg.GRPCAddr, "address and port to run gRPC server")
	flagBaseURL := flag.String("b", cfg.BaseURL, "base URL for shortened links")
	flagDatabaseDSN := flag.String("d", "", "database DSN for PostgreSQL")
	flagJWTSecret := flag.String("j", cfg.JWTSecret, "JWT secret key")
	flagCookieTTL := flag.Duration("c", cfg.CookieTTL, "session cookie lifetime")
	flagTrustedSubnet := flag.String("t", "", "trusted subnet in CIDR notation for internal stats")
	flag.Parse()

	cfg.RunAddr = *flagRunAddr
	cfg.GRPCAddr = *flagGRPCAddr
	cfg.BaseURL = *flagBaseURL
	cfg.DatabaseDSN = *flagDatabaseDSN
	cfg.JWTSecret = *flagJWTSecret
	cfg.CookieTTL = *flagCookieTTL
	cfg.TrustedSubnet = *flagTrustedSubnet

	// Переменные окружения имеют приоритет над флагами
	if addr := os.Getenv("RUN_ADDRESS"); addr != "" {
		cfg.RunAddr = addr
	}
	if addr := os.Getenv("GRPC_ADDRESS"); addr != "" {
		cfg.GRPCAddr = addr
	}
	if url := os.Getenv("BASE_URL"); url != "" {
		cfg.BaseURL = url
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}
	if ttl := os.Getenv("COOKIE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, err
		}
		cfg.CookieTTL = d
	}
	if subnet := os.Getenv("TRUSTED_SUBNET"); subnet != "" {
		cfg.TrustedSubnet = subnet
	}

	// Валидация значений
	if !strings.Contains(cfg.RunAddr, ":") {
		cfg.RunAddr = ":" + cfg.RunAddr
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		cfg.BaseURL = "http://" + cfg.BaseURL
	}

	return cfg, nil
}
