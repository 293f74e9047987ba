package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/luisfsill/Ponto-Digital/internal/service/timebank"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	Ponto        PontoConfig
}

type DatabaseConfig struct {
	// URL overrides the individual fields when set.
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// PublicURL is the base used for the check-in links printed on QR codes.
	PublicURL          string
	FrontendURL        string
	CORSAllowedOrigins []string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func (c OAuth2GoogleConfig) Enabled() bool {
	return c.ClientID != ""
}

type PontoConfig struct {
	Timezone        string
	Location        *time.Location
	ExpectedMinutes int
	UseUserSchedule bool
	NegativePairs   timebank.NegativePairPolicy
	TrailingEntrada timebank.TrailingEntradaPolicy
	CleanupInterval time.Duration
}

// Policy builds the balance policy for the report service.
func (p PontoConfig) Policy() timebank.Policy {
	policy := timebank.DefaultPolicy(p.Location)
	policy.ExpectedMinutes = p.ExpectedMinutes
	policy.NegativePairs = p.NegativePairs
	policy.TrailingEntrada = p.TrailingEntrada
	return policy
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ponto_digital"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		PublicURL:          getEnv("APP_PUBLIC_URL", fmt.Sprintf("http://localhost:%d", appPort)),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.App.CORSAllowedOrigins) == 0 {
		config.App.CORSAllowedOrigins = []string{config.App.FrontendURL}
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	refreshExpiration, err := time.ParseDuration(getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  accessExpiration,
		RefreshExpiration: refreshExpiration,
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}
	if len(config.OAuth2Google.Scopes) == 0 {
		config.OAuth2Google.Scopes = []string{"https://www.googleapis.com/auth/userinfo.email"}
	}

	// Ponto configuration
	if config.Ponto, err = loadPonto(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPonto() (PontoConfig, error) {
	p := PontoConfig{
		Timezone: getEnv("PONTO_TIMEZONE", "America/Sao_Paulo"),
	}

	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return PontoConfig{}, fmt.Errorf("invalid PONTO_TIMEZONE: %w", err)
	}
	p.Location = loc

	if p.ExpectedMinutes, err = strconv.Atoi(getEnv("BALANCE_EXPECTED_MINUTES", strconv.Itoa(timebank.DefaultExpectedMinutes))); err != nil {
		return PontoConfig{}, fmt.Errorf("invalid BALANCE_EXPECTED_MINUTES: %w", err)
	}

	if p.UseUserSchedule, err = strconv.ParseBool(getEnv("BALANCE_USE_USER_SCHEDULE", "false")); err != nil {
		return PontoConfig{}, fmt.Errorf("invalid BALANCE_USE_USER_SCHEDULE: %w", err)
	}

	var ok bool
	if p.NegativePairs, ok = timebank.ParseNegativePairPolicy(getEnv("BALANCE_NEGATIVE_PAIRS", string(timebank.NegativePairsAllow))); !ok {
		return PontoConfig{}, fmt.Errorf("invalid BALANCE_NEGATIVE_PAIRS: must be allow or clamp")
	}
	if p.TrailingEntrada, ok = timebank.ParseTrailingEntradaPolicy(getEnv("BALANCE_TRAILING_ENTRADA", string(timebank.TrailingEntradaUnpaired))); !ok {
		return PontoConfig{}, fmt.Errorf("invalid BALANCE_TRAILING_ENTRADA: must be unpaired or pending")
	}

	if p.CleanupInterval, err = time.ParseDuration(getEnv("TOKEN_CLEANUP_INTERVAL", "1h")); err != nil {
		return PontoConfig{}, fmt.Errorf("invalid TOKEN_CLEANUP_INTERVAL: %w", err)
	}

	return p, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD or DATABASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 || c.JWT.RefreshExpiration <= 0 {
		return fmt.Errorf("JWT expiration times must be positive")
	}
	if c.OAuth2Google.Enabled() {
		if c.OAuth2Google.ClientSecret == "" {
			return fmt.Errorf("CLIENT_SECRET is required when CLIENT_ID is set")
		}
		if c.OAuth2Google.RedirectURL == "" {
			return fmt.Errorf("REDIRECT_URL is required when CLIENT_ID is set")
		}
	}
	if c.Ponto.ExpectedMinutes <= 0 {
		return fmt.Errorf("BALANCE_EXPECTED_MINUTES must be positive")
	}
	if c.Ponto.CleanupInterval <= 0 {
		return fmt.Errorf("TOKEN_CLEANUP_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
