package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Env      string
	Port     string
	SiteURL  string
	Database DatabaseConfig
	JWT      JWTConfig
	Mail     MailConfig
	Log      LogConfig
	Workflow WorkflowConfig
	CORS     []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether an SMTP host is configured.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type LogConfig struct {
	Level  string
	Format string
}

type WorkflowConfig struct {
	// PublishOnApprove makes an "approved" review publish immediately.
	PublishOnApprove bool
}

// Load reads configuration from the environment. Call godotenv.Load first
// to pick up a .env file.
func Load() *Config {
	cfg := &Config{
		Env:     getEnv("APP_ENV", "development"),
		Port:    getEnv("PORT", "8080"),
		SiteURL: strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "newsroom"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: loadJWT(),
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("DEFAULT_FROM_EMAIL", "news@localhost"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Workflow: WorkflowConfig{
			PublishOnApprove: getEnvBool("PUBLISH_ON_APPROVE", true),
		},
		CORS: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
	}
	if cfg.Env == "production" && os.Getenv("LOG_FORMAT") == "" {
		cfg.Log.Format = "json"
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	hours := getEnvInt(key, 0)
	if hours <= 0 {
		return fallback
	}
	return time.Duration(hours) * time.Hour
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
