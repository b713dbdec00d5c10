package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	StabilityAPIKey   string
	StabilityBaseURL  string
	StabilityEngine   string
	GeoIPDBPath       string
	CORSOrigins       []string
	BodyLimitBytes    int64
	GenerationTimeout time.Duration
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// DATABASE_URL and STABILITY_API_KEY are optional: without a database the gallery lives in
// memory, and without a key the generate endpoint reports the missing configuration.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		StabilityAPIKey:   strings.TrimSpace(os.Getenv("STABILITY_API_KEY")),
		StabilityBaseURL:  getEnv("STABILITY_BASE_URL", "https://api.stability.ai"),
		StabilityEngine:   getEnv("STABILITY_ENGINE", "stable-diffusion-xl-1024-v1-0"),
		GeoIPDBPath:       os.Getenv("GEOIP_DB_PATH"),
		CORSOrigins:       splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		BodyLimitBytes:    int64(getEnvInt("BODY_LIMIT_BYTES", 50<<20)),
		GenerationTimeout: time.Second * time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 120)),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 150)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}
	return cfg, nil
}

// MaskedAPIKey returns the first characters of the provider key for startup logs.
func (c *Config) MaskedAPIKey() string {
	if c == nil || c.StabilityAPIKey == "" {
		return "none"
	}
	key := c.StabilityAPIKey
	if len(key) > 5 {
		key = key[:5]
	}
	return key + "..."
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
