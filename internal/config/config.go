package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// VariantType identifies one of the supported schema shapes. The set is
// closed: new titles need a code change, not configuration.
type VariantType string

const (
	VariantNHL10     VariantType = "nhl10"     // single-table, full endpoint set
	VariantNHL11     VariantType = "nhl11"     // single-table, basic endpoints, no cache
	VariantNHL14     VariantType = "nhl14"     // dual-table VS/SO split
	VariantNHLLegacy VariantType = "nhllegacy" // dual-table, UNION ALL merges
)

// Namespace is the cache key namespace for the variant. nhl14 kept the
// bare "nhl" namespace from before the legacy split was separated.
func (t VariantType) Namespace() string {
	if t == VariantNHL14 {
		return "nhl"
	}
	return string(t)
}

// VariantConfig wires one game title to its database and route prefix.
type VariantConfig struct {
	Name        string
	Type        VariantType
	Enabled     bool
	DatabaseURL string `validate:"required"`
	Driver      string `validate:"oneof=pgx postgres mysql"`
	RoutePrefix string `validate:"required,startswith=/"`
}

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Cache; empty disables caching entirely
	RedisURL string

	// Rate limiting
	RateLimitPermits int
	RateLimitWindow  time.Duration
	RateLimitQueue   int

	Variants []VariantConfig
}

// variantNames is the closed variant set and env prefix per variant.
var variantNames = []struct {
	name string
	typ  VariantType
}{
	{"NHL10", VariantNHL10},
	{"NHL11", VariantNHL11},
	{"NHL14", VariantNHL14},
	{"NHLLEGACY", VariantNHLLegacy},
}

// Load reads configuration from environment variables. Disabled variants
// are skipped; enabled ones are validated and returned in declaration
// order.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		RedisURL: getEnv("REDIS_URL", ""),

		RateLimitPermits: getEnvInt("RATE_LIMIT_PERMITS", 120),
		RateLimitWindow:  getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitQueue:   getEnvInt("RATE_LIMIT_QUEUE", 10),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	validate := validator.New()
	for _, v := range variantNames {
		vc := VariantConfig{
			Name:        v.name,
			Type:        v.typ,
			Enabled:     getEnvBool(v.name+"_ENABLED", false),
			DatabaseURL: getEnv(v.name+"_DATABASE_URL", ""),
			Driver:      getEnv(v.name+"_DATABASE_DRIVER", "pgx"),
			RoutePrefix: getEnv(v.name+"_ROUTE_PREFIX", "/"+strings.ToLower(v.name)),
		}
		if !vc.Enabled {
			continue
		}
		if err := validate.Struct(vc); err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.name, err)
		}
		cfg.Variants = append(cfg.Variants, vc)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
