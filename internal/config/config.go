package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const devJWTSecret = "gallery-store-dev-secret"

type Config struct {
	GinMode          string
	ServiceName      string
	EndpointPrefix   string
	HTTPPort         int
	GRPCPort         int
	JWTSecret        string
	TokenTTL         time.Duration
	LogLevel         slog.Level
	SeedData         bool
	KafkaBrokers     []string
	KafkaTopicPrefix string
	ConsulAddress    string
	ServiceAddress   string
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var err error
	cfg := Config{
		GinMode:          getenv("GIN_MODE", gin.DebugMode),
		ServiceName:      getenv("SERVICE_NAME", "gallery-store"),
		EndpointPrefix:   getenv("SERVICE_ENDPOINT_PREFIX", "/api"),
		KafkaTopicPrefix: getenv("KAFKA_TOPIC_PREFIX", "gallery-store"),
		ConsulAddress:    os.Getenv("CONSUL_HTTP_ADDR"),
		ServiceAddress:   getenv("SERVICE_ADDRESS", "localhost"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
	}

	if cfg.HTTPPort, err = intEnv("HTTP_PORT", 8080); err != nil {
		return Config{}, err
	}
	if cfg.GRPCPort, err = intEnv("GRPC_PORT", 5001); err != nil {
		return Config{}, err
	}
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SeedData, err = boolEnv("SEED_DATA", true); err != nil {
		return Config{}, err
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == gin.ReleaseMode {
			return Config{}, errors.New("JWT_SECRET is required in release mode")
		}
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > 65535 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, v)
	}
	return b, nil
}
