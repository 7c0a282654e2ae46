package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port                      string
	MongoURI                  string
	DBName                    string
	JWTSecret                 string
	AuthURL                   string
	AuthTimeout               time.Duration
	RequestTimeout            time.Duration
	MongoTransactions         bool
	NotificationsRequireLogin bool
	CleanupSchedule           string
	AllowedOrigins            []string
	LogLevel                  string
	Store                     string
}

// LoadConfig reads .env (when present) and the environment. It exits the process
// when the configuration is unusable.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, reading configuration from the environment")
	}

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	return cfg
}

// FromEnv builds a Config from a variable lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:            get("PORT", "8080"),
		MongoURI:        get("MONGO_URI", "mongodb://localhost:27017"),
		DBName:          get("DB_NAME", "marketplace"),
		JWTSecret:       get("JWT_SECRET", ""),
		AuthURL:         strings.TrimRight(get("AUTH_URL", ""), "/"),
		CleanupSchedule: get("CLEANUP_SCHEDULE", "@hourly"),
		LogLevel:        get("LOG_LEVEL", "info"),
		Store:           strings.ToLower(get("STORE", StoreMongo)),
	}

	var err error
	if cfg.AuthTimeout, err = duration(get("AUTH_TIMEOUT", "10s"), "AUTH_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = duration(get("REQUEST_TIMEOUT", "15s"), "REQUEST_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.MongoTransactions, err = boolean(get("MONGO_TRANSACTIONS", "false"), "MONGO_TRANSACTIONS"); err != nil {
		return nil, err
	}
	if cfg.NotificationsRequireLogin, err = boolean(get("NOTIFICATIONS_REQUIRE_LOGIN", "true"), "NOTIFICATIONS_REQUIRE_LOGIN"); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(get("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AuthURL == "" {
		return nil, fmt.Errorf("AUTH_URL is required")
	}
	if cfg.Store != StoreMongo && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("STORE must be %q or %q, got %q", StoreMongo, StoreMemory, cfg.Store)
	}
	return cfg, nil
}

func duration(value, key string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, value)
	}
	return d, nil
}

func boolean(value, key string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, value)
	}
	return b, nil
}
