package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	SecretKey     []byte
	SecureCookies = true
)

type Config struct {
	ServerAddr      string        `env:"SERVER_ADDR,default=:8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`

	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER,default=postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,default=enfes"`
	DBSSLMode  string `env:"DB_SSLMODE,default=disable"`

	JWTSecret string `env:"JWT_SECRET_KEY"`

	// requests per second and burst for /login and /join, per client
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT,default=1"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST,default=5"`

	SecureCookies bool `env:"SECURE_COOKIES,default=true"`
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Load reads .env when present and decodes the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT secret key not set")
	}
	return &cfg, nil
}

func Init() *Config {
	cfg, err := Load()
	if err != nil {
		logrus.Fatalf("failed to load config, error: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	SecretKey = []byte(cfg.JWTSecret)
	SecureCookies = cfg.SecureCookies
	return cfg
}
