package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edutech/studify/internal/pkg/helpers"
	"github.com/edutech/studify/internal/pkg/logger"
)

// Config is the full application configuration, loaded from YAML with
// environment variable overrides applied on top.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Logging  LoggingConfig  `yaml:"logging"`
	Seed     SeedConfig     `yaml:"seed"`
}

type ServerConfig struct {
	Host            string `yaml:"host" env:"SERVER_HOST"`
	Port            int    `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     string `yaml:"readTimeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    string `yaml:"writeTimeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout string `yaml:"shutdownTimeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host" env:"DB_HOST"`
	Port         int    `yaml:"port" env:"DB_PORT"`
	User         string `yaml:"user" env:"DB_USER"`
	Password     string `yaml:"password" env:"DB_PASSWORD"`
	Name         string `yaml:"name" env:"DB_NAME"`
	SSLMode      string `yaml:"sslMode" env:"DB_SSLMODE"`
	MaxConns     int    `yaml:"maxConns" env:"DB_MAX_CONNS"`
	MinConns     int    `yaml:"minConns" env:"DB_MIN_CONNS"`
	AutoMigrate  bool   `yaml:"autoMigrate" env:"DB_AUTO_MIGRATE"`
	MigrationDir string `yaml:"migrationDir" env:"DB_MIGRATION_DIR"`
}

type JWTConfig struct {
	Secret          string `yaml:"secret" env:"JWT_SECRET"`
	AccessTokenExp  string `yaml:"accessTokenExp" env:"JWT_ACCESS_TOKEN_EXP"`
	RefreshTokenExp string `yaml:"refreshTokenExp" env:"JWT_REFRESH_TOKEN_EXP"`
	Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY"`
}

// SeedConfig controls the bootstrap admin account created on first start.
type SeedConfig struct {
	AdminUsername string `yaml:"adminUsername" env:"SEED_ADMIN_USERNAME"`
	AdminEmail    string `yaml:"adminEmail" env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `yaml:"adminPassword" env:"SEED_ADMIN_PASSWORD"`
}

// LoadConfig reads the YAML file at path, applies env overrides and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		logger.Warn().Str("path", path).Msg("Config file not found, using defaults and environment")
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			ShutdownTimeout: "10s",
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "postgres",
			Name:         "studify",
			SSLMode:      "disable",
			MaxConns:     10,
			MinConns:     2,
			AutoMigrate:  true,
			MigrationDir: "migrations",
		},
		JWT: JWTConfig{
			AccessTokenExp:  "1h",
			RefreshTokenExp: "168h",
			Issuer:          "studify-api",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: false,
		},
		Seed: SeedConfig{
			AdminUsername: "admin",
			AdminEmail:    "admin@studify.local",
		},
	}
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret must be set (JWT_SECRET)")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name must be set")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}

// DSN builds the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// AccessTokenDuration parses the configured access token lifetime.
func (j JWTConfig) AccessTokenDuration() time.Duration {
	return helpers.ParseDuration(j.AccessTokenExp, time.Hour)
}

// RefreshTokenDuration parses the configured refresh token lifetime.
func (j JWTConfig) RefreshTokenDuration() time.Duration {
	return helpers.ParseDuration(j.RefreshTokenExp, 7*24*time.Hour)
}
