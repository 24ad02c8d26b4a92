package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MigrationsPath  string
}

type Config struct {
	App struct {
		Port string
	}
	Auth struct {
		// AdminPrincipals are always admins, regardless of role rows.
		AdminPrincipals []string
	}
	Postgres PostgresConfig
}

func NewConfig() (*Config, error) {
	// A missing .env is fine: real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	if admins := os.Getenv("ADMIN_PRINCIPALS"); admins != "" {
		for _, p := range strings.Split(admins, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Auth.AdminPrincipals = append(cfg.Auth.AdminPrincipals, p)
			}
		}
	}

	for _, v := range []struct {
		name string
		dst  *string
	}{
		{"DB_HOST", &cfg.Postgres.Host},
		{"DB_PORT", &cfg.Postgres.Port},
		{"DB_USER", &cfg.Postgres.User},
		{"DB_PASSWORD", &cfg.Postgres.Password},
		{"DB_NAME", &cfg.Postgres.DBName},
	} {
		*v.dst = os.Getenv(v.name)
		if *v.dst == "" {
			return nil, fmt.Errorf("%s is required", v.name)
		}
	}

	cfg.Postgres.SSLMode = os.Getenv("DB_SSLMODE")
	if cfg.Postgres.SSLMode == "" {
		cfg.Postgres.SSLMode = "disable"
	}

	cfg.Postgres.MigrationsPath = os.Getenv("MIGRATIONS_PATH")
	if cfg.Postgres.MigrationsPath == "" {
		cfg.Postgres.MigrationsPath = "migrations"
	}

	var err error
	if cfg.Postgres.MaxConns, err = int32Env("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.Postgres.MinConns, err = int32Env("DB_MIN_CONNS", 2); err != nil {
		return nil, err
	}

	cfg.Postgres.MaxConnLifetime = 30 * time.Minute
	if raw := os.Getenv("DB_MAX_CONN_LIFETIME"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_CONN_LIFETIME: %w", err)
		}
		cfg.Postgres.MaxConnLifetime = d
	}

	return cfg, nil
}

func int32Env(name string, fallback int32) (int32, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return int32(n), nil
}
