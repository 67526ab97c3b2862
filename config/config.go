package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	envAddr     = "ADDR"
	envPromAddr = "PROM_ADDR"
	envDriver   = "DB_DRIVER"
	envDsn      = "DSN"
	envGitRev   = "GIT_REV"

	DefaultPath = "config.yml"

	defaultAddr     = "0.0.0.0:8080"
	defaultPromAddr = "127.0.0.1:9100"
	defaultDriver   = "sqlite"
	defaultDsn      = "file:subway.db?_pragma=foreign_keys(1)"
)

type ServerConfig struct {
	Addr     string `yaml:"addr" validate:"required,hostname_port"`
	PromAddr string `yaml:"promAddr" validate:"required,hostname_port"`
	// Version is reported by the status handler
	Version string `yaml:"version"`
}

type DBConfig struct {
	Driver          string        `yaml:"driver" validate:"required,oneof=mysql sqlite"`
	DSN             string        `yaml:"dsn" validate:"required"`
	MaxOpenConns    int           `yaml:"maxOpenConns" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"maxIdleConns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime" validate:"gte=0"`
	ConnMaxIdleTime time.Duration `yaml:"connMaxIdleTime" validate:"gte=0"`
}

type Config struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	DB     DBConfig     `yaml:"db" validate:"required"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:     defaultAddr,
			PromAddr: defaultPromAddr,
		},
		DB: DBConfig{
			Driver:          defaultDriver,
			DSN:             defaultDsn,
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
		},
	}
}

// Load reads path on top of the defaults, applies environment overrides and
// validates the result. A missing file is fine, a broken one is not.
func Load(path string) (*Config, error) {
	cfg := defaults()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(envAddr); ok {
		cfg.Server.Addr = v
	}
	if v, ok := os.LookupEnv(envPromAddr); ok {
		cfg.Server.PromAddr = v
	}
	if v, ok := os.LookupEnv(envDriver); ok {
		cfg.DB.Driver = v
	}
	if v, ok := os.LookupEnv(envDsn); ok {
		cfg.DB.DSN = v
	}
	if v, ok := os.LookupEnv(envGitRev); ok {
		cfg.Server.Version = v
	}
}
