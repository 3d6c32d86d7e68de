package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/db"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string    `yaml:"env" env:"ENV" env-default:"local" validate:"oneof=local dev test prod"`
	LogLevel  string    `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	HTTP      HTTP      `yaml:"http"`
	GRPC      GRPC      `yaml:"grpc"`
	Postgres  PG        `yaml:"postgres"`
	Redis     Redis     `yaml:"redis"`
	Telemetry Telemetry `yaml:"telemetry"`
	Limiter   Limiter   `yaml:"limiter"`
}

type HTTP struct {
	Port    int           `yaml:"port" env:"PORT" validate:"required,min=1,max=65535"`
	Timeout time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"4s" validate:"gt=0"`
}

type GRPC struct {
	Port    int           `yaml:"port" env:"GRPC_PORT" env-default:"50052" validate:"min=1,max=65535"`
	Timeout time.Duration `yaml:"timeout" env:"GRPC_TIMEOUT" env-default:"4s" validate:"gt=0"`
}

type PG struct {
	URL             string        `yaml:"url" env:"DATABASE_URL" validate:"required"`
	MigrationsPath  string        `yaml:"migrations_path" env:"MIGRATIONS_PATH"`
	MaxConns        int32         `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"10" validate:"gte=1"`
	MinConns        int32         `yaml:"min_conns" env:"DB_MIN_CONNS" env-default:"2" validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DB_MAX_CONN_LIFETIME" env-default:"1h" validate:"gt=0"`
}

func (p PG) Pool() db.PoolConfig {
	return db.PoolConfig{
		MaxConns:        p.MaxConns,
		MinConns:        p.MinConns,
		MaxConnLifetime: p.MaxConnLifetime,
	}
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379" validate:"required,hostname_port"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0" validate:"gte=0"`
}

type Telemetry struct {
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"products-ms" validate:"required"`
	Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_ENDPOINT" env-default:"localhost:4318" validate:"required"`
}

type Limiter struct {
	Max        int           `yaml:"max" env:"LIMITER_MAX" env-default:"20" validate:"gte=0"`
	Expiration time.Duration `yaml:"expiration" env:"LIMITER_EXPIRATION" env-default:"5s" validate:"gt=0"`
}

// Load reads .env (if present), then the YAML file named by CONFIG_PATH (if
// set), then the environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %q: %w", configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	return cfg
}

// validate reports every violation at once, keyed by environment variable.
func validate(cfg *Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("env"), ","); name != "" {
			return name
		}
		return f.Name
	})

	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}

	return errors.New(strings.Join(msgs, "; "))
}
