package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath переменная окружения с путём к config.toml
const EnvConfigPath = "CONFIG_PATH"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

var (
	// ErrInvalidConfig возвращается, когда значения конфигурации невозможны
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Redis     RedisConfig     `toml:"redis"`
	Booking   BookingConfig   `toml:"booking"`
}

// ServerConfig настройки HTTP сервера; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	Timezone        string `toml:"timezone"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StorageConfig выбор хранилища; memory - для локального запуска без БД
type StorageConfig struct {
	Driver   string `toml:"driver"`
	SeedFile string `toml:"seed_file"`
}

type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled"`
	Backend       string `toml:"backend"`
	Requests      int    `toml:"requests"`
	WindowSeconds int    `toml:"window_seconds"`
	Burst         int    `toml:"burst"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type BookingConfig struct {
	MinNoticeMinutes int `toml:"min_notice_minutes"`
}

// Load читает конфигурацию из path; CONFIG_PATH переопределяет путь
func Load(path string) (*Config, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		path = env
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения, которые остаются, если в файле секция не указана
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			Timezone:        "UTC",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "petcare-booking-service",
		},
		Storage: StorageConfig{
			Driver: StorageDriverPostgres,
		},
		RateLimit: RateLimitConfig{
			Backend:       RateLimitBackendMemory,
			Requests:      120,
			WindowSeconds: 60,
			Burst:         20,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Booking: BookingConfig{
			MinNoticeMinutes: 60,
		},
	}
}

// Validate проверяет, что значения допустимы
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("%w: server.timezone %q: %v", ErrInvalidConfig, c.Server.Timezone, err)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.RateLimit.Enabled {
		switch c.RateLimit.Backend {
		case RateLimitBackendMemory, RateLimitBackendRedis:
		default:
			return fmt.Errorf("%w: rate_limit.backend %q", ErrInvalidConfig, c.RateLimit.Backend)
		}
		if c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0 || c.RateLimit.Burst <= 0 {
			return fmt.Errorf("%w: rate_limit requests, window_seconds and burst must be positive", ErrInvalidConfig)
		}
	}

	if c.Booking.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.min_notice_minutes must not be negative", ErrInvalidConfig)
	}

	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс, в котором считаются даты бронирований
func (s ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Window окно лимитера
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}
