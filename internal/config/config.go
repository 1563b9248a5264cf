package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// EnvPrefix префикс переменных окружения, например COUNSELING_SERVER_HTTP_PORT
const EnvPrefix = "COUNSELING"

var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация приложения
type Config struct {
	Server    ServerConfig    `toml:"server" split_words:"true"`
	Database  DatabaseConfig  `toml:"database" split_words:"true"`
	Logs      LogsConfig      `toml:"logs" split_words:"true"`
	Metrics   MetricsConfig   `toml:"metrics" split_words:"true"`
	Booking   BookingConfig   `toml:"booking" split_words:"true"`
	RateLimit RateLimitConfig `toml:"rate_limit" split_words:"true"`
	CORS      CORSConfig      `toml:"cors"`
	Auth      AuthConfig      `toml:"auth" split_words:"true"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки подключения к БД
// Driver: "postgres" или "sqlite", для sqlite используется Path
type DatabaseConfig struct {
	Driver          string `toml:"driver" split_words:"true"`
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	Path            string `toml:"path" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// BookingConfig правила окна бронирования
type BookingConfig struct {
	Timezone                string `toml:"timezone" split_words:"true"`
	AdvanceBookingDays      int    `toml:"advance_booking_days" split_words:"true"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes" split_words:"true"`
	MaxMessageLength        int    `toml:"max_message_length" split_words:"true"`
}

// RateLimitConfig ограничение частоты публичных POST запросов
// TrustedProxies адреса или подсети прокси, которым разрешено передавать X-Forwarded-For
type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled" split_words:"true"`
	RequestsPerMinute int      `toml:"requests_per_minute" split_words:"true"`
	Burst             int      `toml:"burst" split_words:"true"`
	MaxClients        int      `toml:"max_clients" split_words:"true"`
	TrustedProxies    []string `toml:"trusted_proxies" split_words:"true"`
}

// CORSConfig разрешенные источники
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
}

// AuthConfig заголовок с идентификатором оператора
type AuthConfig struct {
	OperatorHeader string `toml:"operator_header" split_words:"true"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "counseling",
			SSLMode:         "disable",
			Path:            "counseling.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "counseling_service",
		},
		Booking: BookingConfig{
			Timezone:                domain.DefaultTimezone,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
			MaxMessageLength:        domain.DefaultMaxMessageLength,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 30,
			Burst:             5,
			MaxClients:        10000,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Auth: AuthConfig{
			OperatorHeader: "X-Operator-ID",
		},
	}
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию,
// затем применяет переменные окружения COUNSELING_* и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: database.driver must be postgres or sqlite, got %q", ErrInvalidConfig, c.Database.Driver)
	}

	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.AdvanceBookingDays < domain.MinAdvanceBookingDays || c.Booking.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: booking.advance_booking_days must be in %d..%d, got %d",
			ErrInvalidConfig, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays, c.Booking.AdvanceBookingDays)
	}
	if c.Booking.MinBookingNoticeMinutes < 0 || c.Booking.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: booking.min_booking_notice_minutes must be in 0..%d, got %d",
			ErrInvalidConfig, domain.MaxBookingNoticeMinutes, c.Booking.MinBookingNoticeMinutes)
	}
	if c.Booking.MaxMessageLength <= 0 {
		return fmt.Errorf("%w: booking.max_message_length must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.requests_per_minute and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.MaxClients < 0 {
		return fmt.Errorf("%w: rate_limit.max_clients must not be negative", ErrInvalidConfig)
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !isIPOrCIDR(proxy) {
			return fmt.Errorf("%w: rate_limit.trusted_proxies: %q is neither an IP nor a CIDR", ErrInvalidConfig, proxy)
		}
	}

	if c.Auth.OperatorHeader == "" {
		return fmt.Errorf("%w: auth.operator_header is required", ErrInvalidConfig)
	}

	return nil
}

func isIPOrCIDR(s string) bool {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		_, _, err := net.ParseCIDR(s)
		return err == nil
	}
	return net.ParseIP(s) != nil
}

// DSN возвращает строку подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", d.Path)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location возвращает часовой пояс окна бронирования
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}
