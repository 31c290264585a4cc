package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/FWL-BookingService/internal/domain"
	"github.com/m04kA/FWL-BookingService/pkg/types"
)

const (
	// EnvProduction окружение, в котором детали внутренних ошибок скрываются
	EnvProduction = "production"

	// StorageDriverPostgres хранилище в Postgres
	StorageDriverPostgres = "postgres"
	// StorageDriverMemory хранилище в памяти процесса (разработка и демо)
	StorageDriverMemory = "memory"
)

var (
	// ErrReadConfig возвращается при ошибке чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverlay возвращается при ошибке чтения переменных окружения
	ErrEnvOverlay = errors.New("config: failed to read environment")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация приложения
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Storage   StorageConfig   `toml:"storage"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	SMTP      SMTPConfig      `toml:"smtp"`
	Admin     AdminConfig     `toml:"admin"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	Environment     string `toml:"environment"`
}

// IsProduction проверяет, запущен ли сервис в production
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, EnvProduction)
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StorageConfig выбор хранилища
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig политика генерации слотов и правила бронирования
type BookingConfig struct {
	BusinessOpen        string `toml:"business_open"`
	BusinessClose       string `toml:"business_close"`
	BlockedStart        string `toml:"blocked_start"`
	BlockedEnd          string `toml:"blocked_end"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	SlotCapacity        int    `toml:"slot_capacity"`
	HorizonDays         int    `toml:"horizon_days"`
	// ReleaseOnCancel освобождает слот при переводе записи в cancelled
	ReleaseOnCancel bool `toml:"release_on_cancel"`
	// NotificationTimeout таймаут отправки писем в секундах
	NotificationTimeout int `toml:"notification_timeout"`
}

// SMTPConfig настройки почтового сервера
type SMTPConfig struct {
	Enabled       bool   `toml:"enabled"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Username      string `toml:"username"`
	Password      string `toml:"password"`
	From          string `toml:"from"`
	FromName      string `toml:"from_name"`
	OperatorEmail string `toml:"operator_email"`
}

// AdminConfig доступ к административным эндпоинтам
type AdminConfig struct {
	// Token если пуст, административные эндпоинты открыты
	Token string `toml:"token"`
}

// RateLimitConfig ограничение частоты создания записей на клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
	Burst             int     `toml:"burst"`
	// TrustProxy адрес клиента берется из X-Forwarded-For / X-Real-IP
	// Включать только за обратным прокси, который перезаписывает эти заголовки
	TrustProxy bool `toml:"trust_proxy"`
}

// Load загружает конфигурацию из TOML файла, .env и переменных окружения
// Переменные окружения имеют приоритет над файлом
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.overlayEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envOverlay переменные окружения, перекрывающие файл конфигурации
// Имена заданы полностью: общие переменные оболочки (USER, PORT, PASSWORD) не читаются
// nil означает, что переменная не задана
type envOverlay struct {
	ServerHTTPPort    *int    `envconfig:"SERVER_HTTP_PORT"`
	ServerEnvironment *string `envconfig:"SERVER_ENVIRONMENT"`

	DatabaseHost     *string `envconfig:"DATABASE_HOST"`
	DatabasePort     *int    `envconfig:"DATABASE_PORT"`
	DatabaseUser     *string `envconfig:"DATABASE_USER"`
	DatabasePassword *string `envconfig:"DATABASE_PASSWORD"`
	DatabaseName     *string `envconfig:"DATABASE_NAME"`
	DatabaseSSLMode  *string `envconfig:"DATABASE_SSLMODE"`

	StorageDriver *string `envconfig:"STORAGE_DRIVER"`

	LogsLevel *string `envconfig:"LOGS_LEVEL"`

	BookingReleaseOnCancel *bool `envconfig:"BOOKING_RELEASE_ON_CANCEL"`

	SMTPEnabled       *bool   `envconfig:"SMTP_ENABLED"`
	SMTPHost          *string `envconfig:"SMTP_HOST"`
	SMTPPort          *int    `envconfig:"SMTP_PORT"`
	SMTPUsername      *string `envconfig:"SMTP_USERNAME"`
	SMTPPassword      *string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom          *string `envconfig:"SMTP_FROM"`
	SMTPOperatorEmail *string `envconfig:"SMTP_OPERATOR_EMAIL"`

	AdminToken *string `envconfig:"ADMIN_TOKEN"`
}

func (c *Config) overlayEnv() error {
	var env envOverlay
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("%w: %v", ErrEnvOverlay, err)
	}

	override(&c.Server.HTTPPort, env.ServerHTTPPort)
	override(&c.Server.Environment, env.ServerEnvironment)

	override(&c.Database.Host, env.DatabaseHost)
	override(&c.Database.Port, env.DatabasePort)
	override(&c.Database.User, env.DatabaseUser)
	override(&c.Database.Password, env.DatabasePassword)
	override(&c.Database.DBName, env.DatabaseName)
	override(&c.Database.SSLMode, env.DatabaseSSLMode)

	override(&c.Storage.Driver, env.StorageDriver)
	override(&c.Logs.Level, env.LogsLevel)
	override(&c.Booking.ReleaseOnCancel, env.BookingReleaseOnCancel)

	override(&c.SMTP.Enabled, env.SMTPEnabled)
	override(&c.SMTP.Host, env.SMTPHost)
	override(&c.SMTP.Port, env.SMTPPort)
	override(&c.SMTP.Username, env.SMTPUsername)
	override(&c.SMTP.Password, env.SMTPPassword)
	override(&c.SMTP.From, env.SMTPFrom)
	override(&c.SMTP.OperatorEmail, env.SMTPOperatorEmail)

	override(&c.Admin.Token, env.AdminToken)
	return nil
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Server.Environment == "" {
		c.Server.Environment = "development"
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "fwl-booking-service"
	}

	if c.Booking.BusinessOpen == "" {
		c.Booking.BusinessOpen = domain.DefaultBusinessOpen
	}
	if c.Booking.BusinessClose == "" {
		c.Booking.BusinessClose = domain.DefaultBusinessClose
	}
	if c.Booking.BlockedStart == "" && c.Booking.BlockedEnd == "" {
		c.Booking.BlockedStart = domain.DefaultBlockedStart
		c.Booking.BlockedEnd = domain.DefaultBlockedEnd
	}
	if c.Booking.SlotDurationMinutes == 0 {
		c.Booking.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Booking.SlotCapacity == 0 {
		c.Booking.SlotCapacity = domain.DefaultSlotCapacity
	}
	if c.Booking.HorizonDays == 0 {
		c.Booking.HorizonDays = domain.DefaultHorizonDays
	}
	if c.Booking.NotificationTimeout == 0 {
		c.Booking.NotificationTimeout = 30
	}

	if c.SMTP.Port == 0 {
		c.SMTP.Port = 465
	}
	if c.SMTP.FromName == "" {
		c.SMTP.FromName = "FWL-CPA"
	}

	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	b := c.Booking
	open, err := types.NewTimeStringFromString(b.BusinessOpen)
	if err != nil {
		return fmt.Errorf("%w: booking.business_open: %v", ErrInvalidConfig, err)
	}
	closeAt, err := types.NewTimeStringFromString(b.BusinessClose)
	if err != nil {
		return fmt.Errorf("%w: booking.business_close: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closeAt) {
		return fmt.Errorf("%w: booking.business_open must be before business_close", ErrInvalidConfig)
	}

	if b.BlockedStart != "" || b.BlockedEnd != "" {
		blockStart, err := types.NewTimeStringFromString(b.BlockedStart)
		if err != nil {
			return fmt.Errorf("%w: booking.blocked_start: %v", ErrInvalidConfig, err)
		}
		blockEnd, err := types.NewTimeStringFromString(b.BlockedEnd)
		if err != nil {
			return fmt.Errorf("%w: booking.blocked_end: %v", ErrInvalidConfig, err)
		}
		if !blockStart.IsBefore(blockEnd) {
			return fmt.Errorf("%w: booking.blocked_start must be before blocked_end", ErrInvalidConfig)
		}
	}

	if b.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: booking.slot_duration_minutes must be positive", ErrInvalidConfig)
	}
	if b.SlotCapacity < 1 {
		return fmt.Errorf("%w: booking.slot_capacity must be at least 1", ErrInvalidConfig)
	}
	if b.HorizonDays < 1 {
		return fmt.Errorf("%w: booking.horizon_days must be at least 1", ErrInvalidConfig)
	}

	if c.SMTP.Enabled && (c.SMTP.Host == "" || c.SMTP.From == "") {
		return fmt.Errorf("%w: smtp.host and smtp.from are required when smtp is enabled", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_minute and burst", ErrInvalidConfig)
	}

	return nil
}

// Policy собирает политику генерации слотов. Вызывать после Validate
func (b BookingConfig) Policy() domain.AvailabilityPolicy {
	policy := domain.AvailabilityPolicy{
		BusinessHours: domain.BusinessHours{
			Open:  types.MustTimeString(b.BusinessOpen),
			Close: types.MustTimeString(b.BusinessClose),
		},
		SlotDurationMinutes: b.SlotDurationMinutes,
		SlotCapacity:        b.SlotCapacity,
		HorizonDays:         b.HorizonDays,
		SkipWeekends:        true,
	}
	if b.BlockedStart != "" && b.BlockedEnd != "" {
		policy.BlockedStart = types.MustTimeString(b.BlockedStart)
		policy.BlockedEnd = types.MustTimeString(b.BlockedEnd)
	}
	return policy
}
