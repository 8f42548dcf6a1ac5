package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	cleanenvport "github.com/wb-go/wbf/config/cleanenv-port"
	"github.com/wb-go/wbf/logger"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"     validate:"required"`
	Logger    LoggerConfig    `yaml:"logger"     validate:"required"`
	Gin       GinConfig       `yaml:"gin"        validate:"required"`
	Storage   StorageConfig   `yaml:"storage"    validate:"required"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Scheduler SchedulerConfig `yaml:"scheduler"  validate:"required"`
	Booking   BookingConfig   `yaml:"booking"    validate:"required"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Email     EmailConfig     `yaml:"email"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Payment   PaymentConfig   `yaml:"payment"`
	Tracing   TracingConfig   `yaml:"tracing"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"          env:"SERVER_ADDR"          env-default:":8080" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"  env-default:"10s"   validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"   validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"SERVER_IDLE_TIMEOUT"  env-default:"60s"   validate:"gt=0"`
}

// LogLevel преобразует строковый уровень в logger.Level из wbf.
func (c LoggerConfig) LogLevel() logger.Level {
	switch c.Level {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}

// LogEngine преобразует строковый движок в logger.Engine из wbf.
func (c LoggerConfig) LogEngine() logger.Engine {
	return logger.Engine(c.Engine)
}

type LoggerConfig struct {
	Engine string `yaml:"engine" env:"LOG_ENGINE" env-default:"slog"  validate:"required,oneof=slog zap zerolog logrus"`
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"  validate:"required,oneof=debug info warn error"`
}

type GinConfig struct {
	Mode string `yaml:"mode" env:"GIN_MODE" env-default:"debug" validate:"required,oneof=debug release test"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres" validate:"required,oneof=postgres memory"`
}

func (s StorageConfig) Postgres() bool { return s.Driver == "postgres" }

type PostgresConfig struct {
	Host            string        `yaml:"host"              env:"DB_HOST"              env-default:"localhost"    validate:"required"`
	Port            int           `yaml:"port"              env:"DB_PORT"              env-default:"5432"         validate:"required,min=1,max=65535"`
	User            string        `yaml:"user"              env:"DB_USER"              env-default:"postgres"     validate:"required"`
	Password        string        `yaml:"password"          env:"DB_PASSWORD"          env-default:"postgres"     validate:"required"`
	Database        string        `yaml:"database"          env:"DB_NAME"              env-default:"turfbooker"   validate:"required"`
	SSLMode         string        `yaml:"sslmode"           env:"DB_SSLMODE"           env-default:"disable"      validate:"required,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DB_MAX_OPEN_CONNS"    env-default:"10"           validate:"min=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"    env-default:"5"            validate:"min=1"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"           validate:"gt=0"`
}

func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:""`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0" validate:"min=0"`
}

type SchedulerConfig struct {
	SweepInterval     time.Duration `yaml:"sweep_interval"     env:"SCHEDULER_SWEEP_INTERVAL"     env-default:"30s" validate:"required,gt=0"`
	ReconcileInterval time.Duration `yaml:"reconcile_interval" env:"SCHEDULER_RECONCILE_INTERVAL" env-default:"1h"  validate:"gte=0"`
}

type BookingConfig struct {
	OpenHour           int           `yaml:"open_hour"            env:"BOOKING_OPEN_HOUR"            env-default:"7"    validate:"min=0,max=23"`
	CloseHour          int           `yaml:"close_hour"           env:"BOOKING_CLOSE_HOUR"           env-default:"23"   validate:"min=1,max=24,gtfield=OpenHour"`
	HoldTTL            time.Duration `yaml:"hold_ttl"             env:"BOOKING_HOLD_TTL"             env-default:"300s" validate:"gt=0"`
	PriceSplitHour     int           `yaml:"price_split_hour"     env:"BOOKING_PRICE_SPLIT_HOUR"     env-default:"18"   validate:"min=0,max=24"`
	DayRate            int64         `yaml:"day_rate"             env:"BOOKING_DAY_RATE"             env-default:"800"  validate:"min=0"`
	NightRate          int64         `yaml:"night_rate"           env:"BOOKING_NIGHT_RATE"           env-default:"1200" validate:"min=0"`
	HorizonDays        int           `yaml:"horizon_days"         env:"BOOKING_HORIZON_DAYS"         env-default:"30"   validate:"min=1,max=365"`
	FollowUpDelay      time.Duration `yaml:"follow_up_delay"      env:"BOOKING_FOLLOW_UP_DELAY"      env-default:"2m"   validate:"gte=0"`
	DailyConfirmLimit  int           `yaml:"daily_confirm_limit"  env:"BOOKING_DAILY_CONFIRM_LIMIT"  env-default:"3"    validate:"min=1"`
	PeakLowStock       int           `yaml:"peak_low_stock"       env:"BOOKING_PEAK_LOW_STOCK"       env-default:"2"    validate:"min=0"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN" env-default:""`
	ChatID   int64  `yaml:"chat_id"   env:"TELEGRAM_CHAT_ID"   env-default:"0"`
}

type EmailConfig struct {
	Host     string   `yaml:"host"     env:"SMTP_HOST"     env-default:""`
	Port     int      `yaml:"port"     env:"SMTP_PORT"     env-default:"587" validate:"min=0,max=65535"`
	Username string   `yaml:"username" env:"SMTP_USERNAME" env-default:""`
	Password string   `yaml:"password" env:"SMTP_PASSWORD" env-default:""`
	From     string   `yaml:"from"     env:"SMTP_FROM"     env-default:"turf@localhost"`
	To       []string `yaml:"to"       env:"SMTP_TO"       env-separator:","`
}

type RabbitMQConfig struct {
	URL           string `yaml:"url"            env:"RABBIT_URL"            env-default:""`
	Exchange      string `yaml:"exchange"       env:"RABBIT_EXCHANGE"       env-default:"turf.bookings"`
	PaymentsQueue string `yaml:"payments_queue" env:"RABBIT_PAYMENTS_QUEUE" env-default:"turf.payments"`
	Prefetch      int    `yaml:"prefetch"       env:"RABBIT_PREFETCH"       env-default:"8" validate:"min=1"`
}

type PaymentConfig struct {
	Secret string `yaml:"secret" env:"PAYMENT_SECRET" env-default:""`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"      env:"OTEL_ENABLED"                env-default:"false"`
	Endpoint    string  `yaml:"endpoint"     env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
	SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLE_RATIO"           env-default:"1"`
}

type RateLimitConfig struct {
	RPS     float64       `yaml:"rps"      env:"RATE_LIMIT_RPS"      env-default:"10" validate:"gte=0"`
	Burst   int           `yaml:"burst"    env:"RATE_LIMIT_BURST"    env-default:"20" validate:"gte=0"`
	IdleTTL time.Duration `yaml:"idle_ttl" env:"RATE_LIMIT_IDLE_TTL" env-default:"15m"`
}

func MustLoad() *Config {
	// .env необязателен
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenvport.Load(&cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return &cfg
}
