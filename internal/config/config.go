package config

import (
	"errors"
	"fmt"
	"time"

	"menu-bot/internal/widget"

	"github.com/caarlos0/env/v9"
	"github.com/shopspring/decimal"
)

const (
	CatalogSourcePostgres = "postgres"
	CatalogSourceAPI      = "api"
)

type Config struct {
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`

	Telegram TelegramConfig `envPrefix:"TELEGRAM_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
	Amount   AmountConfig   `envPrefix:"AMOUNT_"`
	Cart     CartConfig     `envPrefix:"CART_"`
	Admin    AdminConfig    `envPrefix:"ADMIN_"`
}

type TelegramConfig struct {
	Token         string `env:"TOKEN,required,notEmpty"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	UpdateTimeout int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
}

type RedisConfig struct {
	Addr     string        `env:"ADDR,required"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"24h"`
}

type DatabaseConfig struct {
	Host            string        `env:"HOST,required"`
	Port            int           `env:"PORT,required"`
	User            string        `env:"USER,required"`
	Password        string        `env:"PASSWORD,required"`
	Name            string        `env:"NAME,required"`
	SSLMode         string        `env:"SSL_MODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"2m"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type CatalogConfig struct {
	Source     string        `env:"SOURCE" envDefault:"postgres"`
	APIBaseURL string        `env:"API_BASE_URL"`
	APIKey     string        `env:"API_KEY"`
	CacheTTL   time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

type AmountConfig struct {
	Default int `env:"DEFAULT" envDefault:"1"`
	Min     int `env:"MIN" envDefault:"1"`
	Max     int `env:"MAX" envDefault:"10"`
}

// Widget converts the bounds to the stepper's own config.
func (a AmountConfig) Widget() widget.AmountConfig {
	return widget.AmountConfig{
		Default: a.Default,
		Min:     a.Min,
		Max:     a.Max,
	}
}

type CartConfig struct {
	DeliveryFee decimal.Decimal `env:"DELIVERY_FEE" envDefault:"20"`
}

type AdminConfig struct {
	IDs []int64 `env:"IDS" envSeparator:","`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogSourcePostgres:
	case CatalogSourceAPI:
		if c.Catalog.APIBaseURL == "" {
			return errors.New("CATALOG_API_BASE_URL is required for the api catalog source")
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}

	if err := c.Amount.Widget().Validate(); err != nil {
		return err
	}

	if c.Cart.DeliveryFee.IsNegative() {
		return errors.New("negative delivery fee")
	}
	return nil
}

func (c *Config) IsAdmin(chatID int64) bool {
	for _, id := range c.Admin.IDs {
		if id == chatID {
			return true
		}
	}
	return false
}
