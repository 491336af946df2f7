package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chestno/chestno/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment  DeploymentConfig  `validate:"required"`
	Server      ServerConfig      `validate:"required"`
	Logging     LoggingConfig     `validate:"required"`
	Postgres    PostgresConfig    `validate:"required"`
	Webhook     Webhook           `mapstructure:"webhook"`
	Cache       CacheConfig       `mapstructure:"cache"`
	StatusLevel StatusLevelConfig `mapstructure:"status_level"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string
	SSLMode                string
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int `mapstructure:"conn_max_lifetime_minutes"`
}

// Webhook represents the configuration for the outbound webhook system
type Webhook struct {
	Enabled bool             `mapstructure:"enabled"`
	Topic   string           `mapstructure:"topic" default:"webhooks"`
	PubSub  types.PubSubType `mapstructure:"pubsub" default:"memory"`

	// Delivery retry policy
	MaxRetries      int           `mapstructure:"max_retries" default:"3"`
	InitialInterval time.Duration `mapstructure:"initial_interval" default:"1s"`
	MaxInterval     time.Duration `mapstructure:"max_interval" default:"10s"`
	Multiplier      float64       `mapstructure:"multiplier" default:"2.0"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time" default:"2m"`

	// Tenants maps tenant ids to their delivery endpoints
	Tenants map[string]TenantWebhookConfig `mapstructure:"tenants"`
}

// TenantWebhookConfig is the per-tenant webhook delivery configuration
type TenantWebhookConfig struct {
	Enabled        bool              `mapstructure:"enabled"`
	Endpoint       string            `mapstructure:"endpoint"`
	Headers        map[string]string `mapstructure:"headers"`
	ExcludedEvents []string          `mapstructure:"excluded_events"`
}

// CacheConfig controls the in-memory summary cache
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StatusLevelConfig carries lifecycle engine tunables
type StatusLevelConfig struct {
	// GracePeriodDays is the default grace window applied on past_due entry
	GracePeriodDays int `mapstructure:"grace_period_days"`
}

func NewConfig() (*Configuration, error) {
	// Load .env when present, explicit environment variables win
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/chestno")

	v.SetEnvPrefix("CHESTNO")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.StatusLevel.GracePeriodDays == 0 {
		config.StatusLevel.GracePeriodDays = types.DefaultGracePeriodDays
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Webhook: Webhook{
			Enabled:         true,
			Topic:           "webhooks",
			PubSub:          types.MemoryPubSub,
			MaxRetries:      3,
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
			Multiplier:      2.0,
			MaxElapsedTime:  2 * time.Minute,
		},
		Cache: CacheConfig{Enabled: true},
		StatusLevel: StatusLevelConfig{
			GracePeriodDays: types.DefaultGracePeriodDays,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
