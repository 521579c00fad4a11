package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Config represents the runtime configuration for the portfolio backend.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Email      EmailConfig      `mapstructure:"email"`
	Contact    ContactConfig    `mapstructure:"contact"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver   string       `mapstructure:"driver"`
	Path     string       `mapstructure:"path"`
	DSN      string       `mapstructure:"dsn"`
	Postgres DBAuthConfig `mapstructure:"postgres"`
	MySQL    DBAuthConfig `mapstructure:"mysql"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// EmailConfig captures outbound email settings.
type EmailConfig struct {
	SMTP SMTPConfig `mapstructure:"smtp"`
}

// SMTPConfig defines SMTP dialer settings for sending email.
type SMTPConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	UseTLS   bool          `mapstructure:"use_tls"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ContactConfig holds the contact-form workflow settings.
type ContactConfig struct {
	OwnerEmail          string        `mapstructure:"owner_email"`
	VerificationBaseURL string        `mapstructure:"verification_base_url"`
	TokenTTL            time.Duration `mapstructure:"token_ttl"`
	VerifyMX            bool          `mapstructure:"verify_mx"`
}

// MonitoringConfig enables health checks and metrics.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Health     HealthConfig     `mapstructure:"health_check"`
}

// PrometheusConfig toggles metrics endpoints.
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// HealthConfig toggles health endpoints.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &config, nil
}

// Validate reports every missing or inconsistent required setting at once so
// a misconfigured deployment fails fast with the full list.
func (c *Config) Validate() error {
	var errs error

	if strings.TrimSpace(c.Contact.OwnerEmail) == "" {
		errs = multierr.Append(errs, errors.New("contact.owner_email is required"))
	}
	if strings.TrimSpace(c.Contact.VerificationBaseURL) == "" {
		errs = multierr.Append(errs, errors.New("contact.verification_base_url is required"))
	}
	if c.Contact.TokenTTL < 0 {
		errs = multierr.Append(errs, errors.New("contact.token_ttl must not be negative"))
	}

	if c.Email.SMTP.Enabled {
		if strings.TrimSpace(c.Email.SMTP.Host) == "" {
			errs = multierr.Append(errs, errors.New("email.smtp.host is required when smtp is enabled"))
		}
		if c.Email.SMTP.Port <= 0 {
			errs = multierr.Append(errs, errors.New("email.smtp.port must be positive"))
		}
		if strings.TrimSpace(c.Email.SMTP.From) == "" {
			errs = multierr.Append(errs, errors.New("email.smtp.from is required when smtp is enabled"))
		}
	}

	switch c.Database.Driver {
	case "", "sqlite":
	case "postgres":
		errs = multierr.Append(errs, requireDBAuth("postgres", c.Database.DSN, c.Database.Postgres))
	case "mysql":
		errs = multierr.Append(errs, requireDBAuth("mysql", c.Database.DSN, c.Database.MySQL))
	default:
		errs = multierr.Append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}

	return errs
}

func requireDBAuth(driver, dsn string, auth DBAuthConfig) error {
	if strings.TrimSpace(dsn) != "" {
		return nil
	}

	var errs error
	if strings.TrimSpace(auth.Host) == "" {
		errs = multierr.Append(errs, fmt.Errorf("database.%s.host is required", driver))
	}
	if strings.TrimSpace(auth.Database) == "" {
		errs = multierr.Append(errs, fmt.Errorf("database.%s.database is required", driver))
	}
	if strings.TrimSpace(auth.Username) == "" {
		errs = multierr.Append(errs, fmt.Errorf("database.%s.username is required", driver))
	}
	return errs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/portfolio.sqlite")

	v.SetDefault("email.smtp.enabled", true)
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.use_tls", false)
	v.SetDefault("email.smtp.timeout", "10s")

	v.SetDefault("contact.token_ttl", "24h")
	v.SetDefault("contact.verify_mx", false)

	v.SetDefault("monitoring.prometheus.enabled", true)
	v.SetDefault("monitoring.prometheus.endpoint", "/metrics")
	v.SetDefault("monitoring.health_check.enabled", true)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
