package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.uber.org/multierr"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join("testdata")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)
	require.Equal(t, 5433, cfg.Database.Postgres.Port)

	require.True(t, cfg.Email.SMTP.Enabled)
	require.Equal(t, "smtp.example.com", cfg.Email.SMTP.Host)
	require.Equal(t, 2525, cfg.Email.SMTP.Port)
	require.Equal(t, "no-reply@example.com", cfg.Email.SMTP.From)
	require.True(t, cfg.Email.SMTP.UseTLS)
	require.Equal(t, 15*time.Second, cfg.Email.SMTP.Timeout)

	require.Equal(t, "owner@example.com", cfg.Contact.OwnerEmail)
	require.Equal(t, "https://example.com/verify", cfg.Contact.VerificationBaseURL)
	require.Equal(t, 48*time.Hour, cfg.Contact.TokenTTL)
	require.True(t, cfg.Contact.VerifyMX)

	require.False(t, cfg.Monitoring.Prometheus.Enabled)
	require.True(t, cfg.Monitoring.Health.Enabled)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 587, cfg.Email.SMTP.Port)
	require.Equal(t, 24*time.Hour, cfg.Contact.TokenTTL)
	require.False(t, cfg.Contact.VerifyMX)
	require.Equal(t, "/metrics", cfg.Monitoring.Prometheus.Endpoint)
}

func TestValidateAggregatesMissingSettings(t *testing.T) {
	cfg := Config{}
	cfg.Email.SMTP.Enabled = true

	err := cfg.Validate()
	require.Error(t, err)

	msgs := make([]string, 0)
	for _, e := range multierr.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	require.Contains(t, msgs, "contact.owner_email is required")
	require.Contains(t, msgs, "contact.verification_base_url is required")
	require.Contains(t, msgs, "email.smtp.host is required when smtp is enabled")
	require.Contains(t, msgs, "email.smtp.from is required when smtp is enabled")
}

func TestValidateRequiresDBCredentialsForHostedDrivers(t *testing.T) {
	cfg := Config{}
	cfg.Contact.OwnerEmail = "owner@example.com"
	cfg.Contact.VerificationBaseURL = "https://example.com/verify"
	cfg.Database.Driver = "postgres"

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "database.postgres.host is required")

	// A DSN substitutes for itemized credentials.
	cfg.Database.DSN = "postgres://u:p@h/db"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := Config{}
	cfg.Contact.OwnerEmail = "owner@example.com"
	cfg.Contact.VerificationBaseURL = "https://example.com/verify"
	cfg.Database.Driver = "oracle"

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), `database.driver "oracle" is not supported`)
}

func TestSMTPSettingsConversion(t *testing.T) {
	cfg := EmailConfig{SMTP: SMTPConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "no-reply@example.com",
		Timeout: 10 * time.Second,
	}}

	settings := cfg.SMTPSettings()
	require.True(t, settings.Enabled)
	require.Equal(t, "smtp.example.com", settings.Host)
	require.Equal(t, 587, settings.Port)
	require.Equal(t, "no-reply@example.com", settings.From)
	require.Equal(t, 10*time.Second, settings.Timeout)
}
