package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sglre6355/vacancy-alert/internal/domain"
)

func validEnvironment() map[string]string {
	return map[string]string{
		"TWILIO_ACCOUNT_SID": "AC123",
		"TWILIO_AUTH_TOKEN":  "secret",
		"SMS_FROM":           "+13135550000",
		"SMS_TO":             " +819011112222 , , +818033334444 ",
	}
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(validEnvironment())
	require.NoError(t, err)

	assert.Equal(t, domain.Target{
		DateID:    "2026-02-28",
		DateLabel: "2026/02/28",
		URL:       "https://reserve.489ban.net/client/e-sakaeya/0/plan/availability/daily",
	}, cfg.Target())
	assert.Equal(t, []string{"+819011112222", "+818033334444"}, cfg.Recipients())
	assert.Equal(t, 5*time.Second, cfg.SettleDelay)
	assert.Equal(t, 60*time.Second, cfg.OperationTimeout)
	assert.False(t, cfg.NotifyOnFull)
	assert.True(t, cfg.Headless)
	assert.Equal(t, "fa-xmark", cfg.FullMarker)
	assert.Equal(t, "【さかえや】", cfg.VenueTag)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.DiscordEnabled())
}

func TestLoadFromOverrides(t *testing.T) {
	environment := validEnvironment()
	environment["TARGET_DATE"] = "2026-03-01"
	environment["TARGET_DATE_LABEL"] = "2026/03/01"
	environment["SETTLE_DELAY"] = "1500ms"
	environment["OPERATION_TIMEOUT"] = "2m"
	environment["NOTIFY_ON_FULL"] = "true"
	environment["LOG_LEVEL"] = "debug"
	environment["LOG_FORMAT"] = "json"
	environment["DISCORD_TOKEN"] = "token"
	environment["DISCORD_CHANNEL_ID"] = "42"

	cfg, err := LoadFrom(environment)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", cfg.Target().DateID)
	assert.Equal(t, 1500*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 2*time.Minute, cfg.OperationTimeout)
	assert.True(t, cfg.NotifyOnFull)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.DiscordEnabled())
}

func TestLoadFromRequiredValues(t *testing.T) {
	for _, key := range []string{"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "SMS_FROM", "SMS_TO"} {
		t.Run(key+" missing", func(t *testing.T) {
			environment := validEnvironment()
			delete(environment, key)

			_, err := LoadFrom(environment)

			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), key)
		})

		t.Run(key+" empty", func(t *testing.T) {
			environment := validEnvironment()
			environment[key] = ""

			_, err := LoadFrom(environment)

			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadFromRejectsRecipientListWithoutEntries(t *testing.T) {
	environment := validEnvironment()
	environment["SMS_TO"] = " , ,"

	_, err := LoadFrom(environment)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "SMS_TO", cfgErr.Var)
}

func TestLoadFromValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantVar string
	}{
		{name: "negative settle", key: "SETTLE_DELAY", value: "-1s", wantVar: "SETTLE_DELAY"},
		{name: "zero timeout", key: "OPERATION_TIMEOUT", value: "0s", wantVar: "OPERATION_TIMEOUT"},
		{name: "discord token alone", key: "DISCORD_TOKEN", value: "token", wantVar: "DISCORD_CHANNEL_ID"},
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml", wantVar: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			environment := validEnvironment()
			environment[tt.key] = tt.value

			_, err := LoadFrom(environment)

			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantVar, cfgErr.Var)
		})
	}
}

func TestLoadReadsDotenvFile(t *testing.T) {
	for key := range validEnvironment() {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "TWILIO_ACCOUNT_SID=AC999\nTWILIO_AUTH_TOKEN=secret\nSMS_FROM=+1313\nSMS_TO=+819011112222\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		for key := range validEnvironment() {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "AC999", cfg.TwilioAccountSID)
	assert.Equal(t, []string{"+819011112222"}, cfg.Recipients())
}

func TestLoadIgnoresMissingDotenvFile(t *testing.T) {
	for key, value := range validEnvironment() {
		t.Setenv(key, value)
	}

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
