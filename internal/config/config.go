// Package config loads the monitor's settings from the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sglre6355/vacancy-alert/internal/domain"
)

// Config is the immutable run configuration.
type Config struct {
	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID,required,notEmpty"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN,required,notEmpty,unset"`
	SMSFrom          string `env:"SMS_FROM,required,notEmpty"`
	SMSTo            string `env:"SMS_TO,required,notEmpty"`

	TargetURL       string `env:"TARGET_URL"        envDefault:"https://reserve.489ban.net/client/e-sakaeya/0/plan/availability/daily"`
	TargetDate      string `env:"TARGET_DATE"       envDefault:"2026-02-28"`
	TargetDateLabel string `env:"TARGET_DATE_LABEL" envDefault:"2026/02/28"`
	VenueTag        string `env:"VENUE_TAG"         envDefault:"【さかえや】"`

	SettleDelay      time.Duration `env:"SETTLE_DELAY"      envDefault:"5s"`
	OperationTimeout time.Duration `env:"OPERATION_TIMEOUT" envDefault:"60s"`
	NotifyOnFull     bool          `env:"NOTIFY_ON_FULL"    envDefault:"false"`
	FullMarker       string        `env:"FULL_MARKER"       envDefault:"fa-xmark"`

	ChromePath string `env:"CHROME_PATH"`
	Headless   bool   `env:"HEADLESS" envDefault:"true"`

	DiscordToken     string `env:"DISCORD_TOKEN,unset"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID"`

	LogLevel  slog.Level `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"`
}

// Error reports an invalid or missing setting.
type Error struct {
	Var string
	Err error
}

func (e *Error) Error() string {
	if e.Var == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Var, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads dotenv files (".env" when none are given) into the process environment, skipping missing
// files, and parses the result.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return parse(env.Options{})
}

// LoadFrom parses configuration from the given variables only.
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, &Error{Var: missingVar(err), Err: err}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if len(domain.ParseRecipients(c.SMSTo)) == 0 {
		return &Error{Var: "SMS_TO", Err: errors.New("no valid recipients")}
	}
	if c.TargetURL == "" {
		return &Error{Var: "TARGET_URL", Err: errors.New("must not be empty")}
	}
	if c.TargetDate == "" {
		return &Error{Var: "TARGET_DATE", Err: errors.New("must not be empty")}
	}
	if c.SettleDelay < 0 {
		return &Error{Var: "SETTLE_DELAY", Err: errors.New("must not be negative")}
	}
	if c.OperationTimeout <= 0 {
		return &Error{Var: "OPERATION_TIMEOUT", Err: errors.New("must be positive")}
	}
	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		return &Error{Var: "DISCORD_CHANNEL_ID", Err: errors.New("DISCORD_TOKEN and DISCORD_CHANNEL_ID must be set together")}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return &Error{Var: "LOG_FORMAT", Err: fmt.Errorf("unsupported format %q", c.LogFormat)}
	}
	return nil
}

// Target returns the monitored date and page.
func (c Config) Target() domain.Target {
	return domain.Target{
		DateID:    c.TargetDate,
		DateLabel: c.TargetDateLabel,
		URL:       c.TargetURL,
	}
}

// Recipients returns the parsed SMS destinations.
func (c Config) Recipients() []string {
	return domain.ParseRecipients(c.SMSTo)
}

// DiscordEnabled reports whether alerts are mirrored to Discord.
func (c Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

func missingVar(err error) string {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return ""
	}
	for _, e := range agg.Errors {
		var notSet env.EnvVarIsNotSetError
		if errors.As(e, &notSet) {
			return notSet.Key
		}
		var empty env.EmptyEnvVarError
		if errors.As(e, &empty) {
			return empty.Key
		}
	}
	return ""
}
