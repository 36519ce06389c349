package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/sglre6355/vacancy-alert/internal/config"
	"github.com/sglre6355/vacancy-alert/internal/infrastructure"
	"github.com/sglre6355/vacancy-alert/internal/infrastructure/twilio"
	"github.com/sglre6355/vacancy-alert/internal/presentation"
	"github.com/sglre6355/vacancy-alert/internal/usecase"
)

// dependencies holds the constructors run needs for its outbound collaborators.
type dependencies struct {
	loadConfig func() (config.Config, error)
	newBrowser func(cfg config.Config) usecase.Browser
	newSender  func(cfg config.Config) usecase.TextSender
	logOutput  io.Writer
}

func defaultDependencies() dependencies {
	return dependencies{
		loadConfig: func() (config.Config, error) { return config.Load() },
		newBrowser: func(cfg config.Config) usecase.Browser {
			return infrastructure.NewChromeBrowser(cfg.ChromePath, cfg.Headless)
		},
		newSender: func(cfg config.Config) usecase.TextSender {
			return twilio.NewSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
		},
		logOutput: os.Stderr,
	}
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("run_id", uuid.NewString()))
}

func run(deps dependencies) int {
	cfg, err := deps.loadConfig()
	if err != nil {
		slog.New(slog.NewTextHandler(deps.logOutput, nil)).
			Error("failed to load configuration", slog.Any("error", err))
		return 1
	}

	logger := newLogger(deps.logOutput, cfg)
	slog.SetDefault(logger)

	smsNotifier, err := usecase.NewSMSNotifier(deps.newSender(cfg), cfg.SMSFrom, cfg.Recipients(), logger)
	if err != nil {
		logger.Error("failed to create sms notifier", slog.Any("error", err))
		return 1
	}

	monitorOpts := []usecase.MonitorOption{
		usecase.WithVenueTag(cfg.VenueTag),
		usecase.WithNotifyOnFull(cfg.NotifyOnFull),
		usecase.WithMonitorLogger(logger),
		usecase.WithNotifier("sms", smsNotifier),
	}

	if cfg.DiscordEnabled() {
		session, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			logger.Error("failed to create Discord session", slog.Any("error", err))
			return 1
		}

		discordNotifier, err := presentation.NewDiscordNotifier(session, cfg.DiscordChannelID)
		if err != nil {
			logger.Error("failed to create Discord notifier", slog.Any("error", err))
			return 1
		}
		monitorOpts = append(monitorOpts, usecase.WithNotifier("discord", discordNotifier))
	}

	checker := usecase.NewAvailabilityChecker(
		deps.newBrowser(cfg),
		usecase.NewMarkerClassifier(cfg.FullMarker),
		usecase.WithSettleDelay(cfg.SettleDelay),
		usecase.WithOperationTimeout(cfg.OperationTimeout),
		usecase.WithCheckerLogger(logger),
	)

	monitor := usecase.NewMonitor(checker, cfg.Target(), monitorOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := monitor.Run(ctx)
	if err != nil {
		logger.Error("run failed", slog.Any("error", err), slog.String("status", string(report.Classification.Status)))
		return 1
	}

	logger.Info(
		"run completed",
		slog.String("status", string(report.Classification.Status)),
		slog.Bool("notified", report.Notified),
	)
	return 0
}

func main() {
	os.Exit(run(defaultDependencies()))
}
