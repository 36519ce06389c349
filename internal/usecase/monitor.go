package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sglre6355/vacancy-alert/internal/domain"
)

// Checker classifies the availability of a target.
type Checker interface {
	Check(ctx context.Context, target domain.Target) domain.Classification
}

// DispatchError indicates which notification channel failed.
type DispatchError struct {
	Channel string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("failed to dispatch %s notification: %v", e.Channel, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Report summarises a completed run.
type Report struct {
	RunAt          time.Time
	Classification domain.Classification
	Message        string
	Notified       bool
}

type namedNotifier struct {
	channel  string
	notifier Notifier
}

// Monitor runs one check-compose-notify cycle for a target.
type Monitor struct {
	checker   Checker
	target    domain.Target
	notifiers []namedNotifier

	nowFn        func() time.Time
	venueTag     string
	notifyOnFull bool
	logger       *slog.Logger
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithClock overrides the clock used to stamp runs (useful for testing).
func WithClock(nowFn func() time.Time) MonitorOption {
	return func(m *Monitor) {
		if nowFn != nil {
			m.nowFn = nowFn
		}
	}
}

// WithNotifyOnFull enables alerts for fully booked days.
func WithNotifyOnFull(enabled bool) MonitorOption {
	return func(m *Monitor) {
		m.notifyOnFull = enabled
	}
}

// WithVenueTag sets the prefix identifying the venue in every message.
func WithVenueTag(tag string) MonitorOption {
	return func(m *Monitor) {
		m.venueTag = tag
	}
}

// WithNotifier registers a notification channel. Channels are notified in registration order.
func WithNotifier(channel string, notifier Notifier) MonitorOption {
	return func(m *Monitor) {
		if notifier != nil {
			m.notifiers = append(m.notifiers, namedNotifier{channel: channel, notifier: notifier})
		}
	}
}

// WithMonitorLogger sets the logger for run events.
func WithMonitorLogger(logger *slog.Logger) MonitorOption {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMonitor builds a monitor for target.
func NewMonitor(checker Checker, target domain.Target, opts ...MonitorOption) *Monitor {
	monitor := &Monitor{
		checker: checker,
		target:  target,
		nowFn:   time.Now,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(monitor)
	}

	return monitor
}

// Run checks the target once and notifies when the policy asks for it. Only notification failures are
// returned; detection failures surface as an unknown classification.
func (m *Monitor) Run(ctx context.Context) (Report, error) {
	if m.checker == nil {
		return Report{}, fmt.Errorf("monitor missing availability checker dependency")
	}

	report := Report{RunAt: m.nowFn()}
	m.logger.Info("run started", slog.Time("run_at", report.RunAt))

	report.Classification = m.checker.Check(ctx, m.target)
	m.logger.Info("availability checked", slog.Any("result", report.Classification))

	report.Message = ComposeMessage(report.Classification, report.RunAt, m.target, m.venueTag)

	if !m.shouldNotify(report.Classification.Status) {
		m.logger.Info("notification suppressed", slog.String("status", string(report.Classification.Status)))
		return report, nil
	}

	for _, n := range m.notifiers {
		if err := n.notifier.Notify(ctx, report.Message); err != nil {
			return report, &DispatchError{Channel: n.channel, Err: err}
		}
	}
	report.Notified = len(m.notifiers) > 0

	return report, nil
}

func (m *Monitor) shouldNotify(status domain.Status) bool {
	switch status {
	case domain.StatusAvailable, domain.StatusUnknown:
		return true
	case domain.StatusFull:
		return m.notifyOnFull
	default:
		return true
	}
}
