package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sglre6355/vacancy-alert/internal/domain"
)

// PageSession is a rendered browsing context scoped to a single run.
type PageSession interface {
	// Navigate loads url and returns once the DOM has been parsed.
	Navigate(ctx context.Context, url string) error
	// Inspect queries the live DOM for target's date element and its status icon.
	Inspect(ctx context.Context, target domain.Target) (domain.PageSnapshot, error)
	Close() error
}

// Browser opens rendered browsing sessions.
type Browser interface {
	Open(ctx context.Context) (PageSession, error)
}

// AvailabilityClassifier turns what the page showed for the date into a classification.
type AvailabilityClassifier interface {
	Classify(snapshot domain.PageSnapshot) domain.Classification
}

// AvailabilityChecker renders the target page and classifies the monitored date.
type AvailabilityChecker struct {
	browser    Browser
	classifier AvailabilityClassifier
	logger     *slog.Logger

	settleDelay      time.Duration
	operationTimeout time.Duration
	sleep            func(ctx context.Context, d time.Duration) error
}

// CheckerOption configures an AvailabilityChecker.
type CheckerOption func(*AvailabilityChecker)

// WithSettleDelay sets the wait between navigation and inspection.
func WithSettleDelay(delay time.Duration) CheckerOption {
	return func(c *AvailabilityChecker) {
		if delay >= 0 {
			c.settleDelay = delay
		}
	}
}

// WithOperationTimeout bounds every browser-driven operation.
func WithOperationTimeout(timeout time.Duration) CheckerOption {
	return func(c *AvailabilityChecker) {
		if timeout > 0 {
			c.operationTimeout = timeout
		}
	}
}

// WithCheckerLogger sets the logger used for session cleanup failures.
func WithCheckerLogger(logger *slog.Logger) CheckerOption {
	return func(c *AvailabilityChecker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewAvailabilityChecker builds a checker rendering pages with browser and classifying them with classifier.
func NewAvailabilityChecker(
	browser Browser,
	classifier AvailabilityClassifier,
	opts ...CheckerOption,
) *AvailabilityChecker {
	checker := &AvailabilityChecker{
		browser:          browser,
		classifier:       classifier,
		logger:           slog.Default(),
		settleDelay:      5 * time.Second,
		operationTimeout: 60 * time.Second,
		sleep:            sleepContext,
	}

	for _, opt := range opts {
		opt(checker)
	}

	return checker
}

// Check produces exactly one classification for target. Rendering and inspection failures are reported
// as an unknown classification rather than an error.
func (c *AvailabilityChecker) Check(ctx context.Context, target domain.Target) domain.Classification {
	if c.browser == nil || c.classifier == nil {
		return domain.Unknown("availability checker is not fully configured")
	}

	session, err := c.browser.Open(ctx)
	if err != nil {
		return domain.Unknown(fmt.Sprintf("failed to open browser session: %v", err))
	}
	defer func() {
		if err := session.Close(); err != nil {
			c.logger.Warn("failed to close browser session", slog.Any("error", err))
		}
	}()

	snapshot, err := c.inspect(ctx, session, target)
	if err != nil {
		return domain.Unknown(err.Error())
	}

	return c.classifier.Classify(snapshot)
}

func (c *AvailabilityChecker) inspect(
	ctx context.Context,
	session PageSession,
	target domain.Target,
) (domain.PageSnapshot, error) {
	navCtx, cancelNav := context.WithTimeout(ctx, c.operationTimeout)
	err := session.Navigate(navCtx, target.URL)
	cancelNav()
	if err != nil {
		return domain.PageSnapshot{}, fmt.Errorf("failed to load %s: %w", target.URL, err)
	}

	// availability markup is filled in client-side after the DOM is ready
	if err := c.sleep(ctx, c.settleDelay); err != nil {
		return domain.PageSnapshot{}, fmt.Errorf("settling interrupted: %w", err)
	}

	inspectCtx, cancelInspect := context.WithTimeout(ctx, c.operationTimeout)
	defer cancelInspect()
	snapshot, err := session.Inspect(inspectCtx, target)
	if err != nil {
		return domain.PageSnapshot{}, fmt.Errorf("failed to inspect page: %w", err)
	}

	return snapshot, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
