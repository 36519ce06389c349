package infrastructure

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/sglre6355/vacancy-alert/internal/domain"
	"github.com/sglre6355/vacancy-alert/internal/usecase"
)

//go:embed inspect.js
var inspectScript string

// ChromeBrowser launches a local Chrome instance per session through the DevTools protocol.
type ChromeBrowser struct {
	allocatorOptions []chromedp.ExecAllocatorOption
}

// NewChromeBrowser returns a browser using the Chrome binary at execPath, or the one found on PATH
// when execPath is empty.
func NewChromeBrowser(execPath string, headless bool) *ChromeBrowser {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	return &ChromeBrowser{allocatorOptions: opts}
}

// Open starts a browser process and returns a session bound to its first tab.
func (b *ChromeBrowser) Open(ctx context.Context) (usecase.PageSession, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocatorOptions...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// the first Run on a fresh context starts the browser
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &chromeSession{
		ctx:           browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}, nil
}

type chromeSession struct {
	ctx           context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

// Navigate returns on DOMContentLoaded, without waiting for the load event.
func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	return s.run(ctx,
		navigateUntilDOMReady(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

type inspection struct {
	DateElementFound bool     `json:"dateElementFound"`
	IconFound        bool     `json:"iconFound"`
	IconClass        string   `json:"iconClass"`
	LinkHref         string   `json:"linkHref"`
	ClassSample      []string `json:"classSample"`
	Failure          string   `json:"failure"`
}

// Inspect runs the date lookup inside the page against the live DOM.
func (s *chromeSession) Inspect(ctx context.Context, target domain.Target) (domain.PageSnapshot, error) {
	expression, err := inspectExpression(target)
	if err != nil {
		return domain.PageSnapshot{}, err
	}

	var res inspection
	if err := s.run(ctx, chromedp.Evaluate(expression, &res)); err != nil {
		return domain.PageSnapshot{}, err
	}

	return domain.PageSnapshot{
		DateElementFound: res.DateElementFound,
		IconFound:        res.IconFound,
		IconClass:        res.IconClass,
		LinkHref:         res.LinkHref,
		ClassSample:      res.ClassSample,
		Failure:          res.Failure,
	}, nil
}

func (s *chromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.ctx)
		s.cancelBrowser()
		s.cancelAlloc()
	})
	return s.closeErr
}

// run executes actions on the session's tab while honouring the caller's deadline and cancellation.
// Actions must run on a context derived from the tab context.
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func navigateUntilDOMReady(url string) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		listenCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		ready := make(chan struct{})
		var once sync.Once
		chromedp.ListenTarget(listenCtx, func(ev any) {
			if _, ok := ev.(*page.EventDomContentEventFired); ok {
				once.Do(func() { close(ready) })
			}
		})

		_, _, errorText, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return err
		}
		if errorText != "" {
			return fmt.Errorf("page load error %s", errorText)
		}

		select {
		case <-ready:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func inspectExpression(target domain.Target) (string, error) {
	query, err := json.Marshal(struct {
		DateID    string `json:"dateId"`
		DateLabel string `json:"dateLabel"`
	}{DateID: target.DateID, DateLabel: target.DateLabel})
	if err != nil {
		return "", fmt.Errorf("failed to encode inspection query: %w", err)
	}

	return fmt.Sprintf("(%s)(%s)", inspectScript, query), nil
}
