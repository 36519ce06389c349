package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/sglre6355/vacancy-alert/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSession struct {
	navigateErr error
	inspectErr  error
	snapshot    domain.PageSnapshot

	navigatedTo []string
	closeCalls  int
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.navigatedTo = append(s.navigatedTo, url)
	return s.navigateErr
}

func (s *fakeSession) Inspect(context.Context, domain.Target) (domain.PageSnapshot, error) {
	if s.inspectErr != nil {
		return domain.PageSnapshot{}, s.inspectErr
	}
	return s.snapshot, nil
}

func (s *fakeSession) Close() error {
	s.closeCalls++
	return nil
}

type fakeBrowser struct {
	session *fakeSession
	openErr error
	opened  int
}

func (b *fakeBrowser) Open(context.Context) (PageSession, error) {
	b.opened++
	if b.openErr != nil {
		return nil, b.openErr
	}
	return b.session, nil
}

type fakeClassifier struct {
	result    domain.Classification
	snapshots []domain.PageSnapshot
}

func (c *fakeClassifier) Classify(snapshot domain.PageSnapshot) domain.Classification {
	c.snapshots = append(c.snapshots, snapshot)
	return c.result
}

type sentMessage struct {
	from, to, body string
}

type fakeSender struct {
	mu     sync.Mutex
	sent   []sentMessage
	failOn map[string]error
}

func (s *fakeSender) Send(_ context.Context, from, to, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failOn[to]; ok {
		return "", err
	}
	s.sent = append(s.sent, sentMessage{from: from, to: to, body: body})
	return "SM" + to, nil
}

type fakeChecker struct {
	result domain.Classification
	calls  int
}

func (c *fakeChecker) Check(context.Context, domain.Target) domain.Classification {
	c.calls++
	return c.result
}

type recordingNotifier struct {
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	return n.err
}

var errBoom = errors.New("boom")
