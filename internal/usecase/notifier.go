package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Notifier delivers a composed message to its destinations.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// TextSender sends a single text message and returns the provider's message id.
type TextSender interface {
	Send(ctx context.Context, from, to, body string) (string, error)
}

// SendError reports the recipient whose delivery failed.
type SendError struct {
	Recipient string
	Err       error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send sms to %s: %v", e.Recipient, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// SMSNotifier sends one SMS per recipient, in order, stopping at the first failure.
type SMSNotifier struct {
	sender     TextSender
	from       string
	recipients []string
	logger     *slog.Logger
}

// NewSMSNotifier validates the delivery settings and returns a notifier for recipients.
func NewSMSNotifier(
	sender TextSender,
	from string,
	recipients []string,
	logger *slog.Logger,
) (*SMSNotifier, error) {
	if sender == nil {
		return nil, errors.New("sms sender cannot be nil")
	}
	if from == "" {
		return nil, errors.New("sms sender number cannot be empty")
	}
	if len(recipients) == 0 {
		return nil, errors.New("no valid sms recipients")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SMSNotifier{
		sender:     sender,
		from:       from,
		recipients: append([]string(nil), recipients...),
		logger:     logger,
	}, nil
}

// Notify sends message to every recipient sequentially.
func (n *SMSNotifier) Notify(ctx context.Context, message string) error {
	for _, to := range n.recipients {
		if err := ctx.Err(); err != nil {
			return &SendError{Recipient: to, Err: err}
		}

		sid, err := n.sender.Send(ctx, n.from, to, message)
		if err != nil {
			n.logger.Error("sms send failed", slog.String("to", to), slog.Any("error", err))
			return &SendError{Recipient: to, Err: err}
		}

		n.logger.Info("sms sent", slog.String("to", to), slog.String("sid", sid))
	}

	n.logger.Info("all sms sent", slog.Int("recipients", len(n.recipients)))
	return nil
}
