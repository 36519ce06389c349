// Package twilio sends SMS through the Twilio REST API.
package twilio

import (
	"context"
	"errors"
	"fmt"

	twilioclient "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Sender creates Twilio messages.
type Sender struct {
	messages messageCreator
}

// NewSender builds a sender authenticated with the account SID and auth token.
func NewSender(accountSID, authToken string) *Sender {
	client := twilioclient.NewRestClientWithParams(twilioclient.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &Sender{messages: client.Api}
}

// Send creates one message and returns its SID.
func (s *Sender) Send(ctx context.Context, from, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(from)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := s.messages.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to create twilio message: %w", err)
	}

	if resp == nil || resp.Sid == nil || *resp.Sid == "" {
		return "", errors.New("twilio accepted the request but returned no message sid")
	}
	return *resp.Sid, nil
}
