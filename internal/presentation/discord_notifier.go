package presentation

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordNotifier mirrors alerts into a Discord channel.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordNotifier wires a Discord session to the notifier interface expected by the use case layer.
func NewDiscordNotifier(session *discordgo.Session, channelID string) (*DiscordNotifier, error) {
	if session == nil {
		return nil, fmt.Errorf("discord session cannot be nil")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord channel id cannot be empty")
	}

	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

// Notify posts message to the configured channel.
func (n *DiscordNotifier) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := n.session.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send alert message: %w", err)
	}

	return nil
}
