package discord

import (
	"context"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

// Client is an interface for components that can call Discord's REST API on
// behalf of the App.
type Client interface {
	// CreateMessage posts a message to a channel. The request is sent as
	// multipart/form-data when the message carries files and as JSON otherwise.
	CreateMessage(
		ctx context.Context,
		channelID string,
		message *discordgo.MessageSend,
	) error
	// CreateFollowup sends a follow-up message for the interaction identified
	// by the given token.
	CreateFollowup(
		ctx context.Context,
		token string,
		params *discordgo.WebhookParams,
	) error
	// OverwriteCommands replaces the App's slash commands. Commands are global
	// unless a guild ID is specified.
	OverwriteCommands(
		ctx context.Context,
		guildID string,
		commands []*discordgo.ApplicationCommand,
	) ([]*discordgo.ApplicationCommand, error)
}

type client struct {
	applicationID string
	session       *discordgo.Session
}

// NewClient returns a Client backed by a discordgo REST session. When
// httpClient is non-nil it is used for all requests. The session never
// retries on its own; retry policy belongs to the supplied http.Client.
func NewClient(app App, httpClient *http.Client) (Client, error) {
	session, err := discordgo.New("Bot " + app.BotToken)
	if err != nil {
		return nil, errors.Wrap(err, "error creating discord session")
	}
	if httpClient != nil {
		session.Client = httpClient
	}
	session.MaxRestRetries = 0
	session.ShouldRetryOnRateLimit = false
	return &client{
		applicationID: app.ApplicationID,
		session:       session,
	}, nil
}

func (c *client) CreateMessage(
	ctx context.Context,
	channelID string,
	message *discordgo.MessageSend,
) error {
	if _, err := c.session.ChannelMessageSendComplex(
		channelID,
		message,
		discordgo.WithContext(ctx),
	); err != nil {
		return errors.Wrapf(
			err,
			"error posting message to channel %q",
			channelID,
		)
	}
	return nil
}

func (c *client) CreateFollowup(
	ctx context.Context,
	token string,
	params *discordgo.WebhookParams,
) error {
	interaction := &discordgo.Interaction{
		AppID: c.applicationID,
		Token: token,
	}
	if _, err := c.session.FollowupMessageCreate(
		interaction,
		true,
		params,
		discordgo.WithContext(ctx),
	); err != nil {
		return errors.Wrap(err, "error sending follow-up message")
	}
	return nil
}

func (c *client) OverwriteCommands(
	ctx context.Context,
	guildID string,
	commands []*discordgo.ApplicationCommand,
) ([]*discordgo.ApplicationCommand, error) {
	registered, err := c.session.ApplicationCommandBulkOverwrite(
		c.applicationID,
		guildID,
		commands,
		discordgo.WithContext(ctx),
	)
	return registered, errors.Wrap(err, "error overwriting application commands")
}
