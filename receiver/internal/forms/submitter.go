package forms

import (
	"context"

	"github.com/bwmarrin/discordgo"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/tasks"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/validation"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Submitter is an interface for components that can accept modal submissions.
// Implementations of this interface are transport-agnostic.
type Submitter interface {
	// Submit accepts a submission of the given Form and returns the deferred
	// response that must be sent to Discord right away. The registration itself
	// happens in the background and its outcome is reported to the user with a
	// follow-up message.
	Submit(
		ctx context.Context,
		form Form,
		interaction *libDiscord.Interaction,
	) (*discordgo.InteractionResponse, error)
}

type submitter struct {
	client    libDiscord.Client
	scheduler tasks.Scheduler
	logger    *zap.Logger
	// registerFn is overridable for testing purposes
	registerFn func(context.Context, Form, *libDiscord.Interaction) error
}

// NewSubmitter returns a Submitter that posts registrations and follow-ups
// through the provided Client, doing so on the provided Scheduler.
func NewSubmitter(
	client libDiscord.Client,
	scheduler tasks.Scheduler,
	logger *zap.Logger,
) Submitter {
	s := &submitter{
		client:    client,
		scheduler: scheduler,
		logger:    logger,
	}
	s.registerFn = s.register
	return s
}

func (s *submitter) Submit(
	_ context.Context,
	form Form,
	interaction *libDiscord.Interaction,
) (*discordgo.InteractionResponse, error) {
	if err := s.scheduler.Schedule(
		form.ModalID(),
		func(ctx context.Context) {
			s.process(ctx, form, interaction)
		},
	); err != nil {
		return nil, errors.Wrapf(
			err,
			"error scheduling %s submission %q",
			form.ModalID(),
			interaction.ID,
		)
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}, nil
}

// process registers the submission and tells the user how it went. Nothing is
// returned because the response to Discord has already been sent.
func (s *submitter) process(
	ctx context.Context,
	form Form,
	interaction *libDiscord.Interaction,
) {
	logger := s.logger.With(
		zap.String("form", form.ModalID()),
		zap.String("interactionID", interaction.ID),
	)
	content := form.SuccessMessage()
	if err := s.registerFn(ctx, form, interaction); err != nil {
		if msg, ok := validation.Message(err); ok {
			logger.Info("submission rejected", zap.String("reason", msg))
			content = msg
		} else {
			logger.Error("error handling submission", zap.Error(err))
			content = failureMessage
		}
	} else {
		logger.Info("registration posted", zap.String("channelID", form.ChannelID()))
	}
	if err := s.client.CreateFollowup(
		ctx,
		interaction.Token,
		&discordgo.WebhookParams{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	); err != nil {
		logger.Error("error sending follow-up message", zap.Error(err))
	}
}

func (s *submitter) register(
	ctx context.Context,
	form Form,
	interaction *libDiscord.Interaction,
) error {
	message, err := form.Compose(ctx, interaction)
	if err != nil {
		return errors.Wrap(err, "error composing registration message")
	}
	return s.client.CreateMessage(ctx, form.ChannelID(), message)
}
