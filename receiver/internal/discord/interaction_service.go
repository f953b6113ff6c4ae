package discord

import (
	"context"
	"net/http"

	"github.com/bwmarrin/discordgo"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/forms"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Reply is what the gateway says back to Discord in response to an
// interaction. Body is serialized as JSON.
type Reply struct {
	StatusCode int
	Body       interface{}
}

// errorBody is the JSON body of a rejected interaction.
type errorBody struct {
	Error string `json:"error"`
}

// InteractionService is an interface for components that can handle
// interactions from Discord. Implementations of this interface are
// transport-agnostic.
type InteractionService interface {
	// Handle handles an interaction from Discord.
	Handle(context.Context, *libDiscord.Interaction) (Reply, error)
}

type interactionService struct {
	submitter      forms.Submitter
	formsByCommand map[string]forms.Form
	formsByModalID map[string]forms.Form
	logger         *zap.Logger
}

// NewInteractionService returns an implementation of the InteractionService
// interface that opens the modal of each provided Form when its command is
// invoked and hands its submissions to the provided Submitter.
func NewInteractionService(
	submitter forms.Submitter,
	logger *zap.Logger,
	registeredForms ...forms.Form,
) (InteractionService, error) {
	s := &interactionService{
		submitter:      submitter,
		formsByCommand: map[string]forms.Form{},
		formsByModalID: map[string]forms.Form{},
		logger:         logger,
	}
	for _, form := range registeredForms {
		if _, ok := s.formsByCommand[form.CommandName()]; ok {
			return nil, errors.Errorf(
				"command %q is registered more than once",
				form.CommandName(),
			)
		}
		if _, ok := s.formsByModalID[form.ModalID()]; ok {
			return nil, errors.Errorf(
				"modal %q is registered more than once",
				form.ModalID(),
			)
		}
		s.formsByCommand[form.CommandName()] = form
		s.formsByModalID[form.ModalID()] = form
	}
	return s, nil
}

func (s *interactionService) Handle(
	ctx context.Context,
	interaction *libDiscord.Interaction,
) (Reply, error) {
	switch interaction.Type {
	case discordgo.InteractionPing:
		return Reply{
			StatusCode: http.StatusOK,
			Body: discordgo.InteractionResponse{
				Type: discordgo.InteractionResponsePong,
			},
		}, nil
	case discordgo.InteractionApplicationCommand:
		form, ok := s.formsByCommand[interaction.Data.Name]
		if !ok {
			s.logger.Info(
				"unknown command",
				zap.String("command", interaction.Data.Name),
			)
			return badRequest("Unknown command"), nil
		}
		return Reply{
			StatusCode: http.StatusOK,
			Body:       form.Modal(),
		}, nil
	case discordgo.InteractionModalSubmit:
		form, ok := s.formsByModalID[interaction.Data.CustomID]
		if !ok {
			s.logger.Info(
				"unknown modal",
				zap.String("customID", interaction.Data.CustomID),
			)
			return badRequest("Unknown modal"), nil
		}
		response, err := s.submitter.Submit(ctx, form, interaction)
		if err != nil {
			return Reply{}, errors.Wrapf(
				err,
				"error submitting %s",
				form.ModalID(),
			)
		}
		return Reply{
			StatusCode: http.StatusOK,
			Body:       response,
		}, nil
	}
	return badRequest("Unknown Type"), nil
}

func badRequest(msg string) Reply {
	return Reply{
		StatusCode: http.StatusBadRequest,
		Body:       errorBody{Error: msg},
	}
}
