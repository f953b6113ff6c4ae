package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/forms"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/tasks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewInteractionService(t *testing.T) {
	mapForm, err := forms.NewMinecraftMapForm("456")
	require.NoError(t, err)
	testCases := []struct {
		name       string
		forms      []forms.Form
		assertions func(InteractionService, error)
	}{
		{
			name:  "duplicate command",
			forms: []forms.Form{mapForm, &mockForm{commandName: libDiscord.AddMapCommand}},
			assertions: func(_ InteractionService, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), `command "add-map"`)
			},
		},
		{
			name: "duplicate modal",
			forms: []forms.Form{
				mapForm,
				&mockForm{commandName: "add-thing", modalID: forms.MinecraftMapModalID},
			},
			assertions: func(_ InteractionService, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), `modal "minecraft_form"`)
			},
		},
		{
			name: "success",
			forms: []forms.Form{
				mapForm,
				&mockForm{commandName: "add-thing", modalID: "thing_form"},
			},
			assertions: func(s InteractionService, err error) {
				require.NoError(t, err)
				service, ok := s.(*interactionService)
				require.True(t, ok)
				require.NotNil(t, service.submitter)
				require.Len(t, service.formsByCommand, 2)
				require.Len(t, service.formsByModalID, 2)
				require.Same(t, mapForm, service.formsByCommand["add-map"])
				require.Same(t, mapForm, service.formsByModalID["minecraft_form"])
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(
				NewInteractionService(
					&mockSubmitter{},
					zap.NewNop(),
					testCase.forms...,
				),
			)
		})
	}
}

func TestInteractionServiceHandle(t *testing.T) {
	mapForm, err := forms.NewMinecraftMapForm("456")
	require.NoError(t, err)
	deferred := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
	testCases := []struct {
		name        string
		interaction *libDiscord.Interaction
		submitter   *mockSubmitter
		assertions  func(Reply, error)
	}{
		{
			name:        "ping",
			interaction: &libDiscord.Interaction{Type: discordgo.InteractionPing},
			assertions: func(reply Reply, err error) {
				require.NoError(t, err)
				require.Equal(t, http.StatusOK, reply.StatusCode)
				requireJSON(t, `{"type":1}`, reply.Body)
			},
		},
		{
			name: "known command",
			interaction: &libDiscord.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				Data: libDiscord.InteractionData{Name: libDiscord.AddMapCommand},
			},
			assertions: func(reply Reply, err error) {
				require.NoError(t, err)
				require.Equal(t, http.StatusOK, reply.StatusCode)
				response, ok := reply.Body.(*discordgo.InteractionResponse)
				require.True(t, ok)
				require.Equal(t, discordgo.InteractionResponseModal, response.Type)
				require.Equal(t, forms.MinecraftMapModalID, response.Data.CustomID)
			},
		},
		{
			name: "unknown command",
			interaction: &libDiscord.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				Data: libDiscord.InteractionData{Name: "add-movie"},
			},
			assertions: func(reply Reply, err error) {
				require.NoError(t, err)
				require.Equal(t, http.StatusBadRequest, reply.StatusCode)
				requireJSON(t, `{"error":"Unknown command"}`, reply.Body)
			},
		},
		{
			name: "unknown modal",
			interaction: &libDiscord.Interaction{
				Type: discordgo.InteractionModalSubmit,
				Data: libDiscord.InteractionData{CustomID: "movie_form"},
			},
			assertions: func(reply Reply, err error) {
				require.NoError(t, err)
				require.Equal(t, http.StatusBadRequest, reply.StatusCode)
				requireJSON(t, `{"error":"Unknown modal"}`, reply.Body)
			},
		},
		{
			name: "error submitting",
			interaction: &libDiscord.Interaction{
				Type: discordgo.InteractionModalSubmit,
				Data: libDiscord.InteractionData{CustomID: forms.MinecraftMapModalID},
			},
			submitter: &mockSubmitter{
				SubmitFn: func(
					context.Context,
					forms.Form,
					*libDiscord.Interaction,
				) (*discordgo.InteractionResponse, error) {
					return nil, tasks.ErrDraining
				},
			},
			assertions: func(_ Reply, err error) {
				require.Error(t, err)
				require.ErrorIs(t, err, tasks.ErrDraining)
				require.Contains(t, err.Error(), "error submitting minecraft_form")
			},
		},
		{
			name: "modal submit",
			interaction: &libDiscord.Interaction{
				Type: discordgo.InteractionModalSubmit,
				Data: libDiscord.InteractionData{CustomID: forms.MinecraftMapModalID},
			},
			submitter: &mockSubmitter{
				SubmitFn: func(
					_ context.Context,
					form forms.Form,
					_ *libDiscord.Interaction,
				) (*discordgo.InteractionResponse, error) {
					require.Same(t, mapForm, form)
					return deferred, nil
				},
			},
			assertions: func(reply Reply, err error) {
				require.NoError(t, err)
				require.Equal(t, http.StatusOK, reply.StatusCode)
				require.Same(t, deferred, reply.Body)
			},
		},
		{
			name: "unknown type",
			interaction: &libDiscord.Interaction{
				Type: discordgo.InteractionMessageComponent,
			},
			assertions: func(reply Reply, err error) {
				require.NoError(t, err)
				require.Equal(t, http.StatusBadRequest, reply.StatusCode)
				requireJSON(t, `{"error":"Unknown Type"}`, reply.Body)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			submitter := testCase.submitter
			if submitter == nil {
				submitter = &mockSubmitter{
					SubmitFn: func(
						context.Context,
						forms.Form,
						*libDiscord.Interaction,
					) (*discordgo.InteractionResponse, error) {
						require.Fail(t, "nothing should have been submitted")
						return nil, nil
					},
				}
			}
			s, err := NewInteractionService(submitter, zap.NewNop(), mapForm)
			require.NoError(t, err)
			testCase.assertions(s.Handle(context.Background(), testCase.interaction))
		})
	}
}

func requireJSON(t *testing.T, expected string, body interface{}) {
	actual, err := json.Marshal(body)
	require.NoError(t, err)
	require.JSONEq(t, expected, string(actual))
}

type mockSubmitter struct {
	SubmitFn func(
		context.Context,
		forms.Form,
		*libDiscord.Interaction,
	) (*discordgo.InteractionResponse, error)
}

func (m *mockSubmitter) Submit(
	ctx context.Context,
	form forms.Form,
	interaction *libDiscord.Interaction,
) (*discordgo.InteractionResponse, error) {
	return m.SubmitFn(ctx, form, interaction)
}

type mockForm struct {
	commandName string
	modalID     string
}

func (m *mockForm) CommandName() string {
	return m.commandName
}

func (m *mockForm) ModalID() string {
	return m.modalID
}

func (m *mockForm) Modal() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseModal}
}

func (m *mockForm) ChannelID() string {
	return ""
}

func (m *mockForm) SuccessMessage() string {
	return ""
}

func (m *mockForm) Compose(
	context.Context,
	*libDiscord.Interaction,
) (*discordgo.MessageSend, error) {
	return nil, errors.New("not implemented")
}
