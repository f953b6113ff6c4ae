package forms

import (
	"context"

	"github.com/bwmarrin/discordgo"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/attachments"
)

type mockClient struct {
	CreateMessageFn func(
		context.Context,
		string,
		*discordgo.MessageSend,
	) error
	CreateFollowupFn func(
		context.Context,
		string,
		*discordgo.WebhookParams,
	) error
}

func (m *mockClient) CreateMessage(
	ctx context.Context,
	channelID string,
	message *discordgo.MessageSend,
) error {
	return m.CreateMessageFn(ctx, channelID, message)
}

func (m *mockClient) CreateFollowup(
	ctx context.Context,
	token string,
	params *discordgo.WebhookParams,
) error {
	return m.CreateFollowupFn(ctx, token, params)
}

func (m *mockClient) OverwriteCommands(
	context.Context,
	string,
	[]*discordgo.ApplicationCommand,
) ([]*discordgo.ApplicationCommand, error) {
	return nil, nil
}

type mockFetcher struct {
	FetchFn func(context.Context, []string) ([]attachments.Attachment, error)
}

func (m *mockFetcher) Fetch(
	ctx context.Context,
	urls []string,
) ([]attachments.Attachment, error) {
	return m.FetchFn(ctx, urls)
}

// inlineScheduler runs tasks synchronously so that tests can observe their
// effects as soon as Schedule returns.
type inlineScheduler struct {
	err error
}

func (i *inlineScheduler) Schedule(_ string, fn func(context.Context)) error {
	if i.err != nil {
		return i.err
	}
	fn(context.Background())
	return nil
}

type mockForm struct {
	ComposeFn func(
		context.Context,
		*libDiscord.Interaction,
	) (*discordgo.MessageSend, error)
}

func (m *mockForm) CommandName() string {
	return "add-thing"
}

func (m *mockForm) ModalID() string {
	return "thing_form"
}

func (m *mockForm) Modal() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseModal}
}

func (m *mockForm) ChannelID() string {
	return "thing-channel"
}

func (m *mockForm) SuccessMessage() string {
	return "✅ thing registered"
}

func (m *mockForm) Compose(
	ctx context.Context,
	interaction *libDiscord.Interaction,
) (*discordgo.MessageSend, error) {
	return m.ComposeFn(ctx, interaction)
}

// modalSubmit builds a modal submit interaction the way Discord sends one,
// with every text input in its own action row.
func modalSubmit(
	customID string,
	values map[string]string,
	user *libDiscord.User,
) *libDiscord.Interaction {
	rows := []libDiscord.Component{}
	for id, value := range values {
		value := value
		rows = append(rows, libDiscord.Component{
			Type: discordgo.ActionsRowComponent,
			Components: []libDiscord.Component{
				{
					Type:     discordgo.TextInputComponent,
					CustomID: id,
					Value:    &value,
				},
			},
		})
	}
	return &libDiscord.Interaction{
		ID:    "test-id",
		Type:  discordgo.InteractionModalSubmit,
		Token: "test-token",
		Data: libDiscord.InteractionData{
			CustomID:   customID,
			Components: rows,
		},
		User: user,
	}
}

func withPhoto(
	interaction *libDiscord.Interaction,
	url string,
) *libDiscord.Interaction {
	interaction.Data.Components = append(
		interaction.Data.Components,
		libDiscord.Component{
			Type: libDiscord.LabelComponent,
			Component: &libDiscord.Component{
				Type:     libDiscord.FileUploadComponent,
				CustomID: "photo",
				Values:   []string{"1"},
			},
		},
	)
	interaction.Data.Resolved = &libDiscord.Resolved{
		Attachments: map[string]libDiscord.Attachment{
			"1": {ID: "1", URL: url},
		},
	}
	return interaction
}

var testUser = &libDiscord.User{ID: "42", Username: "testuser"}
