package forms

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/validation"
)

// Form is an interface for modal forms that users fill in to register
// something in a Discord channel.
type Form interface {
	// CommandName returns the name of the slash command that opens the form.
	CommandName() string
	// ModalID returns the custom ID the form's modal is submitted with.
	ModalID() string
	// Modal returns the interaction response that displays the form.
	Modal() *discordgo.InteractionResponse
	// ChannelID returns the channel registrations are posted to.
	ChannelID() string
	// SuccessMessage returns the acknowledgment sent to the user once the
	// registration has been posted.
	SuccessMessage() string
	// Compose extracts and validates a submission and renders the message to
	// post. Problems with the user's input are returned as *validation.Error.
	Compose(
		ctx context.Context,
		interaction *libDiscord.Interaction,
	) (*discordgo.MessageSend, error)
}

// Submission is the text entered into a modal along with the URLs of any
// uploaded files.
type Submission struct {
	values         map[string]string
	AttachmentURLs []string
}

// NewSubmission extracts a Submission from a modal submit interaction. Values
// are trimmed; fields left blank are treated as absent.
func NewSubmission(interaction *libDiscord.Interaction) Submission {
	values := map[string]string{}
	for id, raw := range interaction.TextInputs() {
		if value := strings.TrimSpace(raw); value != "" {
			values[id] = value
		}
	}
	return Submission{
		values:         values,
		AttachmentURLs: interaction.AttachmentURLs(),
	}
}

// Value returns the trimmed value of a field and whether it is present.
func (s Submission) Value(id string) (string, bool) {
	value, ok := s.values[id]
	return value, ok
}

// Get returns the trimmed value of a field, or "" when it is absent.
func (s Submission) Get(id string) string {
	return s.values[id]
}

func resolveActor(interaction *libDiscord.Interaction) (*libDiscord.User, error) {
	user := interaction.Actor()
	if user == nil {
		return nil, validation.Errorf("ユーザー情報が取得できませんでした")
	}
	return user, nil
}

// field is an embed field that is only rendered when its value is present.
type field struct {
	name   string
	value  string
	inline bool
}

// embedFields validates the values of present fields against Discord's limits
// and returns them in order.
func embedFields(fields ...field) ([]*discordgo.MessageEmbedField, error) {
	embedFields := []*discordgo.MessageEmbedField{}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := validation.EmbedFieldValue(f.value, f.name); err != nil {
			return nil, err
		}
		embedFields = append(embedFields, &discordgo.MessageEmbedField{
			Name:   f.name,
			Value:  f.value,
			Inline: f.inline,
		})
	}
	return embedFields, nil
}
