package forms

import (
	"encoding/json"

	"github.com/bwmarrin/discordgo"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
)

// textInputRow wraps a single-line text input in the action row modals
// require.
func textInputRow(
	customID string,
	label string,
	required bool,
	placeholder string,
	maxLength int,
) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    customID,
				Label:       label,
				Style:       discordgo.TextInputShort,
				Required:    required,
				Placeholder: placeholder,
				MaxLength:   maxLength,
			},
		},
	}
}

// labelComponent is a modal label wrapping a single child component. Discord
// only accepts file uploads inside labels.
type labelComponent struct {
	Label     string
	Component discordgo.MessageComponent
}

func (labelComponent) Type() discordgo.ComponentType {
	return libDiscord.LabelComponent
}

func (l labelComponent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      discordgo.ComponentType    `json:"type"`
		Label     string                     `json:"label"`
		Component discordgo.MessageComponent `json:"component"`
	}{
		Type:      l.Type(),
		Label:     l.Label,
		Component: l.Component,
	})
}

// fileUploadComponent lets users attach files to a modal submission.
type fileUploadComponent struct {
	CustomID  string
	Required  bool
	MaxValues int
}

func (fileUploadComponent) Type() discordgo.ComponentType {
	return libDiscord.FileUploadComponent
}

func (f fileUploadComponent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      discordgo.ComponentType `json:"type"`
		CustomID  string                  `json:"custom_id"`
		Required  bool                    `json:"required"`
		MaxValues int                     `json:"max_values,omitempty"`
	}{
		Type:      f.Type(),
		CustomID:  f.CustomID,
		Required:  f.Required,
		MaxValues: f.MaxValues,
	})
}
