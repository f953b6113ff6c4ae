package forms

import (
	"context"
	"text/template"
	"time"

	"github.com/bwmarrin/discordgo"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/validation"
	"github.com/pkg/errors"
)

// MinecraftMapModalID is the custom ID of the Minecraft map modal.
const MinecraftMapModalID = "minecraft_form"

// MinecraftMapColor is the embed color for Minecraft maps.
const MinecraftMapColor = 0x2ECC71

// MinecraftMap is a submitted Minecraft map registration. Optional fields are
// empty when absent.
type MinecraftMap struct {
	MapName     string
	URL         string
	PlayerCount string
	Version     string
	Tags        string
}

// ExtractMinecraftMap maps a submission onto a MinecraftMap.
func ExtractMinecraftMap(submission Submission) MinecraftMap {
	return MinecraftMap{
		MapName:     submission.Get("map_name"),
		URL:         submission.Get("url"),
		PlayerCount: submission.Get("player_count"),
		Version:     submission.Get("mc_version"),
		Tags:        submission.Get("tags"),
	}
}

// Validate checks the required fields and the shape of the URL.
func (m MinecraftMap) Validate() error {
	if err := validation.Required(m.MapName, "マップ名"); err != nil {
		return err
	}
	if err := validation.Required(m.URL, "URL"); err != nil {
		return err
	}
	if err := validation.Required(m.PlayerCount, "プレイ人数"); err != nil {
		return err
	}
	if !validation.IsURL(m.URL) {
		return validation.Errorf(
			"URLは http:// または https:// で始まる形式で入力してください",
		)
	}
	return validation.EmbedTitle(m.MapName)
}

type minecraftMapForm struct {
	channelID      string
	successMessage string
	footerTemplate *template.Template
	// nowFn is overridable for testing purposes
	nowFn func() time.Time
}

// NewMinecraftMapForm returns the Form for registering Minecraft maps in the
// given channel.
func NewMinecraftMapForm(channelID string) (Form, error) {
	footerTemplate, err := parseTemplate(mapFooterTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing map footer template")
	}
	successMessage, err := renderSuccessMessage("Minecraftマップ")
	if err != nil {
		return nil, errors.Wrap(err, "error rendering map success message")
	}
	return &minecraftMapForm{
		channelID:      channelID,
		successMessage: successMessage,
		footerTemplate: footerTemplate,
		nowFn:          time.Now,
	}, nil
}

func (m *minecraftMapForm) CommandName() string {
	return libDiscord.AddMapCommand
}

func (m *minecraftMapForm) ModalID() string {
	return MinecraftMapModalID
}

func (m *minecraftMapForm) ChannelID() string {
	return m.channelID
}

func (m *minecraftMapForm) SuccessMessage() string {
	return m.successMessage
}

func (m *minecraftMapForm) Modal() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: MinecraftMapModalID,
			Title:    "Minecraftマップ登録",
			Components: []discordgo.MessageComponent{
				textInputRow("map_name", "マップ名", true, "", 256),
				textInputRow("url", "URL", true, "https://...", 500),
				textInputRow("player_count", "プレイ人数", true, "例: 1-4人", 100),
				textInputRow(
					"mc_version",
					"Minecraftバージョン",
					false,
					"例: 1.20.1",
					50,
				),
				textInputRow("tags", "タグ", false, "例: mod, アスレチック, PvP", 200),
			},
		},
	}
}

func (m *minecraftMapForm) Compose(
	_ context.Context,
	interaction *libDiscord.Interaction,
) (*discordgo.MessageSend, error) {
	minecraftMap := ExtractMinecraftMap(NewSubmission(interaction))
	if err := minecraftMap.Validate(); err != nil {
		return nil, err
	}
	user, err := resolveActor(interaction)
	if err != nil {
		return nil, err
	}
	embed, err := m.buildEmbed(minecraftMap, user.Username)
	if err != nil {
		return nil, err
	}
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, nil
}

func (m *minecraftMapForm) buildEmbed(
	minecraftMap MinecraftMap,
	username string,
) (*discordgo.MessageEmbed, error) {
	fields, err := embedFields(
		field{name: "URL", value: minecraftMap.URL, inline: false},
		field{name: "プレイ人数", value: minecraftMap.PlayerCount, inline: true},
		field{name: "Minecraftバージョン", value: minecraftMap.Version, inline: true},
		field{name: "タグ", value: minecraftMap.Tags, inline: false},
	)
	if err != nil {
		return nil, err
	}
	footer, err := render(
		m.footerTemplate,
		struct{ Username string }{Username: username},
	)
	if err != nil {
		return nil, errors.Wrap(err, "error rendering map footer")
	}
	return &discordgo.MessageEmbed{
		Title:     minecraftMap.MapName,
		Color:     MinecraftMapColor,
		Fields:    fields,
		Footer:    &discordgo.MessageEmbedFooter{Text: footer},
		Timestamp: m.nowFn().UTC().Format(time.RFC3339),
	}, nil
}
