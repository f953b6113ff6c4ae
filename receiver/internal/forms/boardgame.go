package forms

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/bwmarrin/discordgo"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/attachments"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/validation"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BoardGameModalID is the custom ID of the board game modal.
const BoardGameModalID = "boardgame_form"

// Embed colors for board games.
const (
	OnlineGameColor   = 0x5865F2
	PhysicalGameColor = 0x57F287
)

// BoardGame is a submitted board game registration. Optional fields are empty
// when absent.
type BoardGame struct {
	GameName    string
	PlayerCount string
	PlayTime    string
	// OwnerURL is either the name of the person who owns a physical copy or the
	// URL of an online version.
	OwnerURL string
}

// IsOnline returns true when OwnerURL is a URL rather than an owner's name.
func (b BoardGame) IsOnline() bool {
	return b.OwnerURL != "" && validation.IsURL(b.OwnerURL)
}

// ExtractBoardGame maps a submission onto a BoardGame.
func ExtractBoardGame(submission Submission) BoardGame {
	return BoardGame{
		GameName:    submission.Get("game_name"),
		PlayerCount: submission.Get("player_count"),
		PlayTime:    submission.Get("play_time"),
		OwnerURL:    submission.Get("owner_url"),
	}
}

type boardGameForm struct {
	channelID      string
	successMessage string
	footerTemplate *template.Template
	fetcher        attachments.Fetcher
	logger         *zap.Logger
	// nowFn is overridable for testing purposes
	nowFn func() time.Time
}

// NewBoardGameForm returns the Form for registering board games in the given
// channel. Photos attached to submissions are downloaded with the provided
// Fetcher.
func NewBoardGameForm(
	channelID string,
	fetcher attachments.Fetcher,
	logger *zap.Logger,
) (Form, error) {
	footerTemplate, err := parseTemplate(boardGameFooterTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing board game footer template")
	}
	successMessage, err := renderSuccessMessage("ボードゲーム")
	if err != nil {
		return nil, errors.Wrap(err, "error rendering board game success message")
	}
	return &boardGameForm{
		channelID:      channelID,
		successMessage: successMessage,
		footerTemplate: footerTemplate,
		fetcher:        fetcher,
		logger:         logger,
		nowFn:          time.Now,
	}, nil
}

func (b *boardGameForm) CommandName() string {
	return libDiscord.AddGameCommand
}

func (b *boardGameForm) ModalID() string {
	return BoardGameModalID
}

func (b *boardGameForm) ChannelID() string {
	return b.channelID
}

func (b *boardGameForm) SuccessMessage() string {
	return b.successMessage
}

func (b *boardGameForm) Modal() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: BoardGameModalID,
			Title:    "ボードゲーム登録",
			Components: []discordgo.MessageComponent{
				textInputRow("game_name", "ゲーム名", true, "", 256),
				textInputRow("player_count", "推奨プレイ人数", false, "例: 3-5人", 100),
				textInputRow("play_time", "プレイ時間", false, "例: 30-60分", 100),
				textInputRow(
					"owner_url",
					"所有者/URL",
					false,
					"所有者名 または オンラインゲームのURL",
					500,
				),
				labelComponent{
					Label: "写真",
					Component: fileUploadComponent{
						CustomID:  "photo",
						Required:  false,
						MaxValues: 1,
					},
				},
			},
		},
	}
}

func (b *boardGameForm) Compose(
	ctx context.Context,
	interaction *libDiscord.Interaction,
) (*discordgo.MessageSend, error) {
	submission := NewSubmission(interaction)
	game := ExtractBoardGame(submission)
	if err := validation.Required(game.GameName, "ゲーム名"); err != nil {
		return nil, err
	}
	if err := validation.EmbedTitle(game.GameName); err != nil {
		return nil, err
	}
	user, err := resolveActor(interaction)
	if err != nil {
		return nil, err
	}

	var file *discordgo.File
	if len(submission.AttachmentURLs) > 0 {
		file = b.downloadPhoto(ctx, submission.AttachmentURLs[0])
	}
	var imageURL string
	if file != nil {
		imageURL = "attachment://" + file.Name
	}

	embed, err := b.buildEmbed(game, user.Username, imageURL)
	if err != nil {
		return nil, err
	}
	message := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if file != nil {
		message.Files = []*discordgo.File{file}
	}
	return message, nil
}

// downloadPhoto returns nil if the photo can't be downloaded. A missing photo
// never blocks a registration.
func (b *boardGameForm) downloadPhoto(
	ctx context.Context,
	url string,
) *discordgo.File {
	downloaded, err := b.fetcher.Fetch(ctx, []string{url})
	if err != nil || len(downloaded) == 0 {
		b.logger.Warn(
			"error downloading attachment; registering without a photo",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil
	}
	photo := downloaded[0]
	name := photo.Filename
	if name == "" {
		name = fmt.Sprintf("boardgame_%d.png", b.nowFn().UnixMilli())
	}
	return &discordgo.File{
		Name:        name,
		ContentType: photo.ContentType,
		Reader:      bytes.NewReader(photo.Data),
	}
}

func (b *boardGameForm) buildEmbed(
	game BoardGame,
	username string,
	imageURL string,
) (*discordgo.MessageEmbed, error) {
	online := game.IsOnline()
	kind := "物理ゲーム"
	color := PhysicalGameColor
	ownerLabel := "所有者"
	if online {
		kind = "オンラインゲーム"
		color = OnlineGameColor
		ownerLabel = "URL"
	}
	fields, err := embedFields(
		field{name: "推奨プレイ人数", value: game.PlayerCount, inline: true},
		field{name: "プレイ時間", value: game.PlayTime, inline: true},
		field{name: ownerLabel, value: game.OwnerURL, inline: false},
	)
	if err != nil {
		return nil, err
	}
	footer, err := render(
		b.footerTemplate,
		struct {
			Kind     string
			Username string
		}{
			Kind:     kind,
			Username: username,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "error rendering board game footer")
	}
	embed := &discordgo.MessageEmbed{
		Title:     game.GameName,
		Color:     color,
		Fields:    fields,
		Footer:    &discordgo.MessageEmbedFooter{Text: footer},
		Timestamp: b.nowFn().UTC().Format(time.RFC3339),
	}
	if imageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: imageURL}
	}
	return embed, nil
}
