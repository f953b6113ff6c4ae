package discord

import "github.com/bwmarrin/discordgo"

// Names of the slash commands this gateway answers.
const (
	AddGameCommand = "add-game"
	AddMapCommand  = "add-map"
)

// Commands returns the slash commands that must be registered with Discord for
// the gateway's forms to be reachable.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        AddGameCommand,
			Type:        discordgo.ChatApplicationCommand,
			Description: "ボードゲームを登録します",
		},
		{
			Name:        AddMapCommand,
			Type:        discordgo.ChatApplicationCommand,
			Description: "Minecraftマップを登録します",
		},
	}
}
