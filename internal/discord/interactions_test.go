package discord

import (
	"encoding/json"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

const testModalSubmitJSON = `{
  "id": "test-id",
  "application_id": "test-app-id",
  "type": 5,
  "token": "test-token",
  "version": 1,
  "data": {
    "custom_id": "boardgame_form",
    "components": [
      {"type": 1, "components": [{"type": 4, "custom_id": "game_name", "value": " カタン "}]},
      {"type": 1, "components": [{"type": 4, "custom_id": "player_count", "value": ""}]},
      {"type": 1, "components": [{"type": 4, "custom_id": "play_time"}]},
      {"type": 18, "component": {"type": 19, "custom_id": "photo", "values": ["222", "111"]}},
      {"type": 10, "content": "something this gateway does not know about"}
    ],
    "resolved": {
      "attachments": {
        "111": {"id": "111", "filename": "a.png", "url": "https://cdn.discordapp.com/a.png", "size": 1},
        "222": {"id": "222", "filename": "b.png", "url": "https://cdn.discordapp.com/b.png", "size": 1}
      }
    }
  },
  "guild_id": "test-guild-id",
  "member": {"user": {"id": "1", "username": "memberuser"}},
  "user": {"id": "2", "username": "testuser"},
  "locale": "ja"
}`

func TestInteractionDecoding(t *testing.T) {
	interaction := Interaction{}
	err := json.Unmarshal([]byte(testModalSubmitJSON), &interaction)
	require.NoError(t, err)
	require.Equal(t, discordgo.InteractionModalSubmit, interaction.Type)
	require.Equal(t, "test-token", interaction.Token)
	require.Equal(t, "boardgame_form", interaction.Data.CustomID)
	require.Len(t, interaction.Data.Components, 5)
}

func TestInteractionActor(t *testing.T) {
	testCases := []struct {
		name        string
		interaction Interaction
		assertions  func(*User)
	}{
		{
			name: "member user wins",
			interaction: Interaction{
				Member: &Member{User: &User{Username: "member"}},
				User:   &User{Username: "direct"},
			},
			assertions: func(user *User) {
				require.NotNil(t, user)
				require.Equal(t, "member", user.Username)
			},
		},
		{
			name: "member without user",
			interaction: Interaction{
				Member: &Member{},
				User:   &User{Username: "direct"},
			},
			assertions: func(user *User) {
				require.NotNil(t, user)
				require.Equal(t, "direct", user.Username)
			},
		},
		{
			name:        "no user at all",
			interaction: Interaction{},
			assertions: func(user *User) {
				require.Nil(t, user)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(testCase.interaction.Actor())
		})
	}
}

func TestInteractionTextInputs(t *testing.T) {
	interaction := Interaction{}
	err := json.Unmarshal([]byte(testModalSubmitJSON), &interaction)
	require.NoError(t, err)
	require.Equal(
		t,
		map[string]string{
			"game_name":    " カタン ",
			"player_count": "",
		},
		interaction.TextInputs(),
	)
}

func TestInteractionAttachmentURLs(t *testing.T) {
	testCases := []struct {
		name        string
		interaction func() Interaction
		assertions  func([]string)
	}{
		{
			name: "no attachments",
			interaction: func() Interaction {
				return Interaction{}
			},
			assertions: func(urls []string) {
				require.Empty(t, urls)
				require.NotNil(t, urls)
			},
		},
		{
			name: "file upload order is preserved",
			interaction: func() Interaction {
				interaction := Interaction{}
				err := json.Unmarshal([]byte(testModalSubmitJSON), &interaction)
				require.NoError(t, err)
				return interaction
			},
			assertions: func(urls []string) {
				require.Equal(
					t,
					[]string{
						"https://cdn.discordapp.com/b.png",
						"https://cdn.discordapp.com/a.png",
					},
					urls,
				)
			},
		},
		{
			name: "top level resolved attachments without upload component",
			interaction: func() Interaction {
				return Interaction{
					Resolved: &Resolved{
						Attachments: map[string]Attachment{
							"2": {ID: "2", URL: "https://cdn.discordapp.com/2.png"},
							"1": {ID: "1", URL: "https://cdn.discordapp.com/1.png"},
						},
					},
				}
			},
			assertions: func(urls []string) {
				require.Equal(
					t,
					[]string{
						"https://cdn.discordapp.com/1.png",
						"https://cdn.discordapp.com/2.png",
					},
					urls,
				)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(testCase.interaction().AttachmentURLs())
		})
	}
}
