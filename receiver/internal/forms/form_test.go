package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSubmission(t *testing.T) {
	submission := NewSubmission(
		withPhoto(
			modalSubmit(
				BoardGameModalID,
				map[string]string{
					"game_name":    "  カタン  ",
					"player_count": "",
					"play_time":    " \t ",
					"owner_url":    "田中",
				},
				testUser,
			),
			"https://cdn.discordapp.com/catan.png",
		),
	)
	value, ok := submission.Value("game_name")
	require.True(t, ok)
	require.Equal(t, "カタン", value)
	for _, blank := range []string{"player_count", "play_time", "never_sent"} {
		value, ok = submission.Value(blank)
		require.False(t, ok, blank)
		require.Empty(t, value)
	}
	require.Equal(t, "田中", submission.Get("owner_url"))
	require.Equal(
		t,
		[]string{"https://cdn.discordapp.com/catan.png"},
		submission.AttachmentURLs,
	)
}

func TestEmbedFields(t *testing.T) {
	fields, err := embedFields(
		field{name: "a", value: "1", inline: true},
		field{name: "b", value: ""},
		field{name: "c", value: "3"},
	)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	require.Equal(t, "a", fields[0].Name)
	require.True(t, fields[0].Inline)
	require.Equal(t, "c", fields[1].Name)
	require.False(t, fields[1].Inline)
}
