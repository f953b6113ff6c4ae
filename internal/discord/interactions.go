package discord

import (
	"sort"

	"github.com/bwmarrin/discordgo"
)

// Component types that discordgo does not model yet.
const (
	LabelComponent      discordgo.ComponentType = 18
	FileUploadComponent discordgo.ComponentType = 19
)

// Interaction encapsulates the parts of a Discord interaction this gateway
// acts on. Unknown fields and component types are ignored while decoding.
//
// nolint: lll
type Interaction struct {
	ID            string                    `json:"id"`             // e.g. 1234567890
	ApplicationID string                    `json:"application_id"` // e.g. 9876543210
	Type          discordgo.InteractionType `json:"type"`           // e.g. 5
	Token         string                    `json:"token"`          // e.g. aW50ZXJhY3Rpb246...
	Data          InteractionData           `json:"data"`
	GuildID       string                    `json:"guild_id,omitempty"`
	ChannelID     string                    `json:"channel_id,omitempty"`
	Member        *Member                   `json:"member,omitempty"`
	User          *User                     `json:"user,omitempty"`
	Resolved      *Resolved                 `json:"resolved,omitempty"`
}

// InteractionData carries the command name of an application command or the
// custom ID and components of a modal submission.
type InteractionData struct {
	Name       string      `json:"name,omitempty"`
	CustomID   string      `json:"custom_id,omitempty"`
	Components []Component `json:"components,omitempty"`
	Resolved   *Resolved   `json:"resolved,omitempty"`
}

// Component is a loosely typed modal component. Action rows nest their
// children in Components while labels wrap exactly one child in Component.
type Component struct {
	Type       discordgo.ComponentType `json:"type"`
	CustomID   string                  `json:"custom_id,omitempty"`
	Value      *string                 `json:"value,omitempty"`
	Values     []string                `json:"values,omitempty"`
	Components []Component             `json:"components,omitempty"`
	Component  *Component              `json:"component,omitempty"`
}

// Resolved holds the objects referenced by ID from a submission.
type Resolved struct {
	Attachments map[string]Attachment `json:"attachments,omitempty"`
}

// Attachment is a file uploaded through a modal.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
	Size        int    `json:"size"`
}

// Member is the guild member that triggered an interaction.
type Member struct {
	User *User `json:"user,omitempty"`
}

// User is a Discord user.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name,omitempty"`
}

// Actor returns the user that triggered the interaction. Interactions inside a
// guild carry the user on the member; direct messages carry it at the top
// level. Nil is returned when neither is present.
func (i Interaction) Actor() *User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// TextInputs returns the raw value of every text input in the submission,
// keyed by custom ID. Inputs that were sent without a value are omitted.
func (i Interaction) TextInputs() map[string]string {
	values := map[string]string{}
	walkComponents(i.Data.Components, func(c Component) {
		if c.Type == discordgo.TextInputComponent && c.Value != nil {
			values[c.CustomID] = *c.Value
		}
	})
	return values
}

// AttachmentURLs returns the URLs of all uploaded files. Files referenced by a
// file upload component come first, in the order they were selected; any
// other resolved attachments follow, ordered by ID.
func (i Interaction) AttachmentURLs() []string {
	attachments := map[string]Attachment{}
	for _, resolved := range []*Resolved{i.Resolved, i.Data.Resolved} {
		if resolved == nil {
			continue
		}
		for id, attachment := range resolved.Attachments {
			attachments[id] = attachment
		}
	}
	if len(attachments) == 0 {
		return []string{}
	}
	urls := make([]string, 0, len(attachments))
	seen := map[string]struct{}{}
	walkComponents(i.Data.Components, func(c Component) {
		if c.Type != FileUploadComponent {
			return
		}
		for _, id := range c.Values {
			attachment, ok := attachments[id]
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			urls = append(urls, attachment.URL)
		}
	})
	ids := make([]string, 0, len(attachments))
	for id := range attachments {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		urls = append(urls, attachments[id].URL)
	}
	return urls
}

func walkComponents(components []Component, fn func(Component)) {
	for _, c := range components {
		fn(c)
		walkComponents(c.Components, fn)
		if c.Component != nil {
			walkComponents([]Component{*c.Component}, fn)
		}
	}
}
