package discord

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/pkg/errors"
)

// App encapsulates the details of the Discord application that sends
// interaction webhooks to this gateway.
type App struct {
	// ApplicationID specifies the ID of the Discord application.
	ApplicationID string `json:"applicationID"`
	// PublicKey is the hex-encoded Ed25519 key Discord signs interaction
	// requests with.
	PublicKey string `json:"publicKey"`
	// BotToken is the credential that may be used by this gateway to send
	// messages to Discord.
	BotToken string `json:"botToken"`
}

// VerificationKey decodes the App's hex-encoded public key.
func (a App) VerificationKey() (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(a.PublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding public key")
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, errors.Errorf(
			"public key has %d bytes; expected %d",
			len(key),
			ed25519.PublicKeySize,
		)
	}
	return ed25519.PublicKey(key), nil
}
