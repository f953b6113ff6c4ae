package discord

import (
	"crypto/ed25519"
	"net/http"

	libHTTP "github.com/brigadecore/brigade-foundations/http"
	"github.com/bwmarrin/discordgo"
)

// SignatureVerificationFilterConfig encapsulates configuration for the
// signature verification based auth filter.
type SignatureVerificationFilterConfig struct {
	// VerificationKey is the Discord application's Ed25519 public key.
	VerificationKey ed25519.PublicKey
}

// signatureVerificationFilter is a component that implements the http.Filter
// interface and can conditionally allow or disallow a request based on the
// ability to verify the signature of the inbound request.
type signatureVerificationFilter struct {
	config SignatureVerificationFilterConfig
	// verifyFn is overridable for testing purposes
	verifyFn func(*http.Request, ed25519.PublicKey) bool
}

// NewSignatureVerificationFilter returns a component that implements the
// http.Filter interface and can conditionally allow or disallow a request based
// on the ability to verify the signature of the inbound request.
func NewSignatureVerificationFilter(
	config SignatureVerificationFilterConfig,
) libHTTP.Filter {
	return &signatureVerificationFilter{
		config:   config,
		verifyFn: discordgo.VerifyInteraction,
	}
}

func (s *signatureVerificationFilter) Decorate(
	handle http.HandlerFunc,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// If there is no request body, fail right away or else we'll be staring
		// down the barrel of a nil pointer dereference.
		if r.Body == nil {
			unauthorized(w)
			return
		}

		// The verifier puts the body back after reading it, so the handler can
		// still decode it.
		if !s.verifyFn(r, s.config.VerificationKey) {
			unauthorized(w)
			return
		}

		// If we get this far, everything checks out. Handle the request.
		handle(w, r)
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte("Bad request signature.")) // nolint: errcheck
}
