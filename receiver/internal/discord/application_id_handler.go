package discord

import "net/http"

// NewApplicationIDHandler returns an http.Handler that answers every request
// with the Discord application ID as plain text. It is meant for unsigned GET
// requests and does no verification.
func NewApplicationIDHandler(applicationID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(applicationID)) // nolint: errcheck
	})
}
