package discord

import (
	"encoding/json"
	"net/http"

	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"go.uber.org/zap"
)

// interactionHandler is an implementation of the http.Handler interface that
// can handle interactions from Discord by delegating to a transport-agnostic
// Service interface.
type interactionHandler struct {
	service InteractionService
	logger  *zap.Logger
}

// NewInteractionHandler returns an implementation of the http.Handler
// interface that can handle interactions from Discord by delegating to a
// transport-agnostic Service interface.
func NewInteractionHandler(
	service InteractionService,
	logger *zap.Logger,
) http.Handler {
	return &interactionHandler{
		service: service,
		logger:  logger,
	}
}

func (i *interactionHandler) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	defer r.Body.Close()
	w.Header().Set("Content-Type", "application/json")
	interaction := &libDiscord.Interaction{}
	if err := json.NewDecoder(r.Body).Decode(interaction); err != nil {
		i.logger.Info("error decoding interaction", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid request body"}`)) // nolint: errcheck
		return
	}
	reply, err := i.service.Handle(r.Context(), interaction)
	if err != nil {
		i.logger.Error(
			"error handling interaction",
			zap.String("interactionID", interaction.ID),
			zap.Error(err),
		)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`)) // nolint: errcheck
		return
	}
	body, err := json.Marshal(reply.Body)
	if err != nil {
		i.logger.Error("error marshaling reply", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error"}`)) // nolint: errcheck
		return
	}
	w.WriteHeader(reply.StatusCode)
	w.Write(body) // nolint: errcheck
}
