package http

import (
	"crypto/subtle"
	"net/http"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/service"
)

// TriggerHandler receives datastore change webhooks from the hosting
// platform. The route sits outside the bearer-auth surface; a shared secret
// header authenticates the caller instead.
type TriggerHandler struct {
	dispatcher service.Dispatcher
	secret     string
}

func NewTriggerHandler(dispatcher service.Dispatcher, secret string) *TriggerHandler {
	return &TriggerHandler{dispatcher: dispatcher, secret: secret}
}

func (h *TriggerHandler) HandleChange(w http.ResponseWriter, r *http.Request) {
	provided := r.Header.Get("X-Trigger-Secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		writeError(w, domain.E(domain.Unauthenticated, "invalid trigger secret"))
		return
	}

	var change domain.Change
	if err := decodeBody(r, &change); err != nil {
		writeError(w, err)
		return
	}
	if change.Collection == "" || change.DocumentID == "" {
		writeError(w, domain.E(domain.InvalidArgument, "collection and documentId are required"))
		return
	}

	if err := h.dispatcher.HandleChange(r.Context(), change); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}
