package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, domain.Ef(domain.InvalidArgument, "invalid since timestamp %q", raw))
			return
		}
		since = parsed
	}

	notes, err := h.notifications.ListNotifications(r.Context(), p, since)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if err := h.notifications.MarkRead(r.Context(), p, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

type setStarredRequest struct {
	Starred bool `json:"starred"`
}

func (h *NotificationHandler) SetStarred(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req setStarredRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.notifications.SetStarred(r.Context(), p, mux.Vars(r)["id"], req.Starred); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type sendNotificationRequest struct {
	RecipientID string `json:"recipientId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req sendNotificationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.notifications.SendDirect(r.Context(), p, req.RecipientID, req.Title, req.Body); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
