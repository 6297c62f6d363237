package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"givehub-backend/internal/service"
)

type SupportHandler struct {
	support service.SupportService
}

func NewSupportHandler(support service.SupportService) *SupportHandler {
	return &SupportHandler{support: support}
}

type submitSupportRequest struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
}

func (h *SupportHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req submitSupportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.support.SubmitRequest(r.Context(), p, service.CreateSupportRequestInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type respondRequest struct {
	Response string `json:"response,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (h *SupportHandler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req respondRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.support.RespondToRequest(r.Context(), p, mux.Vars(r)["id"], req.Response, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type submitIssueRequest struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func (h *SupportHandler) SubmitIssue(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req submitIssueRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.support.SubmitIssue(r.Context(), p, service.CreateIssueInput{
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *SupportHandler) RespondToIssue(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req respondRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.support.RespondToIssue(r.Context(), p, mux.Vars(r)["id"], req.Response, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
