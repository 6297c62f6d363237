package http

import (
	"encoding/json"
	"net/http"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Upstream
// failures surface as 502 with a generic body so driver details never reach
// clients.
func writeError(w http.ResponseWriter, err error) {
	var status int
	msg := err.Error()
	switch domain.KindOf(err) {
	case domain.Unauthenticated:
		status = http.StatusUnauthorized
	case domain.PermissionDenied:
		status = http.StatusForbidden
	case domain.NotFound:
		status = http.StatusNotFound
	case domain.InvalidArgument:
		status = http.StatusBadRequest
	default:
		status = http.StatusBadGateway
		msg = "upstream failure"
		logger.Error("request failed upstream", "error", err)
	}
	writeJSON(w, status, errorBody{Error: msg})
}

// decodeBody rejects unknown fields so client typos fail loudly.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.Ef(domain.InvalidArgument, "malformed request body: %v", err)
	}
	return nil
}
