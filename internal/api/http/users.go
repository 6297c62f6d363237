package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/service"
)

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	email := req.Email
	if email == "" {
		email = p.Email
	}

	user, err := h.users.CreateUser(r.Context(), p, service.CreateUserInput{
		UID:   p.UID,
		Email: email,
		Role:  domain.Role(req.Role),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	user, err := h.users.GetUser(r.Context(), p, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Role                 *string          `json:"role,omitempty"`
	Status               *string          `json:"status,omitempty"`
	NotificationsEnabled *bool            `json:"notificationsEnabled,omitempty"`
	EmailNotifications   *bool            `json:"emailNotifications,omitempty"`
	FCMToken             *string          `json:"fcmToken,omitempty"`
	ProfileImageURL      *string          `json:"profileImageUrl,omitempty"`
	Location             *domain.GeoPoint `json:"location,omitempty"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req updateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	upd := domain.UserUpdate{
		NotificationsEnabled: req.NotificationsEnabled,
		EmailNotifications:   req.EmailNotifications,
		PushToken:            req.FCMToken,
		ProfileImageURL:      req.ProfileImageURL,
		Location:             req.Location,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		upd.Role = &role
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		upd.Status = &status
	}

	if err := h.users.UpdateUser(r.Context(), p, mux.Vars(r)["id"], upd); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if err := h.users.DeleteUser(r.Context(), p, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
