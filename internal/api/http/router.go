package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"givehub-backend/internal/repository"
	"givehub-backend/internal/security"
	"givehub-backend/internal/service"
	"givehub-backend/internal/storage"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Verifier      security.TokenVerifier
	UserRepo      repository.UserRepository
	Users         service.UserService
	Donations     service.DonationService
	Support       service.SupportService
	Notifications service.NotificationService
	Reports       service.ReportService
	Images        service.ImageService
	ImageStore    storage.Store
	Dispatcher    service.Dispatcher
	TriggerSecret string
	MaxImageBytes int64
}

// NewRouter builds the full /api/v1 surface. Every route requires a bearer
// token except health, image downloads and the trigger webhook, which has
// its own secret.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	users := NewUserHandler(deps.Users)
	donations := NewDonationHandler(deps.Donations)
	support := NewSupportHandler(deps.Support)
	notifications := NewNotificationHandler(deps.Notifications)
	reports := NewReportHandler(deps.Reports)
	images := NewImageHandler(deps.Images, deps.ImageStore, deps.MaxImageBytes)
	triggers := NewTriggerHandler(deps.Dispatcher, deps.TriggerSecret)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/triggers/change", triggers.HandleChange).Methods(http.MethodPost)
	api.HandleFunc("/images/{key:.+}", images.Download).Methods(http.MethodGet)

	auth := NewAuthMiddleware(deps.Verifier, deps.UserRepo)
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Wrap)

	authed.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	authed.HandleFunc("/users/{id}", users.Get).Methods(http.MethodGet)
	authed.HandleFunc("/users/{id}", users.Update).Methods(http.MethodPut)
	authed.HandleFunc("/users/{id}", users.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/donations", donations.List).Methods(http.MethodGet)
	authed.HandleFunc("/donations", donations.Create).Methods(http.MethodPost)
	authed.HandleFunc("/donations/{id}", donations.Update).Methods(http.MethodPut)
	authed.HandleFunc("/donations/{id}", donations.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/donations/{id}/reassign-dropoff", donations.ReassignDropoff).Methods(http.MethodPost)

	authed.HandleFunc("/support", support.SubmitRequest).Methods(http.MethodPost)
	authed.HandleFunc("/support/{id}/respond", support.RespondToRequest).Methods(http.MethodPut)
	authed.HandleFunc("/issues", support.SubmitIssue).Methods(http.MethodPost)
	authed.HandleFunc("/issues/{id}/respond", support.RespondToIssue).Methods(http.MethodPut)

	authed.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/send", notifications.Send).Methods(http.MethodPost)
	authed.HandleFunc("/notifications/{id}/read", notifications.MarkRead).Methods(http.MethodPut)
	authed.HandleFunc("/notifications/{id}/starred", notifications.SetStarred).Methods(http.MethodPut)

	authed.HandleFunc("/reports/donations", reports.Donations).Methods(http.MethodGet)

	authed.HandleFunc("/images/upload", images.Upload).Methods(http.MethodPost)

	return router
}
