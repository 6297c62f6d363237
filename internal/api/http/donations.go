package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/service"
)

type DonationHandler struct {
	donations service.DonationService
}

func NewDonationHandler(donations service.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	q := r.URL.Query()
	donations, err := h.donations.ListDonations(r.Context(), p, q.Get("orgId"), q.Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	if donations == nil {
		donations = []domain.Donation{}
	}
	writeJSON(w, http.StatusOK, donations)
}

type createDonationRequest struct {
	Item           string           `json:"item"`
	Category       string           `json:"category"`
	Quantity       int              `json:"quantity"`
	DeliveryOption string           `json:"deliveryOption"`
	Description    string           `json:"description,omitempty"`
	LocationName   string           `json:"locationName,omitempty"`
	LocationCoords *domain.GeoPoint `json:"locationCoords,omitempty"`
	ImageURL       string           `json:"imageUrl,omitempty"`
}

func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req createDonationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	donation, err := h.donations.CreateDonation(r.Context(), p, service.CreateDonationInput{
		Item:           req.Item,
		Category:       req.Category,
		Quantity:       req.Quantity,
		DeliveryOption: req.DeliveryOption,
		Description:    req.Description,
		LocationName:   req.LocationName,
		LocationCoords: req.LocationCoords,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, donation)
}

type updateDonationRequest struct {
	Item           *string          `json:"item,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Quantity       *int             `json:"quantity,omitempty"`
	DeliveryOption *string          `json:"deliveryOption,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Status         *string          `json:"status,omitempty"`
	LocationName   *string          `json:"locationName,omitempty"`
	LocationCoords *domain.GeoPoint `json:"locationCoords,omitempty"`
	ImageURL       *string          `json:"imageUrl,omitempty"`
	RequiresAction *bool            `json:"requiresAction,omitempty"`
}

func (h *DonationHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req updateDonationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	upd := domain.DonationUpdate{
		Item:           req.Item,
		Category:       req.Category,
		Quantity:       req.Quantity,
		DeliveryOption: req.DeliveryOption,
		Description:    req.Description,
		Status:         req.Status,
		LocationName:   req.LocationName,
		LocationCoords: req.LocationCoords,
		ImageURL:       req.ImageURL,
		RequiresAction: req.RequiresAction,
	}
	if err := h.donations.UpdateDonation(r.Context(), p, mux.Vars(r)["id"], upd); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *DonationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if err := h.donations.DeleteDonation(r.Context(), p, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type reassignDropoffRequest struct {
	LocationName   string           `json:"locationName"`
	LocationCoords *domain.GeoPoint `json:"locationCoords,omitempty"`
}

func (h *DonationHandler) ReassignDropoff(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	var req reassignDropoffRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	err := h.donations.ReassignDropoff(r.Context(), p, mux.Vars(r)["id"], req.LocationName, req.LocationCoords)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reassigned"})
}
