package service

import (
	"context"
	"time"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/security"
)

type donationService struct {
	donationRepo repository.DonationRepository
	authz        *security.Authorizer
	dispatcher   Dispatcher
	now          func() time.Time
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	authz *security.Authorizer,
	dispatcher Dispatcher,
) DonationService {
	return &donationService{
		donationRepo: donationRepo,
		authz:        authz,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

func (s *donationService) ListDonations(ctx context.Context, p security.Principal, orgID, search string) ([]domain.Donation, error) {
	filter, err := s.authz.DonationListScope(p, orgID)
	if err != nil {
		return nil, err
	}
	filter.Search = search
	return s.donationRepo.List(ctx, filter)
}

func (s *donationService) CreateDonation(ctx context.Context, p security.Principal, in CreateDonationInput) (*domain.Donation, error) {
	if in.Item == "" || in.Category == "" {
		return nil, domain.E(domain.InvalidArgument, "item and category are required")
	}
	if in.Quantity <= 0 {
		return nil, domain.E(domain.InvalidArgument, "quantity must be positive")
	}

	d := &domain.Donation{
		Item:           in.Item,
		Category:       in.Category,
		Quantity:       in.Quantity,
		DeliveryOption: in.DeliveryOption,
		Description:    in.Description,
		Status:         domain.DonationStatusPending,
		LocationName:   in.LocationName,
		LocationCoords: in.LocationCoords,
		ImageURL:       in.ImageURL,
		Timestamp:      s.now().UTC(),
	}
	switch p.Role {
	case domain.RoleDonor:
		d.UserID = p.UID
	case domain.RoleOrganization:
		d.OrgID = p.UID
	default:
		return nil, domain.E(domain.PermissionDenied, "only donors and organizations create donations")
	}

	id, err := s.donationRepo.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	d.ID = id

	event := domain.DonationCreated{Donation: *d, DonorEmail: p.Email}
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		logger.Error("failed to dispatch donation creation", "donationID", id, "error", err)
	}
	return d, nil
}

func (s *donationService) UpdateDonation(ctx context.Context, p security.Principal, id string, upd domain.DonationUpdate) error {
	if upd.Empty() {
		return domain.E(domain.InvalidArgument, "no fields to update")
	}
	if upd.Status != nil && !validDonationStatus(*upd.Status) {
		return domain.Ef(domain.InvalidArgument, "invalid status %q", *upd.Status)
	}
	if upd.Quantity != nil && *upd.Quantity <= 0 {
		return domain.E(domain.InvalidArgument, "quantity must be positive")
	}

	before, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.CanMutateDonation(p, before); err != nil {
		return err
	}

	upd.LastEditedBy = p.UID
	upd.LastEditedAt = s.now().UTC()
	if err := s.donationRepo.Update(ctx, id, upd); err != nil {
		return err
	}

	if upd.Status != nil && *upd.Status != before.Status {
		after := *before
		after.Status = *upd.Status
		after.LastEditedBy = upd.LastEditedBy
		after.LastEditedAt = upd.LastEditedAt
		event := domain.DonationStatusChanged{Donation: after, PreviousStatus: before.Status}
		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			logger.Error("failed to dispatch donation status change", "donationID", id, "error", err)
		}
	}
	return nil
}

func (s *donationService) DeleteDonation(ctx context.Context, p security.Principal, id string) error {
	d, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.CanMutateDonation(p, d); err != nil {
		return err
	}
	return s.donationRepo.Delete(ctx, id)
}

// ReassignDropoff moves the donation's dropoff and flags it for the owner's
// attention. The owner acknowledges from the client by clearing
// RequiresAction through a regular update.
func (s *donationService) ReassignDropoff(ctx context.Context, p security.Principal, id, locationName string, coords *domain.GeoPoint) error {
	if p.Role != domain.RoleOrganization && p.Role != domain.RoleAdministrator {
		return domain.E(domain.PermissionDenied, "only organizations and administrators reassign dropoffs")
	}
	if locationName == "" {
		return domain.E(domain.InvalidArgument, "locationName is required")
	}

	before, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	requiresAction := true
	upd := domain.DonationUpdate{
		LocationName:   &locationName,
		LocationCoords: coords,
		RequiresAction: &requiresAction,
		LastEditedBy:   p.UID,
		LastEditedAt:   s.now().UTC(),
	}
	if err := s.donationRepo.Update(ctx, id, upd); err != nil {
		return err
	}

	after := *before
	after.LocationName = locationName
	after.LocationCoords = coords
	after.RequiresAction = true
	if err := s.dispatcher.Dispatch(ctx, domain.DropoffReassigned{Donation: after}); err != nil {
		logger.Error("failed to dispatch dropoff reassignment", "donationID", id, "error", err)
	}
	return nil
}

func validDonationStatus(s string) bool {
	switch s {
	case domain.DonationStatusPending, domain.DonationStatusAccepted,
		domain.DonationStatusPickedUp, domain.DonationStatusDelivered,
		domain.DonationStatusRejected:
		return true
	}
	return false
}
