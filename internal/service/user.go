package service

import (
	"context"
	"time"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/security"
)

type userService struct {
	userRepo   repository.UserRepository
	authz      *security.Authorizer
	revoker    security.CredentialRevoker
	dispatcher Dispatcher
	now        func() time.Time
}

func NewUserService(
	userRepo repository.UserRepository,
	authz *security.Authorizer,
	revoker security.CredentialRevoker,
	dispatcher Dispatcher,
) UserService {
	return &userService{
		userRepo:   userRepo,
		authz:      authz,
		revoker:    revoker,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (s *userService) GetUser(ctx context.Context, p security.Principal, id string) (*domain.User, error) {
	if err := s.authz.CanReadUser(p, id); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser registers the caller's own profile under their verified uid.
// Role decides the starting status: Organizations land pending and the
// administrators are notified; everyone else is active immediately.
func (s *userService) CreateUser(ctx context.Context, p security.Principal, in CreateUserInput) (*domain.User, error) {
	if in.UID != p.UID {
		return nil, domain.E(domain.PermissionDenied, "cannot register a profile for another account")
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.Ef(domain.InvalidArgument, "invalid role %q", in.Role)
	}
	if in.Email == "" {
		return nil, domain.E(domain.InvalidArgument, "email is required")
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:                   in.UID,
		Email:                in.Email,
		Role:                 in.Role,
		Status:               domain.DefaultStatus(in.Role),
		NotificationsEnabled: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if user.Role == domain.RoleOrganization && user.Status == domain.UserStatusPending {
		if err := s.dispatcher.Dispatch(ctx, domain.OrganizationRegistered{User: *user}); err != nil {
			logger.Error("failed to dispatch organization registration", "userID", user.ID, "error", err)
		}
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, p security.Principal, id string, upd domain.UserUpdate) error {
	if err := s.authz.CanMutateUser(p, id); err != nil {
		return err
	}
	if upd.Empty() {
		return domain.E(domain.InvalidArgument, "no fields to update")
	}
	// Role and status are moderation fields; only administrators touch them.
	if upd.Role != nil || upd.Status != nil {
		if err := s.authz.RequireAdmin(p); err != nil {
			return err
		}
	}
	if upd.Role != nil && !domain.ValidRole(*upd.Role) {
		return domain.Ef(domain.InvalidArgument, "invalid role %q", *upd.Role)
	}
	if upd.Status != nil && !domain.ValidUserStatus(*upd.Status) {
		return domain.Ef(domain.InvalidArgument, "invalid status %q", *upd.Status)
	}

	before, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	upd.UpdatedAt = s.now().UTC()
	if err := s.userRepo.Update(ctx, id, upd); err != nil {
		return err
	}

	if upd.Status != nil && *upd.Status != before.Status && before.Role == domain.RoleOrganization {
		after := *before
		after.Status = *upd.Status
		after.UpdatedAt = upd.UpdatedAt
		event := domain.OrganizationStatusChanged{User: after, PreviousStatus: before.Status}
		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			logger.Error("failed to dispatch organization status change", "userID", id, "error", err)
		}
	}
	return nil
}

// DeleteUser removes the profile and, best-effort, the auth credential
// behind it. A revocation failure leaves an orphaned credential, which is
// harmless: the profile lookup on the next request fails.
func (s *userService) DeleteUser(ctx context.Context, p security.Principal, id string) error {
	if err := s.authz.RequireAdmin(p); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.revoker.Revoke(ctx, id); err != nil {
		logger.Error("failed to revoke credential for deleted user", "userID", id, "error", err)
	}
	return nil
}
