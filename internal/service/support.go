package service

import (
	"context"
	"time"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/security"
)

type supportService struct {
	supportRepo repository.SupportRequestRepository
	issueRepo   repository.IssueRepository
	authz       *security.Authorizer
	dispatcher  Dispatcher
	now         func() time.Time
}

func NewSupportService(
	supportRepo repository.SupportRequestRepository,
	issueRepo repository.IssueRepository,
	authz *security.Authorizer,
	dispatcher Dispatcher,
) SupportService {
	return &supportService{
		supportRepo: supportRepo,
		issueRepo:   issueRepo,
		authz:       authz,
		dispatcher:  dispatcher,
		now:         time.Now,
	}
}

func (s *supportService) SubmitRequest(ctx context.Context, p security.Principal, in CreateSupportRequestInput) (*domain.SupportRequest, error) {
	if in.Message == "" {
		return nil, domain.E(domain.InvalidArgument, "message is required")
	}
	email := in.Email
	if email == "" {
		email = p.Email
	}

	req := &domain.SupportRequest{
		UserID:    p.UID,
		Name:      in.Name,
		Email:     email,
		Message:   in.Message,
		Status:    domain.SupportStatusOpen,
		Timestamp: s.now().UTC(),
	}
	id, err := s.supportRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = id

	if err := s.dispatcher.Dispatch(ctx, domain.SupportRequestCreated{Request: *req}); err != nil {
		logger.Error("failed to dispatch support request", "requestID", id, "error", err)
	}
	return req, nil
}

func (s *supportService) RespondToRequest(ctx context.Context, p security.Principal, id, response, status string) error {
	if err := s.authz.RequireAdmin(p); err != nil {
		return err
	}
	if status != "" && status != domain.SupportStatusOpen && status != domain.SupportStatusResolved {
		return domain.Ef(domain.InvalidArgument, "invalid status %q", status)
	}

	before, err := s.supportRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	upd := respondUpdate(response, status, s.now().UTC())
	if upd.Empty() {
		return domain.E(domain.InvalidArgument, "response or status is required")
	}
	if err := s.supportRepo.Update(ctx, id, upd); err != nil {
		return err
	}

	after := *before
	if upd.Response != nil {
		after.Response = *upd.Response
	}
	if upd.Status != nil {
		after.Status = *upd.Status
	}
	after.UpdatedAt = upd.UpdatedAt

	// A status transition outranks a response edit in the same write.
	var event domain.Event
	switch {
	case status != "" && status != before.Status:
		event = domain.SupportStatusChanged{Request: after, PreviousStatus: before.Status}
	case response != "" && response != before.Response:
		event = domain.SupportResponded{Request: after}
	default:
		return nil
	}
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		logger.Error("failed to dispatch support response", "requestID", id, "error", err)
	}
	return nil
}

func (s *supportService) SubmitIssue(ctx context.Context, p security.Principal, in CreateIssueInput) (*domain.Issue, error) {
	if in.Description == "" {
		return nil, domain.E(domain.InvalidArgument, "description is required")
	}

	issue := &domain.Issue{
		UserID:      p.UID,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      domain.IssueStatusUnresolved,
		Timestamp:   s.now().UTC(),
	}
	id, err := s.issueRepo.Create(ctx, issue)
	if err != nil {
		return nil, err
	}
	issue.ID = id

	event := domain.IssueCreated{Issue: *issue, ReporterEmail: p.Email}
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		logger.Error("failed to dispatch issue report", "issueID", id, "error", err)
	}
	return issue, nil
}

func (s *supportService) RespondToIssue(ctx context.Context, p security.Principal, id, response, status string) error {
	if err := s.authz.RequireAdmin(p); err != nil {
		return err
	}
	if status != "" && status != domain.IssueStatusUnresolved && status != domain.IssueStatusResolved {
		return domain.Ef(domain.InvalidArgument, "invalid status %q", status)
	}

	before, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	upd := respondUpdate(response, status, s.now().UTC())
	if upd.Empty() {
		return domain.E(domain.InvalidArgument, "response or status is required")
	}
	if err := s.issueRepo.Update(ctx, id, upd); err != nil {
		return err
	}

	after := *before
	if upd.Response != nil {
		after.Response = *upd.Response
	}
	if upd.Status != nil {
		after.Status = *upd.Status
	}
	after.UpdatedAt = upd.UpdatedAt

	var event domain.Event
	switch {
	case status != "" && status != before.Status:
		event = domain.IssueStatusChanged{Issue: after, PreviousStatus: before.Status}
	case response != "" && response != before.Response:
		event = domain.IssueResponded{Issue: after}
	default:
		return nil
	}
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		logger.Error("failed to dispatch issue response", "issueID", id, "error", err)
	}
	return nil
}

func respondUpdate(response, status string, at time.Time) domain.RespondUpdate {
	upd := domain.RespondUpdate{UpdatedAt: at}
	if response != "" {
		upd.Response = &response
	}
	if status != "" {
		upd.Status = &status
	}
	return upd
}
