package service

import (
	"context"
	"encoding/json"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
)

// HandleChange resolves a raw datastore change into at most one event,
// enriches it with looked-up context, and dispatches it. A change that
// resolves to nothing (no-op write, irrelevant field churn) is dropped
// silently.
func (s *dispatcherService) HandleChange(ctx context.Context, change domain.Change) error {
	event, err := resolveChange(change)
	if err != nil {
		return err
	}
	if event == nil {
		return nil
	}
	event = s.enrich(ctx, event)
	return s.Dispatch(ctx, event)
}

// enrich fills in event fields that live outside the changed document.
// Lookup failures degrade to an empty field, never to a dropped event.
func (s *dispatcherService) enrich(ctx context.Context, event domain.Event) domain.Event {
	switch e := event.(type) {
	case domain.DonationCreated:
		e.DonorEmail = s.lookupEmail(ctx, e.Donation.OwnerID())
		return e
	case domain.IssueCreated:
		e.ReporterEmail = s.lookupEmail(ctx, e.Issue.UserID)
		return e
	default:
		return event
	}
}

func (s *dispatcherService) lookupEmail(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("failed to resolve user email for event", "userID", userID, "error", err)
		return ""
	}
	return user.Email
}

// resolveChange maps a document change onto the event it implies. It is a
// pure function of the change payload: no lookups, no side effects.
//
// Update resolution is ordered. A status transition wins over a response
// edit in the same write; a write that changes neither resolves to nil.
func resolveChange(change domain.Change) (domain.Event, error) {
	switch change.Collection {
	case "users":
		return resolveUserChange(change)
	case "donations":
		return resolveDonationChange(change)
	case "support_requests":
		return resolveSupportChange(change)
	case "issues":
		return resolveIssueChange(change)
	default:
		return nil, domain.Ef(domain.InvalidArgument, "unknown collection %q", change.Collection)
	}
}

func resolveUserChange(change domain.Change) (domain.Event, error) {
	after, err := decodeUser(change.After, change.DocumentID)
	if err != nil {
		return nil, err
	}
	if after == nil {
		return nil, nil // deletion
	}

	if change.Before == nil {
		if after.Role == domain.RoleOrganization && after.Status == domain.UserStatusPending {
			return domain.OrganizationRegistered{User: *after}, nil
		}
		return nil, nil
	}

	before, err := decodeUser(change.Before, change.DocumentID)
	if err != nil {
		return nil, err
	}
	if after.Role != domain.RoleOrganization || after.Status == before.Status {
		return nil, nil
	}
	return domain.OrganizationStatusChanged{User: *after, PreviousStatus: before.Status}, nil
}

func resolveDonationChange(change domain.Change) (domain.Event, error) {
	after, err := decodeDonation(change.After, change.DocumentID)
	if err != nil {
		return nil, err
	}
	if after == nil {
		return nil, nil
	}

	if change.Before == nil {
		return domain.DonationCreated{Donation: *after}, nil
	}

	before, err := decodeDonation(change.Before, change.DocumentID)
	if err != nil {
		return nil, err
	}
	if after.Status != before.Status {
		return domain.DonationStatusChanged{Donation: *after, PreviousStatus: before.Status}, nil
	}
	if after.RequiresAction && !before.RequiresAction {
		return domain.DropoffReassigned{Donation: *after}, nil
	}
	return nil, nil
}

func resolveSupportChange(change domain.Change) (domain.Event, error) {
	after, err := decodeSupportRequest(change.After, change.DocumentID)
	if err != nil {
		return nil, err
	}
	if after == nil {
		return nil, nil
	}

	if change.Before == nil {
		return domain.SupportRequestCreated{Request: *after}, nil
	}

	before, err := decodeSupportRequest(change.Before, change.DocumentID)
	if err != nil {
		return nil, err
	}
	if after.Status != before.Status {
		return domain.SupportStatusChanged{Request: *after, PreviousStatus: before.Status}, nil
	}
	if after.Response != "" && after.Response != before.Response {
		return domain.SupportResponded{Request: *after}, nil
	}
	return nil, nil
}

func resolveIssueChange(change domain.Change) (domain.Event, error) {
	after, err := decodeIssue(change.After, change.DocumentID)
	if err != nil {
		return nil, err
	}
	if after == nil {
		return nil, nil
	}

	if change.Before == nil {
		return domain.IssueCreated{Issue: *after}, nil
	}

	before, err := decodeIssue(change.Before, change.DocumentID)
	if err != nil {
		return nil, err
	}
	if after.Status != "" && after.Status != before.Status {
		return domain.IssueStatusChanged{Issue: *after, PreviousStatus: before.Status}, nil
	}
	if after.Response != "" && after.Response != before.Response {
		return domain.IssueResponded{Issue: *after}, nil
	}
	return nil, nil
}

func decodeUser(raw json.RawMessage, id string) (*domain.User, error) {
	if raw == nil {
		return nil, nil
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, domain.Ef(domain.InvalidArgument, "malformed user snapshot for %s: %v", id, err)
	}
	u.ID = id
	return &u, nil
}

func decodeDonation(raw json.RawMessage, id string) (*domain.Donation, error) {
	if raw == nil {
		return nil, nil
	}
	var d domain.Donation
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, domain.Ef(domain.InvalidArgument, "malformed donation snapshot for %s: %v", id, err)
	}
	d.ID = id
	return &d, nil
}

func decodeSupportRequest(raw json.RawMessage, id string) (*domain.SupportRequest, error) {
	if raw == nil {
		return nil, nil
	}
	var r domain.SupportRequest
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, domain.Ef(domain.InvalidArgument, "malformed support request snapshot for %s: %v", id, err)
	}
	r.ID = id
	return &r, nil
}

func decodeIssue(raw json.RawMessage, id string) (*domain.Issue, error) {
	if raw == nil {
		return nil, nil
	}
	var i domain.Issue
	if err := json.Unmarshal(raw, &i); err != nil {
		return nil, domain.Ef(domain.InvalidArgument, "malformed issue snapshot for %s: %v", id, err)
	}
	i.ID = id
	return &i, nil
}
