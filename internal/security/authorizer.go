package security

import (
	"givehub-backend/internal/domain"
)

// Authorizer is the single place access rules live. Every decision is a pure
// function over already-fetched state; callers resolve the principal's role
// once per request and reuse it.
type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// RequireAdmin gates operations restricted to role == Administrator exactly
// (delete user, respond to support tickets and issues).
func (a *Authorizer) RequireAdmin(p Principal) error {
	if p.Role != domain.RoleAdministrator {
		return domain.E(domain.PermissionDenied, "insufficient permissions")
	}
	return nil
}

// CanReadUser: a user may read their own profile; administrators may read
// anyone's.
func (a *Authorizer) CanReadUser(p Principal, targetUID string) error {
	if p.UID == targetUID || p.Role == domain.RoleAdministrator {
		return nil
	}
	return domain.E(domain.PermissionDenied, "cannot access other user profiles")
}

// CanMutateUser: same rule as reads; deletion is separately admin-gated.
func (a *Authorizer) CanMutateUser(p Principal, targetUID string) error {
	if p.UID == targetUID || p.Role == domain.RoleAdministrator {
		return nil
	}
	return domain.E(domain.PermissionDenied, "cannot update other user profiles")
}

// CanMutateDonation: the owning Donor or Organization, or an Administrator.
func (a *Authorizer) CanMutateDonation(p Principal, d *domain.Donation) error {
	switch p.Role {
	case domain.RoleAdministrator:
		return nil
	case domain.RoleDonor:
		if d.UserID == p.UID {
			return nil
		}
	case domain.RoleOrganization:
		if d.OrgID == p.UID {
			return nil
		}
	}
	return domain.E(domain.PermissionDenied, "not authorized for this donation")
}

// DonationListScope maps a principal onto the listing filter it is allowed
// to see: Donors only their own, Organizations everything (optionally
// narrowed to one org), Administrators everything.
func (a *Authorizer) DonationListScope(p Principal, requestedOrgID string) (domain.DonationFilter, error) {
	switch p.Role {
	case domain.RoleDonor:
		return domain.DonationFilter{UserID: p.UID}, nil
	case domain.RoleOrganization, domain.RoleAdministrator:
		return domain.DonationFilter{OrgID: requestedOrgID}, nil
	default:
		return domain.DonationFilter{}, domain.E(domain.PermissionDenied, "insufficient permissions")
	}
}
