// Package authz centralizes the role and company-scope rules that every
// route enforces. Handlers build a Principal from the verified token claims
// and ask these predicates instead of comparing role strings inline.
package authz

import (
	"errors"

	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/google/uuid"
)

var (
	// ErrCompanyRequired is returned when an admin caller must name a company
	// explicitly (unbounded cross-company queries are rejected).
	ErrCompanyRequired = errors.New("company id is required")

	ErrForbidden = errors.New("not authorized")
)

// Principal is the authenticated caller as seen by the policy layer.
type Principal struct {
	UserID    uuid.UUID
	CompanyID *uuid.UUID
	Role      models.Role
}

func (p Principal) sameCompany(companyID *uuid.UUID) bool {
	return p.CompanyID != nil && companyID != nil && *p.CompanyID == *companyID
}

// CanViewUser reports whether the caller may read the target user record.
func CanViewUser(p Principal, target *models.User) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCompany:
		return p.sameCompany(target.CompanyID)
	default:
		return p.UserID == target.ID
	}
}

// CanUpdateUser reports whether the caller may modify the target's profile.
// Which fields may change is decided at the handler layer; admins alone may
// touch roles.
func CanUpdateUser(p Principal, target *models.User) bool {
	return CanViewUser(p, target)
}

// CanDeleteUser reports whether the caller may deactivate the target.
// Company admins cannot remove peer company-role accounts.
func CanDeleteUser(p Principal, target *models.User) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCompany:
		return p.sameCompany(target.CompanyID) && target.Role != models.RoleCompany
	default:
		return false
	}
}

// CanViewUserLocations reports whether the caller may read the target user's
// location history: admins, the owning company, or the user themself.
func CanViewUserLocations(p Principal, target *models.User) bool {
	if p.UserID == target.ID {
		return true
	}
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCompany:
		return p.sameCompany(target.CompanyID)
	default:
		return false
	}
}

// CompanyScope resolves the effective company filter for a scoped query.
// Company callers are always pinned to their own company regardless of the
// requested filter. Admins get the requested filter, or no filter when
// required is false; when required is true an admin must name a company.
func CompanyScope(p Principal, requested *uuid.UUID, required bool) (*uuid.UUID, error) {
	switch p.Role {
	case models.RoleCompany:
		if p.CompanyID == nil {
			return nil, ErrForbidden
		}
		return p.CompanyID, nil
	case models.RoleAdmin:
		if requested != nil {
			return requested, nil
		}
		if required {
			return nil, ErrCompanyRequired
		}
		return nil, nil
	default:
		return nil, ErrForbidden
	}
}
