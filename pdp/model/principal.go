package model

import (
	"fmt"

	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
)

// Principal is the authenticated actor of one request. It is never persisted.
type Principal struct {
	id              string
	role            model.Role
	tenantID        string
	resourceScopeID string
}

// NewPrincipal builds a Principal. COMPANY needs a tenant, PROVIDER needs a
// resource scope, and ADMIN is unrestricted so both scopes are dropped.
func NewPrincipal(id string, role model.Role, tenantID, resourceScopeID string) (Principal, error) {
	if id == "" {
		return Principal{}, fmt.Errorf("principal without id: %w", bo_errors.ErrUnauthenticated)
	}
	switch role {
	case model.RoleAdmin:
		tenantID, resourceScopeID = "", ""
	case model.RoleCompany:
		if tenantID == "" {
			return Principal{}, fmt.Errorf("company principal %s without tenant: %w", id, bo_errors.ErrUnauthenticated)
		}
	case model.RoleProvider:
		if resourceScopeID == "" {
			return Principal{}, fmt.Errorf("provider principal %s without scope: %w", id, bo_errors.ErrUnauthenticated)
		}
	default:
		if !role.IsStaff() {
			return Principal{}, fmt.Errorf("principal %s has unknown role %q: %w", id, role, bo_errors.ErrUnauthenticated)
		}
	}
	return Principal{id: id, role: role, tenantID: tenantID, resourceScopeID: resourceScopeID}, nil
}

func (p Principal) ID() string              { return p.id }
func (p Principal) Role() model.Role        { return p.role }
func (p Principal) TenantID() string        { return p.tenantID }
func (p Principal) ResourceScopeID() string { return p.resourceScopeID }
func (p Principal) IsAdmin() bool           { return p.role == model.RoleAdmin }

// IsZero reports whether p was never constructed.
func (p Principal) IsZero() bool { return p.id == "" }

func (p Principal) String() string {
	return fmt.Sprintf("%s(%s tenant=%q scope=%q)", p.role, p.id, p.tenantID, p.resourceScopeID)
}
