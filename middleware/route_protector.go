package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
)

// RouteProtector chains the role gate and the policy check for one route.
type RouteProtector struct {
	guard *AccessGuard
	gate  *RoleGate
}

func NewRouteProtector(guard *AccessGuard, gate *RoleGate) *RouteProtector {
	return &RouteProtector{guard: guard, gate: gate}
}

// Protect returns the handlers guarding action on resourceType. With no roles
// every role passes the gate and the policy table alone decides.
func (p *RouteProtector) Protect(resourceType pdp_model.ResourceType, action pdp_model.Action, roles ...model.Role) []gin.HandlerFunc {
	if len(roles) == 0 {
		roles = model.AllRoles()
	}
	routeKey := fmt.Sprintf("%s:%s", resourceType, action)
	return []gin.HandlerFunc{
		p.gate.Allow(routeKey, roles...),
		p.guard.Require(resourceType, action),
	}
}

// RolesOnly gates a route that has no policy-table resource behind it.
func (p *RouteProtector) RolesOnly(routeKey string, roles ...model.Role) gin.HandlerFunc {
	return p.gate.Allow(routeKey, roles...)
}
