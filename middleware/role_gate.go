package middleware

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	casbin_model "github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
	"github.com/buildledger/backoffice/util"
)

const roleGateModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

type GateMode string

const (
	GateEnforce GateMode = "enforce"
	// GateShadow logs what would have been denied and lets the request through.
	GateShadow GateMode = "shadow"
)

// RoleGate holds the coarse role requirements declared per route.
type RoleGate struct {
	enforcer *casbin.SyncedEnforcer
	mode     GateMode
}

func NewRoleGate(mode GateMode) (*RoleGate, error) {
	m, err := casbin_model.NewModelFromString(roleGateModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse role gate model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create role gate enforcer: %w", err)
	}
	if mode != GateShadow {
		mode = GateEnforce
	}
	return &RoleGate{enforcer: enforcer, mode: mode}, nil
}

func subjectFromRole(role model.Role) string {
	return "role:" + strings.ToLower(string(role))
}

// Allow declares which roles may reach routeKey and returns the middleware checking it.
func (g *RoleGate) Allow(routeKey string, roles ...model.Role) gin.HandlerFunc {
	for _, role := range roles {
		if _, err := g.enforcer.AddPolicy(subjectFromRole(role), routeKey); err != nil {
			logger.Fatal("Failed to register route role", zap.String("route", routeKey), zap.Error(err))
		}
	}

	return func(c *gin.Context) {
		principal, ok := util.PrincipalFromGin(c)
		if !ok {
			util.AbortWithAppError(c, bo_errors.ErrMissingCredential)
			return
		}

		allowed, err := g.Permits(principal.Role(), routeKey)
		if err != nil {
			util.AbortWithAppError(c, fmt.Errorf("role gate: %w: %v", bo_errors.ErrInternalServer, err))
			return
		}
		if !allowed {
			if g.mode == GateShadow {
				logger.Warn("Role gate would deny",
					zap.String("route", routeKey),
					zap.String("role", string(principal.Role())))
				c.Next()
				return
			}
			logger.Warn("Role gate denied",
				zap.String("route", routeKey),
				zap.String("userID", principal.ID()),
				zap.String("role", string(principal.Role())))
			util.AbortWithAppError(c, bo_errors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// Permits reports whether role may reach routeKey.
func (g *RoleGate) Permits(role model.Role, routeKey string) (bool, error) {
	return g.enforcer.Enforce(subjectFromRole(role), routeKey)
}
