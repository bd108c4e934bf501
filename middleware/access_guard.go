package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/pdp"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/pdp/resolver"
	"github.com/buildledger/backoffice/util"
)

// AccessGuard is the request-level enforcement point. Authenticate must run
// before Require.
type AccessGuard struct {
	resolver   resolver.IPrincipalResolver
	authorizer pdp.IAuthorizer
}

func NewAccessGuard(principalResolver resolver.IPrincipalResolver, authorizer pdp.IAuthorizer) *AccessGuard {
	return &AccessGuard{resolver: principalResolver, authorizer: authorizer}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// Authenticate resolves the bearer token and attaches the principal to the request context.
func (g *AccessGuard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			logger.Debug("No bearer token provided", zap.String("path", c.Request.URL.Path))
			util.AbortWithAppError(c, bo_errors.ErrMissingCredential)
			return
		}

		principal, err := g.resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			util.AbortWithAppError(c, err)
			return
		}

		c.Request = c.Request.WithContext(pdp_model.WithPrincipal(c.Request.Context(), principal))
		c.Set("requestingUserID", principal.ID())
		c.Next()
	}
}

// Require authorizes action on resourceType. The record id comes from the
// :id path parameter; without one the action is treated as a collection action.
func (g *AccessGuard) Require(resourceType pdp_model.ResourceType, action pdp_model.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := util.PrincipalFromGin(c)
		if !ok {
			util.AbortWithAppError(c, bo_errors.ErrMissingCredential)
			return
		}

		decision, err := g.authorizer.Authorize(c.Request.Context(), principal, action, resourceType, c.Param("id"))
		if err != nil {
			util.AbortWithAppError(c, err)
			return
		}

		c.Set(util.DecisionKey, decision)
		c.Next()
	}
}
