// util/http_util.go
package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
)

// DecisionKey is the gin context key holding the guard's PolicyDecision.
const DecisionKey = "policyDecision"

func RespondWithError(c *gin.Context, code int, message string, err error) {
	if code >= http.StatusInternalServerError {
		logger.Error(message,
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))
	} else {
		logger.Debug(message,
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))
	}
	c.JSON(code, gin.H{"error": message})
}

// StatusForError maps the error taxonomy onto HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, bo_errors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, bo_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, bo_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, bo_errors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, bo_errors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage keeps denial reasons and internals out of responses.
func publicMessage(status int, err error) string {
	switch status {
	case http.StatusUnauthorized:
		return "Authentication required"
	case http.StatusForbidden:
		return "Access denied"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return err.Error()
	}
}

// RespondWithAppError writes the status and a safe message for err.
func RespondWithAppError(c *gin.Context, err error) {
	status := StatusForError(err)

	var fieldErr *bo_errors.FieldRestrictionError
	if errors.As(err, &fieldErr) {
		logger.Debug("Update touched restricted fields", zap.Strings("fields", fieldErr.Fields))
		c.JSON(status, gin.H{"error": fieldErr.Error(), "fields": fieldErr.Fields})
		return
	}
	RespondWithError(c, status, publicMessage(status, err), err)
}

// AbortWithAppError is RespondWithAppError for middleware.
func AbortWithAppError(c *gin.Context, err error) {
	RespondWithAppError(c, err)
	c.Abort()
}

// PrincipalFromGin reads the principal the access guard attached to the request context.
func PrincipalFromGin(c *gin.Context) (pdp_model.Principal, bool) {
	return pdp_model.PrincipalFromContext(c.Request.Context())
}

// DecisionFromGin returns the decision stored by the access guard, if any.
func DecisionFromGin(c *gin.Context) (pdp_model.PolicyDecision, bool) {
	v, ok := c.Get(DecisionKey)
	if !ok {
		return pdp_model.PolicyDecision{}, false
	}
	d, ok := v.(pdp_model.PolicyDecision)
	return d, ok
}
