// controller/auth_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildledger/backoffice/model"
	"github.com/buildledger/backoffice/service"
	"github.com/buildledger/backoffice/util"
)

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// RegisterPublicRoutes registers routes reachable without a token.
func (ac *AuthController) RegisterPublicRoutes(r *gin.RouterGroup, extra ...gin.HandlerFunc) {
	r.POST("/auth/login", append(extra, ac.Login)...)
}

// RegisterRoutes registers routes that need an authenticated caller.
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/auth/me", ac.Me)
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Email and password are required", err)
		return
	}

	result, err := ac.authService.Login(c.Request.Context(), creds)
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me endpoint
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.authService.Me(c.Request.Context())
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
