// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/buildledger/backoffice/controller"
	"github.com/buildledger/backoffice/middleware"
)

// Options carries the throttling and prefix settings read from config.
type Options struct {
	Prefix            string
	RateLimitRequests int
	RateLimitDuration time.Duration
	LoginPerSecond    float64
	LoginBurst        int
}

func SetupRouter(
	controllers *controller.Controllers,
	accessGuard *middleware.AccessGuard,
	roleGate *middleware.RoleGate,
	opts Options,
) *gin.Engine {
	router := gin.New()
	router.ContextWithFallback = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(opts.RateLimitRequests, opts.RateLimitDuration))

	api := router.Group(opts.Prefix)

	loginLimiter := middleware.NewLoginLimiter(opts.LoginPerSecond, opts.LoginBurst)
	controllers.Auth.RegisterPublicRoutes(api, loginLimiter.Middleware())

	authenticated := api.Group("")
	authenticated.Use(accessGuard.Authenticate())
	controllers.RegisterRoutes(authenticated, middleware.NewRouteProtector(accessGuard, roleGate))

	return router
}
