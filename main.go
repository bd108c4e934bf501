package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/buildledger/backoffice/audit"
	"github.com/buildledger/backoffice/config"
	"github.com/buildledger/backoffice/controller"
	"github.com/buildledger/backoffice/dao"
	"github.com/buildledger/backoffice/db"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/middleware"
	"github.com/buildledger/backoffice/pdp"
	pdp_dao "github.com/buildledger/backoffice/pdp/dao"
	"github.com/buildledger/backoffice/pdp/engine"
	"github.com/buildledger/backoffice/pdp/resolver"
	"github.com/buildledger/backoffice/router"
	"github.com/buildledger/backoffice/service"
	"github.com/buildledger/backoffice/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	cfg := config.GetConfig()

	// Initialize logger
	logger.InitLogger(cfg.Log.Dir)
	defer logger.Sync()

	// Initialize Neo4j
	if err := db.InitNeo4j(); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	auditRepository, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Elasticsearch.AuditIndex)
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize stores
	stores := dao.NewStores(db.Neo4jDriver, auditService)
	for _, store := range stores.All() {
		if err := store.EnsureConstraints(ctx); err != nil {
			logger.Fatal("Failed to create constraints", zap.String("label", store.Label()), zap.Error(err))
		}
	}

	// Access control
	tokens := resolver.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	principalResolver := resolver.NewPrincipalResolver(tokens, stores.Users)
	authorizer := pdp.NewAuthorizer(engine.NewPolicyEvaluator(nil), pdp_dao.NewDescriptorDAO(db.Neo4jDriver), auditService)
	accessGuard := middleware.NewAccessGuard(principalResolver, authorizer)
	roleGate, err := middleware.NewRoleGate(middleware.GateMode(cfg.Auth.RoleGateMode))
	if err != nil {
		logger.Fatal("Failed to initialize role gate", zap.Error(err))
	}

	// Initialize services
	services, err := service.InitializeServices(
		stores,
		authorizer,
		tokens,
		util.NewValidationUtil(),
		util.NewCacheService(),
		util.NewNotificationService(),
		eventBus,
	)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Initialize controllers
	controllers := controller.InitializeControllers(services, auditService)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engineRouter := router.SetupRouter(controllers, accessGuard, roleGate, router.Options{
		Prefix:            cfg.Server.Prefix,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitDuration: cfg.RateLimit.Window,
		LoginPerSecond:    cfg.RateLimit.LoginPerSecond,
		LoginBurst:        cfg.RateLimit.LoginBurst,
	})

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engineRouter,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	eventBus.Wait()

	logger.Info("Server exiting")
}
