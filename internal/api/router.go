package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/smetaworks/estimates-api/docs"
	"github.com/smetaworks/estimates-api/internal/api/handler"
	"github.com/smetaworks/estimates-api/internal/api/middleware"
	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
	"github.com/smetaworks/estimates-api/internal/core/service"
	"github.com/smetaworks/estimates-api/internal/infrastructure/config"
	mongodb "github.com/smetaworks/estimates-api/internal/infrastructure/db/mongo"
	redisdb "github.com/smetaworks/estimates-api/internal/infrastructure/db/redis"
	"github.com/smetaworks/estimates-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is owned by the caller; the router only hands it to the
// services that emit events.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("estimates"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	clientUserRepo := mongodb.NewClientUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	estimateRepo := mongodb.NewEstimateRepository(db)
	documentRepo := mongodb.NewDocumentRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	// --- Services ---
	authService := service.NewAuthService(userRepo, clientUserRepo, sessionStore, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, audit, log)
	clientService := service.NewClientService(clientRepo, clientUserRepo, audit, log)
	estimateService := service.NewEstimateService(estimateRepo, audit, log)
	documentService := service.NewDocumentService(documentRepo, audit, log)
	portalService := service.NewPortalService(clientRepo, estimateRepo, documentRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.Production(), cfg.SessionTTL, cfg.TokenTTL)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	estimateHandler := handler.NewEstimateHandler(estimateService)
	documentHandler := handler.NewDocumentHandler(documentService)
	portalHandler := handler.NewPortalHandler(portalService)
	healthHandler := handlers.NewHealthHandler(db, rdb)

	staffAuth := middleware.StaffAuth(sessionStore)
	clientAuth := middleware.ClientAuth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, staffAuth)
	e.POST("/auth/client-login", authHandler.ClientLogin)
	e.POST("/auth/client-logout", authHandler.ClientLogout)

	// --- Admin routes ---
	admin := e.Group("/admin", staffAuth, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Deactivate)

	// --- Staff routes ---
	clients := e.Group("/clients", staffAuth, middleware.RequireRole(domain.RoleAdmin, domain.RoleManager))
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.GET("/manager/:managerId", clientHandler.ListByManager)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Deactivate)
	clients.POST("/:id/portal-login", clientHandler.CreatePortalLogin)

	estimates := e.Group("/estimates", staffAuth, middleware.RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleDesigner))
	estimates.GET("", estimateHandler.List)
	estimates.POST("", estimateHandler.Create)
	estimates.GET("/:id", estimateHandler.Get)
	estimates.PUT("/:id", estimateHandler.Update)
	estimates.DELETE("/:id", estimateHandler.Delete)

	acts := e.Group("/acts", staffAuth, middleware.RequireRole(domain.RoleAdmin, domain.RoleManager))
	acts.GET("", estimateHandler.ListActs)
	acts.POST("/:id/toggle-visibility", estimateHandler.ToggleActVisibility)

	documents := e.Group("/documents", staffAuth, middleware.RequireRole(domain.RoleAdmin, domain.RoleManager))
	documents.GET("", documentHandler.List)
	documents.POST("", documentHandler.Create)
	documents.DELETE("/:id", documentHandler.Delete)
	documents.POST("/:id/toggle-visibility", documentHandler.ToggleVisibility)

	// --- Client portal routes ---
	portal := e.Group("/client", clientAuth)
	portal.GET("/profile", portalHandler.Profile)
	portal.GET("/estimates", portalHandler.Estimates)
	portal.GET("/documents", portalHandler.Documents)

	// --- Health probes and operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
