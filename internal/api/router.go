package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/estateops/property-registry/docs"
	"github.com/estateops/property-registry/internal/api/handler"
	"github.com/estateops/property-registry/internal/api/middleware"
	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/service"
	mongorepo "github.com/estateops/property-registry/internal/infrastructure/db/mongo"
	redisrepo "github.com/estateops/property-registry/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the router needs beyond its backing
// stores.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("registry"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	houseRepo := mongorepo.NewHouseRepository(db)
	occupantRepo := mongorepo.NewOccupantRepository(db)
	assignmentRepo := mongorepo.NewAssignmentRepository(db)
	sessions := redisrepo.NewSessionStore(rdb)

	rules := service.NewInvariants(userRepo, houseRepo, occupantRepo, assignmentRepo)

	authService := service.NewAuthService(userRepo, sessions, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, houseRepo, assignmentRepo, log)
	houseService := service.NewHouseService(houseRepo, occupantRepo, assignmentRepo, userRepo, rules, log)
	occupantService := service.NewOccupantService(occupantRepo, houseRepo, rules, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, houseRepo, userRepo, rules, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	houseHandler := handler.NewHouseHandler(houseService)
	occupantHandler := handler.NewOccupantHandler(occupantService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)

	authMiddleware := middleware.Auth(cfg.JWTSecret, sessions)
	canManage := middleware.RBAC(domain.RoleOwner, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Authenticated API ---
	// Route-level RBAC gates who may reach a handler at all; row-level
	// visibility is applied inside the services via the scope predicate.
	v1 := e.Group("/v1", authMiddleware)

	users := v1.Group("/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/me", userHandler.Me)
	users.GET("/owners", userHandler.ListOwners, adminOnly)
	users.GET("/tenants", userHandler.ListTenants, canManage)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)
	users.GET("/:id/properties", userHandler.Properties)

	houses := v1.Group("/houses")
	houses.GET("", houseHandler.List)
	houses.POST("", houseHandler.Create, canManage)
	houses.GET("/by-type", houseHandler.ListByType)
	houses.GET("/:id", houseHandler.Get)
	houses.PUT("/:id", houseHandler.Update, canManage)
	houses.DELETE("/:id", houseHandler.Delete, canManage)
	houses.GET("/:id/occupants", houseHandler.Occupants)
	houses.GET("/:id/chief-tenant", houseHandler.ChiefTenant)

	occupants := v1.Group("/occupants")
	occupants.GET("", occupantHandler.List)
	occupants.POST("", occupantHandler.Create, canManage)
	occupants.GET("/by-house", occupantHandler.ListByHouse)
	occupants.GET("/chief-tenants", occupantHandler.ListChiefs)
	occupants.GET("/:id", occupantHandler.Get)
	occupants.PUT("/:id", occupantHandler.Update, canManage)
	occupants.DELETE("/:id", occupantHandler.Delete, canManage)

	assignments := v1.Group("/assignments")
	assignments.GET("", assignmentHandler.List)
	assignments.POST("", assignmentHandler.Create, canManage)
	assignments.GET("/active", assignmentHandler.ListActive)
	assignments.GET("/:id", assignmentHandler.Get)
	assignments.PUT("/:id", assignmentHandler.Update, canManage)
	assignments.DELETE("/:id", assignmentHandler.Delete, canManage)
	assignments.POST("/:id/activate", assignmentHandler.Activate, canManage)
	assignments.POST("/:id/deactivate", assignmentHandler.Deactivate, canManage)

	return e
}
