package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloverpass/internal/config"
	"cloverpass/internal/middleware"
	"cloverpass/internal/model"
	"cloverpass/pkg/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	mongo    *mongo.Client
	services *Services
	log      *zap.SugaredLogger

	reconcilerCancel context.CancelFunc
}

// New creates a new server instance
func New(cfg *config.Config, log *zap.SugaredLogger) (*Server, error) {
	if cfg.Session.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if err := util.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	repos := InitRepositories(db)
	services := InitServices(cfg, repos, log)
	handlers := InitHandlers(cfg, services)

	if err := PopulateInitialData(cfg, repos, log); err != nil {
		return nil, fmt.Errorf("failed to populate initial data: %w", err)
	}

	router := setupRouter(cfg, handlers, services)

	return &Server{
		cfg:      cfg,
		router:   router,
		mongo:    mongoClient,
		services: services,
		log:      log,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Close stops the reconciler and disconnects the MongoDB client
func (s *Server) Close() error {
	if s.reconcilerCancel != nil {
		s.reconcilerCancel()
	}
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	s.startReconciler()
	s.log.Infow("server listening", "address", s.cfg.Server.Address())
	return s.router.Run(s.cfg.Server.Address())
}

func (s *Server) startReconciler() {
	if !s.cfg.Reconciler.Enabled {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.reconcilerCancel = cancel
	go s.services.Reconciler.Run(ctx)
}

func setupRouter(cfg *config.Config, h *Handlers, s *Services) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	api := r.Group("/api")

	// Session bootstrap (no auth)
	api.POST("/session/login", h.Session.Login)
	api.POST("/session/logout", h.Session.Logout)

	// Everything below requires a valid, unexpired token.
	protected := api.Group("")
	protected.Use(middleware.Authenticate(s.Tokens, cfg.Session.CookieName))

	protected.POST("/session/refresh", h.Session.Refresh)
	protected.GET("/session/route", h.Session.Route)
	protected.POST("/session/last-login", h.Session.TouchLastLogin)
	protected.GET("/dni/:dni", h.DNI.Lookup)

	// Role-gated routes additionally require a provisioned profile.
	profiled := protected.Group("")
	profiled.Use(middleware.RequireProfile(s.Profiles))

	profiled.GET("/session/me", h.Session.Me)

	// Platform user creation
	users := profiled.Group("/users")
	users.Use(middleware.RequireAnyRole(model.RoleSuperAdmin, model.RoleBusinessAdmin))
	users.POST("", h.User.Create)

	// Business-panel staff creation
	profiled.POST("/staff",
		middleware.RequireAnyRole(model.RoleBusinessAdmin, model.RoleStaff),
		h.User.CreateStaff)

	// Admin dashboard
	stats := profiled.Group("/stats")
	stats.Use(middleware.RequireAnyRole(model.RoleSuperAdmin))
	stats.GET("/dashboard", h.Stats.Dashboard)

	// Tenant management
	businesses := profiled.Group("/businesses")
	businesses.Use(middleware.RequireAnyRole(model.RoleSuperAdmin, model.RoleBusinessAdmin))
	{
		businesses.GET("", h.Business.List)
		businesses.POST("", h.Business.Create)
		businesses.GET("/:id", h.Business.Get)
	}

	// Business-panel catalog
	panel := profiled.Group("")
	panel.Use(middleware.RequireAnyRole(model.RoleSuperAdmin, model.RoleBusinessAdmin, model.RoleStaff))
	{
		panel.GET("/promotions", h.Promotion.List)
		panel.POST("/promotions", h.Promotion.Create)
		panel.POST("/promotions/:id/codes", h.Promotion.GenerateCodes)

		panel.GET("/events", h.Event.List)
		panel.POST("/events", h.Event.Create)
		panel.POST("/tickets", h.Event.CreateTicket)
		panel.POST("/boxes", h.Event.CreateBox)

		panel.GET("/promoters", h.Promoter.List)
		panel.POST("/promoters", h.Promoter.Create)
	}

	// Validation area: host and lector_qr share the destination, business
	// staff and admins can also scan.
	redemptions := profiled.Group("/redemptions")
	redemptions.Use(middleware.RequireAnyRole(
		model.RoleHost, model.RoleLectorQR,
		model.RoleBusinessAdmin, model.RoleStaff, model.RoleSuperAdmin))
	{
		redemptions.POST("", h.Redemption.Redeem)
		redemptions.GET("/feed", h.Redemption.Feed)
	}

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}
