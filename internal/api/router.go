package api

import (
	"log/slog"

	"github.com/farhan/hrmtrack/internal/api/handlers"
	"github.com/farhan/hrmtrack/internal/api/middleware"
	"github.com/farhan/hrmtrack/internal/auth"
	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	Store          handlers.Presigner
	AsynqClient    *asynq.Client
	AllowedOrigins []string
	RateLimitReqs  int
	RateLimitSecs  int
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		// Dashboard dev server defaults; configure in production.
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	userHandler := handlers.NewUserHandler(cfg.DB)
	locationHandler := handlers.NewLocationHandler(cfg.DB, cfg.AsynqClient, cfg.Logger)
	reportHandler := handlers.NewReportHandler(cfg.DB)
	uploadHandler := handlers.NewUploadHandler(cfg.DB, cfg.Store)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	r.Route("/api", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/register-company", authHandler.RegisterCompany)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/locations", func(r chi.Router) {
				r.Post("/", locationHandler.Record)
				r.Post("/checkin", locationHandler.CheckIn)
				r.Post("/checkout", locationHandler.CheckOut)
				r.Get("/staff/{userId}", reportHandler.StaffHistory)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleCompany))
					r.Get("/today", reportHandler.Today)
					r.Get("/recent", reportHandler.Recent)
					r.Get("/company", reportHandler.CompanyHistory)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Put("/{id}", userHandler.Update)
				r.Post("/{id}/avatar-url", uploadHandler.AvatarURL)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleCompany))
					r.Get("/", userHandler.List)
					r.Get("/active", userHandler.ActiveCounts)
					r.Get("/{id}", userHandler.Get)
					r.Delete("/{id}", userHandler.Delete)
				})

				r.With(middleware.RequireRole(models.RoleCompany)).Get("/staff", userHandler.ListStaff)
			})

			r.With(middleware.RequireRole(models.RoleAdmin, models.RoleCompany)).
				Post("/companies/{id}/logo-url", uploadHandler.LogoURL)
		})
	})

	return &Router{r}
}
