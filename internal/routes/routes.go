package routes

import (
	"github.com/creatorsuite/suite-backend/internal/apps"
	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/creatorsuite/suite-backend/internal/handlers"
	"github.com/creatorsuite/suite-backend/internal/middleware"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	registry *tenant.Registry,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        cfg.RateLimitWindow,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no tenant required)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter per-IP limit to slow credential stuffing
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimit,
		Expiration:        cfg.RateLimitWindow,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes - applied per route so the JWT middleware never
	// touches the public ones
	protect := []fiber.Handler{middleware.JWTProtected(cfg), middleware.RequireActiveUser(db)}
	api.Post("/auth/logout", protect[0], protect[1], authHandler.Logout)
	api.Post("/auth/logout-all", protect[0], protect[1], authHandler.LogoutAll)
	api.Get("/auth/me", protect[0], protect[1], authHandler.Me)
	api.Put("/auth/password", protect[0], protect[1], authHandler.ChangePassword)
	api.Put("/auth/profile", protect[0], protect[1], authHandler.UpdateProfile)

	// Admin user management (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/users", authHandler.ListUsers)
	admin.Put("/users/:id/active", authHandler.SetUserActive)

	// Plugin routes - a dedicated protected group keeps plugin middleware off
	// the public surface
	protected := api.Group("/p", middleware.JWTProtected(cfg), middleware.RequireActiveUser(db))
	for _, p := range plugins {
		p.RegisterRoutes(protected, db, cfg, registry)
		if ap, ok := p.(apps.AdminPlugin); ok {
			ap.RegisterAdminRoutes(admin, db, cfg)
		}
		// OAuth callbacks and similar provider redirects arrive without a token
		if pp, ok := p.(apps.PublicPlugin); ok {
			pp.RegisterPublicRoutes(api, db, cfg, registry)
		}
	}
}
