package apps

import (
	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin defines the interface every app must implement.
type Plugin interface {
	// ID returns the unique app identifier (must match apps.json app_id).
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts app-specific routes on the given Fiber group.
	// The group is already prefixed with /api and has JWT + active-user
	// middleware applied. Plugins consult the registry's feature flags to
	// decide which optional route groups to mount.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config, registry *tenant.Registry)
}

// AdminPlugin extends Plugin with admin-only route registration.
type AdminPlugin interface {
	Plugin

	// RegisterAdminRoutes mounts routes on a group that has both JWT and
	// Admin middleware applied.
	RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// PublicPlugin extends Plugin with unauthenticated route registration.
// Used for provider redirects (OAuth callbacks) that arrive without a token.
type PublicPlugin interface {
	Plugin

	// RegisterPublicRoutes mounts routes on the bare /api group.
	RegisterPublicRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config, registry *tenant.Registry)
}
