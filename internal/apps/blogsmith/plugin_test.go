package blogsmith

import (
	"testing"

	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func registryWith(features map[string]bool) *tenant.Registry {
	r := tenant.NewRegistry()
	r.Register(&tenant.AppConfig{AppID: "blogsmith", AppName: "Blogsmith", Features: features})
	return r
}

func mountedPaths(app *fiber.App) map[string]bool {
	paths := make(map[string]bool)
	for _, route := range app.GetRoutes() {
		paths[route.Path] = true
	}
	return paths
}

func TestRegisterRoutes_FeatureFlagsGateOptionalGroups(t *testing.T) {
	app := fiber.New()
	New().RegisterRoutes(app.Group("/api/p"), nil, &config.Config{}, registryWith(map[string]bool{
		FeatureAIGeneration:       true,
		FeatureBlogspotPublishing: true,
	}))

	paths := mountedPaths(app)
	assert.True(t, paths["/api/p/posts"])
	assert.True(t, paths["/api/p/generate/content"])
	assert.True(t, paths["/api/p/blogspot/publish"])
}

func TestRegisterRoutes_DisabledFeaturesNotMounted(t *testing.T) {
	app := fiber.New()
	New().RegisterRoutes(app.Group("/api/p"), nil, &config.Config{}, registryWith(nil))

	paths := mountedPaths(app)
	assert.True(t, paths["/api/p/posts"], "post CRUD is always on")
	assert.False(t, paths["/api/p/generate/content"])
	assert.False(t, paths["/api/p/blogspot/auth"])
}

func TestRegisterPublicRoutes_CallbackFollowsPublishingFlag(t *testing.T) {
	app := fiber.New()
	plugin := New()
	plugin.RegisterPublicRoutes(app.Group("/api"), nil, &config.Config{}, registryWith(nil))
	assert.False(t, mountedPaths(app)["/api/blogspot/callback"])

	app = fiber.New()
	plugin.RegisterPublicRoutes(app.Group("/api"), nil, &config.Config{}, registryWith(map[string]bool{
		FeatureBlogspotPublishing: true,
	}))
	assert.True(t, mountedPaths(app)["/api/blogspot/callback"])
}
