package taskhub

import (
	"testing"

	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func taskhubRegistry(features map[string]bool) *tenant.Registry {
	r := tenant.NewRegistry()
	r.Register(&tenant.AppConfig{AppID: "taskhub", AppName: "TaskHub", Features: features})
	return r
}

func routePaths(app *fiber.App) map[string]bool {
	paths := make(map[string]bool)
	for _, route := range app.GetRoutes() {
		paths[route.Path] = true
	}
	return paths
}

func TestRegisterRoutes_FeatureFlagsGateOptionalGroups(t *testing.T) {
	app := fiber.New()
	New().RegisterRoutes(app.Group("/api/p"), nil, &config.Config{}, taskhubRegistry(map[string]bool{
		FeatureProjects:  true,
		FeatureTaskStats: true,
		FeatureComments:  true,
	}))

	paths := routePaths(app)
	assert.True(t, paths["/api/p/tasks"])
	assert.True(t, paths["/api/p/tasks/stats"])
	assert.True(t, paths["/api/p/tasks/:id/comments"])
	assert.True(t, paths["/api/p/projects"])
}

func TestRegisterRoutes_DisabledFeaturesNotMounted(t *testing.T) {
	app := fiber.New()
	New().RegisterRoutes(app.Group("/api/p"), nil, &config.Config{}, taskhubRegistry(nil))

	paths := routePaths(app)
	assert.True(t, paths["/api/p/tasks"], "task CRUD is always on")
	assert.False(t, paths["/api/p/tasks/stats"])
	assert.False(t, paths["/api/p/tasks/:id/comments"])
	assert.False(t, paths["/api/p/projects"])
	assert.False(t, paths["/api/p/tags"])
}
