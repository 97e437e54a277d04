package blogsmith

import (
	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Feature flags recognized in apps.json.
const (
	FeatureAIGeneration       = "ai_generation"
	FeatureBlogspotPublishing = "blogspot_publishing"
)

type BlogsmithPlugin struct {
	blogspot *BlogspotService
}

func New() *BlogsmithPlugin {
	return &BlogsmithPlugin{}
}

func (p *BlogsmithPlugin) ID() string { return "blogsmith" }

func (p *BlogsmithPlugin) Models() []interface{} {
	return []interface{}{
		&Post{},
		&BlogspotConnection{},
	}
}

func (p *BlogsmithPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config, registry *tenant.Registry) {
	postSvc := NewPostService(db)
	postHandler := NewPostHandler(postSvc)

	router.Post("/posts", postHandler.Create)
	router.Get("/posts", postHandler.List)
	router.Get("/posts/:id", postHandler.Get)
	router.Put("/posts/:id", postHandler.Update)
	router.Delete("/posts/:id", postHandler.Delete)
	router.Post("/posts/:id/publish", postHandler.Publish)
	router.Post("/posts/:id/unpublish", postHandler.Unpublish)
	router.Post("/posts/:id/like", postHandler.Like)

	if registry.HasFeature(p.ID(), FeatureAIGeneration) {
		aiSvc := NewAIService(cfg)
		aiHandler := NewAIHandler(aiSvc)

		router.Post("/generate/content", aiHandler.GenerateContent)
		router.Post("/generate/titles", aiHandler.GenerateTitles)
		router.Post("/generate/tags", aiHandler.GenerateTags)
		router.Post("/generate/meta", aiHandler.GenerateMeta)
	}

	if registry.HasFeature(p.ID(), FeatureBlogspotPublishing) {
		if p.blogspot == nil {
			p.blogspot = NewBlogspotService(db, cfg)
		}
		blogspotHandler := NewBlogspotHandler(p.blogspot, postSvc)

		router.Get("/blogspot/auth", blogspotHandler.Auth)
		router.Get("/blogspot/status", blogspotHandler.Status)
		router.Post("/blogspot/publish", blogspotHandler.Publish)
		router.Delete("/blogspot/disconnect", blogspotHandler.Disconnect)
	}
}

// RegisterPublicRoutes mounts the OAuth callback, which Google calls without
// any of our auth headers.
func (p *BlogsmithPlugin) RegisterPublicRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config, registry *tenant.Registry) {
	if !registry.HasFeature(p.ID(), FeatureBlogspotPublishing) {
		return
	}
	if p.blogspot == nil {
		p.blogspot = NewBlogspotService(db, cfg)
	}
	handler := NewBlogspotHandler(p.blogspot, NewPostService(db))

	router.Get("/blogspot/callback", handler.Callback)
}
