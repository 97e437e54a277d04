package taskhub

import (
	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Feature flags recognized in apps.json.
const (
	FeatureProjects  = "projects"
	FeatureTaskStats = "task_stats"
	FeatureComments  = "comments"
)

type TaskhubPlugin struct{}

func New() *TaskhubPlugin {
	return &TaskhubPlugin{}
}

func (p *TaskhubPlugin) ID() string { return "taskhub" }

func (p *TaskhubPlugin) Models() []interface{} {
	return []interface{}{
		&Project{},
		&ProjectMember{},
		&Task{},
		&Comment{},
		&Tag{},
	}
}

func (p *TaskhubPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config, registry *tenant.Registry) {
	taskSvc := NewTaskService(db)
	taskHandler := NewTaskHandler(taskSvc)

	router.Post("/tasks", taskHandler.Create)
	router.Get("/tasks", taskHandler.List)
	if registry.HasFeature(p.ID(), FeatureTaskStats) {
		// Registered before /tasks/:id so "stats" is not parsed as an id.
		router.Get("/tasks/stats", taskHandler.Stats)
	}
	router.Get("/tasks/:id", taskHandler.Get)
	router.Put("/tasks/:id", taskHandler.Update)
	router.Delete("/tasks/:id", taskHandler.Delete)

	if registry.HasFeature(p.ID(), FeatureComments) {
		router.Post("/tasks/:id/comments", taskHandler.AddComment)
		router.Get("/tasks/:id/comments", taskHandler.ListComments)
		router.Delete("/tasks/:id/comments/:commentId", taskHandler.DeleteComment)
	}

	if registry.HasFeature(p.ID(), FeatureProjects) {
		projectSvc := NewProjectService(db)
		projectHandler := NewProjectHandler(projectSvc)

		router.Post("/projects", projectHandler.Create)
		router.Get("/projects", projectHandler.List)
		router.Get("/projects/:id", projectHandler.Get)
		router.Put("/projects/:id", projectHandler.Update)
		router.Delete("/projects/:id", projectHandler.Delete)
		router.Post("/projects/:id/members", projectHandler.AddMember)
		router.Delete("/projects/:id/members/:userId", projectHandler.RemoveMember)

		router.Get("/tags", projectHandler.ListTags)
		router.Post("/tags", projectHandler.CreateTag)
		router.Delete("/tags/:id", projectHandler.DeleteTag)
	}
}
