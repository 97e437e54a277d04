package taskhub

import (
	"github.com/creatorsuite/suite-backend/internal/dto"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	service *ProjectService
}

func NewProjectHandler(service *ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	project, err := h.service.Create(appID, userID, req)
	if err != nil {
		return taskError(c, err, "Failed to create project")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(project))
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	projects, err := h.service.List(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to fetch projects"))
	}
	return c.JSON(dto.OK(projects))
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid project ID"))
	}

	project, err := h.service.Get(appID, userID, projectID)
	if err != nil {
		return taskError(c, err, "Failed to fetch project")
	}
	return c.JSON(dto.OK(project))
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid project ID"))
	}

	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	project, err := h.service.Update(appID, userID, projectID, req)
	if err != nil {
		return taskError(c, err, "Failed to update project")
	}
	return c.JSON(dto.OK(project))
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid project ID"))
	}

	if err := h.service.Delete(appID, userID, projectID); err != nil {
		return taskError(c, err, "Failed to delete project")
	}
	return c.JSON(dto.OKMessage(nil, "Project deleted"))
}

func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid project ID"))
	}

	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	member, err := h.service.AddMember(appID, userID, projectID, req)
	if err != nil {
		return taskError(c, err, "Failed to add member")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(member))
}

func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid project ID"))
	}
	memberUserID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid user ID"))
	}

	if err := h.service.RemoveMember(appID, userID, projectID, memberUserID); err != nil {
		return taskError(c, err, "Failed to remove member")
	}
	return c.JSON(dto.OKMessage(nil, "Member removed"))
}

func (h *ProjectHandler) ListTags(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	tags, err := h.service.ListTags(appID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to fetch tags"))
	}
	return c.JSON(dto.OK(tags))
}

func (h *ProjectHandler) CreateTag(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	tag, err := h.service.CreateTag(appID, req)
	if err != nil {
		return taskError(c, err, "Failed to create tag")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(tag))
}

func (h *ProjectHandler) DeleteTag(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	tagID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid tag ID"))
	}

	if err := h.service.DeleteTag(appID, tagID); err != nil {
		if err == ErrTagNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to delete tag"))
	}
	return c.JSON(dto.OKMessage(nil, "Tag deleted"))
}
