package taskhub

import (
	"errors"

	"github.com/creatorsuite/suite-backend/internal/dto"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TaskHandler struct {
	service *TaskService
}

func NewTaskHandler(service *TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// taskError maps service sentinels to HTTP statuses.
func taskError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrCommentNotFound), errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrTagNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrNotVisible), errors.Is(err, ErrNotCreator), errors.Is(err, ErrNotProjectMember), errors.Is(err, ErrNotProjectOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidPriority), errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrAssigneeInvalid), errors.Is(err, ErrParentInvalid), errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrInvalidProjState), errors.Is(err, ErrCannotDropOwner),
		errors.Is(err, ErrInvalidDueBucket), errors.Is(err, ErrContentRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrMemberExists), errors.Is(err, ErrTagExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail(err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(fallback))
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	task, err := h.service.Create(appID, userID, req)
	if err != nil {
		return taskError(c, err, "Failed to create task")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(task))
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	filter := TaskFilter{
		Status:    TaskStatus(c.Query("status")),
		Priority:  TaskPriority(c.Query("priority")),
		Search:    c.Query("search"),
		DueBucket: c.Query("dueDate"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", dto.DefaultPageSize),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if v := c.Query("assignee"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid assignee ID"))
		}
		filter.AssigneeID = &id
	}
	if v := c.Query("project"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid project ID"))
		}
		filter.ProjectID = &id
	}

	tasks, pagination, err := h.service.List(appID, userID, filter)
	if err != nil {
		return taskError(c, err, "Failed to fetch tasks")
	}
	return c.JSON(dto.OK(dto.Paginated{Items: tasks, Pagination: pagination}))
}

func (h *TaskHandler) Stats(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	stats, err := h.service.Stats(appID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to compute stats"))
	}
	return c.JSON(dto.OK(stats))
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid task ID"))
	}

	task, err := h.service.Get(appID, userID, taskID)
	if err != nil {
		return taskError(c, err, "Failed to fetch task")
	}
	return c.JSON(dto.OK(task))
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid task ID"))
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	task, err := h.service.Update(appID, userID, taskID, req)
	if err != nil {
		return taskError(c, err, "Failed to update task")
	}
	return c.JSON(dto.OK(task))
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid task ID"))
	}

	if err := h.service.Delete(appID, userID, taskID); err != nil {
		return taskError(c, err, "Failed to delete task")
	}
	return c.JSON(dto.OKMessage(nil, "Task deleted"))
}

func (h *TaskHandler) AddComment(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid task ID"))
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	comment, err := h.service.AddComment(appID, userID, taskID, req)
	if err != nil {
		return taskError(c, err, "Failed to add comment")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(comment))
}

func (h *TaskHandler) ListComments(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid task ID"))
	}

	comments, err := h.service.ListComments(appID, userID, taskID)
	if err != nil {
		return taskError(c, err, "Failed to fetch comments")
	}
	return c.JSON(dto.OK(comments))
}

func (h *TaskHandler) DeleteComment(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid comment ID"))
	}

	if err := h.service.DeleteComment(appID, userID, commentID); err != nil {
		return taskError(c, err, "Failed to delete comment")
	}
	return c.JSON(dto.OKMessage(nil, "Comment deleted"))
}
