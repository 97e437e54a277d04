package blogsmith

import (
	"errors"

	"github.com/creatorsuite/suite-backend/internal/dto"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PostHandler struct {
	service *PostService
}

func NewPostHandler(service *PostService) *PostHandler {
	return &PostHandler{service: service}
}

// postError maps service sentinels to HTTP statuses.
func postError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrNotAuthor):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrPostTitleRequired), errors.Is(err, ErrInvalidPostStatus),
		errors.Is(err, ErrInvalidAdPosition), errors.Is(err, ErrScheduleInPast):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrDeletePublished):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail(err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(fallback))
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	post, err := h.service.Create(appID, userID, req)
	if err != nil {
		return postError(c, err, "Failed to create post")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(post))
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	filter := PostFilter{
		Status: PostStatus(c.Query("status")),
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", dto.DefaultPageSize),
	}

	posts, pagination, err := h.service.List(appID, userID, filter)
	if err != nil {
		return postError(c, err, "Failed to fetch posts")
	}
	return c.JSON(dto.OK(dto.Paginated{Items: posts, Pagination: pagination}))
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid post ID"))
	}

	post, err := h.service.Get(appID, userID, postID)
	if err != nil {
		return postError(c, err, "Failed to fetch post")
	}
	return c.JSON(dto.OK(post))
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid post ID"))
	}

	var req UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	post, err := h.service.Update(appID, userID, postID, req)
	if err != nil {
		return postError(c, err, "Failed to update post")
	}
	return c.JSON(dto.OK(post))
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid post ID"))
	}

	if err := h.service.Delete(appID, userID, postID); err != nil {
		return postError(c, err, "Failed to delete post")
	}
	return c.JSON(dto.OKMessage(nil, "Post deleted"))
}

func (h *PostHandler) Publish(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid post ID"))
	}

	post, err := h.service.Publish(appID, userID, postID)
	if err != nil {
		return postError(c, err, "Failed to publish post")
	}
	return c.JSON(dto.OKMessage(post, "Post published"))
}

func (h *PostHandler) Unpublish(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid post ID"))
	}

	post, err := h.service.Unpublish(appID, userID, postID)
	if err != nil {
		return postError(c, err, "Failed to unpublish post")
	}
	return c.JSON(dto.OKMessage(post, "Post reverted to draft"))
}

func (h *PostHandler) Like(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid post ID"))
	}

	post, err := h.service.Like(appID, userID, postID)
	if err != nil {
		return postError(c, err, "Failed to like post")
	}
	return c.JSON(dto.OK(post))
}

type AIHandler struct {
	service *AIService
}

func NewAIHandler(service *AIService) *AIHandler {
	return &AIHandler{service: service}
}

// aiError maps provider failures: rate limits surface as 429 so the client
// can back off, everything else from the provider is a 502.
func aiError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrPromptRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrAINotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrProviderRateLimit):
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrProviderFailed), errors.Is(err, ErrEmptyAIResponse):
		return c.Status(fiber.StatusBadGateway).JSON(dto.Fail("Content generation failed"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Content generation failed"))
}

func (h *AIHandler) GenerateContent(c *fiber.Ctx) error {
	var req GenerateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	result, err := h.service.GenerateContent(req)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(dto.OK(result))
}

func (h *AIHandler) GenerateTitles(c *fiber.Ctx) error {
	var req GenerateTitlesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	result, err := h.service.GenerateTitles(req)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(dto.OK(result))
}

func (h *AIHandler) GenerateTags(c *fiber.Ctx) error {
	var req GenerateFromContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	result, err := h.service.GenerateTags(req)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(dto.OK(result))
}

func (h *AIHandler) GenerateMeta(c *fiber.Ctx) error {
	var req GenerateFromContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}

	result, err := h.service.GenerateMeta(req)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(dto.OK(result))
}

type BlogspotHandler struct {
	service *BlogspotService
	posts   *PostService
}

func NewBlogspotHandler(service *BlogspotService, posts *PostService) *BlogspotHandler {
	return &BlogspotHandler{service: service, posts: posts}
}

func blogspotError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrNotConnected):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrReconnectRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrOAuthNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrNotAuthor):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrExchangeFailed), errors.Is(err, ErrBadOAuthState):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrNoBlogs):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Fail(err.Error()))
	case errors.Is(err, ErrPublishFailed):
		return c.Status(fiber.StatusBadGateway).JSON(dto.Fail("Blogger publish failed"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(fallback))
}

// Auth returns the Google consent URL for the caller to redirect to.
func (h *BlogspotHandler) Auth(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	authURL, err := h.service.AuthURL(appID, userID)
	if err != nil {
		return blogspotError(c, err, "Failed to build authorization URL")
	}
	return c.JSON(dto.OK(fiber.Map{"auth_url": authURL}))
}

// Callback receives the provider redirect. It is unauthenticated; identity
// comes from the signed-over state we issued in Auth.
func (h *BlogspotHandler) Callback(c *fiber.Ctx) error {
	if errMsg := c.Query("error"); errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Authorization denied: " + errMsg))
	}

	appID, userID, err := DecodeState(c.Query("state"))
	if err != nil {
		return blogspotError(c, err, "Failed to complete authorization")
	}

	conn, err := h.service.HandleCallback(appID, userID, c.Query("code"))
	if err != nil {
		return blogspotError(c, err, "Failed to complete authorization")
	}
	return c.JSON(dto.OKMessage(fiber.Map{
		"blog_id":  conn.BlogID,
		"blog_url": conn.BlogURL,
	}, "Blogspot account connected"))
}

func (h *BlogspotHandler) Status(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	status, err := h.service.Status(appID, userID)
	if err != nil {
		return blogspotError(c, err, "Failed to fetch connection status")
	}
	return c.JSON(dto.OK(status))
}

func (h *BlogspotHandler) Publish(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	var req PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid request body"))
	}
	if req.PostID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("post_id is required"))
	}

	post, err := h.service.Publish(appID, userID, req.PostID, h.posts)
	if err != nil {
		return blogspotError(c, err, "Failed to publish to Blogspot")
	}
	return c.JSON(dto.OKMessage(post, "Post published to Blogspot"))
}

func (h *BlogspotHandler) Disconnect(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
	}

	if err := h.service.Disconnect(appID, userID); err != nil {
		return blogspotError(c, err, "Failed to disconnect")
	}
	return c.JSON(dto.OKMessage(nil, "Blogspot account disconnected"))
}
