package blogsmith

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/creatorsuite/suite-backend/internal/dto"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrNotAuthor          = errors.New("you do not own this post")
	ErrPostTitleRequired  = errors.New("title is required")
	ErrInvalidPostStatus  = errors.New("invalid post status")
	ErrInvalidAdPosition  = errors.New("ad position must be top, middle or bottom")
	ErrDeletePublished    = errors.New("cannot delete a published post; unpublish it first")
	ErrScheduleInPast     = errors.New("scheduled_for must be in the future")
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// slugCandidate derives the nth candidate for a base slug: the base itself,
// then base-2, base-3, and so on.
func slugCandidate(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// uniqueSlug returns the first free slug for the author, starting from the
// title-derived base and appending a numeric suffix on collision.
func (s *PostService) uniqueSlug(appID string, authorID uuid.UUID, base string, excludeID *uuid.UUID) (string, error) {
	if base == "" {
		base = "post"
	}
	for n := 1; ; n++ {
		candidate := slugCandidate(base, n)
		q := s.db.Model(&Post{}).
			Where("app_id = ? AND author_id = ? AND slug = ?", appID, authorID, candidate)
		if excludeID != nil {
			q = q.Where("id <> ?", *excludeID)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
}

func marshalAffiliateLinks(links []AffiliateLink) datatypes.JSON {
	if links == nil {
		links = []AffiliateLink{}
	}
	b, err := json.Marshal(links)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

func parseAffiliateLinks(raw datatypes.JSON) []AffiliateLink {
	var links []AffiliateLink
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil
	}
	return links
}

func validAdPosition(pos string) bool {
	switch pos {
	case AdPositionTop, AdPositionMiddle, AdPositionBottom:
		return true
	}
	return false
}

func (s *PostService) Create(appID string, authorID uuid.UUID, req CreatePostRequest) (*Post, error) {
	if req.Title == "" {
		return nil, ErrPostTitleRequired
	}

	status := PostDraft
	if req.Status != "" {
		status = PostStatus(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidPostStatus
		}
	}
	if status == PostScheduled {
		if req.ScheduledFor == nil || req.ScheduledFor.Before(time.Now()) {
			return nil, ErrScheduleInPast
		}
	}

	adPosition := AdPositionBottom
	if req.AdPosition != "" {
		if !validAdPosition(req.AdPosition) {
			return nil, ErrInvalidAdPosition
		}
		adPosition = req.AdPosition
	}

	base := req.Slug
	if base == "" {
		base = slug.Make(req.Title)
	} else {
		base = slug.Make(base)
	}
	unique, err := s.uniqueSlug(appID, authorID, base, nil)
	if err != nil {
		return nil, err
	}

	post := Post{
		ID:             uuid.New(),
		AppID:          appID,
		AuthorID:       authorID,
		Title:          req.Title,
		Content:        req.Content,
		Tags:           req.Tags,
		Status:         status,
		ScheduledFor:   req.ScheduledFor,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		Slug:           unique,
		AIPrompt:       req.AIPrompt,
		AIModel:        req.AIModel,
		AITokens:       req.AITokens,
		AICost:         req.AICost,
		AdsenseCode:    req.AdsenseCode,
		AdPosition:     adPosition,
		AffiliateLinks: marshalAffiliateLinks(req.AffiliateLinks),
	}
	if req.AdsenseEnabled != nil {
		post.AdsenseEnabled = *req.AdsenseEnabled
	}
	if status == PostPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) get(appID string, authorID uuid.UUID, postID uuid.UUID) (*Post, error) {
	var post Post
	if err := s.db.Scopes(tenant.ForTenant(appID)).First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, ErrNotAuthor
	}
	return &post, nil
}

// Get fetches one post and bumps its view counter.
func (s *PostService) Get(appID string, authorID uuid.UUID, postID uuid.UUID) (*Post, error) {
	post, err := s.get(appID, authorID, postID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(post).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return nil, err
	}
	post.Views++
	return post, nil
}

func (s *PostService) List(appID string, authorID uuid.UUID, filter PostFilter) ([]Post, dto.Pagination, error) {
	page, limit := dto.NormalizePage(filter.Page, filter.Limit)

	q := s.db.Model(&Post{}).Scopes(tenant.ForTenant(appID)).Where("author_id = ?", authorID)

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, dto.Pagination{}, ErrInvalidPostStatus
		}
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Tag != "" {
		q = q.Where("? = ANY(tags)", filter.Tag)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, err
	}

	var posts []Post
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	return posts, dto.NewPagination(page, limit, total), nil
}

func (s *PostService) Update(appID string, authorID uuid.UUID, postID uuid.UUID, req UpdatePostRequest) (*Post, error) {
	post, err := s.get(appID, authorID, postID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrPostTitleRequired
		}
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if req.SeoTitle != nil {
		post.SeoTitle = *req.SeoTitle
	}
	if req.SeoDescription != nil {
		post.SeoDescription = *req.SeoDescription
	}
	if req.Slug != nil && *req.Slug != "" {
		unique, err := s.uniqueSlug(appID, authorID, slug.Make(*req.Slug), &post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = unique
	}
	if req.ScheduledFor != nil {
		post.ScheduledFor = req.ScheduledFor
	}
	if req.Status != nil {
		next := PostStatus(*req.Status)
		if !next.Valid() {
			return nil, ErrInvalidPostStatus
		}
		if next == PostScheduled && (post.ScheduledFor == nil || post.ScheduledFor.Before(time.Now())) {
			return nil, ErrScheduleInPast
		}
		applyPostStatus(post, next, time.Now())
	}
	if req.AdsenseEnabled != nil {
		post.AdsenseEnabled = *req.AdsenseEnabled
	}
	if req.AdsenseCode != nil {
		post.AdsenseCode = *req.AdsenseCode
	}
	if req.AdPosition != nil {
		if !validAdPosition(*req.AdPosition) {
			return nil, ErrInvalidAdPosition
		}
		post.AdPosition = *req.AdPosition
	}
	if req.AffiliateLinks != nil {
		post.AffiliateLinks = marshalAffiliateLinks(*req.AffiliateLinks)
	}

	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// applyPostStatus flips status; the published timestamp is written only the
// first time a post goes live and survives later unpublishes.
func applyPostStatus(post *Post, next PostStatus, now time.Time) {
	if next == PostPublished && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	post.Status = next
}

func (s *PostService) Delete(appID string, authorID uuid.UUID, postID uuid.UUID) error {
	post, err := s.get(appID, authorID, postID)
	if err != nil {
		return err
	}
	if post.Status == PostPublished {
		return ErrDeletePublished
	}
	return s.db.Delete(post).Error
}

func (s *PostService) Publish(appID string, authorID uuid.UUID, postID uuid.UUID) (*Post, error) {
	post, err := s.get(appID, authorID, postID)
	if err != nil {
		return nil, err
	}
	applyPostStatus(post, PostPublished, time.Now())
	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Unpublish(appID string, authorID uuid.UUID, postID uuid.UUID) (*Post, error) {
	post, err := s.get(appID, authorID, postID)
	if err != nil {
		return nil, err
	}
	applyPostStatus(post, PostDraft, time.Now())
	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Like(appID string, authorID uuid.UUID, postID uuid.UUID) (*Post, error) {
	post, err := s.get(appID, authorID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(post).UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
		return nil, err
	}
	post.Likes++
	return post, nil
}
