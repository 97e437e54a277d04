package blogsmith

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostScheduled PostStatus = "scheduled"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostScheduled:
		return true
	}
	return false
}

// Ad snippet positions inside composed HTML.
const (
	AdPositionTop    = "top"
	AdPositionMiddle = "middle"
	AdPositionBottom = "bottom"
)

type Post struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID    string    `gorm:"size:50;not null;index;uniqueIndex:idx_posts_app_author_slug,priority:1" json:"-"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_posts_app_author_slug,priority:2" json:"author_id"`

	Title   string         `gorm:"size:255;not null" json:"title"`
	Content string         `gorm:"type:text" json:"content"`
	Tags    pq.StringArray `gorm:"type:text[]" json:"tags"`
	Status  PostStatus     `gorm:"size:20;default:'draft';index" json:"status"`

	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	// PublishedAt is written exactly once, on the first transition to published.
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// SEO
	SeoTitle       string `gorm:"size:255" json:"seo_title"`
	SeoDescription string `gorm:"size:500" json:"seo_description"`
	Slug           string `gorm:"size:255;not null;uniqueIndex:idx_posts_app_author_slug,priority:3" json:"slug"`

	// Blogspot sync
	BlogspotPostID string     `gorm:"size:100" json:"blogspot_post_id,omitempty"`
	BlogspotURL    string     `gorm:"type:text" json:"blogspot_url,omitempty"`
	LastSyncedAt   *time.Time `json:"last_synced_at,omitempty"`

	// AI provenance
	AIPrompt string  `gorm:"type:text" json:"ai_prompt,omitempty"`
	AIModel  string  `gorm:"size:50" json:"ai_model,omitempty"`
	AITokens int     `json:"ai_tokens,omitempty"`
	AICost   float64 `json:"ai_cost,omitempty"`

	// Monetization
	AdsenseEnabled bool           `gorm:"default:false" json:"adsense_enabled"`
	AdsenseCode    string         `gorm:"type:text" json:"adsense_code,omitempty"`
	AdPosition     string         `gorm:"size:10;default:'bottom'" json:"ad_position"`
	AffiliateLinks datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"affiliate_links"`

	// Analytics counters
	Views        int `gorm:"default:0" json:"views"`
	Likes        int `gorm:"default:0" json:"likes"`
	Shares       int `gorm:"default:0" json:"shares"`
	CommentCount int `gorm:"default:0" json:"comment_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AffiliateLink is one entry of Post.AffiliateLinks.
type AffiliateLink struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
}

// BlogspotConnection stores per-user OAuth credentials for the Blogger API.
// A missing row means disconnected; an expired TokenExpiry means the next
// call must refresh first.
type BlogspotConnection struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID        string    `gorm:"size:50;not null;uniqueIndex:idx_blogspot_app_user" json:"-"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blogspot_app_user" json:"user_id"`
	AccessToken  string    `gorm:"type:text" json:"-"`
	RefreshToken string    `gorm:"type:text" json:"-"`
	TokenExpiry  time.Time `json:"token_expiry"`
	BlogID       string    `gorm:"size:100" json:"blog_id"`
	BlogURL      string    `gorm:"type:text" json:"blog_url"`
	ConnectedAt  time.Time `json:"connected_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// --- DTOs ---

type CreatePostRequest struct {
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	Tags           []string        `json:"tags"`
	Status         string          `json:"status"`
	ScheduledFor   *time.Time      `json:"scheduled_for"`
	SeoTitle       string          `json:"seo_title"`
	SeoDescription string          `json:"seo_description"`
	Slug           string          `json:"slug"`
	AIPrompt       string          `json:"ai_prompt"`
	AIModel        string          `json:"ai_model"`
	AITokens       int             `json:"ai_tokens"`
	AICost         float64         `json:"ai_cost"`
	AdsenseEnabled *bool           `json:"adsense_enabled"`
	AdsenseCode    string          `json:"adsense_code"`
	AdPosition     string          `json:"ad_position"`
	AffiliateLinks []AffiliateLink `json:"affiliate_links"`
}

type UpdatePostRequest struct {
	Title          *string          `json:"title"`
	Content        *string          `json:"content"`
	Tags           *[]string        `json:"tags"`
	Status         *string          `json:"status"`
	ScheduledFor   *time.Time       `json:"scheduled_for"`
	SeoTitle       *string          `json:"seo_title"`
	SeoDescription *string          `json:"seo_description"`
	Slug           *string          `json:"slug"`
	AdsenseEnabled *bool            `json:"adsense_enabled"`
	AdsenseCode    *string          `json:"adsense_code"`
	AdPosition     *string          `json:"ad_position"`
	AffiliateLinks *[]AffiliateLink `json:"affiliate_links"`
}

type PostFilter struct {
	Status PostStatus
	Tag    string
	Search string
	Page   int
	Limit  int
}

type GenerateContentRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
	Tone   string `json:"tone"`
	Length string `json:"length"`
}

type GenerateTitlesRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

type GenerateFromContentRequest struct {
	Content string `json:"content"`
}

type GenerationResult struct {
	Text             string   `json:"text,omitempty"`
	Items            []string `json:"items,omitempty"`
	Model            string   `json:"model"`
	PromptTokens     int      `json:"prompt_tokens"`
	CompletionTokens int      `json:"completion_tokens"`
	TotalTokens      int      `json:"total_tokens"`
	Cost             float64  `json:"cost"`
}

type ConnectionStatus struct {
	Connected   bool       `json:"connected"`
	BlogID      string     `json:"blog_id,omitempty"`
	BlogURL     string     `json:"blog_url,omitempty"`
	TokenExpiry *time.Time `json:"token_expiry,omitempty"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
}

type PublishRequest struct {
	PostID uuid.UUID `json:"post_id"`
}
