package blogsmith

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/creatorsuite/suite-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotConnected       = errors.New("blogspot account is not connected")
	ErrReconnectRequired  = errors.New("blogspot token refresh failed, please reconnect")
	ErrOAuthNotConfigured = errors.New("blogspot publishing is not configured")
	ErrNoBlogs            = errors.New("no blogs found on the connected account")
	ErrExchangeFailed     = errors.New("authorization code exchange failed")
	ErrPublishFailed      = errors.New("blogger publish request failed")
	ErrBadOAuthState      = errors.New("invalid oauth state")
)

// expirySlack refreshes tokens slightly before their actual deadline.
const expirySlack = time.Minute

// BlogspotService drives the per-user connection state machine:
// disconnected -> connected (refreshing in place when the token expires)
// -> disconnected. Endpoints are fields so tests can point them at a stub.
type BlogspotService struct {
	db     *gorm.DB
	cfg    *config.Config
	client *http.Client

	authEndpoint  string
	tokenEndpoint string
	apiBase       string
}

func NewBlogspotService(db *gorm.DB, cfg *config.Config) *BlogspotService {
	return &BlogspotService{
		db:            db,
		cfg:           cfg,
		client:        &http.Client{Timeout: 30 * time.Second},
		authEndpoint:  "https://accounts.google.com/o/oauth2/v2/auth",
		tokenEndpoint: "https://oauth2.googleapis.com/token",
		apiBase:       "https://www.googleapis.com/blogger/v3",
	}
}

// AuthURL builds the provider consent URL. The state carries app and user so
// the public callback can route the exchange.
func (s *BlogspotService) AuthURL(appID string, userID uuid.UUID) (string, error) {
	if s.cfg.GoogleClientID == "" || s.cfg.GoogleRedirectURI == "" {
		return "", ErrOAuthNotConfigured
	}

	params := url.Values{}
	params.Set("client_id", s.cfg.GoogleClientID)
	params.Set("redirect_uri", s.cfg.GoogleRedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "https://www.googleapis.com/auth/blogger")
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")
	params.Set("state", encodeState(appID, userID))

	return s.authEndpoint + "?" + params.Encode(), nil
}

func encodeState(appID string, userID uuid.UUID) string {
	return appID + ":" + userID.String()
}

// DecodeState splits a callback state back into app and user.
func DecodeState(state string) (string, uuid.UUID, error) {
	parts := strings.SplitN(state, ":", 2)
	if len(parts) != 2 {
		return "", uuid.Nil, ErrBadOAuthState
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return "", uuid.Nil, ErrBadOAuthState
	}
	return parts[0], userID, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// HandleCallback exchanges the authorization code, discovers the user's
// primary blog, and stores the connection.
func (s *BlogspotService) HandleCallback(appID string, userID uuid.UUID, code string) (*BlogspotConnection, error) {
	if code == "" {
		return nil, ErrExchangeFailed
	}

	form := url.Values{}
	form.Set("client_id", s.cfg.GoogleClientID)
	form.Set("client_secret", s.cfg.GoogleClientSecret)
	form.Set("redirect_uri", s.cfg.GoogleRedirectURI)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)

	token, err := s.postTokenForm(form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	blogID, blogURL, err := s.fetchPrimaryBlog(token.AccessToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	conn := BlogspotConnection{}
	err = s.db.Scopes(tenant.ForTenant(appID)).Where("user_id = ?", userID).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conn = BlogspotConnection{
			ID:          uuid.New(),
			AppID:       appID,
			UserID:      userID,
			ConnectedAt: now,
		}
	} else if err != nil {
		return nil, err
	}

	conn.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		conn.RefreshToken = token.RefreshToken
	}
	conn.TokenExpiry = now.Add(time.Duration(token.ExpiresIn) * time.Second)
	conn.BlogID = blogID
	conn.BlogURL = blogURL

	if err := s.db.Save(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

func (s *BlogspotService) postTokenForm(form url.Values) (*tokenResponse, error) {
	resp, err := s.client.PostForm(s.tokenEndpoint, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("token endpoint returned no access token")
	}
	return &token, nil
}

type blogListResponse struct {
	Items []struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"items"`
}

func (s *BlogspotService) fetchPrimaryBlog(accessToken string) (string, string, error) {
	req, err := http.NewRequest(http.MethodGet, s.apiBase+"/users/self/blogs", nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("blog list returned %d: %s", resp.StatusCode, string(body))
	}

	var list blogListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return "", "", err
	}
	if len(list.Items) == 0 {
		return "", "", ErrNoBlogs
	}
	return list.Items[0].ID, list.Items[0].URL, nil
}

func (s *BlogspotService) connection(appID string, userID uuid.UUID) (*BlogspotConnection, error) {
	var conn BlogspotConnection
	err := s.db.Scopes(tenant.ForTenant(appID)).Where("user_id = ?", userID).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (s *BlogspotService) Status(appID string, userID uuid.UUID) (*ConnectionStatus, error) {
	conn, err := s.connection(appID, userID)
	if errors.Is(err, ErrNotConnected) {
		return &ConnectionStatus{Connected: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ConnectionStatus{
		Connected:   true,
		BlogID:      conn.BlogID,
		BlogURL:     conn.BlogURL,
		TokenExpiry: &conn.TokenExpiry,
		ConnectedAt: &conn.ConnectedAt,
	}, nil
}

// ensureFreshToken refreshes an expired access token in place. Failure to
// refresh means the stored grant is dead and the user must reconnect.
func (s *BlogspotService) ensureFreshToken(conn *BlogspotConnection) error {
	if time.Now().Add(expirySlack).Before(conn.TokenExpiry) {
		return nil
	}
	if conn.RefreshToken == "" {
		return ErrReconnectRequired
	}

	form := url.Values{}
	form.Set("client_id", s.cfg.GoogleClientID)
	form.Set("client_secret", s.cfg.GoogleClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", conn.RefreshToken)

	token, err := s.postTokenForm(form)
	if err != nil {
		slog.Warn("blogspot token refresh failed", "error", err, "user_id", conn.UserID.String())
		return ErrReconnectRequired
	}

	conn.AccessToken = token.AccessToken
	conn.TokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return s.db.Save(conn).Error
}

type bloggerPostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels,omitempty"`
}

type bloggerPostResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Published string `json:"published"`
}

// Publish composes the monetized HTML and submits the post to Blogger, then
// records the provider ids and flips the local post to published. The two
// writes are sequential, not transactional: a crash between them leaves the
// provider post live with stale local state.
func (s *BlogspotService) Publish(appID string, userID uuid.UUID, postID uuid.UUID, posts *PostService) (*Post, error) {
	post, err := posts.get(appID, userID, postID)
	if err != nil {
		return nil, err
	}

	conn, err := s.connection(appID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFreshToken(conn); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(bloggerPostRequest{
		Title:   post.Title,
		Content: composePublishHTML(post),
		Labels:  post.Tags,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("%s/blogs/%s/posts/", s.apiBase, conn.BlogID),
		strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+conn.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrPublishFailed, resp.StatusCode, string(body))
	}

	var created bloggerPostResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	now := time.Now()
	post.BlogspotPostID = created.ID
	post.BlogspotURL = created.URL
	post.LastSyncedAt = &now
	applyPostStatus(post, PostPublished, now)

	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Disconnect drops the stored credentials outright.
func (s *BlogspotService) Disconnect(appID string, userID uuid.UUID) error {
	result := s.db.Scopes(tenant.ForTenant(appID)).
		Where("user_id = ?", userID).
		Delete(&BlogspotConnection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotConnected
	}
	return nil
}
