package blogsmith

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	userID := uuid.New()
	appID, gotUser, err := DecodeState(encodeState("blogsmith", userID))
	require.NoError(t, err)
	assert.Equal(t, "blogsmith", appID)
	assert.Equal(t, userID, gotUser)
}

func TestDecodeState_Malformed(t *testing.T) {
	_, _, err := DecodeState("no-separator")
	assert.ErrorIs(t, err, ErrBadOAuthState)

	_, _, err = DecodeState("blogsmith:not-a-uuid")
	assert.ErrorIs(t, err, ErrBadOAuthState)
}

func TestAuthURL_ContainsOfflineConsent(t *testing.T) {
	svc := NewBlogspotService(nil, &config.Config{
		GoogleClientID:    "client-123",
		GoogleRedirectURI: "https://api.example.com/api/blogspot/callback",
	})
	userID := uuid.New()

	raw, err := svc.AuthURL("blogsmith", userID)
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "https://www.googleapis.com/auth/blogger", q.Get("scope"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "blogsmith:"+userID.String(), q.Get("state"))
}

func TestAuthURL_MissingConfiguration(t *testing.T) {
	svc := NewBlogspotService(nil, &config.Config{})
	_, err := svc.AuthURL("blogsmith", uuid.New())
	assert.ErrorIs(t, err, ErrOAuthNotConfigured)
}

func TestPostTokenForm_ParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","expires_in":3600}`))
	}))
	defer srv.Close()

	svc := NewBlogspotService(nil, &config.Config{})
	svc.tokenEndpoint = srv.URL

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	token, err := svc.postTokenForm(form)
	require.NoError(t, err)
	assert.Equal(t, "at-1", token.AccessToken)
	assert.Equal(t, "rt-1", token.RefreshToken)
	assert.Equal(t, 3600, token.ExpiresIn)
}

func TestPostTokenForm_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	svc := NewBlogspotService(nil, &config.Config{})
	svc.tokenEndpoint = srv.URL

	_, err := svc.postTokenForm(url.Values{})
	assert.Error(t, err)
}

func TestFetchPrimaryBlog_PicksFirstBlog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		assert.Equal(t, "/users/self/blogs", r.URL.Path)
		_, _ = w.Write([]byte(`{"items":[{"id":"b1","url":"https://one.blogspot.com"},{"id":"b2","url":"https://two.blogspot.com"}]}`))
	}))
	defer srv.Close()

	svc := NewBlogspotService(nil, &config.Config{})
	svc.apiBase = srv.URL

	id, blogURL, err := svc.fetchPrimaryBlog("at-1")
	require.NoError(t, err)
	assert.Equal(t, "b1", id)
	assert.Equal(t, "https://one.blogspot.com", blogURL)
}

func TestFetchPrimaryBlog_NoBlogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	svc := NewBlogspotService(nil, &config.Config{})
	svc.apiBase = srv.URL

	_, _, err := svc.fetchPrimaryBlog("at-1")
	assert.ErrorIs(t, err, ErrNoBlogs)
}

func TestEnsureFreshToken_ValidTokenIsNoop(t *testing.T) {
	svc := NewBlogspotService(nil, &config.Config{})
	conn := &BlogspotConnection{
		AccessToken: "still-good",
		TokenExpiry: time.Now().Add(time.Hour),
	}
	require.NoError(t, svc.ensureFreshToken(conn))
	assert.Equal(t, "still-good", conn.AccessToken)
}

func TestEnsureFreshToken_NoRefreshTokenRequiresReconnect(t *testing.T) {
	svc := NewBlogspotService(nil, &config.Config{})
	conn := &BlogspotConnection{
		AccessToken: "expired",
		TokenExpiry: time.Now().Add(-time.Hour),
	}
	assert.ErrorIs(t, svc.ensureFreshToken(conn), ErrReconnectRequired)
}

func TestEnsureFreshToken_FailedRefreshRequiresReconnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	svc := NewBlogspotService(nil, &config.Config{})
	svc.tokenEndpoint = srv.URL
	conn := &BlogspotConnection{
		RefreshToken: "rt-dead",
		TokenExpiry:  time.Now().Add(-time.Hour),
	}
	assert.ErrorIs(t, svc.ensureFreshToken(conn), ErrReconnectRequired)
}
