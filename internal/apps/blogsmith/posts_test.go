package blogsmith

import (
	"testing"
	"time"

	"github.com/gosimple/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugCandidate_SuffixesFromTwo(t *testing.T) {
	assert.Equal(t, "my-post", slugCandidate("my-post", 1))
	assert.Equal(t, "my-post-2", slugCandidate("my-post", 2))
	assert.Equal(t, "my-post-3", slugCandidate("my-post", 3))
}

func TestSlugFromTitle(t *testing.T) {
	assert.Equal(t, "10-go-tips-and-tricks", slug.Make("10 Go Tips & Tricks!"))
	assert.Equal(t, "cafe-au-lait", slug.Make("Café au Lait"))
}

func TestApplyPostStatus_FirstPublishStampsTime(t *testing.T) {
	now := time.Now()
	post := &Post{Status: PostDraft}

	applyPostStatus(post, PostPublished, now)

	assert.Equal(t, PostPublished, post.Status)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, now, *post.PublishedAt)
}

func TestApplyPostStatus_RepublishKeepsOriginalTime(t *testing.T) {
	first := time.Now().Add(-24 * time.Hour)
	post := &Post{Status: PostDraft, PublishedAt: &first}

	applyPostStatus(post, PostPublished, time.Now())

	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, first, *post.PublishedAt)
}

func TestApplyPostStatus_UnpublishKeepsTime(t *testing.T) {
	first := time.Now().Add(-time.Hour)
	post := &Post{Status: PostPublished, PublishedAt: &first}

	applyPostStatus(post, PostDraft, time.Now())

	assert.Equal(t, PostDraft, post.Status)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, first, *post.PublishedAt)
}

func TestPostStatusValid(t *testing.T) {
	for _, s := range []PostStatus{PostDraft, PostPublished, PostScheduled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, PostStatus("archived").Valid())
}

func TestValidAdPosition(t *testing.T) {
	assert.True(t, validAdPosition(AdPositionTop))
	assert.True(t, validAdPosition(AdPositionMiddle))
	assert.True(t, validAdPosition(AdPositionBottom))
	assert.False(t, validAdPosition("sidebar"))
}

func TestAffiliateLinksRoundTrip(t *testing.T) {
	links := []AffiliateLink{
		{Keyword: "coffee", URL: "https://shop.example/c"},
		{Keyword: "grinder", URL: "https://shop.example/g"},
	}
	parsed := parseAffiliateLinks(marshalAffiliateLinks(links))
	assert.Equal(t, links, parsed)
}

func TestParseAffiliateLinks_EmptyAndGarbage(t *testing.T) {
	assert.Nil(t, parseAffiliateLinks(nil))
	assert.Nil(t, parseAffiliateLinks([]byte("not json")))
	assert.Empty(t, parseAffiliateLinks([]byte("[]")))
}
