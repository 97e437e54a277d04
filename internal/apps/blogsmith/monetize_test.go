package blogsmith

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const adCode = `<ins class="adsbygoogle"></ins>`

func TestInsertAdSnippet_Top(t *testing.T) {
	out := insertAdSnippet("<p>one</p>", adCode, AdPositionTop)
	assert.Equal(t, adCode+"\n<p>one</p>", out)
}

func TestInsertAdSnippet_Bottom(t *testing.T) {
	out := insertAdSnippet("<p>one</p>", adCode, AdPositionBottom)
	assert.Equal(t, "<p>one</p>\n"+adCode, out)
}

func TestInsertAdSnippet_MiddleSplitsAtParagraphBoundary(t *testing.T) {
	content := "<p>one</p><p>two</p><p>three</p><p>four</p>"
	out := insertAdSnippet(content, adCode, AdPositionMiddle)
	assert.Equal(t, "<p>one</p><p>two</p>\n"+adCode+"\n<p>three</p><p>four</p>", out)
}

func TestInsertAdSnippet_MiddleOddParagraphCount(t *testing.T) {
	content := "<p>one</p><p>two</p><p>three</p>"
	out := insertAdSnippet(content, adCode, AdPositionMiddle)
	assert.Equal(t, "<p>one</p><p>two</p>\n"+adCode+"\n<p>three</p>", out)
}

func TestInsertAdSnippet_MiddleFallsBackToBottom(t *testing.T) {
	// A single paragraph has no middle to split at
	out := insertAdSnippet("<p>only</p>", adCode, AdPositionMiddle)
	assert.Equal(t, "<p>only</p>\n"+adCode, out)
}

func TestInsertAdSnippet_EmptySnippetIsNoop(t *testing.T) {
	assert.Equal(t, "<p>one</p>", insertAdSnippet("<p>one</p>", "", AdPositionTop))
}

func TestApplyAffiliateLinks_WholeWordsOnly(t *testing.T) {
	links := []AffiliateLink{{Keyword: "coffee", URL: "https://shop.example/coffee"}}
	out := applyAffiliateLinks("<p>I love coffee but not decaffeinated drinks</p>", links)

	assert.Contains(t, out, `<a href="https://shop.example/coffee" target="_blank" rel="nofollow sponsored">coffee</a>`)
	assert.Contains(t, out, "decaffeinated")
	assert.NotContains(t, out, `>decaffeinated</a>`)
}

func TestApplyAffiliateLinks_CaseInsensitiveKeepsOriginalCasing(t *testing.T) {
	links := []AffiliateLink{{Keyword: "coffee", URL: "https://shop.example/c"}}
	out := applyAffiliateLinks("<p>Coffee is great. COFFEE even better.</p>", links)

	assert.Contains(t, out, `>Coffee</a>`)
	assert.Contains(t, out, `>COFFEE</a>`)
}

func TestApplyAffiliateLinks_SkipsIncompleteEntries(t *testing.T) {
	content := "<p>coffee and tea</p>"
	out := applyAffiliateLinks(content, []AffiliateLink{
		{Keyword: "coffee", URL: ""},
		{Keyword: "", URL: "https://x"},
	})
	assert.Equal(t, content, out)
}

func TestComposePublishHTML_AdsThenAffiliates(t *testing.T) {
	post := &Post{
		Content:        "<p>Best coffee guide</p><p>Brew daily</p>",
		AdsenseEnabled: true,
		AdsenseCode:    adCode,
		AdPosition:     AdPositionBottom,
		AffiliateLinks: marshalAffiliateLinks([]AffiliateLink{{Keyword: "coffee", URL: "https://shop.example/c"}}),
	}

	out := composePublishHTML(post)
	assert.Contains(t, out, adCode)
	assert.Contains(t, out, `rel="nofollow sponsored">coffee</a>`)
}

func TestComposePublishHTML_DisabledAdsOmitted(t *testing.T) {
	post := &Post{
		Content:     "<p>plain</p>",
		AdsenseCode: adCode,
	}
	assert.Equal(t, "<p>plain</p>", composePublishHTML(post))
}
