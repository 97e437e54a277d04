package blogsmith

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/creatorsuite/suite-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBudget(t *testing.T) {
	assert.Equal(t, 512, tokenBudget("short"))
	assert.Equal(t, 1024, tokenBudget("medium"))
	assert.Equal(t, 2048, tokenBudget("long"))
	assert.Equal(t, 1024, tokenBudget(""))
	assert.Equal(t, 1024, tokenBudget("gigantic"))
}

func TestEstimateCost(t *testing.T) {
	assert.InDelta(t, 0.00075, estimateCost(1000, 1000), 1e-9)
	assert.Zero(t, estimateCost(0, 0))
}

func TestSplitLines_TrimsQuotesAndBlanks(t *testing.T) {
	items := splitLines("\"First Title\"\n\n  Second Title  \n\"Third\"\n")
	assert.Equal(t, []string{"First Title", "Second Title", "Third"}, items)
}

func TestSplitCommaList_LowercasesAndTrims(t *testing.T) {
	items := splitCommaList("Go, Backend , #devops, Testing.")
	assert.Equal(t, []string{"go", "backend", "devops", "testing"}, items)
}

func TestClampMeta_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "A short description", clampMeta(`"A short description"`))
}

func TestClampMeta_CutsAtWordBoundary(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "word "
	}
	out := clampMeta(long)
	assert.LessOrEqual(t, len(out), 160)
	assert.NotEqual(t, byte(' '), out[len(out)-1])
	assert.Equal(t, "word", out[len(out)-4:])
}

func TestClampMeta_MultibyteTextStaysValidUTF8(t *testing.T) {
	long := strings.Repeat("日", 60) // 180 bytes, no spaces to rescue the cut
	out := clampMeta(long)
	assert.True(t, utf8.ValidString(out))
	assert.LessOrEqual(t, len(out), 160)
	assert.Equal(t, strings.Repeat("日", 53), out)
}

func TestTruncate_BacksOffToRuneBoundary(t *testing.T) {
	assert.Equal(t, "日", truncate("日本", 4))
	assert.Equal(t, "日本", truncate("日本", 6))
	assert.Equal(t, "abc", truncate("abcdef", 3))
}

func aiServiceFor(url string) *AIService {
	return NewAIService(&config.Config{
		OpenAIAPIKey: "test-key",
		OpenAIAPIURL: url,
		OpenAIModel:  "gpt-4o-mini",
		AITimeout:    5 * time.Second,
	})
}

func TestGenerateContent_Success(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "<h2>Hello</h2><p>World</p>"}},
			},
			"usage": map[string]int{
				"prompt_tokens":     100,
				"completion_tokens": 200,
				"total_tokens":      300,
			},
		})
	}))
	defer srv.Close()

	result, err := aiServiceFor(srv.URL).GenerateContent(GenerateContentRequest{
		Prompt: "Write about Go",
		Length: "short",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 512, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)

	assert.Equal(t, "<h2>Hello</h2><p>World</p>", result.Text)
	assert.Equal(t, 300, result.TotalTokens)
	assert.InDelta(t, estimateCost(100, 200), result.Cost, 1e-12)
}

func TestGenerateContent_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := aiServiceFor(srv.URL).GenerateContent(GenerateContentRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrProviderRateLimit)
}

func TestGenerateContent_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := aiServiceFor(srv.URL).GenerateContent(GenerateContentRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrProviderFailed)
}

func TestGenerateContent_EmptyPrompt(t *testing.T) {
	_, err := aiServiceFor("http://unused").GenerateContent(GenerateContentRequest{})
	assert.ErrorIs(t, err, ErrPromptRequired)
}

func TestGenerateContent_MissingAPIKey(t *testing.T) {
	svc := NewAIService(&config.Config{})
	_, err := svc.GenerateContent(GenerateContentRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrAINotConfigured)
}

func TestGenerateTitles_SplitsIntoItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Title One\nTitle Two\nTitle Three"}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
		})
	}))
	defer srv.Close()

	result, err := aiServiceFor(srv.URL).GenerateTitles(GenerateTitlesRequest{Topic: "go testing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Title One", "Title Two", "Title Three"}, result.Items)
	assert.Empty(t, result.Text)
}

func TestGenerateTags_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	_, err := aiServiceFor(srv.URL).GenerateTags(GenerateFromContentRequest{Content: "some post"})
	assert.ErrorIs(t, err, ErrEmptyAIResponse)
}
