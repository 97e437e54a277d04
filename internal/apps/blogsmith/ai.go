package blogsmith

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/creatorsuite/suite-backend/internal/config"
)

var (
	ErrPromptRequired    = errors.New("prompt is required")
	ErrAINotConfigured   = errors.New("AI generation is not configured")
	ErrProviderRateLimit = errors.New("AI provider rate limit reached, try again later")
	ErrProviderFailed    = errors.New("AI provider request failed")
	ErrEmptyAIResponse   = errors.New("AI provider returned an empty response")
)

// Per-1K-token pricing used for the cost estimate (gpt-4o-mini tier).
const (
	inputTokenRate  = 0.00015
	outputTokenRate = 0.0006
)

// AIService proxies prompt templating to the OpenAI chat-completions API.
// It is stateless: nothing is persisted here, callers attach provenance to
// posts themselves.
type AIService struct {
	cfg    *config.Config
	client *http.Client
}

func NewAIService(cfg *config.Config) *AIService {
	timeout := cfg.AITimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &AIService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// tokenBudget maps the requested length option to a max_tokens budget.
func tokenBudget(length string) int {
	switch length {
	case "short":
		return 512
	case "long":
		return 2048
	default:
		return 1024
	}
}

// estimateCost derives a dollar estimate from token usage.
func estimateCost(promptTokens, completionTokens int) float64 {
	return float64(promptTokens)/1000*inputTokenRate +
		float64(completionTokens)/1000*outputTokenRate
}

func (s *AIService) GenerateContent(req GenerateContentRequest) (*GenerationResult, error) {
	if req.Prompt == "" {
		return nil, ErrPromptRequired
	}

	style := req.Style
	if style == "" {
		style = "informative"
	}
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	system := fmt.Sprintf(
		"You are a professional blog writer. Write %s articles in a %s tone. "+
			"Respond with clean HTML using <h2>, <p>, <ul> and <li> tags only. "+
			"No markdown, no <html> or <body> wrappers.", style, tone)

	return s.complete(system, req.Prompt, tokenBudget(req.Length))
}

func (s *AIService) GenerateTitles(req GenerateTitlesRequest) (*GenerationResult, error) {
	if req.Topic == "" {
		return nil, ErrPromptRequired
	}
	count := req.Count
	if count < 1 || count > 10 {
		count = 5
	}

	system := "You are a blog title expert. Respond with one title per line, " +
		"no numbering, no quotes, no commentary."
	user := fmt.Sprintf("Suggest %d catchy blog post titles about: %s", count, req.Topic)

	result, err := s.complete(system, user, 256)
	if err != nil {
		return nil, err
	}
	result.Items = splitLines(result.Text)
	result.Text = ""
	return result, nil
}

func (s *AIService) GenerateTags(req GenerateFromContentRequest) (*GenerationResult, error) {
	if req.Content == "" {
		return nil, ErrPromptRequired
	}

	system := "You are an SEO assistant. Respond with a single comma-separated " +
		"list of lowercase tags, nothing else."
	user := "Suggest 5-8 relevant tags for this blog post:\n\n" + truncate(req.Content, 4000)

	result, err := s.complete(system, user, 128)
	if err != nil {
		return nil, err
	}
	result.Items = splitCommaList(result.Text)
	result.Text = ""
	return result, nil
}

func (s *AIService) GenerateMeta(req GenerateFromContentRequest) (*GenerationResult, error) {
	if req.Content == "" {
		return nil, ErrPromptRequired
	}

	system := "You are an SEO assistant. Respond with a single meta description " +
		"of at most 160 characters, no quotes."
	user := "Write a meta description for this blog post:\n\n" + truncate(req.Content, 4000)

	result, err := s.complete(system, user, 128)
	if err != nil {
		return nil, err
	}
	result.Text = clampMeta(result.Text)
	return result, nil
}

// --- OpenAI wire types ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (s *AIService) complete(system, user string, maxTokens int) (*GenerationResult, error) {
	if s.cfg.OpenAIAPIKey == "" {
		return nil, ErrAINotConfigured
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: s.cfg.OpenAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, s.cfg.OpenAIAPIURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.OpenAIAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrProviderRateLimit
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderFailed, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	if len(parsed.Choices) == 0 {
		return nil, ErrEmptyAIResponse
	}

	return &GenerationResult{
		Text:             strings.TrimSpace(parsed.Choices[0].Message.Content),
		Model:            s.cfg.OpenAIModel,
		PromptTokens:     parsed.Usage.PromptTokens,
		CompletionTokens: parsed.Usage.CompletionTokens,
		TotalTokens:      parsed.Usage.TotalTokens,
		Cost:             estimateCost(parsed.Usage.PromptTokens, parsed.Usage.CompletionTokens),
	}, nil
}

// --- post-processing helpers ---

func splitLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), `"`))
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

func splitCommaList(text string) []string {
	var items []string
	for _, part := range strings.Split(text, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		part = strings.Trim(part, ".#\"")
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

func clampMeta(text string) string {
	text = strings.TrimSpace(strings.Trim(strings.TrimSpace(text), `"`))
	if len(text) <= 160 {
		return text
	}
	cut := truncate(text, 160)
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}

// truncate cuts at most max bytes, backing off to a rune boundary so
// multibyte text never ends mid-rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}
