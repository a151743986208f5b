package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"youtube-digest/internal/types"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"

	// DefaultModel is used when the configuration does not name one.
	DefaultModel = "claude-sonnet-4-20250514"

	// Translation needs headroom for full-length output; the summary is a
	// bounded JSON document.
	translateMaxTokens = 8192
	summaryMaxTokens   = 4096
)

var (
	// ErrService means the Messages API call itself failed.
	ErrService = errors.New("claude api call failed")

	// ErrBadSummary means the summarization response was not the promised
	// JSON shape.
	ErrBadSummary = errors.New("summary response is not valid JSON")
)

// Client wraps the Anthropic Messages API with the two fixed instruction
// templates this service uses. No retries; any service error propagates.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewClient creates a Messages API client. An empty model selects
// DefaultModel.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
}

// Translate renders the source transcript into Korean. The model output is
// returned verbatim.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, translateSystemPrompt, translateUserPrefix+text, translateMaxTokens)
}

// Summarize structures the Korean transcript into the summary contract.
// An optional markdown code fence around the response is stripped before
// parsing; anything else that is not valid JSON fails with ErrBadSummary.
func (c *Client) Summarize(ctx context.Context, koreanText string) (types.StructuredSummary, error) {
	raw, err := c.complete(ctx, summarizeSystemPrompt, summarizeUserPrefix+koreanText, summaryMaxTokens)
	if err != nil {
		return types.StructuredSummary{}, err
	}
	return ParseSummary(raw)
}

// ParseSummary decodes a model response into the structured summary shape.
// Missing fields stay at their zero values; the structure is a best-effort
// contract from the model, validated once here.
func ParseSummary(raw string) (types.StructuredSummary, error) {
	var summary types.StructuredSummary
	cleaned := stripFence(strings.TrimSpace(raw))
	if err := json.Unmarshal([]byte(cleaned), &summary); err != nil {
		return types.StructuredSummary{}, fmt.Errorf("%w: %v", ErrBadSummary, err)
	}
	return summary, nil
}

// stripFence removes a surrounding markdown code fence, with or without a
// json language tag.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// complete performs one Messages API call and returns the first text block.
func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	payload, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}

	var parsed messagesResponse
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
			return "", fmt.Errorf("%w: %s (%s)", ErrService, parsed.Error.Message, parsed.Error.Type)
		}
		return "", fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("%w: empty response content", ErrService)
	}
	return parsed.Content[0].Text, nil
}
