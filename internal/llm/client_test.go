package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"youtube-digest/internal/types"
)

const sampleSummaryJSON = `{
  "one_liner": "제안을 바꾸면 매출이 바뀐다",
  "tags": ["비즈니스", "마케팅"],
  "difficulty": "중급",
  "keywords": ["제안", "가치"],
  "key_points": [
    {"title": "제안이 전부다", "description": "고객이 거절할 수 없는 제안을 만들어라", "example": "보증 추가"}
  ],
  "quotes": [
    {"original": "Make them an offer so good they feel stupid saying no.", "korean": "거절하면 바보같이 느껴질 만큼 좋은 제안을 하세요."}
  ],
  "action_items": ["제안 재설계하기"],
  "related_topics": ["가격 전략"]
}`

// newTestClient points a client at a fake Messages API endpoint.
func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient("test-key", "test-model")
	c.baseURL = srv.URL
	c.http = srv.Client()
	return c, srv
}

func messagesOK(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := messagesResponse{Content: []contentBlock{{Type: "text", Text: text}}}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestTranslateReturnsTextVerbatim(t *testing.T) {
	var gotReq messagesRequest
	var gotAPIKey, gotVersion string

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		json.NewDecoder(r.Body).Decode(&gotReq)
		messagesOK("번역된 텍스트")(w, r)
	})
	defer srv.Close()

	got, err := c.Translate(context.Background(), "Hello world")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "번역된 텍스트" {
		t.Fatalf("translation = %q", got)
	}

	if gotAPIKey != "test-key" {
		t.Fatalf("x-api-key = %q", gotAPIKey)
	}
	if gotVersion != apiVersion {
		t.Fatalf("anthropic-version = %q", gotVersion)
	}
	if gotReq.Model != "test-model" || gotReq.MaxTokens != translateMaxTokens {
		t.Fatalf("request model=%q maxTokens=%d", gotReq.Model, gotReq.MaxTokens)
	}
	if gotReq.System != translateSystemPrompt {
		t.Fatal("translate call must carry the translation system prompt")
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Fatalf("messages = %+v", gotReq.Messages)
	}
}

func TestSummarizeParsesFencedResponse(t *testing.T) {
	c, srv := newTestClient(messagesOK("```json\n" + sampleSummaryJSON + "\n```"))
	defer srv.Close()

	summary, err := c.Summarize(context.Background(), "한글 본문")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.OneLiner != "제안을 바꾸면 매출이 바뀐다" {
		t.Fatalf("one_liner = %q", summary.OneLiner)
	}
	if summary.Difficulty != types.DifficultyIntermediate {
		t.Fatalf("difficulty = %q", summary.Difficulty)
	}
	if len(summary.KeyPoints) != 1 || summary.KeyPoints[0].Example != "보증 추가" {
		t.Fatalf("key_points = %+v", summary.KeyPoints)
	}
}

// TestParseSummaryFenceTransparent checks fenced and bare payloads decode to
// the identical record.
func TestParseSummaryFenceTransparent(t *testing.T) {
	bare, err := ParseSummary(sampleSummaryJSON)
	if err != nil {
		t.Fatalf("bare: %v", err)
	}

	for _, wrapped := range []string{
		"```json\n" + sampleSummaryJSON + "\n```",
		"```\n" + sampleSummaryJSON + "\n```",
		"  ```json\n" + sampleSummaryJSON + "\n```  ",
	} {
		fenced, err := ParseSummary(wrapped)
		if err != nil {
			t.Fatalf("fenced: %v", err)
		}
		if !reflect.DeepEqual(bare, fenced) {
			t.Fatalf("fenced parse differs from bare parse:\n%+v\n%+v", fenced, bare)
		}
	}
}

func TestParseSummaryMissingFieldsDefault(t *testing.T) {
	summary, err := ParseSummary(`{"one_liner": "요약만 있음"}`)
	if err != nil {
		t.Fatalf("ParseSummary: %v", err)
	}
	if summary.OneLiner != "요약만 있음" {
		t.Fatalf("one_liner = %q", summary.OneLiner)
	}
	if len(summary.Tags) != 0 || len(summary.KeyPoints) != 0 {
		t.Fatalf("absent list fields should stay empty: %+v", summary)
	}
}

func TestParseSummaryRejectsMalformedJSON(t *testing.T) {
	for _, raw := range []string{
		"이건 JSON이 아닙니다",
		"```json\n{broken\n```",
		`["array", "not", "object"]`,
	} {
		if _, err := ParseSummary(raw); !errors.Is(err, ErrBadSummary) {
			t.Fatalf("ParseSummary(%q) error = %v, want ErrBadSummary", raw, err)
		}
	}
}

func TestServiceErrorPropagates(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"type":"error","error":{"type":"rate_limit_error","message":"rate limited"}}`)
	})
	defer srv.Close()

	_, err := c.Translate(context.Background(), "text")
	if !errors.Is(err, ErrService) {
		t.Fatalf("error = %v, want ErrService", err)
	}
}
