package types

import "time"

// Difficulty values the summarizer is instructed to emit.
const (
	DifficultyBeginner     = "입문"
	DifficultyIntermediate = "중급"
	DifficultyAdvanced     = "고급"
)

// KeyPoint is one core takeaway from the summarized content.
type KeyPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

// Quote pairs an original-language sentence with its Korean translation.
type Quote struct {
	Original string `json:"original"`
	Korean   string `json:"korean"`
}

// StructuredSummary is the JSON contract the summarization prompt demands.
// Every list field may legitimately be empty; the model fills what it can.
type StructuredSummary struct {
	OneLiner      string     `json:"one_liner"`
	Tags          []string   `json:"tags"`
	Difficulty    string     `json:"difficulty"`
	Keywords      []string   `json:"keywords"`
	KeyPoints     []KeyPoint `json:"key_points"`
	Quotes        []Quote    `json:"quotes"`
	ActionItems   []string   `json:"action_items"`
	RelatedTopics []string   `json:"related_topics"`
}

// Result is the terminal artifact of one pipeline run. It is immutable once
// assembled and is persisted keyed by VideoID, one document per video.
type Result struct {
	VideoID            string            `json:"video_id"`
	VideoURL           string            `json:"video_url"`
	OriginalTranscript string            `json:"original_transcript"`
	KoreanTranscript   string            `json:"korean_transcript"`
	Summary            StructuredSummary `json:"summary"`
	ProcessedAt        time.Time         `json:"processed_at"`
}

// WatchURL returns the canonical watch page URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
