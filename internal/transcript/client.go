package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable means no caption track could be retrieved for the video,
// neither with the preferred languages nor with the unconstrained retry.
var ErrUnavailable = errors.New("transcript unavailable")

// DefaultLanguages is the caption language preference order used when the
// configuration does not specify one.
var DefaultLanguages = []string{"en", "en-US", "ko"}

// Fragment is one timed caption unit as served by YouTube.
type Fragment struct {
	Text     string
	Start    float64
	Duration float64
}

// fetcher retrieves raw caption fragments, optionally constrained to a
// language preference list. Abstracted so tests can fake the network.
type fetcher interface {
	fetch(ctx context.Context, videoID string, languages []string) ([]Fragment, error)
}

// Client fetches caption transcripts for YouTube videos.
type Client struct {
	languages []string
	source    fetcher
}

// NewClient creates a transcript client with the given caption language
// preference order. An empty list falls back to DefaultLanguages.
func NewClient(languages []string) *Client {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Client{
		languages: languages,
		source: &watchPageFetcher{
			http: &http.Client{Timeout: 2 * time.Minute},
		},
	}
}

// Transcript fetches the caption track for videoID and joins its fragments
// into one space-separated blob, preserving fragment order. The preferred
// language list is tried first; on any failure a single second attempt runs
// with no language constraint. A second failure surfaces ErrUnavailable.
func (c *Client) Transcript(ctx context.Context, videoID string) (string, error) {
	fragments, err := c.source.fetch(ctx, videoID, c.languages)
	if err != nil {
		fragments, err = c.source.fetch(ctx, videoID, nil)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " "), nil
}
