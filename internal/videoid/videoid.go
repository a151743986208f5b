package videoid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidID means the input is neither a recognized YouTube URL nor a
// bare 11-character video id.
var ErrInvalidID = errors.New("not a valid YouTube URL or video id")

// Recognition rules, tried in order. The URL rule covers watch pages, short
// links, embeds and shorts; the second rule accepts a bare id.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/v/|youtu\.be/|/embed/|/shorts/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`^([A-Za-z0-9_-]{11})$`),
}

// Extract pulls the 11-character video id out of a raw URL or id string.
func Extract(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	for _, p := range patterns {
		if m := p.FindStringSubmatch(trimmed); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
}
