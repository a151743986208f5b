package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	youtubeBaseURL     = "https://www.youtube.com"
	captionTracksToken = `"captionTracks":`
	userAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// watchPageFetcher scrapes the watch page for the caption track list and
// pulls the chosen track in json3 format, the same data path the YouTube
// player itself uses.
type watchPageFetcher struct {
	http    *http.Client
	baseURL string // overridden in tests
}

// captionTrack is one entry of the player response's caption track list.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func (f *watchPageFetcher) fetch(ctx context.Context, videoID string, languages []string) ([]Fragment, error) {
	tracks, err := f.captionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, err := pickTrack(tracks, languages)
	if err != nil {
		return nil, err
	}

	return f.fragments(ctx, track.BaseURL)
}

// captionTracks downloads the watch page and extracts the caption track
// list embedded in the player response JSON.
func (f *watchPageFetcher) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	watchURL := f.base() + "/watch?v=" + videoID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.AddCookie(&http.Cookie{Name: "CONSENT", Value: "YES+1"})

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	idx := strings.Index(string(body), captionTracksToken)
	if idx < 0 {
		return nil, errors.New("no caption tracks on watch page")
	}

	// Decode just the track array; the decoder stops at the closing bracket.
	dec := json.NewDecoder(strings.NewReader(string(body[idx+len(captionTracksToken):])))
	var tracks []captionTrack
	if err := dec.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption track list: %v", err)
	}
	if len(tracks) == 0 {
		return nil, errors.New("caption track list is empty")
	}
	return tracks, nil
}

// pickTrack selects the first track matching the language preference order,
// or the first available track when no preference is given.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, error) {
	if len(languages) == 0 {
		return tracks[0], nil
	}
	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t, nil
			}
		}
	}
	return captionTrack{}, fmt.Errorf("no caption track for languages %v", languages)
}

// json3Body matches YouTube's json3 timedtext format.
type json3Body struct {
	Events []struct {
		TStartMs    int64 `json:"tStartMs"`
		DDurationMs int64 `json:"dDurationMs"`
		Segs        []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// fragments downloads the caption track and converts its events into
// ordered fragments. Events without renderable text (newline markers,
// window definitions) are dropped.
func (f *watchPageFetcher) fragments(ctx context.Context, trackURL string) ([]Fragment, error) {
	sep := "?"
	if strings.Contains(trackURL, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL+sep+"fmt=json3", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("caption track returned status %d", resp.StatusCode)
	}

	var body json3Body
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse caption track: %v", err)
	}

	fragments := make([]Fragment, 0, len(body.Events))
	for _, ev := range body.Events {
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Text:     text,
			Start:    float64(ev.TStartMs) / 1000,
			Duration: float64(ev.DDurationMs) / 1000,
		})
	}

	if len(fragments) == 0 {
		return nil, errors.New("caption track has no text")
	}
	return fragments, nil
}

func (f *watchPageFetcher) base() string {
	if f.baseURL != "" {
		return f.baseURL
	}
	return youtubeBaseURL
}
