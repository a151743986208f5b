package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"youtube-digest/internal/types"
)

// ErrNotFound means no artifact exists for the requested video id.
var ErrNotFound = errors.New("result not found")

// Store persists Result artifacts under one output directory: a JSON
// document and a rendered HTML report per video id. Writes overwrite, so
// reprocessing a video replaces its earlier artifacts. Writes are plain
// file writes; a crash mid-write can leave a partial document, which List
// tolerates by skipping it.
type Store struct {
	dir string
}

// New creates the store, making sure the output directory exists.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %v", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the output directory root.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) jsonPath(videoID string) string {
	return filepath.Join(s.dir, videoID+".json")
}

func (s *Store) htmlPath(videoID string) string {
	return filepath.Join(s.dir, videoID+".html")
}

// Save writes the Result document and its rendered report, replacing any
// previous artifacts for the same video id. Returns the JSON document path.
func (s *Store) Save(result *types.Result) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %v", err)
	}

	path := s.jsonPath(result.VideoID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save result: %v", err)
	}

	report, err := renderReport(result)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %v", err)
	}
	if err := os.WriteFile(s.htmlPath(result.VideoID), report, 0644); err != nil {
		return "", fmt.Errorf("failed to save report: %v", err)
	}

	return path, nil
}

// Load reads the Result document for a video id.
func (s *Store) Load(videoID string) (*types.Result, error) {
	data, err := os.ReadFile(s.jsonPath(videoID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, videoID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read result: %v", err)
	}

	var result types.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse result %s: %v", videoID, err)
	}
	return &result, nil
}

// ReportPath returns the rendered report location for a video id.
func (s *Store) ReportPath(videoID string) (string, error) {
	path := s.htmlPath(videoID)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, videoID)
	}
	return path, nil
}

// ListEntry is the lightweight projection returned by List.
type ListEntry struct {
	VideoID     string    `json:"video_id"`
	OneLiner    string    `json:"one_liner"`
	Tags        []string  `json:"tags"`
	ProcessedAt time.Time `json:"processed_at"`
}

// List enumerates every stored result document, newest first. Documents
// that cannot be read or parsed (e.g. an interrupted write) are skipped.
func (s *Store) List() ([]ListEntry, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %v", err)
	}

	entries := make([]ListEntry, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping unreadable result file %s: %v", path, err)
			continue
		}
		var result types.Result
		if err := json.Unmarshal(data, &result); err != nil {
			log.Printf("Skipping malformed result file %s: %v", path, err)
			continue
		}
		entries = append(entries, ListEntry{
			VideoID:     result.VideoID,
			OneLiner:    result.Summary.OneLiner,
			Tags:        result.Summary.Tags,
			ProcessedAt: result.ProcessedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ProcessedAt.After(entries[j].ProcessedAt)
	})
	return entries, nil
}
