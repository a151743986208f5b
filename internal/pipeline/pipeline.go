package pipeline

import (
	"context"
	"log"
	"time"

	"youtube-digest/internal/types"
	"youtube-digest/internal/videoid"
)

// Stage labels reported through Hooks.OnStage, in pipeline order.
const (
	StageExtract    = "영상 ID 추출 중..."
	StageTranscript = "자막 추출 중..."
	StageTranslate  = "번역 중..."
	StageSummarize  = "요약 중..."
	StageSave       = "저장 중..."
)

// TranscriptSource yields the joined caption transcript for a video id.
type TranscriptSource interface {
	Transcript(ctx context.Context, videoID string) (string, error)
}

// Transformer runs the two model-backed text transformations.
type Transformer interface {
	Translate(ctx context.Context, text string) (string, error)
	Summarize(ctx context.Context, koreanText string) (types.StructuredSummary, error)
}

// Saver persists a finished Result.
type Saver interface {
	Save(result *types.Result) (string, error)
}

// Hooks carries optional progress callbacks for one run. Nil callbacks are
// skipped.
type Hooks struct {
	OnStage   func(stage string)
	OnVideoID func(videoID string)
}

func (h Hooks) stage(s string) {
	if h.OnStage != nil {
		h.OnStage(s)
	}
}

func (h Hooks) videoID(id string) {
	if h.OnVideoID != nil {
		h.OnVideoID(id)
	}
}

// Pipeline sequences extraction, caption fetch, translation, summarization
// and persistence for one video. Stages run in fixed order; the first
// failure aborts the run and surfaces that stage's error unchanged.
type Pipeline struct {
	source      TranscriptSource
	transformer Transformer
	store       Saver
	logger      *log.Logger
}

// New wires the pipeline's collaborators. A nil logger falls back to the
// process default.
func New(source TranscriptSource, transformer Transformer, store Saver, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		source:      source,
		transformer: transformer,
		store:       store,
		logger:      logger,
	}
}

// Process runs the full pipeline for a raw URL or bare video id and returns
// the persisted Result. The creation timestamp is captured at assembly
// time, after the last transformation.
func (p *Pipeline) Process(ctx context.Context, rawURL string, hooks Hooks) (*types.Result, error) {
	hooks.stage(StageExtract)
	videoID, err := videoid.Extract(rawURL)
	if err != nil {
		return nil, err
	}
	hooks.videoID(videoID)
	p.logger.Printf("[%s] video id resolved", videoID)

	hooks.stage(StageTranscript)
	original, err := p.source.Transcript(ctx, videoID)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("[%s] transcript fetched (%d chars)", videoID, len(original))

	hooks.stage(StageTranslate)
	korean, err := p.transformer.Translate(ctx, original)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("[%s] translation done (%d chars)", videoID, len(korean))

	hooks.stage(StageSummarize)
	summary, err := p.transformer.Summarize(ctx, korean)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("[%s] summary structured (%d key points)", videoID, len(summary.KeyPoints))

	hooks.stage(StageSave)
	result := &types.Result{
		VideoID:            videoID,
		VideoURL:           types.WatchURL(videoID),
		OriginalTranscript: original,
		KoreanTranscript:   korean,
		Summary:            summary,
		ProcessedAt:        time.Now(),
	}
	path, err := p.store.Save(result)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("[%s] result saved: %s", videoID, path)

	return result, nil
}
