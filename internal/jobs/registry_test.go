package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"youtube-digest/internal/pipeline"
	"youtube-digest/internal/types"
)

// inlineScheduler runs the job on the submitting goroutine, making tests
// deterministic.
type inlineScheduler struct{}

func (inlineScheduler) Schedule(fn func()) { fn() }

// deferredScheduler captures the execution so tests can observe the pending
// state before running it.
type deferredScheduler struct {
	fns []func()
}

func (s *deferredScheduler) Schedule(fn func()) { s.fns = append(s.fns, fn) }

func (s *deferredScheduler) runAll() {
	for _, fn := range s.fns {
		fn()
	}
	s.fns = nil
}

func okRunner(result *types.Result) Runner {
	return func(ctx context.Context, rawURL string, hooks pipeline.Hooks) (*types.Result, error) {
		hooks.OnVideoID(result.VideoID)
		hooks.OnStage(pipeline.StageTranscript)
		return result, nil
	}
}

func TestSubmitRunsToCompletion(t *testing.T) {
	result := &types.Result{VideoID: "dQw4w9WgXcQ"}
	reg := NewRegistry(okRunner(result), inlineScheduler{})

	jobID := reg.Submit("https://youtu.be/dQw4w9WgXcQ")
	if len(jobID) != 8 {
		t.Fatalf("job id = %q, want 8-char token", jobID)
	}

	rec, err := reg.Get(jobID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", rec.Status)
	}
	if rec.Result == nil || rec.Result.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("result = %+v", rec.Result)
	}
	if rec.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("video id = %q", rec.VideoID)
	}
	if rec.Error != "" {
		t.Fatalf("completed job must carry no error, got %q", rec.Error)
	}
}

func TestSubmitRecordsFailure(t *testing.T) {
	runner := func(ctx context.Context, rawURL string, hooks pipeline.Hooks) (*types.Result, error) {
		return nil, errors.New("transcript unavailable: no caption tracks")
	}
	reg := NewRegistry(runner, inlineScheduler{})

	rec, err := reg.Get(reg.Submit("dQw4w9WgXcQ"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", rec.Status)
	}
	if rec.Error == "" {
		t.Fatal("failed job must carry the error text")
	}
	if rec.Result != nil {
		t.Fatal("failed job must not carry a result")
	}
}

func TestPendingBeforeExecution(t *testing.T) {
	sched := &deferredScheduler{}
	reg := NewRegistry(okRunner(&types.Result{VideoID: "dQw4w9WgXcQ"}), sched)

	jobID := reg.Submit("dQw4w9WgXcQ")
	rec, err := reg.Get(jobID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != StatusPending {
		t.Fatalf("status before execution = %s, want pending", rec.Status)
	}
	if rec.Step != pendingStep {
		t.Fatalf("step = %q", rec.Step)
	}

	sched.runAll()
	rec, _ = reg.Get(jobID)
	if rec.Status != StatusCompleted {
		t.Fatalf("status after execution = %s, want completed", rec.Status)
	}
}

func TestGetUnknownJob(t *testing.T) {
	reg := NewRegistry(okRunner(&types.Result{}), inlineScheduler{})
	if _, err := reg.Get("nope1234"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("error = %v, want ErrJobNotFound", err)
	}
}

// TestTerminalStateIsImmutable replays late hook calls after completion and
// checks the record no longer moves.
func TestTerminalStateIsImmutable(t *testing.T) {
	var captured pipeline.Hooks
	runner := func(ctx context.Context, rawURL string, hooks pipeline.Hooks) (*types.Result, error) {
		captured = hooks
		return &types.Result{VideoID: "dQw4w9WgXcQ"}, nil
	}
	reg := NewRegistry(runner, inlineScheduler{})
	jobID := reg.Submit("dQw4w9WgXcQ")

	captured.OnStage("늦은 업데이트")
	captured.OnVideoID("xxxxxxxxxxx")

	rec, err := reg.Get(jobID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != StatusCompleted || rec.Step != doneStep || rec.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("terminal record changed: %+v", rec)
	}
}

func TestPanicInRunnerMarksFailed(t *testing.T) {
	runner := func(ctx context.Context, rawURL string, hooks pipeline.Hooks) (*types.Result, error) {
		panic("boom")
	}
	reg := NewRegistry(runner, inlineScheduler{})

	rec, err := reg.Get(reg.Submit("dQw4w9WgXcQ"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", rec.Status)
	}
	if rec.Error == "" {
		t.Fatal("panic must surface as a job error")
	}
}

// TestConcurrentJobs exercises the default goroutine scheduler with many
// simultaneous submissions.
func TestConcurrentJobs(t *testing.T) {
	runner := func(ctx context.Context, rawURL string, hooks pipeline.Hooks) (*types.Result, error) {
		hooks.OnStage(pipeline.StageTranslate)
		time.Sleep(5 * time.Millisecond)
		if rawURL == "fail" {
			return nil, errors.New("expected failure")
		}
		return &types.Result{VideoID: "dQw4w9WgXcQ"}, nil
	}

	reg := NewRegistry(runner, nil)

	ids := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		input := fmt.Sprintf("video-%d", i)
		if i%3 == 0 {
			input = "fail"
		}
		ids = append(ids, reg.Submit(input))
	}

	deadline := time.Now().Add(2 * time.Second)
	for _, id := range ids {
		for {
			rec, err := reg.Get(id)
			if err != nil {
				t.Fatalf("Get(%s): %v", id, err)
			}
			if rec.Terminal() {
				if rec.Status == StatusCompleted && rec.Result == nil {
					t.Fatalf("completed job %s without result", id)
				}
				if rec.Status == StatusFailed && rec.Error == "" {
					t.Fatalf("failed job %s without error", id)
				}
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("job %s did not finish: %+v", id, rec)
			}
			time.Sleep(time.Millisecond)
		}
	}
}
