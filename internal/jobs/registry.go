package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"youtube-digest/internal/pipeline"
	"youtube-digest/internal/types"
)

// Status of a tracked job. Transitions are monotonic:
// pending -> processing -> completed|failed. Terminal states never change.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ErrJobNotFound means no job with the given id was ever submitted to this
// process. Records live in memory only and do not survive a restart.
var ErrJobNotFound = errors.New("job not found")

const (
	pendingStep = "대기 중..."
	doneStep    = "완료"
)

// Record is the poll-side view of one submitted job.
type Record struct {
	JobID   string        `json:"job_id"`
	Status  Status        `json:"status"`
	VideoID string        `json:"video_id,omitempty"`
	Step    string        `json:"step"`
	Error   string        `json:"error,omitempty"`
	Result  *types.Result `json:"result,omitempty"`
}

// Terminal reports whether the record reached a final state.
func (r Record) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// Runner executes one pipeline run. Matches pipeline.Pipeline.Process.
type Runner func(ctx context.Context, rawURL string, hooks pipeline.Hooks) (*types.Result, error)

// Scheduler decides how background executions are started. The default
// spawns one goroutine per job: unbounded, fire-and-forget, no
// cancellation. A bounded worker pool can replace it without touching the
// registry or the pipeline.
type Scheduler interface {
	Schedule(fn func())
}

type goroutineScheduler struct{}

func (goroutineScheduler) Schedule(fn func()) { go fn() }

// Registry tracks submitted jobs and runs them off the request path.
type Registry struct {
	mu      sync.RWMutex
	records map[string]*Record
	run     Runner
	sched   Scheduler
}

// NewRegistry creates a registry around the given runner. A nil scheduler
// selects the goroutine-per-job default.
func NewRegistry(run Runner, sched Scheduler) *Registry {
	if sched == nil {
		sched = goroutineScheduler{}
	}
	return &Registry{
		records: make(map[string]*Record),
		run:     run,
		sched:   sched,
	}
}

// Submit registers a new pending job for rawURL, schedules its execution
// and returns the job id without waiting for anything to run.
func (r *Registry) Submit(rawURL string) string {
	jobID := uuid.New().String()[:8]

	r.mu.Lock()
	r.records[jobID] = &Record{
		JobID:  jobID,
		Status: StatusPending,
		Step:   pendingStep,
	}
	r.mu.Unlock()

	log.Printf("Job %s submitted: %s", jobID, rawURL)
	r.sched.Schedule(func() { r.execute(jobID, rawURL) })
	return jobID
}

// Get returns a snapshot of the job record.
func (r *Registry) Get(jobID string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[jobID]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	return *rec, nil
}

// execute drives one pipeline run and writes its single terminal state.
// A failure never escapes the job: errors and panics both end in failed.
func (r *Registry) execute(jobID, rawURL string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Job %s: PANIC: %v\n%s", jobID, rec, debug.Stack())
			r.fail(jobID, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	r.update(jobID, func(rec *Record) { rec.Status = StatusProcessing })

	hooks := pipeline.Hooks{
		OnStage: func(stage string) {
			r.update(jobID, func(rec *Record) { rec.Step = stage })
		},
		OnVideoID: func(videoID string) {
			r.update(jobID, func(rec *Record) { rec.VideoID = videoID })
		},
	}

	result, err := r.run(context.Background(), rawURL, hooks)
	if err != nil {
		log.Printf("Job %s failed: %v", jobID, err)
		r.fail(jobID, err.Error())
		return
	}

	r.update(jobID, func(rec *Record) {
		rec.Status = StatusCompleted
		rec.Step = doneStep
		rec.Result = result
	})
	log.Printf("Job %s completed (video: %s)", jobID, result.VideoID)
}

// update mutates one record under the registry lock. Terminal records are
// left untouched, so a completed or failed job can never change again.
func (r *Registry) update(jobID string, fn func(*Record)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[jobID]
	if !ok || rec.Terminal() {
		return
	}
	fn(rec)
}

func (r *Registry) fail(jobID, msg string) {
	r.update(jobID, func(rec *Record) {
		rec.Status = StatusFailed
		rec.Error = msg
	})
}
