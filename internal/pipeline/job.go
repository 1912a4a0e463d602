// job.go: observable handle for an in-flight directory tagging job.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/phototag/phototag-go/internal/datastore"
)

// Outcome is the per-file result of a directory job. Exactly one of Tags or
// Err is set.
type Outcome struct {
	Path string
	Tags datastore.TagSet
	Err  error
}

// Job tracks a directory tagging run. The handle is returned as soon as
// enumeration finishes, while tagging proceeds in the background; callers
// poll Counts or wait on Done.
type Job struct {
	ID    string
	Root  string
	Total int

	succeeded atomic.Int64
	failed    atomic.Int64

	mu       sync.Mutex
	outcomes []Outcome

	done chan struct{}
}

func newJob(root string, total int) *Job {
	return &Job{
		ID:       uuid.NewString(),
		Root:     root,
		Total:    total,
		outcomes: make([]Outcome, 0, total),
		done:     make(chan struct{}),
	}
}

// record stores one per-file outcome and updates the tallies.
func (j *Job) record(o Outcome) {
	if o.Err != nil {
		j.failed.Add(1)
	} else {
		j.succeeded.Add(1)
	}
	j.mu.Lock()
	j.outcomes = append(j.outcomes, o)
	j.mu.Unlock()
}

// Counts returns the current succeeded/failed tallies and the total file count.
func (j *Job) Counts() (succeeded, failed, total int) {
	return int(j.succeeded.Load()), int(j.failed.Load()), j.Total
}

// Outcomes returns a snapshot of the per-file outcomes recorded so far.
func (j *Job) Outcomes() []Outcome {
	j.mu.Lock()
	defer j.mu.Unlock()
	snapshot := make([]Outcome, len(j.outcomes))
	copy(snapshot, j.outcomes)
	return snapshot
}

// Done is closed once every discovered file has an outcome.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job completes or the context is cancelled.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
