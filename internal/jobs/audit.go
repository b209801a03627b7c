package jobs

import (
	"context"
	"sync"
	"time"
)

const defaultAuditLimit = 200

// Audit actions recorded for every scheduled run.
const (
	ActionSucceeded = "succeeded"
	ActionFailed    = "failed"
)

// AuditEvent captures one run of a scheduled job.
type AuditEvent struct {
	Job        string        `json:"job"`
	Expression string        `json:"expression"`
	Action     string        `json:"action"`
	OccurredAt time.Time     `json:"occurred_at"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
}

// AuditRecorder persists job runs.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
	List(ctx context.Context) ([]AuditEvent, error)
	Clear(ctx context.Context) error
}

// InMemoryAuditRecorder keeps the latest runs, dropping the oldest past its
// limit.
type InMemoryAuditRecorder struct {
	mu     sync.Mutex
	limit  int
	events []AuditEvent
	err    error
}

var _ AuditRecorder = (*InMemoryAuditRecorder)(nil)

// NewInMemoryAuditRecorder keeps up to limit runs; zero means the default.
func NewInMemoryAuditRecorder(limit ...int) *InMemoryAuditRecorder {
	r := &InMemoryAuditRecorder{limit: defaultAuditLimit}
	if len(limit) > 0 && limit[0] > 0 {
		r.limit = limit[0]
	}
	return r
}

func (r *InMemoryAuditRecorder) Record(_ context.Context, event AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	if overflow := len(r.events) - r.limit; overflow > 0 {
		r.events = append(r.events[:0:0], r.events[overflow:]...)
	}
	return nil
}

// Events returns a copy of the retained runs, oldest first.
func (r *InMemoryAuditRecorder) Events() []AuditEvent {
	events, _ := r.List(context.Background())
	return events
}

// Failures returns the retained failed runs of job.
func (r *InMemoryAuditRecorder) Failures(job string) []AuditEvent {
	var out []AuditEvent
	for _, event := range r.Events() {
		if event.Job == job && event.Action == ActionFailed {
			out = append(out, event)
		}
	}
	return out
}

// Fail makes Record return err until cleared with nil.
func (r *InMemoryAuditRecorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *InMemoryAuditRecorder) List(context.Context) ([]AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AuditEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *InMemoryAuditRecorder) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	return nil
}
