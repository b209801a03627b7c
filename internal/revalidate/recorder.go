package revalidate

import (
	"context"
	"sync"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const defaultRecorderSize = 100

// Recorder keeps the most recent events in memory. The admin API lists
// them and tests assert on them.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

var _ Sink = (*Recorder)(nil)

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = defaultRecorderSize
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Revalidate(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if over := len(r.events) - r.limit; over > 0 {
		r.events = append([]Event(nil), r.events[over:]...)
	}
	return nil
}

// Events returns recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Targets flattens the targets of every recorded event.
func (r *Recorder) Targets() []Target {
	var out []Target
	for _, event := range r.Events() {
		out = append(out, event.Targets...)
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// LogSink writes each marker to a logger. It stands in for the webhook when
// no frontend is configured.
type LogSink struct {
	logger interfaces.Logger
}

var _ Sink = LogSink{}

func NewLogSink(logger interfaces.Logger) LogSink {
	if logger == nil {
		logger = logging.NoOp()
	}
	return LogSink{logger: logger}
}

func (s LogSink) Revalidate(_ context.Context, event Event) error {
	for _, target := range event.Targets {
		s.logger.Info("revalidate.marker", "content_type", event.ContentType, "path", target.Path, "scope", target.Scope)
	}
	return nil
}
