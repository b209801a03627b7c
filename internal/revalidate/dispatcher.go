package revalidate

import (
	"context"
	"time"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Event is one revalidation request issued after a write.
type Event struct {
	ContentType string    `json:"content_type"`
	Targets     []Target  `json:"targets"`
	IssuedAt    time.Time `json:"issued_at"`
}

// Sink delivers events to whatever caches rendered output.
type Sink interface {
	Revalidate(ctx context.Context, event Event) error
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(ctx context.Context, event Event) error

func (f SinkFunc) Revalidate(ctx context.Context, event Event) error { return f(ctx, event) }

// Notifier is what writers depend on.
type Notifier interface {
	Notify(ctx context.Context, contentType string, targets ...Target)
}

// Dispatcher fans events out to sinks. Delivery failures are logged and
// never reach the writer: the write already happened.
type Dispatcher struct {
	sinks  []Sink
	logger interfaces.Logger
	now    func() time.Time
}

var _ Notifier = (*Dispatcher)(nil)

type Option func(*Dispatcher)

func WithSink(sink Sink) Option {
	return func(d *Dispatcher) {
		if sink != nil {
			d.sinks = append(d.sinks, sink)
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: logging.NoOp(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Notify issues an event for contentType. Without explicit targets the
// route table entry for the content type is used.
func (d *Dispatcher) Notify(ctx context.Context, contentType string, targets ...Target) {
	if d == nil {
		return
	}
	if len(targets) == 0 {
		targets = TargetsFor(contentType)
	}
	if len(targets) == 0 {
		d.logger.Warn("revalidate.dispatch.no_targets", "content_type", contentType)
		return
	}
	event := Event{ContentType: contentType, Targets: targets, IssuedAt: d.now()}
	for _, sink := range d.sinks {
		if err := sink.Revalidate(ctx, event); err != nil {
			d.logger.Error("revalidate.dispatch.failed", "content_type", contentType, "error", err)
		}
	}
	d.logger.Debug("revalidate.dispatch.issued", "content_type", contentType, "targets", len(targets))
}
