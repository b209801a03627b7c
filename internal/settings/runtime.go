package settings

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Option configures the collaborators shared by every engine type.
type Option func(*runtime)

type runtime struct {
	notifier revalidate.Notifier
	logger   interfaces.Logger
	now      func() time.Time
	newID    func() string
}

func WithNotifier(notifier revalidate.Notifier) Option {
	return func(r *runtime) {
		if notifier != nil {
			r.notifier = notifier
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(r *runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *runtime) {
		if now != nil {
			r.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(r *runtime) {
		if fn != nil {
			r.newID = fn
		}
	}
}

func newRuntime(opts []Option) runtime {
	rt := runtime{
		logger: logging.NoOp(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&rt)
		}
	}
	return rt
}

func (r runtime) notify(ctx context.Context, contentType string, targets []revalidate.Target) {
	if r.notifier == nil {
		return
	}
	r.notifier.Notify(ctx, contentType, targets...)
}

// validate runs the value's own rules when it implements
// validation.Validatable.
func validate(contentType string, value any) error {
	v, ok := value.(validation.Validatable)
	if !ok {
		return nil
	}
	return ValidationIssues(contentType, v.Validate())
}

// Clock resolves the clock configured by opts, for callers that stamp
// values outside the engine.
func Clock(opts []Option) func() time.Time {
	return newRuntime(opts).now
}
