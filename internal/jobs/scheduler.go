package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const everyPrefix = "@every "

var (
	ErrUnsupportedExpression = errors.New("jobs: only @every <duration> schedules are supported")
	ErrUnsupportedHandler    = errors.New("jobs: cron handler must be func() error")
	ErrSchedulerStopped      = errors.New("jobs: scheduler stopped")
)

// Scheduler runs cron handlers on fixed intervals until stopped. Its
// Register method satisfies the command registration cron hook.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	audit  AuditRecorder
	logger interfaces.Logger
	now    func() time.Time
}

type Option func(*Scheduler)

func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Scheduler) {
		s.audit = recorder
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) {
		if clock != nil {
			s.now = clock
		}
	}
}

func NewScheduler(parent context.Context, opts ...Option) *Scheduler {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	s := &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register starts a ticker for handler, audited under the name "job".
func (s *Scheduler) Register(cfg command.HandlerConfig, handler any) error {
	return s.register("job", cfg, handler)
}

// Named returns a registrar that audits runs under name.
func (s *Scheduler) Named(name string) func(command.HandlerConfig, any) error {
	return func(cfg command.HandlerConfig, handler any) error {
		return s.register(name, cfg, handler)
	}
}

func (s *Scheduler) register(name string, cfg command.HandlerConfig, handler any) error {
	if s.ctx.Err() != nil {
		return ErrSchedulerStopped
	}
	interval, err := ParseEvery(cfg.Expression)
	if err != nil {
		return err
	}
	fn, ok := handler.(func() error)
	if !ok {
		return ErrUnsupportedHandler
	}
	s.logger.Info("jobs.scheduled", "job", name, "interval", interval.String())
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.run(name, cfg.Expression, fn)
			}
		}
	}()
	return nil
}

func (s *Scheduler) run(name, expression string, fn func() error) {
	started := s.now()
	err := fn()
	event := AuditEvent{
		Job:        name,
		Expression: expression,
		Action:     ActionSucceeded,
		OccurredAt: started,
		Duration:   s.now().Sub(started),
	}
	if err != nil {
		event.Action = ActionFailed
		event.Error = err.Error()
		s.logger.Error("jobs.run.failed", "job", name, "error", err)
	} else {
		s.logger.Debug("jobs.run.completed", "job", name, "duration", event.Duration)
	}
	if s.audit == nil {
		return
	}
	if auditErr := s.audit.Record(s.ctx, event); auditErr != nil {
		s.logger.Warn("jobs.audit.failed", "job", name, "error", auditErr)
	}
}

// Stop cancels every ticker and waits for running handlers to return.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// ParseEvery reads "@every <duration>" expressions.
func ParseEvery(expression string) (time.Duration, error) {
	expression = strings.TrimSpace(expression)
	if !strings.HasPrefix(expression, everyPrefix) {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedExpression, expression)
	}
	interval, err := time.ParseDuration(strings.TrimSpace(strings.TrimPrefix(expression, everyPrefix)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedExpression, err)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("%w: interval must be positive", ErrUnsupportedExpression)
	}
	return interval, nil
}
