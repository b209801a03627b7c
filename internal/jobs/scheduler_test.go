package jobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecms/internal/jobs"
)

func TestParseEvery(t *testing.T) {
	cases := []struct {
		expr    string
		want    time.Duration
		wantErr bool
	}{
		{expr: "@every 1h", want: time.Hour},
		{expr: " @every 90s ", want: 90 * time.Second},
		{expr: "@daily", wantErr: true},
		{expr: "@every soon", wantErr: true},
		{expr: "@every -1m", wantErr: true},
	}
	for _, tc := range cases {
		got, err := jobs.ParseEvery(tc.expr)
		if tc.wantErr {
			if !errors.Is(err, jobs.ErrUnsupportedExpression) {
				t.Fatalf("%q: expected ErrUnsupportedExpression got %v", tc.expr, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: expected %s got %s (%v)", tc.expr, tc.want, got, err)
		}
	}
}

func TestSchedulerRunsAndAuditsUntilStopped(t *testing.T) {
	audit := jobs.NewInMemoryAuditRecorder()
	s := jobs.NewScheduler(context.Background(), jobs.WithAuditRecorder(audit))

	var runs atomic.Int32
	done := make(chan struct{}, 1)
	handler := func() error {
		n := runs.Add(1)
		if n == 2 {
			done <- struct{}{}
		}
		if n == 1 {
			return errors.New("first run fails")
		}
		return nil
	}
	if err := s.Named("revalidate")(command.HandlerConfig{Expression: "@every 5ms"}, handler); err != nil {
		t.Fatalf("register: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("handler did not run twice")
	}
	s.Stop()
	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	if runs.Load() != after {
		t.Fatalf("handler kept running after stop")
	}

	events := audit.Events()
	if len(events) < 2 {
		t.Fatalf("expected at least 2 audit events got %d", len(events))
	}
	if events[0].Job != "revalidate" || events[0].Action != jobs.ActionFailed || events[0].Error == "" {
		t.Fatalf("unexpected first audit event %+v", events[0])
	}
	if events[1].Action != jobs.ActionSucceeded {
		t.Fatalf("expected second run to succeed got %+v", events[1])
	}
}

func TestSchedulerRejectsBadRegistrations(t *testing.T) {
	s := jobs.NewScheduler(context.Background())
	if err := s.Register(command.HandlerConfig{Expression: "@every 1m"}, func() {}); !errors.Is(err, jobs.ErrUnsupportedHandler) {
		t.Fatalf("expected ErrUnsupportedHandler got %v", err)
	}
	if err := s.Register(command.HandlerConfig{Expression: "0 * * * *"}, func() error { return nil }); !errors.Is(err, jobs.ErrUnsupportedExpression) {
		t.Fatalf("expected ErrUnsupportedExpression got %v", err)
	}
	s.Stop()
	if err := s.Register(command.HandlerConfig{Expression: "@every 1m"}, func() error { return nil }); !errors.Is(err, jobs.ErrSchedulerStopped) {
		t.Fatalf("expected ErrSchedulerStopped got %v", err)
	}
}

func TestInMemoryAuditRecorderFailure(t *testing.T) {
	audit := jobs.NewInMemoryAuditRecorder()
	audit.Fail(errors.New("disk full"))
	if err := audit.Record(context.Background(), jobs.AuditEvent{Job: "x"}); err == nil {
		t.Fatalf("expected configured failure")
	}
	audit.Fail(nil)
	if err := audit.Record(context.Background(), jobs.AuditEvent{Job: "x"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := audit.Clear(context.Background()); err != nil || len(audit.Events()) != 0 {
		t.Fatalf("expected cleared recorder, err=%v", err)
	}
}

func TestInMemoryAuditRecorderKeepsLatest(t *testing.T) {
	audit := jobs.NewInMemoryAuditRecorder(2)
	ctx := context.Background()
	for _, action := range []string{jobs.ActionFailed, jobs.ActionSucceeded, jobs.ActionFailed} {
		if err := audit.Record(ctx, jobs.AuditEvent{Job: "revalidate", Action: action}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	events := audit.Events()
	if len(events) != 2 || events[0].Action != jobs.ActionSucceeded {
		t.Fatalf("expected the two latest runs, got %+v", events)
	}
	if got := len(audit.Failures("revalidate")); got != 1 {
		t.Fatalf("expected 1 retained failure, got %d", got)
	}
}
