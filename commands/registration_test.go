package commands

import (
	"context"
	"errors"
	"testing"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecms/internal/commands/sitecmd"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
	"github.com/goliatone/go-sitecms/internal/transfer"
)

func newContainer(t *testing.T) *di.Container {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "noop"
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return container
}

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	registry := &recordingRegistry{}
	dispatcher := &recordingDispatcher{}
	cron := &recordingCron{}

	result, err := RegisterContainerCommands(newContainer(t), RegistrationOptions{
		Registry:       registry,
		Dispatcher:     dispatcher,
		CronRegistrar:  cron.Registrar(),
		RevalidateCron: "@hourly",
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 3 {
		t.Fatalf("expected three handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != len(result.Handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(dispatcher.subscriptions) != 3 {
		t.Fatalf("expected a subscription per handler, got %d", len(dispatcher.subscriptions))
	}
	if len(cron.registrations) != 1 {
		t.Fatalf("expected only the revalidate handler on cron, got %d", len(cron.registrations))
	}
	if got := cron.registrations[0].config.Expression; got != "@hourly" {
		t.Fatalf("expected revalidate cron expression, got %q", got)
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	container := newContainer(t)
	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}

	var snapshot transfer.Snapshot
	err = result.Export.Execute(context.Background(), sitecmd.ExportSiteCommand{
		ResultCallback: func(s transfer.Snapshot) { snapshot = s },
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected export callback to receive a snapshot")
	}

	if err := result.Revalidate.Execute(context.Background(), sitecmd.RevalidateCommand{}); err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if len(container.Revalidations().Events()) != 1 {
		t.Fatalf("expected a site-wide marker, got %+v", container.Revalidations().Events())
	}
}

func TestRegisterContainerCommandsCollectsErrors(t *testing.T) {
	dispatcher := &recordingDispatcher{err: errors.New("dispatcher down")}
	result, err := RegisterContainerCommands(newContainer(t), RegistrationOptions{Dispatcher: dispatcher})
	if err == nil {
		t.Fatal("expected dispatcher errors to be reported")
	}
	if len(result.Handlers) != 3 {
		t.Fatalf("expected handlers to be built despite errors, got %d", len(result.Handlers))
	}
}

func TestRegisterContainerCommandsRequiresContainer(t *testing.T) {
	if _, err := RegisterContainerCommands(nil, RegistrationOptions{}); !errors.Is(err, ErrContainerRequired) {
		t.Fatalf("expected ErrContainerRequired, got %v", err)
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type cronRegistration struct {
	config  command.HandlerConfig
	handler func() error
}

type recordingCron struct {
	registrations []cronRegistration
}

func (c *recordingCron) Registrar() CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		var fn func() error
		if h, ok := handler.(func() error); ok {
			fn = h
		}
		c.registrations = append(c.registrations, cronRegistration{config: cfg, handler: fn})
		return nil
	}
}

type recordingDispatcher struct {
	subscriptions []*recordingSubscription
	err           error
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	if d.err != nil {
		return nil, d.err
	}
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
