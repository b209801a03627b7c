// Package commands registers the site command handlers with host
// registries, dispatchers and cron schedulers.
package commands

import (
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	corecmd "github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/commands/sitecmd"
	"github.com/goliatone/go-sitecms/internal/di"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// RevalidateCron schedules a periodic site-wide revalidation. Empty disables it.
	RevalidateCron string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription

	Export     *sitecmd.ExportSiteHandler
	Import     *sitecmd.ImportSiteHandler
	Revalidate *sitecmd.RevalidateHandler
}

var ErrContainerRequired = errors.New("commands: container is required")

// RegisterContainerCommands builds the export, import and revalidate
// handlers over the container services and optionally registers them.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, ErrContainerRequired
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	if opts.Registry != nil && opts.CronRegistrar != nil {
		if reg, ok := opts.Registry.(interface {
			SetCronRegister(func(command.HandlerConfig, any) error) *command.Registry
		}); ok && reg != nil {
			reg.SetCronRegister(opts.CronRegistrar)
		}
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0, 3),
		Subscriptions: make([]CommandSubscription, 0, 3),
	}

	var errs error

	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok && cronCmd.CronOptions().Expression != "" {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	transferLogger := corecmd.CommandLogger(provider, "transfer")
	result.Export = sitecmd.NewExportSiteHandler(container.TransferService(), transferLogger)
	result.Import = sitecmd.NewImportSiteHandler(container.TransferService(), transferLogger)
	result.Revalidate = sitecmd.NewRevalidateHandler(container.Dispatcher(), corecmd.CommandLogger(provider, "revalidate")).
		Schedule(strings.TrimSpace(opts.RevalidateCron))

	register(result.Export)
	register(result.Import)
	register(result.Revalidate)

	return result, errs
}
