package sitecmd

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitecms/internal/commands"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/transfer"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// siteWideContentType labels manual full site revalidations.
const siteWideContentType = "site"

type ExportSiteHandler struct {
	inner *commands.Handler[ExportSiteCommand]
}

func NewExportSiteHandler(service *transfer.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ExportSiteCommand]) *ExportSiteHandler {
	if service == nil {
		panic("sitecmd: transfer service is required")
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg ExportSiteCommand) error {
		snapshot, err := service.Export(ctx)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(snapshot)
		}
		return nil
	}
	handlerOpts := []commands.HandlerOption[ExportSiteCommand]{
		commands.WithLogger[ExportSiteCommand](logger),
		commands.WithOperation[ExportSiteCommand]("transfer.export"),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportSiteCommand](logger)),
	}
	return &ExportSiteHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ExportSiteCommand].
func (h *ExportSiteHandler) Execute(ctx context.Context, msg ExportSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

type ImportSiteHandler struct {
	inner *commands.Handler[ImportSiteCommand]
}

func NewImportSiteHandler(service *transfer.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportSiteCommand]) *ImportSiteHandler {
	if service == nil {
		panic("sitecmd: transfer service is required")
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg ImportSiteCommand) error {
		report, err := service.Import(ctx, msg.Snapshot)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(report)
		}
		return nil
	}
	handlerOpts := []commands.HandlerOption[ImportSiteCommand]{
		commands.WithLogger[ImportSiteCommand](logger),
		commands.WithOperation[ImportSiteCommand]("transfer.import"),
		commands.WithMessageFields(func(msg ImportSiteCommand) map[string]any {
			return map[string]any{"snapshot_bytes": len(msg.Snapshot)}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportSiteCommand](logger)),
	}
	return &ImportSiteHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ImportSiteCommand].
func (h *ImportSiteHandler) Execute(ctx context.Context, msg ImportSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

type RevalidateHandler struct {
	inner      *commands.Handler[RevalidateCommand]
	cronConfig command.HandlerConfig
}

func NewRevalidateHandler(notifier revalidate.Notifier, logger interfaces.Logger, opts ...commands.HandlerOption[RevalidateCommand]) *RevalidateHandler {
	if notifier == nil {
		panic("sitecmd: notifier is required")
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg RevalidateCommand) error {
		contentType := strings.TrimSpace(msg.ContentType)
		if contentType == "" {
			notifier.Notify(ctx, siteWideContentType, revalidate.SiteWide)
			return nil
		}
		notifier.Notify(ctx, contentType)
		return nil
	}
	handlerOpts := []commands.HandlerOption[RevalidateCommand]{
		commands.WithLogger[RevalidateCommand](logger),
		commands.WithOperation[RevalidateCommand]("revalidate"),
		commands.WithMessageFields(func(msg RevalidateCommand) map[string]any {
			if msg.ContentType == "" {
				return nil
			}
			return map[string]any{"content_type": msg.ContentType}
		}),
	}
	return &RevalidateHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[RevalidateCommand].
func (h *RevalidateHandler) Execute(ctx context.Context, msg RevalidateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Schedule sets the cron expression used for periodic site-wide markers.
func (h *RevalidateHandler) Schedule(expression string) *RevalidateHandler {
	h.cronConfig.Expression = strings.TrimSpace(expression)
	return h
}

// CronHandler satisfies command.CronCommand.
func (h *RevalidateHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), RevalidateCommand{})
	}
}

// CronOptions satisfies command.CronCommand.
func (h *RevalidateHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}
