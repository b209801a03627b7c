package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-sitecms"
	"github.com/goliatone/go-sitecms/commands"
	"github.com/goliatone/go-sitecms/internal/jobs"
	"github.com/goliatone/go-sitecms/internal/logging"
)

var moduleBuilder = sitecms.Open

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("sitecms: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sitecms", flag.ContinueOnError)
	envFile := fs.String("env-file", ".env", "Dotenv file read before the environment, ignored when missing")
	revalidateEvery := fs.String("revalidate-cron", "", `Periodic site-wide revalidation, e.g. "@every 6h"`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := sitecms.LoadConfig(*envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	module, err := moduleBuilder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open module: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := module.Close(closeCtx); err != nil {
			log.Printf("sitecms: close: %v", err)
		}
	}()

	provider := module.Container().LoggerProvider()
	scheduler := jobs.NewScheduler(ctx,
		jobs.WithAuditRecorder(jobs.NewInMemoryAuditRecorder()),
		jobs.WithLogger(logging.ModuleLogger(provider, "sitecms.jobs")),
	)
	defer scheduler.Stop()
	if _, err := commands.RegisterContainerCommands(module.Container(), commands.RegistrationOptions{
		CronRegistrar:  scheduler.Named("revalidate"),
		RevalidateCron: *revalidateEvery,
	}); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      module.Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	return serve(ctx, server, cfg.HTTP.ShutdownTimeout)
}
