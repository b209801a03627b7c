package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitecms"
	"github.com/goliatone/go-sitecms/commands"
	"github.com/goliatone/go-sitecms/internal/di"
)

// deps are the seams the tests replace.
type deps struct {
	open    func(ctx context.Context, cfg sitecms.Config, opts ...di.Option) (*sitecms.Module, error)
	confirm func(title string) (bool, error)
}

func defaultDeps() deps {
	return deps{open: sitecms.Open, confirm: confirmPrompt}
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Replace").
				Negative("Cancel").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

type session struct {
	module   *sitecms.Module
	handlers *commands.RegistrationResult
}

func (s *session) close(ctx context.Context) {
	if s.module != nil {
		_ = s.module.Close(ctx)
	}
}

func newRootCmd(d deps) *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Maintenance commands for the site CMS store",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file read before the environment")

	openSession := func(ctx context.Context) (*session, error) {
		cfg, err := sitecms.LoadConfig(envFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		module, err := d.open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open module: %w", err)
		}
		handlers, err := commands.RegisterContainerCommands(module.Container(), commands.RegistrationOptions{})
		if err != nil {
			_ = module.Close(ctx)
			return nil, err
		}
		return &session{module: module, handlers: handlers}, nil
	}

	root.AddCommand(exportCmd(openSession))
	root.AddCommand(importCmd(openSession, d.confirm))
	root.AddCommand(revalidateCmd(openSession))
	return root
}
