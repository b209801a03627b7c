package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitecms/internal/commands/sitecmd"
	"github.com/goliatone/go-sitecms/internal/transfer"
)

var errImportCancelled = errors.New("sitectl: import cancelled")

func importCmd(open func(context.Context) (*session, error), confirm func(string) (bool, error)) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the managed collections with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(fmt.Sprintf("Replace the site content with %s?", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					return errImportCancelled
				}
			}

			ctx := cmd.Context()
			s, err := open(ctx)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			var report transfer.Report
			msg := sitecmd.ImportSiteCommand{Snapshot: raw, ResultCallback: func(r transfer.Report) { report = r }}
			if err := s.handlers.Import.Execute(ctx, msg); err != nil {
				return fmt.Errorf("%s: %w", transfer.PublicMessage(err), err)
			}

			names := make([]string, 0, len(report.Collections))
			for name := range report.Collections {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", name, report.Collections[name])
			}
			for _, skipped := range report.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s\n", skipped)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
