package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitecms/internal/commands/sitecmd"
)

func revalidateCmd(open func(context.Context) (*session, error)) *cobra.Command {
	var contentType string
	cmd := &cobra.Command{
		Use:   "revalidate",
		Short: "Mark cached pages stale, the whole site by default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := open(ctx)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			if err := s.handlers.Revalidate.Execute(ctx, sitecmd.RevalidateCommand{ContentType: contentType}); err != nil {
				return err
			}
			scope := contentType
			if scope == "" {
				scope = "site"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revalidation issued for %s\n", scope)
			return nil
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "Limit the marker to pages depending on one content type")
	return cmd
}
