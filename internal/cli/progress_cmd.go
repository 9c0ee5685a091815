package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/coursenav/internal/cli/formatter"
	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Track learner completion",
	}

	cmd.AddCommand(
		newProgressDoneCmd(app),
		newProgressResetCmd(app),
		newProgressNextCmd(app),
	)

	return cmd
}

func newProgressDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done RESOURCE",
		Short: "Mark a resource complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Progress.Complete(context.Background(), app.UserID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s completed %s\n", formatter.StyleGreen.Render("✔"), app.UserID, args[0])
			return nil
		},
	}
}

func newProgressResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset RESOURCE",
		Short: "Clear a completion mark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Progress.Reset(context.Background(), app.UserID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s for %s\n", args[0], app.UserID)
			return nil
		},
	}
}

func newProgressNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next ROOT",
		Short: "Show what the learner should do next in ROOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Progress.NextUp(context.Background(), app.UserID, args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("no valid navigation for %q (missing root or invalid tree, see logs)", args[0])
			}
			var crumbs []domain.ContentResource
			if p.Next != nil {
				if slug, ok := p.Next.Slug(); ok {
					crumbs = navigation.Breadcrumb(p.Navigation, slug)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNextUp(p.Next, crumbs, p.Done, p.Total))
			return nil
		},
	}
}
