package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/coursenav/internal/cli/formatter"
	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/spf13/cobra"
)

func newNavCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Query the navigation tree of a course",
	}

	cmd.AddCommand(
		newNavTreeCmd(app),
		newNavFirstCmd(app),
		newNavSectionCmd(app),
		newNavFlattenCmd(app),
		newNavParentCmd(app),
		newNavNextCmd(app),
		newNavBreadcrumbCmd(app),
		newNavValidateCmd(),
	)

	return cmd
}

// learnerState returns the completion set for the current user and the id
// of the resource that is up next, if any.
func learnerState(ctx context.Context, app *App, nav *navigation.Navigation) (map[string]bool, string, error) {
	completed, err := app.Progress.Completed(ctx, app.UserID)
	if err != nil {
		return nil, "", err
	}
	currentID := ""
	if next := navigation.NextUp(nav, completed, app.adjacency()); next != nil {
		currentID = next.ID
	}
	return completed, currentID, nil
}

func newNavTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree ROOT",
		Short: "Render the tree rooted at ROOT (id or slug)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			nav, err := app.loadNavigation(ctx, args[0])
			if err != nil {
				return err
			}
			completed, currentID, err := learnerState(ctx, app, nav)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNavigationTree(nav, completed, currentID))
			return nil
		},
	}
}

func newNavFirstCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "first ROOT",
		Short: "Print the slug learners land on first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := app.loadNavigation(context.Background(), args[0])
			if err != nil {
				return err
			}
			slug, ok := navigation.FirstResourceSlug(nav)
			if !ok {
				return errors.New("no first resource slug")
			}
			fmt.Fprintln(cmd.OutOrStdout(), slug)
			return nil
		},
	}
}

func newNavSectionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "section ROOT SLUG",
		Short: "Print the id of the section containing SLUG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := app.loadNavigation(context.Background(), args[0])
			if err != nil {
				return err
			}
			id, ok := navigation.FindSectionIDForResourceSlug(nav, args[1])
			if !ok {
				return fmt.Errorf("no section found for %q", args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newNavFlattenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "flatten ROOT",
		Short: "List the linear learning sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			nav, err := app.loadNavigation(ctx, args[0])
			if err != nil {
				return err
			}
			completed, currentID, err := learnerState(ctx, app, nav)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSequence(navigation.FlattenNavigationResources(nav), completed, currentID))
			return nil
		},
	}
}

func newNavParentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "parent ROOT SOLUTION",
		Short: "Print the lesson a solution belongs to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			nav, err := app.loadNavigation(ctx, args[0])
			if err != nil {
				return err
			}
			sol, err := app.Resources.Get(ctx, args[1])
			if err != nil {
				return fmt.Errorf("solution %q: %w", args[1], err)
			}
			lesson := navigation.FindParentLessonForSolution(nav, sol.ID)
			if lesson == nil {
				return fmt.Errorf("no parent lesson for %q", args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", lesson.DisplayTitle(), lesson.ID)
			return nil
		},
	}
}

func newNavNextCmd(app *App) *cobra.Command {
	var skipSolutions bool

	cmd := &cobra.Command{
		Use:   "next ROOT RESOURCE",
		Short: "Show the resources before and after RESOURCE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			nav, err := app.loadNavigation(ctx, args[0])
			if err != nil {
				return err
			}
			cur, err := app.Resources.Get(ctx, args[1])
			if err != nil {
				return fmt.Errorf("resource %q: %w", args[1], err)
			}
			opts := app.adjacency()
			opts.SkipSolutions = opts.SkipSolutions || skipSolutions
			prev, next := navigation.Adjacent(nav, cur.ID, opts)

			fmt.Fprintln(cmd.OutOrStdout(), neighbourLine("prev", prev))
			fmt.Fprintln(cmd.OutOrStdout(), neighbourLine("next", next))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipSolutions, "skip-solutions", false, "Step over solution resources")
	return cmd
}

func neighbourLine(label string, r *domain.ContentResource) string {
	if r == nil {
		return formatter.Dim(label + " --")
	}
	return fmt.Sprintf("%s %s %s", formatter.Dim(label), r.DisplayTitle(), formatter.Dim("("+r.ID+")"))
}

func newNavBreadcrumbCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "breadcrumb ROOT SLUG",
		Short: "Print the path from the root to SLUG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := app.loadNavigation(context.Background(), args[0])
			if err != nil {
				return err
			}
			path := navigation.Breadcrumb(nav, args[1])
			if len(path) == 0 {
				return fmt.Errorf("slug %q is not in this tree", args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBreadcrumb(path))
			return nil
		},
	}
}

func newNavValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a navigation JSON document against the tree shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading navigation file: %w", err)
			}
			_, issues := navigation.ValidateJSON(data)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIssues(issues))
			if len(issues) > 0 {
				return fmt.Errorf("navigation has %d issue(s)", len(issues))
			}
			return nil
		},
	}
}
