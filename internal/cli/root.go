package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/alexanderramin/coursenav/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Resources  service.ResourceService
	Products   service.ProductService
	Navigation service.NavigationService
	Import     service.ImportService
	Progress   service.ProgressService

	// UserID is the learner progress commands act for unless --user is given.
	UserID        string
	SkipSolutions bool

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// browse player refuse to start when it returns false.
	IsInteractive func() bool

	// RunProgram runs a bubbletea model to completion. Tests swap it out.
	RunProgram func(m tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (a *App) adjacency() navigation.AdjacencyOptions {
	return navigation.AdjacencyOptions{SkipSolutions: a.SkipSolutions}
}

// loadNavigation loads the tree rooted at idOrSlug, turning a missing or
// invalid tree into an error a user can act on.
func (a *App) loadNavigation(ctx context.Context, idOrSlug string) (*navigation.Navigation, error) {
	nav, err := a.Navigation.Load(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if nav == nil {
		return nil, fmt.Errorf("no valid navigation for %q (missing root or invalid tree, see logs)", idOrSlug)
	}
	return nav, nil
}

// NewRootCmd creates the top-level "coursenav" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "coursenav",
		Short:         "Course content tree storage and navigation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.UserID, "user", app.UserID, "Learner ID for progress tracking")

	root.AddCommand(
		newResourceCmd(app),
		newProductCmd(app),
		newImportCmd(app),
		newNavCmd(app),
		newProgressCmd(app),
		newBrowseCmd(app),
	)

	return root
}
