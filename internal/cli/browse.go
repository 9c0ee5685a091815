package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/coursenav/internal/cli/formatter"
	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type browseKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Toggle key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h", "up", "k"), key.WithHelp("←/h", "prev")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "down", "j"), key.WithHelp("→/l", "next")),
		Toggle: key.NewBinding(key.WithKeys("space", " ", "enter"), key.WithHelp("space", "toggle done")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Toggle, k.Help, k.Quit}}
}

// progressSavedMsg reports the outcome of a completion toggle.
type progressSavedMsg struct {
	id   string
	done bool
	err  error
}

// browseModel steps through the flattened sequence of one course.
type browseModel struct {
	app       *App
	nav       *navigation.Navigation
	flat      []domain.ContentResource
	completed map[string]bool
	cursor    int
	keys      browseKeyMap
	help      help.Model
	width     int
	err       error
}

func newBrowseModel(app *App, nav *navigation.Navigation, completed map[string]bool) *browseModel {
	if completed == nil {
		completed = map[string]bool{}
	}
	opts := app.adjacency()
	var flat []domain.ContentResource
	for _, r := range navigation.FlattenNavigationResources(nav) {
		if opts.SkipSolutions && r.IsSolution() {
			continue
		}
		flat = append(flat, r)
	}

	m := &browseModel{
		app:       app,
		nav:       nav,
		flat:      flat,
		completed: completed,
		keys:      defaultBrowseKeys(),
		help:      help.New(),
		width:     80,
	}
	if next := navigation.NextUp(nav, completed, opts); next != nil {
		for i := range flat {
			if flat[i].ID == next.ID {
				m.cursor = i
				break
			}
		}
	}
	return m
}

func (m *browseModel) current() *domain.ContentResource {
	if m.cursor < 0 || m.cursor >= len(m.flat) {
		return nil
	}
	return &m.flat[m.cursor]
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case progressSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.completed[msg.id] = msg.done
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Next):
			if m.cursor < len(m.flat)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if cur := m.current(); cur != nil {
				return m, m.toggle(cur.ID, !m.completed[cur.ID])
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *browseModel) toggle(id string, done bool) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if done {
			err = app.Progress.Complete(ctx, app.UserID, id)
		} else {
			err = app.Progress.Reset(ctx, app.UserID, id)
		}
		return progressSavedMsg{id: id, done: done, err: err}
	}
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(m.nav.DisplayTitle()) + "\n")
	done, total := navigation.Progress(m.nav, m.completed)
	b.WriteString(formatter.RenderCompletion(done, total, 20) + "\n\n")

	cur := m.current()
	if cur == nil {
		b.WriteString(formatter.Dim("Nothing to browse.") + "\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	if slug, ok := cur.Slug(); ok {
		if crumbs := navigation.Breadcrumb(m.nav, slug); len(crumbs) > 0 {
			b.WriteString(formatter.FormatBreadcrumb(crumbs) + "\n")
		}
	}
	mark := formatter.Dim("○")
	if m.completed[cur.ID] {
		mark = formatter.StyleGreen.Render("✔")
	}
	fmt.Fprintf(&b, "%s %s  %s  %s\n", mark, formatter.Bold(cur.DisplayTitle()), formatter.TypeBadge(cur.Type),
		formatter.Dim(fmt.Sprintf("%d/%d", m.cursor+1, len(m.flat))))
	if desc, ok := cur.Fields.Str("description"); ok {
		b.WriteString(formatter.Dim(formatter.Truncate(desc, m.width)) + "\n")
	}
	b.WriteString("\n" + formatter.FormatSequence(m.flat, m.completed, cur.ID) + "\n")

	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse ROOT",
		Short: "Step through a course interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("browse needs an interactive terminal, try \"nav flatten\"")
			}
			ctx := context.Background()
			nav, err := app.loadNavigation(ctx, args[0])
			if err != nil {
				return err
			}
			completed, err := app.Progress.Completed(ctx, app.UserID)
			if err != nil {
				return err
			}
			return app.runProgram(newBrowseModel(app, nav, completed))
		},
	}
}
