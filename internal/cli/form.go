package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/coursenav/internal/cli/formatter"
	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// coursenavHuhTheme returns a huh theme using the formatter palette.
func coursenavHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// resourceFormValues backs the interactive resource form.
type resourceFormValues struct {
	Type  string
	Slug  string
	Title string
}

// validateSlug rejects slugs containing whitespace. An empty slug is
// allowed and stored as null.
func validateSlug(s string) error {
	if strings.ContainsAny(s, " \t\n") {
		return errors.New("slug must not contain whitespace")
	}
	return nil
}

// newResourceForm builds the form used by "resource add --interactive".
// Values already set on v are used as defaults.
func newResourceForm(v *resourceFormValues) *huh.Form {
	options := make([]huh.Option[string], 0, len(domain.KnownResourceTypes))
	for _, t := range domain.KnownResourceTypes {
		options = append(options, huh.NewOption(t, t))
	}
	if v.Type == "" {
		v.Type = domain.TypeLesson
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(options...).
				Value(&v.Type),
			huh.NewInput().
				Title("Slug").
				Description("URL-safe identifier, leave blank for none").
				Validate(validateSlug).
				Value(&v.Slug),
			huh.NewInput().
				Title("Title").
				Value(&v.Title),
		),
	).WithTheme(coursenavHuhTheme()).WithShowHelp(false)
}
