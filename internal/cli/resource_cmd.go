package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/coursenav/internal/cli/formatter"
	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"res"},
		Short:   "Manage content resources",
	}

	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceShowCmd(app),
		newResourceListCmd(app),
		newResourceLinkCmd(app),
		newResourceUnlinkCmd(app),
		newResourceRemoveCmd(app),
	)

	return cmd
}

// parseFieldFlag splits key=value. Values that parse as JSON keep their JSON
// type; anything else is stored as a plain string.
func parseFieldFlag(kv string) (string, any, error) {
	key, raw, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("invalid field %q, expected key=value", kv)
	}
	if raw == "" {
		return key, "", nil
	}
	if v, err := oj.ParseString(raw); err == nil {
		return key, v, nil
	}
	return key, raw, nil
}

func newResourceAddCmd(app *App) *cobra.Command {
	var typ, slug, title, id, author string
	var fieldFlags []string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a content resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !app.interactive() {
					return errors.New("--interactive needs a terminal")
				}
				v := &resourceFormValues{Type: typ, Slug: slug, Title: title}
				if err := newResourceForm(v).Run(); err != nil {
					return err
				}
				typ, slug, title = v.Type, v.Slug, v.Title
			}
			if typ == "" {
				return errors.New("--type is required")
			}
			if err := validateSlug(slug); err != nil {
				return err
			}

			fields := domain.Fields{}
			for _, kv := range fieldFlags {
				k, v, err := parseFieldFlag(kv)
				if err != nil {
					return err
				}
				fields[k] = v
			}
			if slug != "" {
				fields["slug"] = slug
			} else if _, set := fields["slug"]; !set {
				fields["slug"] = nil
			}
			if title != "" {
				fields["title"] = title
			}

			r := &domain.ContentResource{ID: id, Type: typ, Fields: fields, CreatedByID: author}
			if err := app.Resources.Create(context.Background(), r); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (%s)\n", r.Type, r.DisplayTitle(), r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Resource type (workshop|tutorial|section|lesson|exercise|solution|post|...)")
	cmd.Flags().StringVar(&slug, "slug", "", "Resource slug")
	cmd.Flags().StringVar(&title, "title", "", "Resource title")
	cmd.Flags().StringVar(&id, "id", "", "Explicit resource ID (default: generated)")
	cmd.Flags().StringVar(&author, "author", "", "Creator ID")
	cmd.Flags().StringArrayVar(&fieldFlags, "field", nil, "Extra field as key=value (repeatable, JSON values allowed)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in type, slug and title with a form")

	return cmd
}

func newResourceShowCmd(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show ID|SLUG",
		Short: "Show resource details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			r, err := app.Resources.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if path != "" {
				matches, err := r.Fields.Lookup(path)
				if err != nil {
					return fmt.Errorf("invalid path %q: %w", path, err)
				}
				for _, m := range matches {
					fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(m))
				}
				return nil
			}
			parents, err := app.Resources.Parents(ctx, r.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResource(r, parents))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Print only the fields matching a JSONPath expression, e.g. $.title")

	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List content resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := app.Resources.List(context.Background(), typ)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResourceList(resources))
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Only list resources of this type")
	return cmd
}

func newResourceLinkCmd(app *App) *cobra.Command {
	var position int

	cmd := &cobra.Command{
		Use:   "link PARENT CHILD",
		Short: "Place CHILD under PARENT at a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			parent, err := app.Resources.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("parent %q: %w", args[0], err)
			}
			child, err := app.Resources.Get(ctx, args[1])
			if err != nil {
				return fmt.Errorf("child %q: %w", args[1], err)
			}
			if err := app.Resources.Link(ctx, parent.ID, child.ID, position); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked %s under %s at position %d\n",
				child.DisplayTitle(), parent.DisplayTitle(), position)
			return nil
		},
	}

	cmd.Flags().IntVar(&position, "position", 0, "Position among the parent's children")
	return cmd
}

func newResourceUnlinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink PARENT CHILD",
		Short: "Remove CHILD from PARENT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			parent, err := app.Resources.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("parent %q: %w", args[0], err)
			}
			child, err := app.Resources.Get(ctx, args[1])
			if err != nil {
				return fmt.Errorf("child %q: %w", args[1], err)
			}
			if err := app.Resources.Unlink(ctx, parent.ID, child.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %s from %s\n", child.DisplayTitle(), parent.DisplayTitle())
			return nil
		},
	}
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID|SLUG",
		Short: "Delete a resource and its links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			r, err := app.Resources.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Resources.Delete(ctx, r.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", r.DisplayTitle(), r.ID)
			return nil
		},
	}
}
