package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// NavigationTreeItems flattens nav into TreeItems in pre-order. Completed
// resources are marked done and currentID is highlighted.
func NavigationTreeItems(nav *navigation.Navigation, completed map[string]bool, currentID string) []TreeItem {
	if nav == nil {
		return nil
	}
	var items []TreeItem
	var walk func(r *navigation.Resource, level int, isLast bool, open []bool)
	walk = func(r *navigation.Resource, level int, isLast bool, open []bool) {
		state := TreeStateNone
		switch {
		case r.ID == currentID:
			state = TreeStateCurrent
		case completed[r.ID]:
			state = TreeStateDone
		}
		items = append(items, TreeItem{
			Title:  resourceLabel(&r.ContentResource),
			Level:  level,
			IsLast: isLast,
			Open:   open,
			State:  state,
			Detail: r.Type,
		})
		childOpen := open
		if level > 0 {
			childOpen = append(open[:len(open):len(open)], !isLast)
		}
		for i := range r.Resources {
			walk(&r.Resources[i].Resource, level+1, i == len(r.Resources)-1, childOpen)
		}
	}
	walk(&nav.Resource, 0, true, nil)
	return items
}

// FormatNavigationTree renders the whole tree inside a box, followed by the
// products that bundle it.
func FormatNavigationTree(nav *navigation.Navigation, completed map[string]bool, currentID string) string {
	if nav == nil {
		return Dim("No navigation.")
	}
	var b strings.Builder
	b.WriteString(RenderTree(NavigationTreeItems(nav, completed, currentID)))
	if len(nav.Parents) > 0 {
		names := make([]string, 0, len(nav.Parents))
		for _, p := range nav.Parents {
			names = append(names, StylePurple.Render(p.Name))
		}
		b.WriteString("\n" + Dim("in ") + strings.Join(names, Dim(", ")))
	}
	return RenderBox("Navigation", strings.TrimRight(b.String(), "\n"))
}

// FormatSequence renders the flattened, learner-facing order as a numbered list.
func FormatSequence(flat []domain.ContentResource, completed map[string]bool, currentID string) string {
	if len(flat) == 0 {
		return Dim("No resources.")
	}
	var b strings.Builder
	width := len(fmt.Sprint(len(flat)))
	for i := range flat {
		r := &flat[i]
		marker := "  "
		title := resourceLabel(r)
		switch {
		case r.ID == currentID:
			marker = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		case completed[r.ID]:
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		}
		fmt.Fprintf(&b, "%s%s %s %s\n", marker, Dim(fmt.Sprintf("%*d.", width, i+1)), title, TypeBadge(r.Type))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatBreadcrumb joins a root-to-resource path with › separators.
func FormatBreadcrumb(path []domain.ContentResource) string {
	if len(path) == 0 {
		return Dim("not found")
	}
	parts := make([]string, 0, len(path))
	for i := range path {
		label := path[i].DisplayTitle()
		if i == len(path)-1 {
			label = Bold(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, Dim(" › "))
}

// FormatIssues renders validation issues one per line.
func FormatIssues(issues []navigation.Issue) string {
	if len(issues) == 0 {
		return StyleGreen.Render("✔ valid navigation")
	}
	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("✖ %d issue(s)", len(issues))) + "\n")
	for _, is := range issues {
		path := is.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(&b, "  %s %s\n", StyleYellow.Render(path), is.Message)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatResourceList renders resources as a table.
func FormatResourceList(resources []*domain.ContentResource) string {
	if len(resources) == 0 {
		return Dim("No resources.")
	}
	cols := []Column{{Header: "ID"}, {Header: "TYPE"}, {Header: "SLUG", MaxWidth: 40}, {Header: "TITLE", MaxWidth: 48}}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		slug, ok := r.Slug()
		if !ok {
			slug = Dim("--")
		}
		title, ok := r.Fields.Title()
		if !ok {
			title = Dim("--")
		}
		rows = append(rows, []string{TruncID(r.ID), TypeBadge(r.Type), slug, title})
	}
	return RenderColumns(cols, rows)
}

// FormatResource renders a single resource card with its fields as
// indented JSON.
func FormatResource(r *domain.ContentResource, parents []domain.ResourceLink) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(r.DisplayTitle()) + "  " + TypeBadge(r.Type) + "\n\n")
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID      "), r.ID)
	if slug, ok := r.Slug(); ok {
		fmt.Fprintf(&b, "%s  %s\n", Dim("SLUG    "), slug)
	}
	if r.CreatedByID != "" {
		fmt.Fprintf(&b, "%s  %s\n", Dim("AUTHOR  "), r.CreatedByID)
	}
	fmt.Fprintf(&b, "%s  %s\n", Dim("CREATED "), HumanDate(r.CreatedAt))
	updated := HumanDate(r.UpdatedAt)
	if !r.UpdatedAt.IsZero() {
		updated += Dim(" (" + RelativeDateFrom(r.UpdatedAt, time.Now()) + ")")
	}
	fmt.Fprintf(&b, "%s  %s\n", Dim("UPDATED "), updated)
	if len(parents) > 0 {
		ids := make([]string, 0, len(parents))
		for _, p := range parents {
			ids = append(ids, fmt.Sprintf("%s@%d", TruncID(p.ResourceOfID), p.Position))
		}
		fmt.Fprintf(&b, "%s  %s\n", Dim("IN      "), strings.Join(ids, ", "))
	}
	b.WriteString("\n" + StyleDim.Render("FIELDS") + "\n" + FormatFields(r.Fields))
	return RenderBox("", b.String())
}

// FormatFields renders a fields bag as sorted, indented JSON.
func FormatFields(f domain.Fields) string {
	if len(f) == 0 {
		return "{}"
	}
	opts := ojg.DefaultOptions
	opts.Sort = true
	opts.Indent = 2
	return oj.JSON(map[string]any(f), &opts)
}

// FormatProductList renders products as a table.
func FormatProductList(products []*domain.Product) string {
	if len(products) == 0 {
		return Dim("No products.")
	}
	sorted := append([]*domain.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	headers := []string{"ID", "NAME", "TYPE", "STATUS"}
	rows := make([][]string, 0, len(sorted))
	for _, p := range sorted {
		rows = append(rows, []string{TruncID(p.ID), Bold(p.Name), StylePurple.Render(string(p.Type)), ProductStatusPill(p.Status)})
	}
	return RenderTable(headers, rows)
}

// FormatNextUp renders the "up next" card for a learner.
func FormatNextUp(next *domain.ContentResource, crumbs []domain.ContentResource, done, total int) string {
	var b strings.Builder
	b.WriteString(RenderCompletion(done, total, 20) + "\n\n")
	if next == nil {
		b.WriteString(StyleGreen.Render("✔ All caught up"))
	} else {
		b.WriteString(Dim("Up next  ") + StyleBold.Render(next.DisplayTitle()) + "  " + TypeBadge(next.Type))
		if len(crumbs) > 0 {
			b.WriteString("\n" + Dim("         ") + FormatBreadcrumb(crumbs))
		}
	}
	return RenderBox("Progress", b.String())
}

func resourceLabel(r *domain.ContentResource) string {
	label := r.DisplayTitle()
	if slug, ok := r.Slug(); ok && slug != label {
		label += " " + Dim("("+slug+")")
	}
	return label
}
