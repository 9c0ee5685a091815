package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func res(id, typ, slug, title string, children ...navigation.Resource) navigation.Resource {
	fields := domain.Fields{}
	if slug != "" {
		fields["slug"] = slug
	}
	if title != "" {
		fields["title"] = title
	}
	r := navigation.Resource{ContentResource: domain.ContentResource{ID: id, Type: typ, Fields: fields}}
	for i, c := range children {
		r.Resources = append(r.Resources, navigation.Wrap(id, i, c))
	}
	return r
}

func sampleNav() *navigation.Navigation {
	return &navigation.Navigation{
		Resource: res("w", domain.TypeWorkshop, "intro", "Intro to Go",
			res("s", domain.TypeSection, "basics", "Basics",
				res("l1", domain.TypeLesson, "hello", "Hello",
					res("sol", domain.TypeSolution, "hello-solution", "")),
				res("l2", domain.TypeLesson, "vars", "Variables"),
			),
			res("l3", domain.TypeLesson, "wrap-up", "Wrap Up"),
		),
		Parents: []domain.Product{{ID: "p", Name: "Go Bundle"}},
	}
}

func TestNavigationTreeItems(t *testing.T) {
	items := NavigationTreeItems(sampleNav(), map[string]bool{"l1": true}, "l2")
	require.Len(t, items, 6)

	assert.Equal(t, 0, items[0].Level)
	assert.Equal(t, 3, items[3].Level)
	assert.Equal(t, TreeStateDone, items[2].State)
	assert.Equal(t, TreeStateCurrent, items[4].State)
	assert.True(t, items[5].IsLast)
	assert.Equal(t, []bool{true, true}, items[3].Open)
	assert.Equal(t, domain.TypeSolution, items[3].Detail)

	assert.Nil(t, NavigationTreeItems(nil, nil, ""))
}

func TestFormatNavigationTree(t *testing.T) {
	out := FormatNavigationTree(sampleNav(), nil, "")
	assert.Contains(t, out, "NAVIGATION")
	assert.Contains(t, out, "Intro to Go (intro)")
	assert.Contains(t, out, "└─ Wrap Up (wrap-up)")
	assert.Contains(t, out, "Go Bundle")
	assert.Contains(t, FormatNavigationTree(nil, nil, ""), "No navigation")
}

func TestFormatSequence(t *testing.T) {
	nav := sampleNav()
	out := FormatSequence(navigation.FlattenNavigationResources(nav), map[string]bool{"l1": true}, "sol")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "✔")
	assert.Contains(t, lines[0], "1.")
	assert.Contains(t, lines[1], "▶")
	assert.Contains(t, lines[1], "hello-solution")
	assert.Contains(t, lines[3], "Wrap Up")

	assert.Contains(t, FormatSequence(nil, nil, ""), "No resources")
}

func TestFormatBreadcrumb(t *testing.T) {
	path := navigation.Breadcrumb(sampleNav(), "vars")
	assert.Equal(t, "Intro to Go › Basics › Variables", FormatBreadcrumb(path))
	assert.Contains(t, FormatBreadcrumb(nil), "not found")
}

func TestFormatIssues(t *testing.T) {
	assert.Contains(t, FormatIssues(nil), "valid navigation")

	out := FormatIssues([]navigation.Issue{
		{Path: "", Message: "expected object, got array"},
		{Path: "resources[0].resource.id", Message: "required"},
	})
	assert.Contains(t, out, "2 issue(s)")
	assert.Contains(t, out, "(root) expected object")
	assert.Contains(t, out, "resources[0].resource.id required")
}

func TestFormatResourceAndFields(t *testing.T) {
	r := &domain.ContentResource{
		ID:     "0123456789abcdef",
		Type:   domain.TypeLesson,
		Fields: domain.Fields{"slug": "hello", "title": "Hello", "body": "# Hi"},

		UpdatedAt: time.Now().Add(-3 * 24 * time.Hour),
	}
	out := FormatResource(r, []domain.ResourceLink{{ResourceOfID: "section-123456", Position: 2}})
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "section-@2")
	assert.Contains(t, out, "3d ago")
	assert.Contains(t, out, `"body"`)
	assert.Contains(t, out, `"# Hi"`)

	fields := FormatFields(r.Fields)
	assert.Less(t, strings.Index(fields, "body"), strings.Index(fields, "slug"))
	assert.Equal(t, "{}", FormatFields(nil))
}

func TestFormatResourceList(t *testing.T) {
	out := FormatResourceList([]*domain.ContentResource{
		{ID: "abc", Type: domain.TypeLesson, Fields: domain.Fields{"slug": "hello"}},
		{ID: "def", Type: domain.TypeSection, Fields: domain.Fields{"slug": nil}},
	})
	assert.Contains(t, out, "SLUG")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "--")
	assert.Contains(t, FormatResourceList(nil), "No resources")
}

func TestFormatProductList(t *testing.T) {
	out := FormatProductList([]*domain.Product{
		{ID: "2", Name: "Zeta", Type: domain.ProductLive, Status: domain.ProductActive},
		{ID: "1", Name: "Alpha", Type: domain.ProductSelfPaced, Status: domain.ProductArchived},
	})
	assert.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "Zeta"))
	assert.Contains(t, out, "Archived")
	assert.Contains(t, FormatProductList(nil), "No products")
}

func TestFormatNextUp(t *testing.T) {
	nav := sampleNav()
	next := navigation.NextUp(nav, map[string]bool{"l1": true}, navigation.AdjacencyOptions{SkipSolutions: true})
	require.NotNil(t, next)
	slug, _ := next.Slug()
	out := FormatNextUp(next, navigation.Breadcrumb(nav, slug), 1, 3)
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "Up next")
	assert.Contains(t, out, "Variables")
	assert.Contains(t, out, "Basics")

	assert.Contains(t, FormatNextUp(nil, nil, 3, 3), "All caught up")
}
