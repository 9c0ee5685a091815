package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCourse() *Navigation {
	return workshop(
		section("section-1",
			lesson("lesson-1", "lesson-1", solution("solution-1")),
			lesson("lesson-2", "lesson-2"),
		),
		lesson("lesson-3", "lesson-3"),
	)
}

func TestAdjacent(t *testing.T) {
	nav := sampleCourse()

	tests := []struct {
		name     string
		id       string
		opts     AdjacencyOptions
		wantPrev string
		wantNext string
	}{
		{"first", "lesson-1", AdjacencyOptions{}, "", "solution-1"},
		{"middle", "solution-1", AdjacencyOptions{}, "lesson-1", "lesson-2"},
		{"last", "lesson-3", AdjacencyOptions{}, "lesson-2", ""},
		{"skip solutions", "lesson-1", AdjacencyOptions{SkipSolutions: true}, "", "lesson-2"},
		{"skip solutions backwards", "lesson-2", AdjacencyOptions{SkipSolutions: true}, "lesson-1", "lesson-3"},
		{"unknown", "missing", AdjacencyOptions{}, "", ""},
		{"sections are not positions", "section-1", AdjacencyOptions{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, next := Adjacent(nav, tt.id, tt.opts)
			if tt.wantPrev == "" {
				assert.Nil(t, prev)
			} else {
				require.NotNil(t, prev)
				assert.Equal(t, tt.wantPrev, prev.ID)
			}
			if tt.wantNext == "" {
				assert.Nil(t, next)
			} else {
				require.NotNil(t, next)
				assert.Equal(t, tt.wantNext, next.ID)
			}
		})
	}
}

func TestAdjacent_NilNavigation(t *testing.T) {
	prev, next := Adjacent(nil, "lesson-1", AdjacencyOptions{})
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestNextUp(t *testing.T) {
	nav := sampleCourse()

	got := NextUp(nav, nil, AdjacencyOptions{})
	require.NotNil(t, got)
	assert.Equal(t, "lesson-1", got.ID)

	got = NextUp(nav, map[string]bool{"lesson-1": true}, AdjacencyOptions{})
	require.NotNil(t, got)
	assert.Equal(t, "solution-1", got.ID)

	got = NextUp(nav, map[string]bool{"lesson-1": true}, AdjacencyOptions{SkipSolutions: true})
	require.NotNil(t, got)
	assert.Equal(t, "lesson-2", got.ID)

	all := map[string]bool{"lesson-1": true, "solution-1": true, "lesson-2": true, "lesson-3": true}
	assert.Nil(t, NextUp(nav, all, AdjacencyOptions{}))
	assert.Nil(t, NextUp(nil, nil, AdjacencyOptions{}))
}

func TestProgress(t *testing.T) {
	nav := sampleCourse()

	done, total := Progress(nav, map[string]bool{"lesson-2": true, "solution-1": true})
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, total)

	done, total = Progress(nil, nil)
	assert.Zero(t, done)
	assert.Zero(t, total)
}

func TestBreadcrumb(t *testing.T) {
	nav := sampleCourse()

	assert.Equal(t, []string{"workshop-1", "section-1", "lesson-2"}, ids(Breadcrumb(nav, "lesson-2")))
	assert.Equal(t, []string{"workshop-1", "lesson-3"}, ids(Breadcrumb(nav, "lesson-3")))
	assert.Equal(t, []string{"workshop-1", "section-1", "lesson-1", "solution-1"}, ids(Breadcrumb(nav, "solution-1-slug")))
	assert.Equal(t, []string{"workshop-1"}, ids(Breadcrumb(nav, "workshop")))
	assert.Empty(t, Breadcrumb(nav, "missing"))
	assert.Empty(t, Breadcrumb(nav, ""))
	assert.Empty(t, Breadcrumb(nil, "lesson-1"))
}

func TestBreadcrumb_DoesNotAliasSiblingPaths(t *testing.T) {
	nav := workshop(
		section("section-1", lesson("lesson-1", "a"), lesson("lesson-2", "b"), lesson("lesson-3", "c")),
	)
	first := Breadcrumb(nav, "a")
	second := Breadcrumb(nav, "c")
	assert.Equal(t, []string{"workshop-1", "section-1", "lesson-1"}, ids(first))
	assert.Equal(t, []string{"workshop-1", "section-1", "lesson-3"}, ids(second))
}
