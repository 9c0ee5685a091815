package navigation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestQueries_ConcurrentReaders runs every query against one shared tree from
// many goroutines; the tree must come out unchanged.
func TestQueries_ConcurrentReaders(t *testing.T) {
	nav := sampleCourse()
	before := Encode(nav)

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			if got := ids(FlattenNavigationResources(nav)); len(got) != 4 {
				return fmt.Errorf("flatten returned %v", got)
			}
			if sec, ok := FindSectionIDForResourceSlug(nav, "lesson-2"); !ok || sec != "section-1" {
				return fmt.Errorf("section lookup returned %q, %v", sec, ok)
			}
			if slug, ok := FirstResourceSlug(nav); !ok || slug != "lesson-1" {
				return fmt.Errorf("first slug returned %q, %v", slug, ok)
			}
			if p := FindParentLessonForSolution(nav, "solution-1"); p == nil || p.ID != "lesson-1" {
				return fmt.Errorf("parent lookup returned %v", p)
			}
			if _, next := Adjacent(nav, "lesson-1", AdjacencyOptions{}); next == nil {
				return fmt.Errorf("adjacent returned no next")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, before, Encode(nav))
}
