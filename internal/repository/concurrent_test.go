package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/repository"
	"github.com/alexanderramin/coursenav/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestConcurrentAccess_ReadDuringWrite verifies that child listings stay
// consistent while another goroutine keeps appending lessons. WAL mode lets
// readers proceed alongside the single writer.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, database)

	resources := repository.NewSQLiteResourceRepo(database)
	links := repository.NewSQLiteLinkRepo(database)

	const writes = 20
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for i := 0; i < writes; i++ {
			res := testutil.NewTestResource(domain.TypeLesson, fmt.Sprintf("extra-%d", i))
			if err := resources.Create(gctx, res); err != nil {
				return fmt.Errorf("create %d: %w", i, err)
			}
			if err := links.Upsert(gctx, testutil.NewTestLink(course.Section.ID, res.ID, 10+i)); err != nil {
				return fmt.Errorf("link %d: %w", i, err)
			}
		}
		return nil
	})
	for r := 0; r < 4; r++ {
		g.Go(func() error {
			for i := 0; i < writes; i++ {
				children, err := links.ListChildren(gctx, course.Section.ID)
				if err != nil {
					return err
				}
				if len(children) < 2 || children[0].Resource.ID != course.Lesson1.ID {
					return fmt.Errorf("unexpected children snapshot: %d rows", len(children))
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	children, err := links.ListChildren(ctx, course.Section.ID)
	require.NoError(t, err)
	assert.Len(t, children, 2+writes)
}
