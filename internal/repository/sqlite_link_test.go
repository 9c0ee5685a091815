package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/repository"
	"github.com/alexanderramin/coursenav/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func childIDs(lrs []repository.LinkedResource) []string {
	out := make([]string, 0, len(lrs))
	for _, lr := range lrs {
		out = append(out, lr.Resource.ID)
	}
	return out
}

func TestLinkRepo_ListChildrenOrderedByPosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, db)
	links := repository.NewSQLiteLinkRepo(db)

	children, err := links.ListChildren(ctx, course.Section.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{course.Lesson1.ID, course.Lesson2.ID}, childIDs(children))
	assert.Equal(t, course.Section.ID, children[0].Link.ResourceOfID)
	assert.Equal(t, course.Lesson1.ID, children[0].Link.ResourceID)
	assert.Equal(t, 1, children[1].Link.Position)

	slug, ok := children[1].Resource.Slug()
	assert.True(t, ok)
	assert.Equal(t, "variables", slug)
}

func TestLinkRepo_UpsertMovesPosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, db)
	links := repository.NewSQLiteLinkRepo(db)

	require.NoError(t, links.Upsert(ctx, testutil.NewTestLink(course.Section.ID, course.Lesson1.ID, 5)))

	children, err := links.ListChildren(ctx, course.Section.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{course.Lesson2.ID, course.Lesson1.ID}, childIDs(children))
}

func TestLinkRepo_ListChildrenOf(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, db)
	links := repository.NewSQLiteLinkRepo(db)

	byParent, err := links.ListChildrenOf(ctx, []string{course.Section.ID, course.Lesson1.ID, course.Lesson3.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{course.Lesson1.ID, course.Lesson2.ID}, childIDs(byParent[course.Section.ID]))
	assert.Equal(t, []string{course.Solution1.ID}, childIDs(byParent[course.Lesson1.ID]))
	assert.Empty(t, byParent[course.Lesson3.ID])

	empty, err := links.ListChildrenOf(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLinkRepo_ListParentsAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, db)
	links := repository.NewSQLiteLinkRepo(db)

	parents, err := links.ListParents(ctx, course.Lesson1.ID)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	assert.Equal(t, course.Section.ID, parents[0].ResourceOfID)

	require.NoError(t, links.Delete(ctx, course.Section.ID, course.Lesson1.ID))
	assert.ErrorIs(t, links.Delete(ctx, course.Section.ID, course.Lesson1.ID), repository.ErrNotFound)

	parents, err = links.ListParents(ctx, course.Lesson1.ID)
	require.NoError(t, err)
	assert.Empty(t, parents)
}

func TestLinkRepo_RejectsSelfLink(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	resources := repository.NewSQLiteResourceRepo(db)
	links := repository.NewSQLiteLinkRepo(db)

	res := testutil.NewTestResource(domain.TypeLesson, "loop")
	require.NoError(t, resources.Create(ctx, res))
	assert.Error(t, links.Upsert(ctx, testutil.NewTestLink(res.ID, res.ID, 0)))
}

func TestLinkRepo_DeletingResourceCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, db)
	resources := repository.NewSQLiteResourceRepo(db)
	links := repository.NewSQLiteLinkRepo(db)

	require.NoError(t, resources.Delete(ctx, course.Lesson1.ID))

	children, err := links.ListChildren(ctx, course.Section.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{course.Lesson2.ID}, childIDs(children))

	parents, err := links.ListParents(ctx, course.Solution1.ID)
	require.NoError(t, err)
	assert.Empty(t, parents)
}
