package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/alexanderramin/coursenav/internal/repository"
	"github.com/alexanderramin/coursenav/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(t *testing.T, opts navigation.AdjacencyOptions) (ProgressService, *testutil.Course) {
	t.Helper()
	database := testutil.NewTestDB(t)
	course := testutil.SeedCourse(t, database)
	resources := repository.NewSQLiteResourceRepo(database)
	nav := NewNavigationService(resources,
		repository.NewSQLiteLinkRepo(database),
		repository.NewSQLiteProductRepo(database),
		navigation.MaxDepth, nil,
	)
	return NewProgressService(repository.NewSQLiteProgressRepo(database), resources, nav, opts), course
}

func TestProgressService_NextUp(t *testing.T) {
	svc, course := newProgressService(t, navigation.AdjacencyOptions{})
	ctx := context.Background()

	cp, err := svc.NextUp(ctx, "u1", "intro-to-go")
	require.NoError(t, err)
	require.NotNil(t, cp)
	require.NotNil(t, cp.Next)
	assert.Equal(t, course.Lesson1.ID, cp.Next.ID)
	assert.Equal(t, 0, cp.Done)
	assert.Equal(t, 3, cp.Total)

	require.NoError(t, svc.Complete(ctx, "u1", "hello-world"))
	cp, err = svc.NextUp(ctx, "u1", "intro-to-go")
	require.NoError(t, err)
	assert.Equal(t, course.Solution1.ID, cp.Next.ID)
	assert.Equal(t, 1, cp.Done)

	// Another learner is unaffected.
	cp, err = svc.NextUp(ctx, "u2", "intro-to-go")
	require.NoError(t, err)
	assert.Equal(t, course.Lesson1.ID, cp.Next.ID)
}

func TestProgressService_SkipSolutions(t *testing.T) {
	svc, course := newProgressService(t, navigation.AdjacencyOptions{SkipSolutions: true})
	ctx := context.Background()

	require.NoError(t, svc.Complete(ctx, "u1", course.Lesson1.ID))
	cp, err := svc.NextUp(ctx, "u1", course.Workshop.ID)
	require.NoError(t, err)
	assert.Equal(t, course.Lesson2.ID, cp.Next.ID)
}

func TestProgressService_ResetAndFinish(t *testing.T) {
	svc, course := newProgressService(t, navigation.AdjacencyOptions{})
	ctx := context.Background()

	for _, id := range []string{course.Lesson1.ID, course.Solution1.ID, course.Lesson2.ID, course.Lesson3.ID} {
		require.NoError(t, svc.Complete(ctx, "u1", id))
	}
	cp, err := svc.NextUp(ctx, "u1", "intro-to-go")
	require.NoError(t, err)
	assert.Nil(t, cp.Next)
	assert.Equal(t, 3, cp.Done)

	require.NoError(t, svc.Reset(ctx, "u1", "variables"))
	done, err := svc.Completed(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, done[course.Lesson2.ID])
	assert.True(t, done[course.Lesson1.ID])
}

func TestProgressService_Errors(t *testing.T) {
	svc, _ := newProgressService(t, navigation.AdjacencyOptions{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.Complete(ctx, "", "hello-world"), ErrInvalidInput)
	assert.ErrorIs(t, svc.Complete(ctx, "u1", "missing"), repository.ErrNotFound)

	cp, err := svc.NextUp(ctx, "u1", "missing")
	require.NoError(t, err)
	assert.Nil(t, cp)
}
