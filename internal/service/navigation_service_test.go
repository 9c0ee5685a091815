package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/alexanderramin/coursenav/internal/repository"
	"github.com/alexanderramin/coursenav/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newNavService(t *testing.T, maxDepth int) (NavigationService, *testutil.Course, *observer.ObservedLogs) {
	t.Helper()
	database := testutil.NewTestDB(t)
	course := testutil.SeedCourse(t, database)
	core, logs := observer.New(zap.WarnLevel)
	svc := NewNavigationService(
		repository.NewSQLiteResourceRepo(database),
		repository.NewSQLiteLinkRepo(database),
		repository.NewSQLiteProductRepo(database),
		maxDepth,
		zap.New(core),
	)
	return svc, course, logs
}

func TestNavigationService_LoadByIDAndSlug(t *testing.T) {
	svc, course, _ := newNavService(t, navigation.MaxDepth)
	ctx := context.Background()

	for _, key := range []string{course.Workshop.ID, "intro-to-go"} {
		nav, err := svc.Load(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, nav, key)

		assert.Equal(t, course.Workshop.ID, nav.ID)
		assert.Equal(t, 3, nav.Depth())
		require.Len(t, nav.Resources, 2)
		assert.Equal(t, course.Section.ID, nav.Resources[0].ResourceID)
		assert.Equal(t, course.Workshop.ID, nav.Resources[0].ResourceOfID)
		assert.Equal(t, course.Lesson3.ID, nav.Resources[1].ResourceID)

		require.Len(t, nav.Parents, 1)
		assert.Equal(t, "Go Bundle", nav.Parents[0].Name)
	}
}

func TestNavigationService_QueriesOverLoadedTree(t *testing.T) {
	svc, course, _ := newNavService(t, navigation.MaxDepth)
	nav, err := svc.Load(context.Background(), "intro-to-go")
	require.NoError(t, err)
	require.NotNil(t, nav)

	first, ok := navigation.FirstResourceSlug(nav)
	require.True(t, ok)
	assert.Equal(t, "hello-world", first)

	sec, ok := navigation.FindSectionIDForResourceSlug(nav, "variables")
	require.True(t, ok)
	assert.Equal(t, course.Section.ID, sec)

	_, ok = navigation.FindSectionIDForResourceSlug(nav, "wrap-up")
	assert.False(t, ok)

	flat := navigation.FlattenNavigationResources(nav)
	got := make([]string, 0, len(flat))
	for _, r := range flat {
		got = append(got, r.ID)
	}
	assert.Equal(t, []string{course.Lesson1.ID, course.Solution1.ID, course.Lesson2.ID, course.Lesson3.ID}, got)

	parent := navigation.FindParentLessonForSolution(nav, course.Solution1.ID)
	require.NotNil(t, parent)
	assert.Equal(t, course.Lesson1.ID, parent.ID)
}

func TestNavigationService_MissingRootLogsWarning(t *testing.T) {
	svc, _, logs := newNavService(t, navigation.MaxDepth)

	nav, err := svc.Load(context.Background(), "no-such-course")
	require.NoError(t, err)
	assert.Nil(t, nav)

	entries := logs.FilterMessage("navigation root not found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "no-such-course", entries[0].ContextMap()["root"])
}

func TestNavigationService_MaxDepthLimitsLevels(t *testing.T) {
	svc, _, _ := newNavService(t, 1)

	nav, err := svc.Load(context.Background(), "intro-to-go")
	require.NoError(t, err)
	require.NotNil(t, nav)
	assert.Equal(t, 1, nav.Depth())
	assert.Empty(t, nav.Resources[0].Resource.Resources)
}

func TestNavigationService_LeafRoot(t *testing.T) {
	svc, course, _ := newNavService(t, navigation.MaxDepth)

	nav, err := svc.Load(context.Background(), course.Lesson3.ID)
	require.NoError(t, err)
	require.NotNil(t, nav)
	assert.Empty(t, nav.Resources)
	assert.Empty(t, nav.Parents)
	assert.Empty(t, navigation.FlattenNavigationResources(nav))
}

func TestNavigationService_SharedChildExpandsAtEachPlacement(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, database)
	links := repository.NewSQLiteLinkRepo(database)
	// lesson-1 (with its solution) also appears directly under the workshop.
	require.NoError(t, links.Upsert(ctx, testutil.NewTestLink(course.Workshop.ID, course.Lesson1.ID, 2)))

	svc := NewNavigationService(
		repository.NewSQLiteResourceRepo(database), links, repository.NewSQLiteProductRepo(database),
		navigation.MaxDepth, nil,
	)
	nav, err := svc.Load(ctx, course.Workshop.ID)
	require.NoError(t, err)
	require.NotNil(t, nav)
	require.Len(t, nav.Resources, 3)
	top := nav.Resources[2].Resource
	assert.Equal(t, course.Lesson1.ID, top.ID)
	require.Len(t, top.Resources, 1)
	assert.Equal(t, course.Solution1.ID, top.Resources[0].ResourceID)
}

// unrepresentableTimes returns resources with a timestamp RFC3339 cannot
// express, which the validator must reject.
type unrepresentableTimes struct {
	repository.ResourceRepo
}

func (u unrepresentableTimes) GetByID(ctx context.Context, id string) (*domain.ContentResource, error) {
	r, err := u.ResourceRepo.GetByID(ctx, id)
	if err == nil {
		r.CreatedAt = time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return r, err
}

func TestNavigationService_InvalidTreeLogsWarning(t *testing.T) {
	database := testutil.NewTestDB(t)
	course := testutil.SeedCourse(t, database)
	core, logs := observer.New(zap.WarnLevel)

	svc := NewNavigationService(
		unrepresentableTimes{repository.NewSQLiteResourceRepo(database)},
		repository.NewSQLiteLinkRepo(database),
		repository.NewSQLiteProductRepo(database),
		navigation.MaxDepth,
		zap.New(core),
	)
	nav, err := svc.Load(context.Background(), course.Workshop.ID)
	require.NoError(t, err)
	assert.Nil(t, nav)

	entries := logs.FilterMessage("navigation failed validation").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["details"], "createdAt")
}

func TestNavigationService_StorageErrorIsReturned(t *testing.T) {
	database := testutil.NewTestDB(t)
	course := testutil.SeedCourse(t, database)
	svc := NewNavigationService(
		repository.NewSQLiteResourceRepo(database),
		repository.NewSQLiteLinkRepo(database),
		repository.NewSQLiteProductRepo(database),
		navigation.MaxDepth, nil,
	)
	require.NoError(t, database.Close())

	_, err := svc.Load(context.Background(), course.Workshop.ID)
	assert.Error(t, err)
}
