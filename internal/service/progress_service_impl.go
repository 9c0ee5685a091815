package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/alexanderramin/coursenav/internal/repository"
)

type progressService struct {
	progress  repository.ProgressRepo
	resources repository.ResourceRepo
	nav       NavigationService
	opts      navigation.AdjacencyOptions
	observer  UseCaseObserver
}

func NewProgressService(
	progress repository.ProgressRepo,
	resources repository.ResourceRepo,
	nav NavigationService,
	opts navigation.AdjacencyOptions,
	observers ...UseCaseObserver,
) ProgressService {
	return &progressService{
		progress:  progress,
		resources: resources,
		nav:       nav,
		opts:      opts,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Complete marks resourceID (an id or slug) done for userID.
func (s *progressService) Complete(ctx context.Context, userID, resourceID string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"resource": resourceID}
	defer observe(ctx, s.observer, "complete-resource", startedAt, fields, &err)

	if userID == "" {
		return fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	res, err := resolveResource(ctx, s.resources, resourceID)
	if err != nil {
		return err
	}
	return s.progress.MarkComplete(ctx, &domain.ResourceProgress{
		UserID:      userID,
		ResourceID:  res.ID,
		CompletedAt: time.Now().UTC().Truncate(time.Second),
	})
}

func (s *progressService) Reset(ctx context.Context, userID, resourceID string) error {
	res, err := resolveResource(ctx, s.resources, resourceID)
	if err != nil {
		return err
	}
	return s.progress.Clear(ctx, userID, res.ID)
}

func (s *progressService) Completed(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := s.progress.ListCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(rows))
	for _, p := range rows {
		done[p.ResourceID] = true
	}
	return done, nil
}

func (s *progressService) NextUp(ctx context.Context, userID, rootIDOrSlug string) (*CourseProgress, error) {
	nav, err := s.nav.Load(ctx, rootIDOrSlug)
	if err != nil || nav == nil {
		return nil, err
	}
	done, err := s.Completed(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, total := navigation.Progress(nav, done)
	return &CourseProgress{
		Navigation: nav,
		Next:       navigation.NextUp(nav, done, s.opts),
		Done:       completed,
		Total:      total,
	}, nil
}
