package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/alexanderramin/coursenav/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type navigationService struct {
	resources repository.ResourceRepo
	links     repository.LinkRepo
	products  repository.ProductRepo
	maxDepth  int
	logger    *zap.Logger
	observer  UseCaseObserver
}

// NewNavigationService builds the tree loader. maxDepth is clamped to
// 1..navigation.MaxDepth; a nil logger discards output.
func NewNavigationService(
	resources repository.ResourceRepo,
	links repository.LinkRepo,
	products repository.ProductRepo,
	maxDepth int,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) NavigationService {
	if maxDepth < 1 || maxDepth > navigation.MaxDepth {
		maxDepth = navigation.MaxDepth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &navigationService{
		resources: resources,
		links:     links,
		products:  products,
		maxDepth:  maxDepth,
		logger:    logger,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *navigationService) Load(ctx context.Context, idOrSlug string) (nav *navigation.Navigation, err error) {
	startedAt := time.Now()
	fields := map[string]any{"root": idOrSlug}
	defer observe(ctx, s.observer, "load-navigation", startedAt, fields, &err)

	root, err := resolveResource(ctx, s.resources, idOrSlug)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("navigation root not found", zap.String("root", idOrSlug))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var (
		tree    navigation.Resource
		parents []domain.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tree, err = s.loadTree(gctx, root)
		return err
	})
	g.Go(func() error {
		var err error
		parents, err = s.products.ListByResource(gctx, root.ID)
		if err != nil {
			return fmt.Errorf("loading parent products: %w", err)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	candidate := navigation.Encode(&navigation.Navigation{Resource: tree, Parents: parents})
	nav, issues := navigation.Validate(candidate)
	if len(issues) > 0 {
		s.logger.Warn("navigation failed validation",
			zap.String("root", root.ID),
			zap.Int("issues", len(issues)),
			zap.String("details", navigation.FormatIssues(issues)),
		)
		fields["issues"] = len(issues)
		return nil, nil
	}
	fields["depth"] = nav.Depth()
	fields["resources"] = len(navigation.FlattenNavigationResources(nav))
	return nav, nil
}

// loadTree fetches one level per query, breadth first, then assembles the
// nested tree. Children are keyed per level so a resource linked under
// several parents is expanded correctly at each place it appears.
func (s *navigationService) loadTree(ctx context.Context, root *domain.ContentResource) (navigation.Resource, error) {
	levels := make([]map[string][]repository.LinkedResource, 0, s.maxDepth)
	frontier := []string{root.ID}
	for depth := 0; depth < s.maxDepth && len(frontier) > 0; depth++ {
		byParent, err := s.links.ListChildrenOf(ctx, frontier)
		if err != nil {
			return navigation.Resource{}, fmt.Errorf("loading navigation level %d: %w", depth+1, err)
		}
		levels = append(levels, byParent)

		seen := make(map[string]bool)
		next := make([]string, 0)
		for _, parentID := range frontier {
			for _, lr := range byParent[parentID] {
				if !seen[lr.Resource.ID] {
					seen[lr.Resource.ID] = true
					next = append(next, lr.Resource.ID)
				}
			}
		}
		frontier = next
	}
	return assemble(*root, levels, 0), nil
}

func assemble(res domain.ContentResource, levels []map[string][]repository.LinkedResource, depth int) navigation.Resource {
	node := navigation.Resource{ContentResource: res}
	if depth >= len(levels) {
		return node
	}
	children := levels[depth][res.ID]
	if len(children) == 0 {
		return node
	}
	node.Resources = make([]navigation.Wrapper, 0, len(children))
	for _, lr := range children {
		node.Resources = append(node.Resources, navigation.Wrapper{
			ResourceOfID: lr.Link.ResourceOfID,
			ResourceID:   lr.Link.ResourceID,
			Position:     lr.Link.Position,
			Resource:     assemble(lr.Resource, levels, depth+1),
		})
	}
	return node
}

// resolveResource looks idOrSlug up as an id, then as a slug.
func resolveResource(ctx context.Context, resources repository.ResourceRepo, idOrSlug string) (*domain.ContentResource, error) {
	if idOrSlug == "" {
		return nil, fmt.Errorf("content resource: %w", repository.ErrNotFound)
	}
	res, err := resources.GetByID(ctx, idOrSlug)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return resources.GetBySlug(ctx, idOrSlug)
}
