package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursenav/internal/db"
	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
	"github.com/alexanderramin/coursenav/internal/repository"
	"github.com/google/uuid"
)

type resourceService struct {
	resources repository.ResourceRepo
	links     repository.LinkRepo
	uow       db.UnitOfWork
}

func NewResourceService(resources repository.ResourceRepo, links repository.LinkRepo, uow db.UnitOfWork) ResourceService {
	return &resourceService{resources: resources, links: links, uow: uow}
}

func (s *resourceService) Create(ctx context.Context, r *domain.ContentResource) error {
	if r.Type == "" {
		return fmt.Errorf("resource type is required: %w", ErrInvalidInput)
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Fields == nil {
		r.Fields = domain.Fields{}
	}
	now := time.Now().UTC().Truncate(time.Second)
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.resources.Create(ctx, r)
}

func (s *resourceService) Get(ctx context.Context, idOrSlug string) (*domain.ContentResource, error) {
	return resolveResource(ctx, s.resources, idOrSlug)
}

func (s *resourceService) List(ctx context.Context, resourceType string) ([]*domain.ContentResource, error) {
	return s.resources.List(ctx, resourceType)
}

func (s *resourceService) Update(ctx context.Context, r *domain.ContentResource) error {
	if r.Type == "" {
		return fmt.Errorf("resource type is required: %w", ErrInvalidInput)
	}
	r.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return s.resources.Update(ctx, r)
}

// Link places childID under parentID at position, moving it if the link
// already exists. Sibling positions are unique. The depth, cycle and position
// checks read and write in one transaction so concurrent links cannot slip
// past them.
func (s *resourceService) Link(ctx context.Context, parentID, childID string, position int) error {
	if parentID == childID {
		return ErrSelfLink
	}
	if position < 0 {
		return fmt.Errorf("position must be >= 0, got %d: %w", position, ErrInvalidInput)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txResources := repository.NewSQLiteResourceRepo(tx)
		txLinks := repository.NewSQLiteLinkRepo(tx)

		if _, err := txResources.GetByID(ctx, parentID); err != nil {
			return fmt.Errorf("parent: %w", err)
		}
		if _, err := txResources.GetByID(ctx, childID); err != nil {
			return fmt.Errorf("child: %w", err)
		}

		above, isDescendant, err := ancestorDepth(ctx, txLinks, parentID, childID)
		if err != nil {
			return err
		}
		if isDescendant {
			return ErrLinkCycle
		}
		below, err := subtreeHeight(ctx, txLinks, childID, navigation.MaxDepth)
		if err != nil {
			return err
		}
		if above+1+below > navigation.MaxDepth {
			return fmt.Errorf("%w: %d levels above, %d below", ErrLinkTooDeep, above, below)
		}

		siblings, err := txLinks.ListChildren(ctx, parentID)
		if err != nil {
			return err
		}
		for _, sib := range siblings {
			if sib.Link.ResourceID != childID && sib.Link.Position == position {
				return fmt.Errorf("%w: %d is held by %s", ErrPositionTaken, position, sib.Link.ResourceID)
			}
		}

		return txLinks.Upsert(ctx, &domain.ResourceLink{
			ResourceOfID: parentID,
			ResourceID:   childID,
			Position:     position,
			CreatedAt:    time.Now().UTC().Truncate(time.Second),
		})
	})
}

func (s *resourceService) Unlink(ctx context.Context, parentID, childID string) error {
	return s.links.Delete(ctx, parentID, childID)
}

func (s *resourceService) Parents(ctx context.Context, id string) ([]domain.ResourceLink, error) {
	return s.links.ListParents(ctx, id)
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	return s.resources.Delete(ctx, id)
}

// ancestorDepth walks up from id and returns the length of the longest
// ancestor chain, capped just past navigation.MaxDepth. It reports whether
// target was met on the way, which means linking target under id would
// close a cycle.
func ancestorDepth(ctx context.Context, links repository.LinkRepo, id, target string) (int, bool, error) {
	depth := 0
	frontier := []string{id}
	for len(frontier) > 0 && depth <= navigation.MaxDepth {
		seen := make(map[string]bool)
		var next []string
		for _, cur := range frontier {
			parents, err := links.ListParents(ctx, cur)
			if err != nil {
				return 0, false, err
			}
			for _, p := range parents {
				if p.ResourceOfID == target {
					return 0, true, nil
				}
				if !seen[p.ResourceOfID] {
					seen[p.ResourceOfID] = true
					next = append(next, p.ResourceOfID)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		depth++
		frontier = next
	}
	return depth, false, nil
}

// subtreeHeight returns the number of levels below id, stopping once it
// exceeds limit.
func subtreeHeight(ctx context.Context, links repository.LinkRepo, id string, limit int) (int, error) {
	height := 0
	frontier := []string{id}
	for len(frontier) > 0 && height <= limit {
		byParent, err := links.ListChildrenOf(ctx, frontier)
		if err != nil {
			return 0, err
		}
		seen := make(map[string]bool)
		var next []string
		for _, children := range byParent {
			for _, c := range children {
				if !seen[c.Resource.ID] {
					seen[c.Resource.ID] = true
					next = append(next, c.Resource.ID)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		height++
		frontier = next
	}
	return height, nil
}
