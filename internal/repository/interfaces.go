package repository

import (
	"context"

	"github.com/alexanderramin/coursenav/internal/domain"
)

// LinkedResource is a joined view of a link row and the child it points to,
// used by the navigation loader to assemble one tree level per query.
type LinkedResource struct {
	Link     domain.ResourceLink
	Resource domain.ContentResource
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.ContentResource) error
	GetByID(ctx context.Context, id string) (*domain.ContentResource, error)
	GetBySlug(ctx context.Context, slug string) (*domain.ContentResource, error)
	List(ctx context.Context, resourceType string) ([]*domain.ContentResource, error)
	Update(ctx context.Context, r *domain.ContentResource) error
	Delete(ctx context.Context, id string) error
}

type LinkRepo interface {
	Upsert(ctx context.Context, l *domain.ResourceLink) error
	Delete(ctx context.Context, parentID, childID string) error
	ListChildren(ctx context.Context, parentID string) ([]LinkedResource, error)
	ListChildrenOf(ctx context.Context, parentIDs []string) (map[string][]LinkedResource, error)
	ListParents(ctx context.Context, childID string) ([]domain.ResourceLink, error)
}

type ProductRepo interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Product, error)
	AttachResource(ctx context.Context, productID, resourceID string, position int) error
	ListByResource(ctx context.Context, resourceID string) ([]domain.Product, error)
}

type ProgressRepo interface {
	MarkComplete(ctx context.Context, p *domain.ResourceProgress) error
	Clear(ctx context.Context, userID, resourceID string) error
	ListCompleted(ctx context.Context, userID string) ([]domain.ResourceProgress, error)
}
