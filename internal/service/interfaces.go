package service

import (
	"context"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/importer"
	"github.com/alexanderramin/coursenav/internal/navigation"
)

// NavigationService loads validated navigation trees.
type NavigationService interface {
	// Load resolves idOrSlug (id first, then slug) and returns the tree
	// rooted there. A missing root or a tree that fails validation yields
	// (nil, nil); errors are reserved for storage faults.
	Load(ctx context.Context, idOrSlug string) (*navigation.Navigation, error)
}

type ResourceService interface {
	Create(ctx context.Context, r *domain.ContentResource) error
	Get(ctx context.Context, idOrSlug string) (*domain.ContentResource, error)
	List(ctx context.Context, resourceType string) ([]*domain.ContentResource, error)
	Update(ctx context.Context, r *domain.ContentResource) error
	Link(ctx context.Context, parentID, childID string, position int) error
	Unlink(ctx context.Context, parentID, childID string) error
	// Parents lists the links placing id under other resources.
	Parents(ctx context.Context, id string) ([]domain.ResourceLink, error)
	Delete(ctx context.Context, id string) error
}

type ProductService interface {
	Create(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Product, error)
	Attach(ctx context.Context, productID, resourceID string, position int) error
}

// ImportResult holds the outcome of a tree import.
type ImportResult struct {
	Root          *domain.ContentResource
	ResourceCount int
	LinkCount     int
	ProductCount  int
}

type ImportService interface {
	ImportTree(ctx context.Context, filePath string) (*ImportResult, error)
	ImportTreeFromSchema(ctx context.Context, schema *importer.TreeSchema) (*ImportResult, error)
}

// CourseProgress summarizes a learner's position in one tree.
type CourseProgress struct {
	Navigation *navigation.Navigation
	Next       *domain.ContentResource
	Done       int
	Total      int
}

type ProgressService interface {
	Complete(ctx context.Context, userID, resourceID string) error
	Reset(ctx context.Context, userID, resourceID string) error
	Completed(ctx context.Context, userID string) (map[string]bool, error)
	// NextUp returns nil when the root cannot be loaded.
	NextUp(ctx context.Context, userID, rootIDOrSlug string) (*CourseProgress, error)
}
