package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/coursenav/internal/db"
	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Resource options
type ResourceOption func(*domain.ContentResource)

func WithTitle(title string) ResourceOption {
	return func(r *domain.ContentResource) {
		r.Fields["title"] = title
	}
}

// WithField sets an arbitrary key in the fields bag.
func WithField(key string, value any) ResourceOption {
	return func(r *domain.ContentResource) {
		r.Fields[key] = value
	}
}

// WithNullSlug stores the slug as JSON null.
func WithNullSlug() ResourceOption {
	return func(r *domain.ContentResource) {
		r.Fields["slug"] = nil
	}
}

func WithResourceID(id string) ResourceOption {
	return func(r *domain.ContentResource) {
		r.ID = id
	}
}

func WithCreatedBy(userID string) ResourceOption {
	return func(r *domain.ContentResource) {
		r.CreatedByID = userID
	}
}

func WithCreatedAt(t time.Time) ResourceOption {
	return func(r *domain.ContentResource) {
		r.CreatedAt = t
		r.UpdatedAt = t
	}
}

// NewTestResource builds a resource of the given type. An empty slug leaves
// fields.slug unset.
func NewTestResource(resourceType, slug string, opts ...ResourceOption) *domain.ContentResource {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.ContentResource{
		ID:        uuid.New().String(),
		Type:      resourceType,
		Fields:    domain.Fields{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if slug != "" {
		r.Fields["slug"] = slug
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Product options
type ProductOption func(*domain.Product)

func WithProductType(t domain.ProductType) ProductOption {
	return func(p *domain.Product) {
		p.Type = t
	}
}

func WithProductStatus(s domain.ProductStatus) ProductOption {
	return func(p *domain.Product) {
		p.Status = s
	}
}

func NewTestProduct(name string, opts ...ProductOption) *domain.Product {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      domain.ProductSelfPaced,
		Status:    domain.ProductActive,
		Fields:    domain.Fields{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestLink(parentID, childID string, position int) *domain.ResourceLink {
	return &domain.ResourceLink{
		ResourceOfID: parentID,
		ResourceID:   childID,
		Position:     position,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

// Course is a seeded workshop used across service and CLI tests:
//
//	workshop (slug "intro-to-go")
//	├── section-1 (slug "basics")
//	│   ├── lesson-1 (slug "hello-world")
//	│   │   └── solution-1 (slug "hello-world-solution")
//	│   └── lesson-2 (slug "variables")
//	└── lesson-3 (slug "wrap-up")
type Course struct {
	Workshop  *domain.ContentResource
	Section   *domain.ContentResource
	Lesson1   *domain.ContentResource
	Solution1 *domain.ContentResource
	Lesson2   *domain.ContentResource
	Lesson3   *domain.ContentResource
	Product   *domain.Product
}

// SeedCourse inserts the Course tree and a product containing it.
func SeedCourse(t *testing.T, conn db.DBTX) *Course {
	t.Helper()
	ctx := context.Background()
	resources := repository.NewSQLiteResourceRepo(conn)
	links := repository.NewSQLiteLinkRepo(conn)
	products := repository.NewSQLiteProductRepo(conn)

	c := &Course{
		Workshop:  NewTestResource(domain.TypeWorkshop, "intro-to-go", WithTitle("Intro to Go")),
		Section:   NewTestResource(domain.TypeSection, "basics", WithTitle("Basics")),
		Lesson1:   NewTestResource(domain.TypeLesson, "hello-world", WithTitle("Hello, World")),
		Solution1: NewTestResource(domain.TypeSolution, "hello-world-solution"),
		Lesson2:   NewTestResource(domain.TypeLesson, "variables", WithTitle("Variables")),
		Lesson3:   NewTestResource(domain.TypeLesson, "wrap-up", WithTitle("Wrap Up")),
		Product:   NewTestProduct("Go Bundle"),
	}
	for _, r := range []*domain.ContentResource{c.Workshop, c.Section, c.Lesson1, c.Solution1, c.Lesson2, c.Lesson3} {
		require.NoError(t, resources.Create(ctx, r))
	}
	for _, l := range []*domain.ResourceLink{
		NewTestLink(c.Workshop.ID, c.Section.ID, 0),
		NewTestLink(c.Workshop.ID, c.Lesson3.ID, 1),
		NewTestLink(c.Section.ID, c.Lesson1.ID, 0),
		NewTestLink(c.Section.ID, c.Lesson2.ID, 1),
		NewTestLink(c.Lesson1.ID, c.Solution1.ID, 0),
	} {
		require.NoError(t, links.Upsert(ctx, l))
	}
	require.NoError(t, products.Create(ctx, c.Product))
	require.NoError(t, products.AttachResource(ctx, c.Product.ID, c.Workshop.ID, 0))
	return c
}
