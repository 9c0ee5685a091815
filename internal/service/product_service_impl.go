package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/repository"
	"github.com/google/uuid"
)

type productService struct {
	products  repository.ProductRepo
	resources repository.ResourceRepo
}

func NewProductService(products repository.ProductRepo, resources repository.ResourceRepo) ProductService {
	return &productService{products: products, resources: resources}
}

func (s *productService) Create(ctx context.Context, p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required: %w", ErrInvalidInput)
	}
	if p.Type == "" {
		p.Type = domain.ProductSelfPaced
	}
	if !domain.ValidProductTypes[string(p.Type)] {
		return fmt.Errorf("product type %q: %w", p.Type, ErrInvalidInput)
	}
	if p.Status == "" {
		p.Status = domain.ProductActive
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Fields == nil {
		p.Fields = domain.Fields{}
	}
	now := time.Now().UTC().Truncate(time.Second)
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.products.Create(ctx, p)
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, includeArchived bool) ([]*domain.Product, error) {
	return s.products.List(ctx, includeArchived)
}

// Attach bundles a root resource into a product. resourceID may be an id
// or a slug.
func (s *productService) Attach(ctx context.Context, productID, resourceID string, position int) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	res, err := resolveResource(ctx, s.resources, resourceID)
	if err != nil {
		return err
	}
	return s.products.AttachResource(ctx, productID, res.ID, position)
}
