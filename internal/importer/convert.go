package importer

import (
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/google/uuid"
)

// GeneratedTree is the persisted form of an imported tree.
type GeneratedTree struct {
	Root *domain.ContentResource
	// Resources are in pre-order; the root comes first.
	Resources []*domain.ContentResource
	Links     []*domain.ResourceLink
	Products  []*domain.Product
	// Refs maps each file-local ref to the generated resource id.
	Refs map[string]string
}

// Convert transforms a validated TreeSchema into domain objects ready for
// persistence. Call ValidateTreeSchema first; Convert assumes the schema is
// valid.
func Convert(schema *TreeSchema) *GeneratedTree {
	now := time.Now().UTC().Truncate(time.Second)
	out := &GeneratedTree{Refs: make(map[string]string)}

	out.Root = convertResource(&schema.Resource, "", 0, now, out)

	for _, p := range schema.Products {
		ptype := domain.ProductSelfPaced
		if p.Type != "" {
			ptype = domain.ProductType(p.Type)
		}
		out.Products = append(out.Products, &domain.Product{
			ID:        uuid.New().String(),
			Name:      p.Name,
			Type:      ptype,
			Status:    domain.ProductActive,
			Fields:    domain.Fields{},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}

func convertResource(r *ResourceImport, parentID string, index int, now time.Time, out *GeneratedTree) *domain.ContentResource {
	fields := domain.Fields(r.Fields).Clone()
	if fields == nil {
		fields = domain.Fields{}
	}
	if r.Slug != "" {
		fields["slug"] = r.Slug
	}
	if r.Title != "" {
		fields["title"] = r.Title
	}

	res := &domain.ContentResource{
		ID:        uuid.New().String(),
		Type:      r.Type,
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}
	out.Resources = append(out.Resources, res)
	out.Refs[r.Ref] = res.ID

	if parentID != "" {
		out.Links = append(out.Links, &domain.ResourceLink{
			ResourceOfID: parentID,
			ResourceID:   res.ID,
			Position:     effectivePosition(r, index),
			CreatedAt:    now,
		})
	}

	for i := range r.Resources {
		convertResource(&r.Resources[i], res.ID, i, now, out)
	}
	return res
}
