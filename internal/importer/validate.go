package importer

import (
	"fmt"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/alexanderramin/coursenav/internal/navigation"
)

// ValidateTreeSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateTreeSchema(schema *TreeSchema) []error {
	v := &treeValidator{
		refs:  make(map[string]bool),
		slugs: make(map[string]string),
	}
	v.resource("resource", &schema.Resource, 0)

	for i, p := range schema.Products {
		path := fmt.Sprintf("products[%d]", i)
		if p.Name == "" {
			v.errs = append(v.errs, fmt.Errorf("%s.name is required", path))
		}
		if p.Type != "" && !domain.ValidProductTypes[p.Type] {
			v.errs = append(v.errs, fmt.Errorf("%s.type: invalid value %q", path, p.Type))
		}
	}
	return v.errs
}

type treeValidator struct {
	errs  []error
	refs  map[string]bool
	slugs map[string]string // slug -> ref that first used it
}

func (v *treeValidator) resource(path string, r *ResourceImport, depth int) {
	if depth > navigation.MaxDepth {
		v.errs = append(v.errs, fmt.Errorf("%s: nesting exceeds maximum depth of %d", path, navigation.MaxDepth))
		return
	}

	if r.Ref == "" {
		v.errs = append(v.errs, fmt.Errorf("%s.ref is required", path))
	} else if v.refs[r.Ref] {
		v.errs = append(v.errs, fmt.Errorf("%s.ref: duplicate ref %q", path, r.Ref))
	} else {
		v.refs[r.Ref] = true
	}

	if r.Type == "" {
		v.errs = append(v.errs, fmt.Errorf("%s.type is required", path))
	}
	if r.Position != nil && *r.Position < 0 {
		v.errs = append(v.errs, fmt.Errorf("%s.position must be >= 0, got %d", path, *r.Position))
	}

	if slug := effectiveSlug(r); slug != "" {
		if first, seen := v.slugs[slug]; seen {
			v.errs = append(v.errs, fmt.Errorf("%s: slug %q already used by %q", path, slug, first))
		} else {
			v.slugs[slug] = r.Ref
		}
	}

	positions := make(map[int]string, len(r.Resources))
	for i := range r.Resources {
		child := &r.Resources[i]
		childPath := fmt.Sprintf("%s.resources[%d]", path, i)
		pos := effectivePosition(child, i)
		if first, taken := positions[pos]; taken {
			v.errs = append(v.errs, fmt.Errorf("%s: position %d already used by %s", childPath, pos, first))
		} else {
			positions[pos] = childPath
		}
		v.resource(childPath, child, depth+1)
	}
}

// effectivePosition is the position the link will be stored with: the
// explicit position, else the index among siblings.
func effectivePosition(r *ResourceImport, index int) int {
	if r.Position != nil {
		return *r.Position
	}
	return index
}

// effectiveSlug is the slug the resource will be stored with: the explicit
// slug attribute, else a string fields.slug.
func effectiveSlug(r *ResourceImport) string {
	if r.Slug != "" {
		return r.Slug
	}
	s, _ := domain.Fields(r.Fields).Slug()
	return s
}
