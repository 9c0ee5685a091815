// Package navigation models the read-only resource tree a learner moves
// through (workshop > section > lesson > solution) and the pure queries the
// player, breadcrumb, and "up next" widgets run against it.
//
// A tree is built fresh per request and never mutated. Every query accepts a
// nil *Navigation and treats it as "no navigation".
package navigation

import (
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
)

// MaxDepth is the number of wrapper levels allowed below the root.
const MaxDepth = 3

// Resource is a content resource together with its ordered children.
// Nil and empty Resources both mean "no children".
type Resource struct {
	domain.ContentResource
	Resources []Wrapper
}

// Wrapper is the positional join record between a container and a child.
type Wrapper struct {
	ResourceOfID string
	ResourceID   string
	Position     int
	Resource     Resource
}

// Navigation is the root of a tree plus the products that bundle it.
// Parents are an enrichment attached by the loader, not part of the tree.
type Navigation struct {
	Resource
	Parents []domain.Product
}

// Wrap builds a wrapper for child under parentID. It is a convenience for
// loaders and tests assembling trees in memory.
func Wrap(parentID string, position int, child Resource) Wrapper {
	return Wrapper{
		ResourceOfID: parentID,
		ResourceID:   child.ID,
		Position:     position,
		Resource:     child,
	}
}

// Depth returns the number of wrapper levels below r.
func (r *Resource) Depth() int {
	deepest := 0
	for i := range r.Resources {
		if d := 1 + r.Resources[i].Resource.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Encode renders nav in the loose document shape accepted by Validate:
// camelCase keys, RFC3339 timestamps, and fields passed through untouched.
func Encode(nav *Navigation) map[string]any {
	if nav == nil {
		return nil
	}
	doc := encodeResource(&nav.Resource)
	if len(nav.Parents) > 0 {
		parents := make([]any, 0, len(nav.Parents))
		for _, p := range nav.Parents {
			parents = append(parents, encodeProduct(p))
		}
		doc["parents"] = parents
	}
	return doc
}

func encodeResource(r *Resource) map[string]any {
	fields := map[string]any(r.Fields.Clone())
	if fields == nil {
		fields = map[string]any{}
	}
	doc := map[string]any{
		"id":     r.ID,
		"type":   r.Type,
		"fields": fields,
	}
	if r.CreatedByID != "" {
		doc["createdById"] = r.CreatedByID
	}
	if !r.CreatedAt.IsZero() {
		doc["createdAt"] = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !r.UpdatedAt.IsZero() {
		doc["updatedAt"] = r.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if len(r.Resources) > 0 {
		children := make([]any, 0, len(r.Resources))
		for i := range r.Resources {
			w := &r.Resources[i]
			children = append(children, map[string]any{
				"resourceOfId": w.ResourceOfID,
				"resourceId":   w.ResourceID,
				"position":     int64(w.Position),
				"resource":     encodeResource(&w.Resource),
			})
		}
		doc["resources"] = children
	}
	return doc
}

func encodeProduct(p domain.Product) map[string]any {
	doc := map[string]any{
		"id":   p.ID,
		"name": p.Name,
		"type": string(p.Type),
	}
	if p.Status != "" {
		doc["status"] = string(p.Status)
	}
	if len(p.Fields) > 0 {
		doc["fields"] = map[string]any(p.Fields.Clone())
	}
	return doc
}
