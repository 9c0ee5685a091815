package navigation

import "github.com/alexanderramin/coursenav/internal/domain"

// FindSectionIDForResourceSlug returns the id of the section whose direct
// children include a resource with the given slug.
//
// Level-1 wrappers are scanned in slice order and the first section holding
// the slug wins. A non-section level-1 resource carrying the slug stops the
// search with ok == false: the resource exists but sits outside any section.
// A section with no children is treated like any other level-1 resource, as
// in FirstResourceSlug. When nothing carries the slug, the first level-1
// resource's id is returned as the default section. An empty slug is treated
// as absent.
func FindSectionIDForResourceSlug(nav *Navigation, slug string) (string, bool) {
	if nav == nil || nav.Resources == nil || slug == "" {
		return "", false
	}

	for i := range nav.Resources {
		res := &nav.Resources[i].Resource
		if res.IsSection() && len(res.Resources) > 0 {
			for j := range res.Resources {
				if s, ok := res.Resources[j].Resource.Slug(); ok && s == slug {
					return res.ID, true
				}
			}
			continue
		}
		if s, ok := res.Slug(); ok && s == slug {
			return "", false
		}
	}

	// Nothing matched: default to the first level-1 resource.
	if len(nav.Resources) > 0 {
		return nav.Resources[0].Resource.ID, true
	}
	return "", false
}

// FirstResourceSlug returns the slug a learner should land on when opening
// the tree: the first child of a leading section, or the leading resource
// itself. Only the first candidate is consulted; a missing slug there yields
// ok == false even when later siblings have one.
func FirstResourceSlug(nav *Navigation) (string, bool) {
	if nav == nil || len(nav.Resources) == 0 {
		return "", false
	}
	first := &nav.Resources[0].Resource
	if first.IsSection() && len(first.Resources) > 0 {
		return first.Resources[0].Resource.Slug()
	}
	return first.Slug()
}

// FlattenNavigationResources returns every navigable resource in depth-first
// pre-order: a parent is immediately followed by its descendants. Level-1
// sections are containers and are never emitted, only their descendants.
// The result is never nil.
func FlattenNavigationResources(nav *Navigation) []domain.ContentResource {
	out := []domain.ContentResource{}
	if nav == nil {
		return out
	}
	for i := range nav.Resources {
		res := &nav.Resources[i].Resource
		if res.IsSection() {
			for j := range res.Resources {
				out = appendWithDescendants(out, &res.Resources[j].Resource)
			}
			continue
		}
		out = appendWithDescendants(out, res)
	}
	return out
}

func appendWithDescendants(out []domain.ContentResource, r *Resource) []domain.ContentResource {
	out = append(out, r.ContentResource)
	for i := range r.Resources {
		out = appendWithDescendants(out, &r.Resources[i].Resource)
	}
	return out
}

// FindParentLessonForSolution returns the lesson directly containing the
// solution with the given id. Both section > lesson > solution and
// lesson > solution layouts are searched. The candidate must be typed
// "solution"; an id match on any other type does not count.
func FindParentLessonForSolution(nav *Navigation, solutionID string) *domain.ContentResource {
	if nav == nil || solutionID == "" {
		return nil
	}
	for i := range nav.Resources {
		top := &nav.Resources[i].Resource
		if top.IsSection() {
			for j := range top.Resources {
				lesson := &top.Resources[j].Resource
				if hasSolution(lesson, solutionID) {
					lc := lesson.ContentResource
					return &lc
				}
			}
			continue
		}
		if hasSolution(top, solutionID) {
			lc := top.ContentResource
			return &lc
		}
	}
	return nil
}

func hasSolution(lesson *Resource, solutionID string) bool {
	for i := range lesson.Resources {
		child := &lesson.Resources[i].Resource
		if child.ID == solutionID && child.IsSolution() {
			return true
		}
	}
	return false
}
