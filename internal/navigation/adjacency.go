package navigation

import "github.com/alexanderramin/coursenav/internal/domain"

// AdjacencyOptions tunes how neighbours are chosen in the flattened sequence.
type AdjacencyOptions struct {
	// SkipSolutions makes solutions invisible as prev/next targets.
	SkipSolutions bool
}

func (o AdjacencyOptions) eligible(r *domain.ContentResource) bool {
	return !(o.SkipSolutions && r.IsSolution())
}

// Adjacent returns the resources before and after resourceID in the
// flattened sequence. Either may be nil at the ends; both are nil when
// resourceID is not in the tree.
func Adjacent(nav *Navigation, resourceID string, opts AdjacencyOptions) (prev, next *domain.ContentResource) {
	flat := FlattenNavigationResources(nav)
	at := -1
	for i := range flat {
		if flat[i].ID == resourceID {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, nil
	}
	for i := at - 1; i >= 0; i-- {
		if opts.eligible(&flat[i]) {
			p := flat[i]
			prev = &p
			break
		}
	}
	for i := at + 1; i < len(flat); i++ {
		if opts.eligible(&flat[i]) {
			n := flat[i]
			next = &n
			break
		}
	}
	return prev, next
}

// NextUp returns the first resource in sequence that is not in completed.
// It returns nil when everything eligible is done.
func NextUp(nav *Navigation, completed map[string]bool, opts AdjacencyOptions) *domain.ContentResource {
	for _, r := range FlattenNavigationResources(nav) {
		if !opts.eligible(&r) || completed[r.ID] {
			continue
		}
		return &r
	}
	return nil
}

// Progress counts completed resources over the flattened sequence.
// Solutions are never counted.
func Progress(nav *Navigation, completed map[string]bool) (done, total int) {
	for _, r := range FlattenNavigationResources(nav) {
		if r.IsSolution() {
			continue
		}
		total++
		if completed[r.ID] {
			done++
		}
	}
	return done, total
}

// Breadcrumb returns the chain of resources from the root down to the first
// resource (in pre-order) whose slug matches. The result is empty when the
// slug is absent or unknown.
func Breadcrumb(nav *Navigation, slug string) []domain.ContentResource {
	if nav == nil || slug == "" {
		return nil
	}
	path, ok := pathTo(&nav.Resource, slug, nil)
	if !ok {
		return nil
	}
	return path
}

func pathTo(r *Resource, slug string, prefix []domain.ContentResource) ([]domain.ContentResource, bool) {
	path := append(prefix[:len(prefix):len(prefix)], r.ContentResource)
	if s, ok := r.Slug(); ok && s == slug {
		return path, true
	}
	for i := range r.Resources {
		if found, ok := pathTo(&r.Resources[i].Resource, slug, path); ok {
			return found, true
		}
	}
	return nil, false
}
