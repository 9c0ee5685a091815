package domain

import (
	"time"

	"github.com/ohler55/ojg/jp"
)

// Fields is the loosely typed metadata bag carried by every content resource.
// Values are whatever JSON decoding produced (string, float64, bool, nil,
// []any, map[string]any).
type Fields map[string]any

// Str returns the string value stored under key. A missing key, a JSON null,
// a non-string value, or an empty string all report false.
func (f Fields) Str(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	s, ok := f[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Slug returns fields.slug.
func (f Fields) Slug() (string, bool) { return f.Str("slug") }

// Title returns fields.title.
func (f Fields) Title() (string, bool) { return f.Str("title") }

// Lookup evaluates a JSONPath expression such as "$.body" or "$.tags[0]"
// against the fields bag and returns every match.
func (f Fields) Lookup(path string) ([]any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, err
	}
	return x.Get(map[string]any(f)), nil
}

// Clone returns a shallow copy of the bag.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

type ContentResource struct {
	ID          string
	Type        ResourceType
	Fields      Fields
	CreatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Slug returns the resource's slug, if it has a usable one.
func (r *ContentResource) Slug() (string, bool) { return r.Fields.Slug() }

// DisplayTitle returns the best human label: title, then slug, then a
// truncated ID.
func (r *ContentResource) DisplayTitle() string {
	if title, ok := r.Fields.Title(); ok {
		return title
	}
	if slug, ok := r.Fields.Slug(); ok {
		return slug
	}
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}

// IsSection reports whether the resource is a section container.
func (r *ContentResource) IsSection() bool { return r.Type == TypeSection }

// IsSolution reports whether the resource is a solution.
func (r *ContentResource) IsSolution() bool { return r.Type == TypeSolution }

// ResourceLink is a positional join row pairing a container with a child.
type ResourceLink struct {
	ResourceOfID string
	ResourceID   string
	Position     int
	CreatedAt    time.Time
}

// ResourceProgress records that a learner completed a resource.
type ResourceProgress struct {
	UserID      string
	ResourceID  string
	CompletedAt time.Time
}
