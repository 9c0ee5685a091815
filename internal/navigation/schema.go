package navigation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/ohler55/ojg/oj"
)

// Issue is a single structural problem found while validating a candidate
// navigation document.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// FormatIssues joins issues into one human-readable block.
func FormatIssues(issues []Issue) string {
	lines := make([]string, 0, len(issues))
	for _, is := range issues {
		lines = append(lines, is.Error())
	}
	return strings.Join(lines, "\n")
}

// ValidateJSON parses data and validates the result. Malformed JSON is
// reported as a single issue at the document root.
func ValidateJSON(data []byte) (*Navigation, []Issue) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, []Issue{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	return Validate(doc)
}

// Validate checks that candidate, a decoded JSON document, has the shape of
// a navigation tree and converts it. It never panics: on failure the tree is
// nil and every issue found is returned.
//
// The check is deliberately loose where content is heterogeneous: type is
// any string and fields is any object. Unknown keys are ignored.
func Validate(candidate any) (*Navigation, []Issue) {
	v := &validator{}
	root, ok := v.object("", candidate)
	if !ok {
		return nil, v.issues
	}
	res := v.resource("", root, 0)
	nav := &Navigation{Resource: res}
	nav.Parents = v.parents(root)
	if len(v.issues) > 0 {
		return nil, v.issues
	}
	return nav, nil
}

type validator struct {
	issues []Issue
}

func (v *validator) fail(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func (v *validator) object(path string, val any) (map[string]any, bool) {
	m, ok := val.(map[string]any)
	if !ok {
		v.fail(path, "expected object, got %s", kindOf(val))
		return nil, false
	}
	return m, true
}

func (v *validator) requiredString(path string, m map[string]any, key string) string {
	raw, present := m[key]
	if !present {
		v.fail(join(path, key), "required")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(join(path, key), "expected string, got %s", kindOf(raw))
		return ""
	}
	return s
}

func (v *validator) optionalString(path string, m map[string]any, key string) string {
	raw, present := m[key]
	if !present || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(join(path, key), "expected string, got %s", kindOf(raw))
		return ""
	}
	return s
}

func (v *validator) optionalTime(path string, m map[string]any, key string) time.Time {
	s := v.optionalString(path, m, key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		v.fail(join(path, key), "invalid timestamp %q (expected RFC3339)", s)
		return time.Time{}
	}
	return t
}

func (v *validator) fields(path string, m map[string]any) domain.Fields {
	raw, present := m["fields"]
	if !present {
		v.fail(join(path, "fields"), "required")
		return nil
	}
	f, ok := raw.(map[string]any)
	if !ok {
		v.fail(join(path, "fields"), "expected object, got %s", kindOf(raw))
		return nil
	}
	return domain.Fields(f)
}

func (v *validator) resource(path string, m map[string]any, depth int) Resource {
	var r Resource
	r.ID = v.requiredString(path, m, "id")
	r.Type = v.requiredString(path, m, "type")
	r.Fields = v.fields(path, m)
	r.CreatedByID = v.optionalString(path, m, "createdById")
	r.CreatedAt = v.optionalTime(path, m, "createdAt")
	r.UpdatedAt = v.optionalTime(path, m, "updatedAt")

	raw, present := m["resources"]
	if !present || raw == nil {
		return r
	}
	list, ok := raw.([]any)
	if !ok {
		v.fail(join(path, "resources"), "expected array or null, got %s", kindOf(raw))
		return r
	}
	if len(list) == 0 {
		return r
	}
	if depth >= MaxDepth {
		v.fail(join(path, "resources"), "nesting exceeds maximum depth of %d", MaxDepth)
		return r
	}
	r.Resources = make([]Wrapper, 0, len(list))
	for i, item := range list {
		wpath := index(join(path, "resources"), i)
		if w, ok := v.wrapper(wpath, item, depth+1); ok {
			r.Resources = append(r.Resources, w)
		}
	}
	return r
}

func (v *validator) wrapper(path string, val any, depth int) (Wrapper, bool) {
	m, ok := v.object(path, val)
	if !ok {
		return Wrapper{}, false
	}
	var w Wrapper
	w.ResourceOfID = v.requiredString(path, m, "resourceOfId")
	w.ResourceID = v.requiredString(path, m, "resourceId")
	w.Position = v.position(join(path, "position"), m)

	child, ok := v.object(join(path, "resource"), m["resource"])
	if !ok {
		return w, false
	}
	w.Resource = v.resource(join(path, "resource"), child, depth)
	return w, true
}

// maxExactInt is the largest integer a JSON number carries without loss.
const maxExactInt = 1 << 53

func (v *validator) position(path string, m map[string]any) int {
	raw, present := m["position"]
	if !present {
		v.fail(path, "required")
		return 0
	}
	var f float64
	switch n := raw.(type) {
	case int:
		return n
	case int64:
		if n < -maxExactInt || n > maxExactInt {
			v.fail(path, "out of range: %d", n)
			return 0
		}
		return int(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			v.fail(path, "expected number, got %q", n.String())
			return 0
		}
		f = parsed
	default:
		v.fail(path, "expected number, got %s", kindOf(raw))
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		v.fail(path, "expected integer, got %v", f)
		return 0
	}
	if math.Abs(f) > maxExactInt {
		v.fail(path, "out of range: %v", f)
		return 0
	}
	return int(f)
}

func (v *validator) parents(root map[string]any) []domain.Product {
	raw, present := root["parents"]
	if !present || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		v.fail("parents", "expected array, got %s", kindOf(raw))
		return nil
	}
	out := make([]domain.Product, 0, len(list))
	for i, item := range list {
		path := index("parents", i)
		m, ok := v.object(path, item)
		if !ok {
			continue
		}
		p := domain.Product{
			ID:     v.requiredString(path, m, "id"),
			Name:   v.requiredString(path, m, "name"),
			Type:   domain.ProductType(v.requiredString(path, m, "type")),
			Status: domain.ProductStatus(v.optionalString(path, m, "status")),
		}
		if f, present := m["fields"]; present && f != nil {
			fm, ok := f.(map[string]any)
			if !ok {
				v.fail(join(path, "fields"), "expected object, got %s", kindOf(f))
			} else {
				p.Fields = domain.Fields(fm)
			}
		}
		out = append(out, p)
	}
	return out
}

func kindOf(val any) string {
	switch val.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", val)
	}
}
