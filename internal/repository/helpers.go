package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

// encodeFields serialises a fields bag for the JSON text column. Keys are
// sorted so identical bags always produce identical text.
func encodeFields(f domain.Fields) string {
	if len(f) == 0 {
		return "{}"
	}
	opts := ojg.DefaultOptions
	opts.Sort = true
	return oj.JSON(map[string]any(f), &opts)
}

// decodeFields parses the JSON text column back into a fields bag.
func decodeFields(s string) (domain.Fields, error) {
	if s == "" {
		return domain.Fields{}, nil
	}
	v, err := oj.ParseString(s)
	if err != nil {
		return nil, fmt.Errorf("parsing fields: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsing fields: expected object, got %T", v)
	}
	return domain.Fields(m), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(vals []string) []any {
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v
	}
	return args
}

// nowUTC returns the current UTC time truncated to the second, matching the
// precision stored in the database.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
