package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TreeSchema is the top-level structure of a tree import file.
type TreeSchema struct {
	Resource ResourceImport  `json:"resource" yaml:"resource"`
	Products []ProductImport `json:"products,omitempty" yaml:"products,omitempty"`
}

// ResourceImport is one node of the nested tree. Ref is local to the file
// and only used for error messages and duplicate detection.
type ResourceImport struct {
	Ref       string           `json:"ref" yaml:"ref"`
	Type      string           `json:"type" yaml:"type"`
	Slug      string           `json:"slug,omitempty" yaml:"slug,omitempty"`
	Title     string           `json:"title,omitempty" yaml:"title,omitempty"`
	Position  *int             `json:"position,omitempty" yaml:"position,omitempty"`
	Fields    map[string]any   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Resources []ResourceImport `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// ProductImport declares a product that bundles the imported root.
type ProductImport struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// LoadTreeSchema reads a tree import file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func LoadTreeSchema(path string) (*TreeSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseTreeYAML(data)
	default:
		return ParseTreeJSON(data)
	}
}

func ParseTreeJSON(data []byte) (*TreeSchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var schema TreeSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

func ParseTreeYAML(data []byte) (*TreeSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var schema TreeSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
