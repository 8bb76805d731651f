package catalog

import (
	_ "embed"
	"fmt"

	"github.com/abhisek/skillpath/internal/schema"
)

//go:embed seed.yaml
var seedYAML []byte

// document is the on-disk shape of a catalog file.
type document struct {
	Resources []Resource `json:"resources"`
}

// DocumentSchema is the JSON Schema catalog files must satisfy.
var DocumentSchema = &schema.Schema{
	Name: "catalog",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"resources"},
		"properties": map[string]any{
			"resources": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "title", "type", "difficulty", "estimated_hours", "skills_taught"},
					"properties": map[string]any{
						"id":              map[string]any{"type": "string", "minLength": 1},
						"title":           map[string]any{"type": "string", "minLength": 1},
						"description":     map[string]any{"type": "string"},
						"type":            map[string]any{"type": "string", "enum": resourceTypeEnum()},
						"difficulty":      map[string]any{"type": "string"},
						"estimated_hours": map[string]any{"type": "number", "exclusiveMinimum": 0},
						"skills_taught": map[string]any{
							"type":     "array",
							"minItems": 1,
							"items":    map[string]any{"type": "string", "minLength": 1},
						},
						"prerequisites": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string", "minLength": 1},
						},
						"cost_usd": map[string]any{"type": "number", "minimum": 0},
						"rating":   map[string]any{"type": "number", "minimum": 0, "maximum": 5},
						"provider": map[string]any{"type": "string"},
						"url":      map[string]any{"type": "string"},
						"tags": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	},
}

func resourceTypeEnum() []any {
	types := AllResourceTypes()
	out := make([]any, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(seedYAML)
}

// Parse decodes a YAML or JSON catalog document and builds a Catalog.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := schema.Decode(DocumentSchema, raw, &doc); err != nil {
		return nil, err
	}
	return New(doc.Resources)
}

// Load reads a catalog file from path.
func Load(path string) (*Catalog, error) {
	var doc document
	if err := schema.DecodeFile(DocumentSchema, path, &doc); err != nil {
		return nil, err
	}
	c, err := New(doc.Resources)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}
