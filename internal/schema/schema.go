// Package schema validates input documents against JSON Schemas and decodes
// them into typed values. YAML and JSON files are both accepted.
package schema

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Schema describes a named JSON Schema.
type Schema struct {
	Name       string
	Definition map[string]any
}

// ErrInvalidDocument indicates a document that does not conform to its schema.
type ErrInvalidDocument struct {
	Schema string
	Source string
	Err    error
}

func (e *ErrInvalidDocument) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("invalid %s document %s: %v", e.Schema, e.Source, e.Err)
	}
	return fmt.Sprintf("invalid %s document: %v", e.Schema, e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error { return e.Err }

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Validate checks a parsed JSON value against s.
func Validate(s *Schema, doc any) error {
	compiled, err := compile(s)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidDocument{Schema: s.Name, Err: err}
	}
	return nil
}

// Decode parses raw YAML or JSON, validates it against s and decodes it into out.
func Decode(s *Schema, raw []byte, out any) error {
	var parsed any
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidDocument{Schema: s.Name, Err: fmt.Errorf("parse: %w", err)}
	}

	// Round-trip through JSON so the validator sees plain JSON values
	// (float64 numbers, map[string]any objects).
	b, err := json.Marshal(parsed)
	if err != nil {
		return &ErrInvalidDocument{Schema: s.Name, Err: fmt.Errorf("normalize: %w", err)}
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return &ErrInvalidDocument{Schema: s.Name, Err: fmt.Errorf("normalize: %w", err)}
	}

	if err := Validate(s, doc); err != nil {
		return err
	}

	if err := json.Unmarshal(b, out); err != nil {
		return &ErrInvalidDocument{Schema: s.Name, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// DecodeFile reads path and decodes it with Decode.
func DecodeFile(s *Schema, path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := Decode(s, raw, out); err != nil {
		var ide *ErrInvalidDocument
		if errors.As(err, &ide) {
			ide.Source = path
		}
		return err
	}
	return nil
}

// compile returns a cached compiled schema or compiles and caches it.
func compile(s *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(s.Name, compiled)
	return compiled, nil
}
