package profile

import (
	"fmt"
	"strings"

	"github.com/abhisek/skillpath/internal/schema"
	"github.com/abhisek/skillpath/internal/skills"
	"github.com/abhisek/skillpath/internal/validation"
)

var levelNames = []any{"NOVICE", "BEGINNER", "INTERMEDIATE", "ADVANCED", "EXPERT",
	"novice", "beginner", "intermediate", "advanced", "expert"}

// DocumentSchema is the JSON Schema profile files must satisfy. Range rules
// are enforced separately by Validate.
var DocumentSchema = &schema.Schema{
	Name: "profile",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"name", "skills", "goals", "constraints"},
		"properties": map[string]any{
			"name":           map[string]any{"type": "string"},
			"email":          map[string]any{"type": "string"},
			"learning_style": map[string]any{"type": "string"},
			"skills": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"skill", "level"},
					"properties": map[string]any{
						"skill":            map[string]any{"type": "string"},
						"level":            map[string]any{"type": "string", "enum": levelNames},
						"years_experience": map[string]any{"type": "number"},
						"confidence":       map[string]any{"type": "integer"},
					},
				},
			},
			"goals": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"skill", "target_level", "priority"},
					"properties": map[string]any{
						"skill":           map[string]any{"type": "string"},
						"target_level":    map[string]any{"type": "string", "enum": levelNames},
						"priority":        map[string]any{"type": "integer"},
						"deadline_months": map[string]any{"type": "integer"},
					},
				},
			},
			"constraints": map[string]any{
				"type":     "object",
				"required": []any{"hours_per_week"},
				"properties": map[string]any{
					"hours_per_week":  map[string]any{"type": "number"},
					"budget_usd":      map[string]any{"type": []any{"number", "null"}},
					"preferred_types": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
	},
}

// Validate checks field ranges and profile-level consistency: unique
// skill keys and known preferred resource types.
func (p *Profile) Validate() error {
	var errs []string
	if err := validation.Struct(p); err != nil {
		errs = append(errs, err.Error())
	}

	seen := make(map[string]bool, len(p.Skills))
	for _, s := range p.Skills {
		key := skills.Normalize(s.Skill)
		if key == "" {
			continue
		}
		if seen[key] {
			errs = append(errs, fmt.Sprintf("duplicate skill %q", s.Skill))
		}
		seen[key] = true
	}

	for _, t := range p.Constraints.PreferredTypes {
		if !t.Valid() {
			errs = append(errs, fmt.Sprintf("unknown preferred resource type %q", t))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("profile validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Parse decodes a YAML or JSON profile document and validates it.
func Parse(raw []byte) (*Profile, error) {
	var p Profile
	if err := schema.Decode(DocumentSchema, raw, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and validates a profile file.
func Load(path string) (*Profile, error) {
	var p Profile
	if err := schema.DecodeFile(DocumentSchema, path, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}
