package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON schema that responses are checked against before
// they are decoded.
type Schema struct {
	Name       string
	Definition map[string]any
}

var optionItem = map[string]any{
	"type":     "object",
	"required": []any{"id", "name"},
	"properties": map[string]any{
		"id":   map[string]any{"type": "string", "minLength": 1},
		"name": map[string]any{"type": "string"},
	},
}

func optionList() map[string]any {
	return map[string]any{"type": "array", "items": optionItem}
}

// CatalogSchema describes the fitness options response.
var CatalogSchema = &Schema{
	Name: "catalog",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"fitness_goals", "equipment_options", "workout_types", "experience_levels"},
		"properties": map[string]any{
			"fitness_goals":     optionList(),
			"equipment_options": optionList(),
			"workout_types":     optionList(),
			"experience_levels": optionList(),
		},
	},
}

// SessionSchema describes the profile creation response. A missing token
// is reported by the caller with a friendlier message.
var SessionSchema = &Schema{
	Name: "session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"session_token": map[string]any{"type": []any{"string", "null"}},
			"profile":       map[string]any{"type": "object"},
		},
	},
}

// PlanSchema describes a workout plan.
var PlanSchema = &Schema{
	Name: "workout_plan",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"plan_data"},
		"properties": map[string]any{
			"start_date": map[string]any{"type": []any{"string", "null"}},
			"end_date":   map[string]any{"type": []any{"string", "null"}},
			"plan_data": map[string]any{
				"type":     "object",
				"required": []any{"weeks"},
				"properties": map[string]any{
					"weeks": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"week_number", "days"},
							"properties": map[string]any{
								"week_number": map[string]any{"type": "integer"},
								"days": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type":     "object",
										"required": []any{"day_number"},
										"properties": map[string]any{
											"day_number": map[string]any{"type": "integer"},
											"exercises": map[string]any{
												"type": []any{"array", "null"},
												"items": map[string]any{
													"type":     "object",
													"required": []any{"name"},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse checks raw against schema. A nil schema accepts
// anything.
func validateResponse(schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON, so round-trip the Go literal.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
