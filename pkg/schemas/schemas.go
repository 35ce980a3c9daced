// Package schemas holds the JSON Schemas of the API request bodies and validates raw
// bodies against them before they are decoded.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/dukex/projecthub/pkg/services"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed json/*.json
var schemaFS embed.FS

// Schema names; the report kinds plus the login body.
const (
	Login        = "login"
	Transcript   = "transcript"
	PromptTest   = "prompt_test"
	BulkAnalysis = "bulk_analysis"
)

// Names lists every published schema.
var Names = []string{Login, Transcript, PromptTest, BulkAnalysis}

// Registry compiles each schema once.
type Registry struct {
	raw      map[string][]byte
	compiled map[string]*gojsonschema.Schema
}

func NewRegistry() (*Registry, error) {
	registry := &Registry{
		raw:      make(map[string][]byte, len(Names)),
		compiled: make(map[string]*gojsonschema.Schema, len(Names)),
	}

	for _, name := range Names {
		data, err := schemaFS.ReadFile("json/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}

		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}

		registry.raw[name] = data
		registry.compiled[name] = schema
	}

	return registry, nil
}

// Raw returns the schema document.
func (r *Registry) Raw(name string) ([]byte, bool) {
	data, ok := r.raw[name]

	return data, ok
}

// Validate checks body against the named schema. Violations are reported as
// ErrSchemaViolation with every failing field.
func (r *Registry) Validate(name string, body []byte) error {
	schema, ok := r.compiled[name]
	if !ok {
		return fmt.Errorf("%w: schema %s", services.ErrUnknownKind, name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return services.NewValidationError("validate_"+name, "schema_violation", "request body is not valid JSON", services.ErrSchemaViolation)
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}

		return services.NewValidationError("validate_"+name, "schema_violation", strings.Join(errors, "; "), services.ErrSchemaViolation)
	}

	return nil
}
