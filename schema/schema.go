// Package schema validates JSON block content against a JSON Schema.
//
// A BlockType labels text but says nothing about its shape. When an agent's
// output block is expected to carry structured JSON, attach a Schema as an
// output validator and malformed or non-conforming responses fail the call
// instead of flowing into the next agent:
//
//	criteria := schema.MustCompile(schema.Object(map[string]*schema.Property{
//	    "questions": schema.Array("Research questions", map[string]any{"type": "string"}),
//	    "count":     schema.Integer("Number of questions").Min(1),
//	}, "questions"))
//
//	agent.WithOutputValidator("rq_block", criteria)
//
// Schema implements weave.Validator. Validation runs against the block's
// content parsed as JSON.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/blockweave/weave"
)

// Schema is a compiled JSON Schema usable as a weave.Validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Compile compiles a raw schema map. Returns an error when the map is not a
// valid JSON Schema.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, fmt.Errorf("schema is nil")
	}

	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(rawJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like [Compile] but panics on error. Use for schemas defined
// at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Raw returns the underlying map representation, useful for embedding the
// schema in prompts or examples.
func (s *Schema) Raw() map[string]any {
	return s.raw
}

// Name implements weave.Validator.
func (s *Schema) Name() string {
	return "schema"
}

// Validate implements weave.Validator. The block's content must be valid
// JSON conforming to the schema.
func (s *Schema) Validate(block weave.Block) error {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(block.Content()))
	if err != nil {
		return fmt.Errorf("block content is not valid JSON: %w", err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return fmt.Errorf("block content does not match schema: %w", err)
	}
	return nil
}

// Compile-time check that Schema implements weave.Validator.
var _ weave.Validator = (*Schema)(nil)
