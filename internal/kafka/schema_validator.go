package kafka

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/v1/*.json
var schemaFS embed.FS

const loanRequestEventSchema = "schemas/v1/loan_request_event.v1.json"

type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	data, err := schemaFS.ReadFile(loanRequestEventSchema)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	if err := c.AddResource("schema.json", bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate checks doc against the loan request event schema.
func (v *Validator) Validate(doc any) error {
	// jsonschema expects the generic JSON shapes (map[string]any, float64, ...)
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	return v.schema.Validate(x)
}
