package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator wraps a compiled JSON Schema for repeated validation, used for
// strict structured-output decoding (§4.3) and tool-argument decoding
// (§4.4). Grounded in goadesign-goa-ai's jsonschema/v6 usage — the
// teacher's own schema package only builds schemas, it never validates
// against them.
type Validator struct {
	schema *jsonschema.Schema
}

// Compile builds a Validator from a schema map produced by Object/From.
func Compile(schemaDoc map[string]any) (*Validator, error) {
	raw, err := json.Marshal(schemaDoc)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal schema: %w", err)
	}
	unmarshaled, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema: parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	const resourceURL = "mem://schema.json"
	if err := c.AddResource(resourceURL, unmarshaled); err != nil {
		return nil, fmt.Errorf("schema: add resource: %w", err)
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("schema: compile: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate decodes raw JSON generically and checks it against the
// compiled schema, returning a descriptive error on mismatch.
func (v *Validator) Validate(raw []byte) error {
	var inst any
	if err := json.Unmarshal(raw, &inst); err != nil {
		return fmt.Errorf("schema: invalid json: %w", err)
	}
	if err := v.schema.Validate(inst); err != nil {
		return fmt.Errorf("schema: validation failed: %w", err)
	}
	return nil
}

// DecodeStrict validates raw against the schema, then strictly decodes it
// into dst (disallowing unknown fields), the "final parsing" step of
// §4.3 performed once Completed arrives.
func (v *Validator) DecodeStrict(raw []byte, dst any) error {
	if err := v.Validate(raw); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
