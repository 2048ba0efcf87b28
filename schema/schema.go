// Package schema derives JSON Schemas from typed descriptions, builds them
// manually via a fluent DSL, validates decoded values against them, and
// incrementally completes partial (streamed) JSON documents.
package schema

// Prop is a named property with optional required flag, adapted from the
// teacher's builder DSL (schema/schema.go) and extended with a
// deterministic additionalProperties:false / required-list output, per
// §4.3's "deterministic JSON Schema" requirement.
type Prop struct {
	name     string
	schema   map[string]any
	required bool
}

// Property creates a named schema property.
func Property(name string, s map[string]any) Prop {
	return Prop{name: name, schema: s}
}

// Required marks this property as required.
func (p Prop) Required() Prop {
	p.required = true
	return p
}

// Object builds a JSON Schema object from the given properties, always
// setting additionalProperties: false and inferring "required" from the
// non-optional props.
func Object(props ...Prop) map[string]any {
	properties := make(map[string]any, len(props))
	var required []string
	for _, p := range props {
		properties[p.name] = p.schema
		if p.required {
			required = append(required, p.name)
		}
	}
	obj := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		obj["required"] = required
	}
	return obj
}

// String returns a string schema.
func String(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// Int returns an integer schema.
func Int(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

// Number returns a number schema.
func Number(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

// Bool returns a boolean schema.
func Bool(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

// Enum returns a string enum schema.
func Enum(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}

// Array returns an array schema with the given item schema.
func Array(desc string, items map[string]any) map[string]any {
	return map[string]any{"type": "array", "description": desc, "items": items}
}

// OneOf builds a discriminated-union schema for nested sum types, each
// branch tagged by the discriminator field name. The schema generator
// recursion guard (max 32 levels, §9) is enforced by From, which is the
// only caller that recurses.
func OneOf(discriminator string, branches ...map[string]any) map[string]any {
	return map[string]any{
		"oneOf":         branches,
		"discriminator": map[string]any{"propertyName": discriminator},
	}
}
