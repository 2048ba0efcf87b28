package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// maxDepth is the schema generator's recursion guard (§9): cycles and
// excessively deep nesting are rejected at schema-build time rather than
// overflowing the stack.
const maxDepth = 32

// From derives a deterministic JSON Schema from a Go struct type via
// reflection, the typed-description entry point the spec requires in
// addition to the teacher's manual builder DSL (§4.3). Field names follow
// the `json` tag; a field is optional (absent from "required") if its type
// is a pointer or it carries `json:",omitempty"`.
func From(t reflect.Type) (map[string]any, error) {
	return deriveType(t, 0, map[reflect.Type]bool{})
}

func deriveType(t reflect.Type, depth int, seen map[reflect.Type]bool) (map[string]any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("schema: max recursion depth %d exceeded", maxDepth)
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}, nil
	case reflect.Bool:
		return map[string]any{"type": "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}, nil
	case reflect.Slice, reflect.Array:
		items, err := deriveType(t.Elem(), depth+1, seen)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": "array", "items": items}, nil
	case reflect.Map:
		return map[string]any{"type": "object"}, nil
	case reflect.Struct:
		if seen[t] {
			return nil, fmt.Errorf("schema: cyclic type %s", t.Name())
		}
		seen[t] = true
		defer delete(seen, t)

		properties := make(map[string]any)
		var required []string
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, optional := jsonFieldName(field)
			if name == "-" {
				continue
			}
			fieldSchema, err := deriveType(field.Type, depth+1, seen)
			if err != nil {
				return nil, err
			}
			if desc := field.Tag.Get("description"); desc != "" {
				fieldSchema["description"] = desc
			}
			properties[name] = fieldSchema
			if !optional && field.Type.Kind() != reflect.Ptr {
				required = append(required, name)
			}
		}
		out := map[string]any{
			"type":                 "object",
			"properties":           properties,
			"additionalProperties": false,
		}
		if len(required) > 0 {
			out["required"] = required
		}
		return out, nil
	default:
		return nil, fmt.Errorf("schema: unsupported kind %s", t.Kind())
	}
}

func jsonFieldName(f reflect.StructField) (name string, optional bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			optional = true
		}
	}
	return name, optional
}

// NullableMirror derives a schema identical to From, except every leaf
// property is optional — the "nullable mirror" used to decode partial
// (in-flight) structured output (§4.3, §9).
func NullableMirror(t reflect.Type) (map[string]any, error) {
	s, err := From(t)
	if err != nil {
		return nil, err
	}
	stripRequired(s)
	return s, nil
}

func stripRequired(s map[string]any) {
	delete(s, "required")
	if props, ok := s["properties"].(map[string]any); ok {
		for _, v := range props {
			if nested, ok := v.(map[string]any); ok {
				stripRequired(nested)
			}
		}
	}
	if items, ok := s["items"].(map[string]any); ok {
		stripRequired(items)
	}
}
