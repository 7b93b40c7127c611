package docschema

import (
	"strings"

	"github.com/invopop/jsonschema"
)

// ReportSchema renders an inference report as a JSON Schema (Draft 2020-12)
// object tree. The rendering is informational: presence frequency does not
// translate into required constraints, and array fields stay opaque with no
// items schema, mirroring how the inferencer observed them.
func ReportSchema(r *Report) *jsonschema.Schema {
	root := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	if r == nil {
		return root
	}

	for _, path := range r.Paths() {
		parts := strings.Split(path, ".")
		node := root
		for i, part := range parts {
			if node.Properties == nil {
				node.Properties = jsonschema.NewProperties()
			}
			child, ok := node.Properties.Get(part)
			if !ok {
				child = &jsonschema.Schema{}
				node.Properties.Set(part, child)
			}
			if i == len(parts)-1 {
				applyTags(child, r.Fields[path].Types)
			} else if child.Type == "" && len(child.AnyOf) == 0 {
				child.Type = "object"
			}
			node = child
		}
	}

	return root
}

// applyTags sets the schema type for a leaf from its observed tags. Multiple
// tags become an anyOf of single-type schemas, matching how primitive type
// unions are usually expressed when a type array is unavailable.
func applyTags(s *jsonschema.Schema, tags []string) {
	switch len(tags) {
	case 0:
		return
	case 1:
		applyTag(s, tags[0])
	default:
		anyOf := make([]*jsonschema.Schema, 0, len(tags))
		for _, tag := range tags {
			alt := &jsonschema.Schema{}
			applyTag(alt, tag)
			anyOf = append(anyOf, alt)
		}
		s.AnyOf = anyOf
	}
}

func applyTag(s *jsonschema.Schema, tag string) {
	switch tag {
	case TagObjectID:
		s.Type = "string"
		s.Pattern = "^[0-9a-fA-F]{24}$"
	case TagDate:
		s.Type = "string"
		s.Format = "date-time"
	case TagNumber:
		s.Type = "number"
	case TagBoolean:
		s.Type = "boolean"
	case TagArray:
		s.Type = "array"
	case TagObject:
		s.Type = "object"
	case TagString:
		s.Type = "string"
	case TagNull:
		s.Type = "null"
	default:
		// unknown stays an unconstrained schema
	}
}
