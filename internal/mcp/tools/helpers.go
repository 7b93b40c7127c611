// Package tools contains MCP tool implementations for the MongoDB server.
package tools

import (
	"encoding/json"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/docsift/mongo-mcp/pkg/docschema"
)

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// ToAny round-trips a value through JSON into plain maps/slices. Use this
// for output fields declared as any so the SDK's inferred schema matches
// what actually serializes.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// toFilter converts a tool input filter into bson.M. A nil input becomes an
// empty (match-all) filter.
func toFilter(m map[string]any) bson.M {
	if m == nil {
		return bson.M{}
	}
	return bson.M(m)
}

// buildSort converts "field" / "-field" specs into an ordered sort document.
func buildSort(specs []string) bson.D {
	if len(specs) == 0 {
		return nil
	}
	sort := make(bson.D, 0, len(specs))
	for _, spec := range specs {
		field := spec
		dir := 1
		if strings.HasPrefix(spec, "-") {
			field = spec[1:]
			dir = -1
		}
		if field == "" {
			continue
		}
		sort = append(sort, bson.E{Key: field, Value: dir})
	}
	if len(sort) == 0 {
		return nil
	}
	return sort
}

// buildProjection converts a field list into an inclusion projection.
func buildProjection(fields []string) bson.D {
	if len(fields) == 0 {
		return nil
	}
	proj := make(bson.D, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		proj = append(proj, bson.E{Key: f, Value: 1})
	}
	if len(proj) == 0 {
		return nil
	}
	return proj
}

// renderDocuments converts driver documents into JSON-safe maps.
func renderDocuments(docs []bson.M) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		rendered, ok := docschema.RenderValue(doc).(map[string]any)
		if !ok {
			continue
		}
		out = append(out, rendered)
	}
	return out
}
