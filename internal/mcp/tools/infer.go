package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsift/mongo-mcp/pkg/docschema"
)

// InferSchemaInput is the input for mongodb_infer_schema.
type InferSchemaInput struct {
	Collection    string `json:"collection" jsonschema:"Collection to sample"`
	SampleSize    int    `json:"sample_size,omitempty" jsonschema:"Documents to sample (default: 100, capped by server config). Fewer are used when the collection is smaller."`
	IncludeSchema bool   `json:"include_json_schema,omitempty" jsonschema:"Also render the report as a JSON Schema (Draft 2020-12)"`
}

// InferSchemaOutput is the output for mongodb_infer_schema.
type InferSchemaOutput struct {
	Report     *docschema.Report `json:"report"`
	JSONSchema any               `json:"json_schema,omitempty"`
	Hint       string            `json:"hint,omitempty"`
}

// ToolInferSchema samples a collection and infers its field-level structure:
// every observed field path with type tags, example values, and presence
// frequency. This is the introspection step that lets a client form correct
// find/aggregate calls without guessing field names.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, InferSchemaOutput, error) {
		if input.Collection == "" {
			return nil, InferSchemaOutput{}, ErrInvalidInput("collection is required")
		}

		samples, err := d.Store.FetchSample(ctx, input.Collection, d.SampleSize(input.SampleSize))
		if err != nil {
			return nil, InferSchemaOutput{}, WrapStoreError(err)
		}

		report := docschema.Infer(input.Collection, samples)

		output := InferSchemaOutput{Report: report}
		if report.SampleSize > 0 {
			output.Hint = fmt.Sprintf(
				"Use mongodb_find(collection=%q, filter=...) with the reported field paths; mixed-type fields may need $type guards.",
				input.Collection)
		}

		if input.IncludeSchema {
			rendered, err := ToAny(docschema.ReportSchema(report))
			if err != nil {
				return nil, InferSchemaOutput{}, fmt.Errorf("rendering JSON schema: %w", err)
			}
			output.JSONSchema = rendered
		}

		return nil, output, nil
	}
}
