package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsift/mongo-mcp/internal/store"
	"github.com/docsift/mongo-mcp/internal/transform"
)

// FindInput is the input for mongodb_find.
type FindInput struct {
	Collection string         `json:"collection" jsonschema:"Collection name"`
	Filter     map[string]any `json:"filter,omitempty" jsonschema:"MongoDB query filter document (default: match all). 24-hex strings under _id or *_id/*Id keys are coerced to ObjectIDs."`
	Projection []string       `json:"projection,omitempty" jsonschema:"Fields to include in results (default: all)"`
	Sort       []string       `json:"sort,omitempty" jsonschema:"Sort fields; prefix with '-' for descending, e.g. [\"-created_at\", \"name\"]"`
	Limit      int            `json:"limit,omitempty" jsonschema:"Max documents to return (default: 20, capped by server config)"`
	Skip       int            `json:"skip,omitempty" jsonschema:"Documents to skip, for paging"`
	JQ         string         `json:"jq,omitempty" jsonschema:"Optional jq expression applied to each matched document; when set, the transform values are returned alongside the documents"`
}

// FindOutput is the output for mongodb_find.
type FindOutput struct {
	Collection string            `json:"collection"`
	Documents  []map[string]any  `json:"documents"`
	Count      int               `json:"count"`
	Transform  *transform.Result `json:"transform,omitempty"`
}

// ToolFind runs a filtered query against a collection.
func ToolFind(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input FindInput) (*sdkmcp.CallToolResult, FindOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input FindInput) (*sdkmcp.CallToolResult, FindOutput, error) {
		if input.Collection == "" {
			return nil, FindOutput{}, ErrInvalidInput("collection is required")
		}
		if input.JQ != "" {
			if err := transform.Validate(input.JQ); err != nil {
				return nil, FindOutput{}, ErrInvalidInput(err.Error())
			}
		}

		docs, err := d.Store.Find(ctx, input.Collection, toFilter(input.Filter), store.FindOptions{
			Projection: buildProjection(input.Projection),
			Sort:       buildSort(input.Sort),
			Limit:      int64(d.QueryLimit(input.Limit)),
			Skip:       int64(input.Skip),
		})
		if err != nil {
			return nil, FindOutput{}, WrapStoreError(err)
		}

		rendered := renderDocuments(docs)
		output := FindOutput{
			Collection: input.Collection,
			Documents:  rendered,
			Count:      len(rendered),
		}

		if input.JQ != "" {
			inputs := make([]any, len(rendered))
			for i, doc := range rendered {
				inputs[i] = doc
			}
			result, err := d.Transform.Apply(inputs, input.JQ, 0)
			if err != nil {
				return nil, FindOutput{}, ErrInvalidInput(err.Error())
			}
			output.Transform = result
		}

		return nil, output, nil
	}
}

// CountInput is the input for mongodb_count.
type CountInput struct {
	Collection string         `json:"collection" jsonschema:"Collection name"`
	Filter     map[string]any `json:"filter,omitempty" jsonschema:"MongoDB query filter document (default: match all)"`
}

// CountOutput is the output for mongodb_count.
type CountOutput struct {
	Collection string `json:"collection"`
	Count      int64  `json:"count"`
}

// ToolCount counts documents matching a filter.
func ToolCount(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CountInput) (*sdkmcp.CallToolResult, CountOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CountInput) (*sdkmcp.CallToolResult, CountOutput, error) {
		if input.Collection == "" {
			return nil, CountOutput{}, ErrInvalidInput("collection is required")
		}

		n, err := d.Store.Count(ctx, input.Collection, toFilter(input.Filter))
		if err != nil {
			return nil, CountOutput{}, WrapStoreError(err)
		}

		return nil, CountOutput{Collection: input.Collection, Count: n}, nil
	}
}
