package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.mongodb.org/mongo-driver/bson"
)

// AggregateInput is the input for mongodb_aggregate.
type AggregateInput struct {
	Collection string           `json:"collection" jsonschema:"Collection name"`
	Pipeline   []map[string]any `json:"pipeline" jsonschema:"Aggregation pipeline stages, passed through as given"`
	Limit      int              `json:"limit,omitempty" jsonschema:"Result cap appended as a $limit stage when the pipeline has none (default: 20, capped by server config)"`
}

// AggregateOutput is the output for mongodb_aggregate.
type AggregateOutput struct {
	Collection string           `json:"collection"`
	Documents  []map[string]any `json:"documents"`
	Count      int              `json:"count"`
}

// ToolAggregate runs an aggregation pipeline. The pipeline is a passthrough:
// no planning or rewriting beyond a trailing $limit guard when the caller
// supplied none.
func ToolAggregate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input AggregateInput) (*sdkmcp.CallToolResult, AggregateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input AggregateInput) (*sdkmcp.CallToolResult, AggregateOutput, error) {
		if input.Collection == "" {
			return nil, AggregateOutput{}, ErrInvalidInput("collection is required")
		}
		if len(input.Pipeline) == 0 {
			return nil, AggregateOutput{}, ErrInvalidInput("pipeline must have at least one stage")
		}

		pipeline := make([]bson.M, 0, len(input.Pipeline)+1)
		for _, stage := range input.Pipeline {
			pipeline = append(pipeline, bson.M(stage))
		}
		if !pipelineHasLimit(pipeline) {
			pipeline = append(pipeline, bson.M{"$limit": d.QueryLimit(input.Limit)})
		}

		docs, err := d.Store.Aggregate(ctx, input.Collection, pipeline)
		if err != nil {
			return nil, AggregateOutput{}, WrapStoreError(err)
		}

		rendered := renderDocuments(docs)
		return nil, AggregateOutput{
			Collection: input.Collection,
			Documents:  rendered,
			Count:      len(rendered),
		}, nil
	}
}

func pipelineHasLimit(pipeline []bson.M) bool {
	for _, stage := range pipeline {
		if _, ok := stage["$limit"]; ok {
			return true
		}
	}
	return false
}
