package tools

import (
	"context"
	"slices"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsift/mongo-mcp/internal/store"
)

// ListCollectionsInput is the input for mongodb_list_collections.
type ListCollectionsInput struct {
	IncludeStats bool `json:"include_stats,omitempty" jsonschema:"Include document and index counts per collection (one collStats call each, cached)"`
}

// CollectionInfo summarizes one collection in a listing.
type CollectionInfo struct {
	Name          string `json:"name"`
	DocumentCount int64  `json:"document_count,omitempty"`
	IndexCount    int64  `json:"index_count,omitempty"`
}

// ListCollectionsOutput is the output for mongodb_list_collections.
type ListCollectionsOutput struct {
	Database    string           `json:"database"`
	Collections []CollectionInfo `json:"collections"`
	Total       int              `json:"total"`
}

// ToolListCollections lists the database's collections.
func ToolListCollections(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListCollectionsInput) (*sdkmcp.CallToolResult, ListCollectionsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListCollectionsInput) (*sdkmcp.CallToolResult, ListCollectionsOutput, error) {
		names, err := d.Store.ListCollections(ctx)
		if err != nil {
			return nil, ListCollectionsOutput{}, WrapStoreError(err)
		}

		output := ListCollectionsOutput{
			Database:    d.Store.Database(),
			Collections: make([]CollectionInfo, 0, len(names)),
			Total:       len(names),
		}

		for _, name := range names {
			info := CollectionInfo{Name: name}
			if input.IncludeStats {
				// Stats are best effort: a racing drop must not fail the listing.
				if stats, err := d.CollectionStats(ctx, name); err == nil {
					info.DocumentCount = stats.DocumentCount
					info.IndexCount = stats.IndexCount
				}
			}
			output.Collections = append(output.Collections, info)
		}

		return nil, output, nil
	}
}

// CollectionStatsInput is the input for mongodb_collection_stats.
type CollectionStatsInput struct {
	Collection string `json:"collection" jsonschema:"Collection name"`
}

// CollectionStatsOutput is the output for mongodb_collection_stats.
type CollectionStatsOutput struct {
	Stats *store.CollectionStats `json:"stats"`
}

// ToolCollectionStats returns size and index stats for one collection.
func ToolCollectionStats(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CollectionStatsInput) (*sdkmcp.CallToolResult, CollectionStatsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CollectionStatsInput) (*sdkmcp.CallToolResult, CollectionStatsOutput, error) {
		if input.Collection == "" {
			return nil, CollectionStatsOutput{}, ErrInvalidInput("collection is required")
		}

		stats, err := d.CollectionStats(ctx, input.Collection)
		if err != nil {
			// collStats reports a missing collection as a generic command
			// error; resolve it against the collection listing for a
			// clearer code.
			if names, lerr := d.Store.ListCollections(ctx); lerr == nil && !slices.Contains(names, input.Collection) {
				return nil, CollectionStatsOutput{}, ErrNotFound("collection", input.Collection)
			}
			return nil, CollectionStatsOutput{}, WrapStoreError(err)
		}

		return nil, CollectionStatsOutput{Stats: stats}, nil
	}
}

// ListIndexesInput is the input for mongodb_list_indexes.
type ListIndexesInput struct {
	Collection string `json:"collection" jsonschema:"Collection name"`
}

// ListIndexesOutput is the output for mongodb_list_indexes.
type ListIndexesOutput struct {
	Collection string            `json:"collection"`
	Indexes    []store.IndexInfo `json:"indexes"`
}

// ToolListIndexes lists the indexes on a collection.
func ToolListIndexes(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListIndexesInput) (*sdkmcp.CallToolResult, ListIndexesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListIndexesInput) (*sdkmcp.CallToolResult, ListIndexesOutput, error) {
		if input.Collection == "" {
			return nil, ListIndexesOutput{}, ErrInvalidInput("collection is required")
		}

		indexes, err := d.Store.ListIndexes(ctx, input.Collection)
		if err != nil {
			return nil, ListIndexesOutput{}, WrapStoreError(err)
		}

		return nil, ListIndexesOutput{
			Collection: input.Collection,
			Indexes:    indexes,
		}, nil
	}
}
