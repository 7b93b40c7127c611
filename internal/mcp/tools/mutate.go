package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.mongodb.org/mongo-driver/bson"
)

// InsertInput is the input for mongodb_insert.
type InsertInput struct {
	Collection string           `json:"collection" jsonschema:"Collection name"`
	Documents  []map[string]any `json:"documents" jsonschema:"Documents to insert"`
}

// InsertOutput is the output for mongodb_insert.
type InsertOutput struct {
	Collection  string   `json:"collection"`
	InsertedIDs []string `json:"inserted_ids"`
	Count       int      `json:"count"`
}

// ToolInsert inserts documents into a collection.
func ToolInsert(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InsertInput) (*sdkmcp.CallToolResult, InsertOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InsertInput) (*sdkmcp.CallToolResult, InsertOutput, error) {
		if input.Collection == "" {
			return nil, InsertOutput{}, ErrInvalidInput("collection is required")
		}
		if len(input.Documents) == 0 {
			return nil, InsertOutput{}, ErrInvalidInput("documents must not be empty")
		}
		if len(input.Documents) > d.Config.MaxMutationDocs {
			return nil, InsertOutput{}, ErrInvalidInput(
				fmt.Sprintf("too many documents: %d > %d", len(input.Documents), d.Config.MaxMutationDocs))
		}

		docs := make([]bson.M, len(input.Documents))
		for i, doc := range input.Documents {
			docs[i] = bson.M(doc)
		}

		ids, err := d.Store.InsertMany(ctx, input.Collection, docs)
		if err != nil {
			return nil, InsertOutput{}, WrapStoreError(err)
		}

		d.Cache.Invalidate(input.Collection)
		return nil, InsertOutput{
			Collection:  input.Collection,
			InsertedIDs: ids,
			Count:       len(ids),
		}, nil
	}
}

// UpdateInput is the input for mongodb_update.
type UpdateInput struct {
	Collection string         `json:"collection" jsonschema:"Collection name"`
	Filter     map[string]any `json:"filter" jsonschema:"Filter selecting the documents to update"`
	Update     map[string]any `json:"update" jsonschema:"Update document; top-level keys must be update operators like $set"`
}

// UpdateOutput is the output for mongodb_update.
type UpdateOutput struct {
	Collection string `json:"collection"`
	Matched    int64  `json:"matched"`
	Modified   int64  `json:"modified"`
}

// ToolUpdate updates all documents matching a filter.
func ToolUpdate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input UpdateInput) (*sdkmcp.CallToolResult, UpdateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input UpdateInput) (*sdkmcp.CallToolResult, UpdateOutput, error) {
		if input.Collection == "" {
			return nil, UpdateOutput{}, ErrInvalidInput("collection is required")
		}
		if len(input.Filter) == 0 {
			return nil, UpdateOutput{}, ErrInvalidInput("filter is required for updates")
		}
		if err := validateUpdateDocument(input.Update); err != nil {
			return nil, UpdateOutput{}, err
		}

		matched, modified, err := d.Store.UpdateMany(ctx, input.Collection, toFilter(input.Filter), bson.M(input.Update))
		if err != nil {
			return nil, UpdateOutput{}, WrapStoreError(err)
		}

		d.Cache.Invalidate(input.Collection)
		return nil, UpdateOutput{
			Collection: input.Collection,
			Matched:    matched,
			Modified:   modified,
		}, nil
	}
}

// DeleteInput is the input for mongodb_delete.
type DeleteInput struct {
	Collection string         `json:"collection" jsonschema:"Collection name"`
	Filter     map[string]any `json:"filter,omitempty" jsonschema:"Filter selecting the documents to delete"`
	DeleteAll  bool           `json:"delete_all,omitempty" jsonschema:"Must be true to delete with an empty filter"`
}

// DeleteOutput is the output for mongodb_delete.
type DeleteOutput struct {
	Collection string `json:"collection"`
	Deleted    int64  `json:"deleted"`
}

// ToolDelete deletes documents matching a filter. An empty filter wipes the
// collection, so it requires the explicit delete_all flag.
func ToolDelete(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DeleteInput) (*sdkmcp.CallToolResult, DeleteOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DeleteInput) (*sdkmcp.CallToolResult, DeleteOutput, error) {
		if input.Collection == "" {
			return nil, DeleteOutput{}, ErrInvalidInput("collection is required")
		}
		if len(input.Filter) == 0 && !input.DeleteAll {
			return nil, DeleteOutput{}, ErrInvalidInput("empty filter deletes every document; set delete_all=true to confirm")
		}

		deleted, err := d.Store.DeleteMany(ctx, input.Collection, toFilter(input.Filter))
		if err != nil {
			return nil, DeleteOutput{}, WrapStoreError(err)
		}

		d.Cache.Invalidate(input.Collection)
		return nil, DeleteOutput{
			Collection: input.Collection,
			Deleted:    deleted,
		}, nil
	}
}

// validateUpdateDocument rejects update documents that would replace the
// whole document because the driver requires operator form for UpdateMany.
func validateUpdateDocument(update map[string]any) error {
	if len(update) == 0 {
		return ErrInvalidInput("update document is required")
	}
	for key := range update {
		if !strings.HasPrefix(key, "$") {
			return ErrInvalidInput(
				fmt.Sprintf("update keys must be operators like $set; got %q", key))
		}
	}
	return nil
}
