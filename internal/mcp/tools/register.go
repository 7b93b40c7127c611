package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: mongodb_list_collections
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_list_collections",
		Description: "List the collections in the configured database. Set include_stats=true for document and index counts per collection. Use mongodb_infer_schema next to learn a collection's field structure.",
	}, ToolListCollections(d))

	// Tool 2: mongodb_collection_stats
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_collection_stats",
		Description: "Get size and index statistics for one collection: document count, data/storage bytes, average object size, index count and bytes.",
	}, ToolCollectionStats(d))

	// Tool 3: mongodb_list_indexes
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_list_indexes",
		Description: "List the indexes on a collection with their key specs and unique/sparse flags. Useful for choosing filter and sort fields that are indexed.",
	}, ToolListIndexes(d))

	// Tool 4: mongodb_infer_schema
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_infer_schema",
		Description: "Sample a collection and infer its structure: every field path (dotted for nested objects, arrays kept opaque) with observed types, up to 3 example values, and presence frequency as \"n/m\" plus a percentage. Run this before mongodb_find on an unfamiliar collection so filters use real field names and types. Set include_json_schema=true for a JSON Schema rendering.",
	}, ToolInferSchema(d))

	// Tool 5: mongodb_describe_database
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_describe_database",
		Description: "Infer a compact schema overview for every collection in the database in one call: per collection, the field paths with their types and presence frequency. Use mongodb_infer_schema afterwards for examples and per-field detail on a specific collection.",
	}, ToolDescribeDatabase(d))

	// Tool 6: mongodb_find
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_find",
		Description: "Query a collection with a MongoDB filter document, optional projection (field list), sort (\"field\" or \"-field\"), limit, and skip. 24-hex strings under _id or *_id/*Id keys are coerced to ObjectIDs. Pass jq to post-process matched documents with a jq expression.",
	}, ToolFind(d))

	// Tool 7: mongodb_count
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_count",
		Description: "Count the documents matching a filter (all documents when the filter is omitted).",
	}, ToolCount(d))

	// Tool 8: mongodb_aggregate
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_aggregate",
		Description: "Run an aggregation pipeline against a collection. Stages pass through as given; a $limit stage is appended when the pipeline has none.",
	}, ToolAggregate(d))

	// Tool 9: mongodb_insert
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_insert",
		Description: "Insert documents into a collection. Returns the assigned ids. Rejected when the server runs in read-only mode.",
	}, ToolInsert(d))

	// Tool 10: mongodb_update
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_update",
		Description: "Update all documents matching a filter. The update document must use operator form ($set, $inc, ...). Rejected when the server runs in read-only mode.",
	}, ToolUpdate(d))

	// Tool 11: mongodb_delete
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "mongodb_delete",
		Description: "Delete all documents matching a filter. An empty filter requires delete_all=true. Rejected when the server runs in read-only mode.",
	}, ToolDelete(d))
}
