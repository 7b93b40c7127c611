package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts registers the builtin prompts.
func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(&sdkmcp.Prompt{
		Name:        "build_query",
		Description: "RECOMMENDED: Inference-first workflow for querying an unfamiliar collection. Start here - explains how to go from schema inference to correct find/aggregate calls.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "collection",
				Description: "Collection to query",
				Required:    false,
			},
		},
	}, s.handleBuildQueryPrompt)
}

func (s *Server) handleBuildQueryPrompt(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	collection := req.Params.Arguments["collection"]
	if collection == "" {
		collection = "<collection>"
	}

	var sb strings.Builder

	sb.WriteString("# Querying an Unfamiliar Collection\n\n")
	sb.WriteString("## Workflow\n")
	sb.WriteString(fmt.Sprintf("1. Discover: `mongodb_list_collections(include_stats: true)` — confirm %q exists and is non-empty\n", collection))
	sb.WriteString(fmt.Sprintf("2. Infer: `mongodb_infer_schema(collection: %q)` — field paths, types, examples, presence frequency\n", collection))
	sb.WriteString(fmt.Sprintf("3. Query: `mongodb_find(collection: %q, filter: ...)` using only reported field paths\n", collection))

	sb.WriteString("\n## Reading the inference report\n")
	sb.WriteString("- `types` lists every kind observed for a field: a field with [\"number\",\"string\"] needs a `$type` guard or type-tolerant filter\n")
	sb.WriteString("- `frequency` \"7/100\" means the field appeared in 7 of 100 sampled documents; low-frequency fields are often optional or legacy\n")
	sb.WriteString("- nested object fields appear as dotted paths (`user.address.city`); filter on them with the same dotted path\n")
	sb.WriteString("- array fields are reported as `array` at their own path and not expanded; filter array element fields with the dotted path into the array field\n")
	sb.WriteString("- a report with note \"no documents found\" means the collection is empty or missing; do not query it\n")

	sb.WriteString("\n## Key rules\n")
	sb.WriteString("- Pass ObjectIDs as 24-hex strings under `_id` or `*_id`/`*Id` keys; the server coerces them\n")
	sb.WriteString("- Sort with `sort: [\"-created_at\"]` (prefix `-` for descending), check `mongodb_list_indexes` for indexed fields first\n")
	sb.WriteString("- Use `jq` on `mongodb_find` to trim wide documents instead of fetching everything\n")

	return &sdkmcp.GetPromptResult{
		Description: "MongoDB inference-first query workflow",
		Messages: []*sdkmcp.PromptMessage{
			{
				Role:    "user",
				Content: &sdkmcp.TextContent{Text: sb.String()},
			},
		},
	}, nil
}
