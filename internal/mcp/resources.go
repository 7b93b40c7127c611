package mcp

import (
	"context"
	"encoding/json"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docsift/mongo-mcp/pkg/docschema"
)

// MimeJSON is the MIME type for JSON resource contents.
const MimeJSON = "application/json"

// Resource URI scheme: mongodb://
// Supported URIs:
//   mongodb://collections
//   mongodb://{collection}/schema

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         "mongodb://collections",
		Name:        "Collections",
		Description: "The collection names in the configured database.",
		MIMEType:    MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.8,
		},
	}, s.handleResourceCollections)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "mongodb://{collection}/schema",
		Name:        "Collection Schema",
		Description: "Inferred schema report for a collection: field paths with types, examples, and presence frequency. Sampled fresh on every read with the configured default sample size.",
		MIMEType:    MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.7,
		},
	}, s.handleResourceSchema)
}

func (s *Server) handleResourceCollections(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	names, err := s.deps.Store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResourceResult(req.Params.URI, map[string]any{
		"database":    s.deps.Store.Database(),
		"collections": names,
	})
}

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	collection := parseSchemaURI(req.Params.URI)
	if collection == "" {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	samples, err := s.deps.Store.FetchSample(ctx, collection, s.deps.SampleSize(0))
	if err != nil {
		return nil, err
	}

	return jsonResourceResult(req.Params.URI, docschema.Infer(collection, samples))
}

// parseSchemaURI extracts the collection from mongodb://{collection}/schema.
func parseSchemaURI(uri string) string {
	rest, ok := strings.CutPrefix(uri, "mongodb://")
	if !ok {
		return ""
	}
	collection, ok := strings.CutSuffix(rest, "/schema")
	if !ok || collection == "" || strings.Contains(collection, "/") {
		return ""
	}
	return collection
}

func jsonResourceResult(uri string, v any) (*sdkmcp.ReadResourceResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{URI: uri, MIMEType: MimeJSON, Text: string(b)},
		},
	}, nil
}
