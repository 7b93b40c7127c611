// Package mcpsrv provides an extensible MCP server for MongoDB.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin MongoDB tools, prompts, and resources. Users can extend the
// server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server from environment configuration (MONGODB_URI,
// MONGODB_DATABASE, ...):
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close(ctx)
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    Collection string `json:"collection"`
//	}
//
//	type MyOutput struct {
//	    Count int `json:"count"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(
//	        &mcp.Tool{Name: "my_tool", Description: "My tool"},
//	        func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	                n, err := d.Store.Count(ctx, input.Collection, nil)
//	                return nil, MyOutput{Count: int(n)}, err
//	            }
//	        },
//	    ),
//	)
//
// # Configuration
//
// Configure logging and connection options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithMongoURI("mongodb://localhost:27017"),
//	    mcpsrv.WithDatabase("app"),
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/mongo-mcp.log"),
//	)
package mcpsrv
