// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Raido's search capabilities for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/search"
)

// Server wraps the MCP server with Raido search tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all search tools registered.
func New(svc *noteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("natural_search",
		mcp.WithDescription("Search meeting notes with a natural language query. "+
			"Extracts structured criteria (bedrooms, bathrooms, price bounds, location) "+
			"and applies them as a filter; returns the criteria alongside the results."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural language query (e.g. \"3 bed 2 bath homes under 600k in westside\")")),
	), s.naturalSearch)

	s.mcp.AddTool(mcp.NewTool("semantic_search",
		mcp.WithDescription("Rank meeting notes against a natural language query using "+
			"weighted field matching and intent heuristics. Each result carries a score, "+
			"a relevance in [0,1], and explanations of why it matched."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural language search query (e.g. \"first-time buyers with urgent timeline\")")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results to return (default: 10)")),
	), s.semanticSearch)

	s.mcp.AddTool(mcp.NewTool("find_similar_clients",
		mcp.WithDescription("Find clients with requirements similar to a given client: "+
			"shared property type, price overlap, room counts, areas, must-haves, timeline."),
		mcp.WithString("clientId", mcp.Required(), mcp.Description("ID of the client to find similar matches for")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of similar clients to return (default: 5)")),
	), s.findSimilarClients)

	s.mcp.AddTool(mcp.NewTool("advanced_filter",
		mcp.WithDescription("Apply an explicit structured filter: priceRange {min,max}, "+
			"bedrooms, bathrooms, propertyType, areas, timeline, preApproved, tags."),
		mcp.WithObject("filters", mcp.Required(), mcp.Description("Filter criteria object")),
	), s.advancedFilter)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) naturalSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.svc.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resp), nil
}

func (s *Server) semanticSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.svc.RankedSearch(ctx, query, intArg(req, "limit"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resp), nil
}

func (s *Server) findSimilarClients(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := req.RequireString("clientId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := s.svc.Similar(ctx, clientID, intArg(req, "limit"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resp), nil
}

func (s *Server) advancedFilter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := req.GetArguments()["filters"]
	if !ok {
		return mcp.NewToolResultError("filters object is required"), nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return mcp.NewToolResultError("invalid filters object"), nil
	}
	var facets search.Facets
	if err := json.Unmarshal(raw, &facets); err != nil {
		return mcp.NewToolResultError("invalid filters object: " + err.Error()), nil
	}
	resp, err := s.svc.Filter(ctx, facets)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resp), nil
}

// intArg reads an optional numeric argument; 0 lets the service apply its
// default.
func intArg(req mcp.CallToolRequest, name string) int {
	if v, ok := req.GetArguments()[name].(float64); ok {
		return int(v)
	}
	return 0
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}
