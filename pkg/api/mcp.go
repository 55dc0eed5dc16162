package api

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vwap/veganizer/pkg/kit"
	"github.com/vwap/veganizer/pkg/store"
	"github.com/vwap/veganizer/pkg/veganize"
)

// RegisterMCPTools registers the veganizer MCP tools on the server. The tools
// dispatch to the same endpoints as the HTTP routes.
func RegisterMCPTools(srv *server.MCPServer, v *veganize.Veganizer, st *store.Store, logger *slog.Logger) {
	wrap := instrument(logger)
	registerVeganizeRecipe(srv, wrap("veganize")(veganizeEndpoint(v)))
	registerSearchIngredients(srv, wrap("search")(searchEndpoint(st)))
	registerRegistryStats(srv, wrap("stats")(statsEndpoint(st)))
}

func mcpCtx(decoded *kit.MCPDecodeResult) *kit.MCPDecodeResult {
	decoded.EnrichCtx = func(ctx context.Context) context.Context {
		return kit.WithTransport(ctx, "mcp")
	}
	return decoded
}

func registerVeganizeRecipe(srv *server.MCPServer, ep kit.Endpoint) {
	tool := mcp.NewTool("veganize_recipe",
		mcp.WithDescription("Rewrite a recipe by replacing non-vegan ingredients with plant-based substitutes. Returns the rewritten text and the list of applied substitutions."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The full recipe text to veganize")),
	)

	kit.RegisterMCPTool(srv, tool, ep, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		text, _ := req.GetArguments()["text"].(string)
		return mcpCtx(&kit.MCPDecodeResult{Request: &veganizeReq{Text: text}}), nil
	})
}

func registerSearchIngredients(srv *server.MCPServer, ep kit.Endpoint) {
	tool := mcp.NewTool("search_ingredients",
		mcp.WithDescription("Search the ingredient registry by name. Prefix matches rank first, then substring matches, then singular-form matches."),
		mcp.WithString("term", mcp.Required(), mcp.Description("The ingredient name or fragment to search for")),
		mcp.WithString("limit", mcp.Description("Maximum number of results (default 10, max 50)")),
	)

	kit.RegisterMCPTool(srv, tool, ep, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		term, _ := args["term"].(string)
		limit := 0
		if v, _ := args["limit"].(string); v != "" {
			limit, _ = strconv.Atoi(v)
		}
		return mcpCtx(&kit.MCPDecodeResult{Request: &searchReq{Term: term, Limit: limit}}), nil
	})
}

func registerRegistryStats(srv *server.MCPServer, ep kit.Endpoint) {
	tool := mcp.NewTool("registry_stats",
		mcp.WithDescription("Aggregate counts over the ingredient registry: totals, vegan/non-vegan split, distinct categories and sources."),
	)

	kit.RegisterMCPTool(srv, tool, ep, func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return mcpCtx(&kit.MCPDecodeResult{Request: nil}), nil
	})
}
