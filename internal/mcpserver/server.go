// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes cookfind tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/cookfind/internal/apperr"
	"github.com/starford/cookfind/internal/recipeservice"
)

const formatURI = "cookfind://recipe-format"

// Server wraps the MCP server with cookfind tools.
type Server struct {
	mcp *server.MCPServer
	svc *recipeservice.Service
}

// New creates a new MCP server with all cookfind tools registered.
func New(svc *recipeservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"cookfind",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_recipe",
		mcp.WithDescription("Find a recipe by name in the configured recipe directories. "+
			"Earlier directories win. Matching is case-insensitive; .cook is preferred over .menu."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Recipe name, e.g. pancakes, breakfast/omelette or weekly.menu")),
	), s.getRecipe)

	s.mcp.AddTool(mcp.NewTool("search_recipes",
		mcp.WithDescription("Search recipe names and content across all recipe directories."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithBoolean("relevance", mcp.Description("Order results by relevance score instead of directory order")),
	), s.searchRecipes)

	s.mcp.AddTool(mcp.NewTool("recipe_tree",
		mcp.WithDescription("Return the directory tree of every recipe directory."),
	), s.recipeTree)

	s.mcp.AddTool(mcp.NewTool("related_files",
		mcp.WithDescription("List the images and referenced recipes a recipe depends on, transitively."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Recipe name")),
	), s.relatedFiles)

	s.mcp.AddTool(mcp.NewTool("parse_recipe",
		mcp.WithDescription("Parse raw recipe text and return its metadata without reading any files. "+
			"Read the format via get_recipe_format or the "+formatURI+" resource."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Recipe text")),
		mcp.WithString("name", mcp.Description("Optional name; a .menu suffix marks a menu")),
	), s.parseRecipe)

	s.mcp.AddTool(mcp.NewTool("get_recipe_format",
		mcp.WithDescription("Returns the recipe file format: front-matter keys, references and image naming."),
	), s.getRecipeFormat)

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Recipe File Format",
			mcp.WithResourceDescription("Recipe file layout, metadata keys, references and image conventions."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecipeFormatResource,
	)

	return s
}

// Serve runs the MCP protocol over in and out until ctx is done or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func (s *Server) getRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recipe, err := s.svc.GetRecipe(ctx, name)
	if err != nil {
		return toolError(name, err), nil
	}
	return jsonResult(recipe)
}

func (s *Server) searchRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, req.GetBool("relevance", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) recipeTree(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	trees, err := s.svc.Trees(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(trees)
}

func (s *Server) relatedFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rel, err := s.svc.Related(ctx, name)
	if err != nil {
		return toolError(name, err), nil
	}
	return jsonResult(rel)
}

func (s *Server) parseRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recipe, err := s.svc.FromContent(ctx, content, req.GetString("name", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(recipe)
}

func (s *Server) getRecipeFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecipeFormat), nil
}

func (s *Server) readRecipeFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     RecipeFormat,
		},
	}, nil
}

func toolError(name string, err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name))
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcpserver: encode result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}
