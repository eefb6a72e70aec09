package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vadimtrunov/PickFlick/internal/picker"
)

// Picker is the picking operation the MCP tool exposes.
type Picker interface {
	Pick(ctx context.Context, category picker.Category) (*picker.Title, error)
}

// Server wraps an MCP SDK server with the PickFlick tool.
type Server struct {
	server *mcpsdk.Server
	picker Picker
	logger *slog.Logger
}

// NewServer creates an MCP server with the random_title tool registered.
func NewServer(p Picker, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "pickflick",
			Version: version,
		},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{server: s, picker: p, logger: logger}
	s.AddTool(randomTitleTool(), srv.handleRandomTitle)
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func randomTitleTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name: "random_title",
		Description: "Pick a random popular movie or TV series from TMDb. " +
			"Returns its title, kind, release date, overview, poster URL and TMDb ID.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"category": map[string]any{
					"type":        "string",
					"description": "Content kind to pick from: movie, tv or random. Defaults to random.",
				},
			},
		},
	}
}

func (s *Server) handleRandomTitle(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var args struct {
		Category string `json:"category"`
	}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
	}

	category, err := picker.ParseCategory(args.Category)
	if err != nil {
		return toolError(err.Error()), nil
	}

	title, err := s.picker.Pick(ctx, category)
	if err != nil {
		s.logger.Warn("random_title failed", slog.String("category", string(category)), slog.Any("error", err))
		return toolError(fmt.Sprintf("pick failed: %v", err)), nil
	}
	if title == nil {
		return toolJSON(map[string]any{"found": false})
	}
	return toolJSON(title)
}

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}
