// ABOUTME: MCP server initialization and configuration for homefeed.
// ABOUTME: Sets up feed and friend tools over the backend API for AI agent access.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/homefeed/internal/api"
)

// Server wraps the MCP server with the backend API client.
type Server struct {
	mcp    *gomcp.Server
	client *api.Client
}

// NewServer creates an MCP server exposing feed, search, and friend tools.
func NewServer(client *api.Client) (*Server, error) {
	if client == nil {
		return nil, fmt.Errorf("api client is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "homefeed",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		client: client,
	}

	s.registerFeedTools()
	s.registerFriendTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
