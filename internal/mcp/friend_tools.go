// ABOUTME: MCP tool implementations for user search and friend requests.
// ABOUTME: Registers search_users and send_friend_request tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerFriendTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_users",
		Description: "Search for users by name and show the friend-request status for each.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search text matched against usernames and names"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchUsers)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "send_friend_request",
		Description: "Send a friend request to a user by username.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"username": {"type": "string", "description": "Username to send the request to", "minLength": 1}
			},
			"required": ["username"]
		}`),
	}, s.handleSendFriendRequest)
}

func (s *Server) handleSearchUsers(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	results, err := s.client.SearchUsers(ctx, args.Query)
	if err != nil {
		return toolError("search failed: %v", err), nil
	}

	if len(results) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No users found."}},
		}, nil
	}

	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("%s - %s\n", r.DisplayName(), r.RequestStatus))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleSendFriendRequest(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Username == "" {
		return toolError("username is required"), nil
	}

	ok, err := s.client.SendFriendRequest(ctx, args.Username)
	if err != nil {
		return toolError("failed to send friend request: %v", err), nil
	}
	if !ok {
		return toolError("the backend declined the friend request to @%s", args.Username), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Friend request sent to @%s.", args.Username),
		}},
	}, nil
}
