// ABOUTME: MCP tool implementations for feed operations.
// ABOUTME: Registers read_feed, create_post, and delete_post tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/homefeed/internal/models"
)

func (s *Server) registerFeedTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_feed",
		Description: "Retrieve the logged-in user's profile and posts from the backend.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleReadFeed)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "create_post",
		Description: "Create a new post with an optional caption and media file paths.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"caption": {"type": "string", "description": "Short caption for the post"},
				"text": {"type": "string", "description": "The body text of the post"},
				"image": {"type": "string", "description": "Local path to an image to attach (optional)"},
				"video": {"type": "string", "description": "Local path to a video to attach (optional)"}
			}
		}`),
	}, s.handleCreatePost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_post",
		Description: "Delete one of the user's posts by its ID.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"post_id": {"type": "string", "description": "ID of the post to delete", "minLength": 1}
			},
			"required": ["post_id"]
		}`),
	}, s.handleDeletePost)
}

func (s *Server) handleReadFeed(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	detail, err := s.client.FetchUserDetail(ctx)
	if err != nil {
		return toolError("failed to fetch feed: %v", err), nil
	}

	if len(detail.Posts) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{
				Text: fmt.Sprintf("@%s has no posts yet.", detail.Username),
			}},
		}, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Feed for @%s (%d posts)\n", detail.Username, len(detail.Posts)))
	for _, post := range detail.Posts {
		sb.WriteString(fmt.Sprintf("---\n[%s] %s", post.PostID, post.Caption))
		if !post.CreatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf(" (%s)", post.CreatedAt.Format("2006-01-02 15:04:05")))
		}
		sb.WriteString(fmt.Sprintf("\n%s\n", post.Body))
		if post.ImageURL != "" {
			sb.WriteString(fmt.Sprintf("image: %s\n", post.ImageURL))
		}
		if post.VideoURL != "" {
			sb.WriteString(fmt.Sprintf("video: %s\n", post.VideoURL))
		}
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleCreatePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Caption string `json:"caption"`
		Text    string `json:"text"`
		Image   string `json:"image"`
		Video   string `json:"video"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	draft := models.DraftPost{
		Caption: args.Caption,
		Body:    args.Text,
		Image:   args.Image,
		Video:   args.Video,
	}
	if err := s.client.UploadPost(ctx, draft); err != nil {
		return toolError("failed to upload post: %v", err), nil
	}

	// The post ID is server-generated; callers should read_feed for the
	// refreshed collection.
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: "Post uploaded. Use read_feed to see the refreshed feed.",
		}},
	}, nil
}

func (s *Server) handleDeletePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		PostID string `json:"post_id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.PostID == "" {
		return toolError("post_id is required"), nil
	}

	if err := s.client.DeletePost(ctx, args.PostID); err != nil {
		return toolError("failed to delete post: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Post %s deleted.", args.PostID),
		}},
	}, nil
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
