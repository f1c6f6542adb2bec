// ABOUTME: Tests for the feed and friend MCP tool handlers.
// ABOUTME: Uses an httptest backend so handlers exercise the real API client.
package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/homefeed/internal/api"
	"github.com/2389-research/homefeed/internal/config"
	"github.com/2389-research/homefeed/internal/session"
)

func makeServer(t *testing.T, backend *httptest.Server) *Server {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := &config.Config{}
	cfg.Server.APIURL = backend.URL
	cfg.Auth.Token = "test-token"
	client := api.NewClient(backend.URL, session.NewStore(cfg))
	server, err := NewServer(client)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return server
}

func callTool(t *testing.T, s *Server, name string, args interface{}) *gomcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}

	req := &gomcp.CallToolRequest{
		Params: &gomcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}

	// Call the handler methods directly based on tool name
	ctx := context.Background()

	switch name {
	case "read_feed":
		result, err := s.handleReadFeed(ctx, req)
		if err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return result
	case "create_post":
		result, err := s.handleCreatePost(ctx, req)
		if err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return result
	case "delete_post":
		result, err := s.handleDeletePost(ctx, req)
		if err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return result
	case "search_users":
		result, err := s.handleSearchUsers(ctx, req)
		if err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return result
	case "send_friend_request":
		result, err := s.handleSendFriendRequest(ctx, req)
		if err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return result
	default:
		t.Fatalf("unknown tool: %s", name)
		return nil
	}
}

func getTextContent(result *gomcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*gomcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestNewServerRequiresClient(t *testing.T) {
	_, err := NewServer(nil)
	if err == nil {
		t.Error("expected error when api client is nil")
	}
}

func TestReadFeedTool(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userDetail" {
			t.Errorf("expected /userDetail, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"username": "bob",
			"twoFactorEnabled": false,
			"posts": [{"postId": "p1", "caption": "hi", "post": "world", "createdAt": "2024-01-01T00:00:00Z"}]
		}`))
	}))
	defer backend.Close()

	s := makeServer(t, backend)
	result := callTool(t, s, "read_feed", map[string]string{})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	text := getTextContent(result)
	if !strings.Contains(text, "@bob") {
		t.Errorf("expected username in response, got: %s", text)
	}
	if !strings.Contains(text, "p1") {
		t.Errorf("expected post id in response, got: %s", text)
	}
}

func TestCreatePostTool(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user-posts/upload" {
			t.Errorf("expected upload path, got %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		if got := r.MultipartForm.Value["caption"][0]; got != "hello" {
			t.Errorf("expected caption 'hello', got %q", got)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer backend.Close()

	s := makeServer(t, backend)
	result := callTool(t, s, "create_post", map[string]string{
		"caption": "hello",
		"text":    "first post",
	})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
}

func TestDeletePostTool(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user-posts/delete/p1" {
			t.Errorf("expected delete path for p1, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	s := makeServer(t, backend)
	result := callTool(t, s, "delete_post", map[string]string{"post_id": "p1"})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
}

func TestDeletePostToolRequiresID(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no backend call for missing post_id")
	}))
	defer backend.Close()

	s := makeServer(t, backend)
	result := callTool(t, s, "delete_post", map[string]string{})

	if !result.IsError {
		t.Error("expected error when post_id is empty")
	}
}

func TestSearchUsersTool(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"username": "ann1", "firstname": "Ann", "lastname": "One", "requestStatus": "NONE"}]`))
	}))
	defer backend.Close()

	s := makeServer(t, backend)
	result := callTool(t, s, "search_users", map[string]string{"query": "ann"})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	text := getTextContent(result)
	if !strings.Contains(text, "@ann1") || !strings.Contains(text, "NONE") {
		t.Errorf("expected result line with status, got: %s", text)
	}
}

func TestSendFriendRequestTool(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	s := makeServer(t, backend)
	result := callTool(t, s, "send_friend_request", map[string]string{"username": "ann1"})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
}

func TestSendFriendRequestToolDeclined(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer backend.Close()

	s := makeServer(t, backend)
	result := callTool(t, s, "send_friend_request", map[string]string{"username": "ann1"})

	if !result.IsError {
		t.Error("expected tool error when the backend declines")
	}
}
