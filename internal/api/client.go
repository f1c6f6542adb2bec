// ABOUTME: HTTP client for the homefeed backend API.
// ABOUTME: Injects the bearer token on every call and maps responses to the gateway error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/2389-research/homefeed/internal/config"
	"github.com/2389-research/homefeed/internal/models"
	"github.com/2389-research/homefeed/internal/session"
)

// Client performs all backend calls for the homefeed client. Every call
// requires a token from the session store; a missing token fails before any
// request is sent and clears the session.
type Client struct {
	apiURL  string
	session *session.Store
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a gateway client over the given session store.
func NewClient(apiURL string, sess *session.Store) *Client {
	apiURL = strings.TrimRight(apiURL, "/")
	return &Client{
		apiURL:  apiURL,
		session: sess,
		client:  &http.Client{Timeout: 30 * time.Second},
		// Outbound throttle so bursts of TUI intents don't hammer the backend.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// newRequest builds an authenticated request. If no token is persisted the
// session is cleared and session.ErrUnauthenticated is returned with zero
// network requests issued.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	token, err := c.session.Load()
	if err != nil {
		_ = c.session.Clear()
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// do sends the request, converting network failures to *TransportError and
// non-2xx responses to *RequestError. The caller owns the body on success.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		_ = resp.Body.Close()
		return nil, &RequestError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return resp, nil
}

// FetchUserDetail returns the logged-in user's profile and posts. On any
// failure the session is cleared: the caller must return to login rather
// than render a dashboard it can't populate.
func (c *Client) FetchUserDetail(ctx context.Context) (*models.UserDetail, error) {
	req, err := c.newRequest(ctx, "GET", "/userDetail", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(OpUserDetail, req)
	if err != nil {
		_ = c.session.Clear()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var detail models.UserDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		_ = c.session.Clear()
		return nil, fmt.Errorf("failed to decode user detail: %w", err)
	}

	c.session.SetUsername(detail.Username)
	return &detail, nil
}

// UploadPost sends a draft as a multipart body: caption and post text are
// always included (even when empty — the backend decides validity), image
// and video parts only when a path is set. The response body is ignored;
// success is signaled by status alone.
func (c *Client) UploadPost(ctx context.Context, draft models.DraftPost) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("caption", draft.Caption); err != nil {
		return fmt.Errorf("failed to build upload body: %w", err)
	}
	if err := w.WriteField("post", draft.Body); err != nil {
		return fmt.Errorf("failed to build upload body: %w", err)
	}
	if draft.Image != "" {
		if err := attachFile(w, "image", draft.Image); err != nil {
			return err
		}
	}
	if draft.Video != "" {
		if err := attachFile(w, "video", draft.Video); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to build upload body: %w", err)
	}

	req, err := c.newRequest(ctx, "POST", "/api/user-posts/upload", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(OpUpload, req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

// attachFile copies a local file into the multipart body under the given
// field name. A leading ~ in the path is expanded first, so paths typed into
// the TUI or passed as flags behave like shell paths.
func attachFile(w *multipart.Writer, field, path string) error {
	path, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s path: %w", field, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s file: %w", field, err)
	}
	defer func() { _ = f.Close() }()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s file: %w", field, err)
	}
	return nil
}

// DeletePost deletes a post by ID. Success has no body.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	req, err := c.newRequest(ctx, "DELETE", "/api/user-posts/delete/"+url.PathEscape(postID), nil)
	if err != nil {
		return err
	}

	resp, err := c.do(OpDelete, req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

// SearchUsers returns users matching the query, in backend order. The query
// is percent-encoded but otherwise forwarded verbatim; validation is the
// backend's job.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]models.SearchResult, error) {
	req, err := c.newRequest(ctx, "GET", "/search", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("query", query)
	req.URL.RawQuery = q.Encode()

	resp, err := c.do(OpSearch, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var results []models.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return results, nil
}

// SendFriendRequest posts the target username as a text/plain body. A non-2xx
// response means the backend declined the request and returns (false, nil);
// only transport-level failures are errors.
func (c *Client) SendFriendRequest(ctx context.Context, targetUsername string) (bool, error) {
	req, err := c.newRequest(ctx, "POST", "/api/friends/request", strings.NewReader(targetUsername))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "text/plain")

	if err := c.limiter.Wait(ctx); err != nil {
		return false, &TransportError{Op: OpFriendRequest, Err: err}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, &TransportError{Op: OpFriendRequest, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}
