// ABOUTME: HTTP token validation for the homefeed backend.
// ABOUTME: Tests credentials by fetching the user detail endpoint directly.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ValidateToken checks the server URL and bearer token by fetching the user
// detail endpoint. Returns the username the backend reports for the token.
// The context allows cancellation when the user quits during validation.
func ValidateToken(ctx context.Context, apiURL, token string) (string, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	apiURL = strings.TrimRight(apiURL, "/")

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL+"/userDetail", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return "", fmt.Errorf("backend returned %d: %s", resp.StatusCode, string(body))
	}

	var detail struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return "", fmt.Errorf("failed to decode user detail: %w", err)
	}

	return detail.Username, nil
}
