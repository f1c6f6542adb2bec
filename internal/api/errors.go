// ABOUTME: Error taxonomy for the API gateway client.
// ABOUTME: Distinguishes unauthenticated, transport, and non-2xx request failures.
package api

import (
	"errors"
	"fmt"

	"github.com/2389-research/homefeed/internal/session"
)

// Operation names used in gateway errors.
const (
	OpUserDetail    = "user detail"
	OpUpload        = "upload post"
	OpDelete        = "delete post"
	OpSearch        = "search users"
	OpFriendRequest = "friend request"
)

// RequestError is a non-2xx response from the backend. The operation name
// makes the user-visible message specific (upload failed vs delete failed).
type RequestError struct {
	Op     string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s failed: backend returned %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s failed: backend returned %d", e.Op, e.Status)
}

// TransportError is a network-level failure: the request never produced an
// HTTP response. The operation is abandoned with no automatic retry.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsUnauthenticated reports whether err means the session is missing or
// rejected. These are recovered by clearing the session and returning to
// login, never surfaced as a generic failure.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, session.ErrUnauthenticated)
}
