// ABOUTME: Core data models for the homefeed client: posts, drafts, and search results.
// ABOUTME: Provides the friend-request status lifecycle and type definitions for all state slices.
package models

import "time"

// Post is a single feed post as returned by the backend. PostID, media URLs,
// and CreatedAt are server-generated and never synthesized client-side.
type Post struct {
	PostID    string    `json:"postId"`
	Caption   string    `json:"caption"`
	Body      string    `json:"post"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserDetail is the authenticated user's profile plus their posts, in
// server order.
type UserDetail struct {
	Username         string `json:"username"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
	Posts            []Post `json:"posts"`
}

// DraftPost holds user input between editing and a successful upload.
// Image and Video are local file paths resolved at upload time.
type DraftPost struct {
	Caption string
	Body    string
	Image   string
	Video   string
}

// Reset clears the draft after a successful upload or navigation away.
func (d *DraftPost) Reset() {
	*d = DraftPost{}
}

// RequestStatus is the friend-request relationship from the logged-in user
// toward a searched user.
type RequestStatus string

const (
	StatusNone     RequestStatus = "NONE"
	StatusPending  RequestStatus = "PENDING"
	StatusAccepted RequestStatus = "ACCEPTED"
	StatusRejected RequestStatus = "REJECTED"
)

// CanRequest reports whether a friend request may be sent in this status.
// PENDING and ACCEPTED are terminal from the client's point of view;
// REJECTED may be retried.
func (s RequestStatus) CanRequest() bool {
	return s == StatusNone || s == StatusRejected
}

// SearchResult is one user returned by the search endpoint. Username is
// unique within a single result set (backend contract).
type SearchResult struct {
	Username      string        `json:"username"`
	FirstName     string        `json:"firstname"`
	LastName      string        `json:"lastname"`
	RequestStatus RequestStatus `json:"requestStatus"`
}

// DisplayName renders "First Last (@username)" for listings.
func (r SearchResult) DisplayName() string {
	name := r.FirstName
	if r.LastName != "" {
		if name != "" {
			name += " "
		}
		name += r.LastName
	}
	if name == "" {
		return "@" + r.Username
	}
	return name + " (@" + r.Username + ")"
}
