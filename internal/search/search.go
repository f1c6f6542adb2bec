// ABOUTME: Search result set and friend-request status state machine.
// ABOUTME: Replaces results wholesale per search and applies optimistic PENDING transitions.
package search

import "github.com/2389-research/homefeed/internal/models"

// Results owns the current search result set and the per-result
// friend-request status. Each search replaces the set wholesale; statuses
// are only patched locally when a friend request succeeds.
type Results struct {
	entries []models.SearchResult
}

// NewResults returns an empty result set.
func NewResults() *Results {
	return &Results{}
}

// Replace discards the previous result set entirely. Stale entries from an
// earlier query are dropped even if they would still match the new one.
func (r *Results) Replace(entries []models.SearchResult) {
	r.entries = make([]models.SearchResult, len(entries))
	copy(r.entries, entries)
}

// Entries returns the current result set in backend order.
func (r *Results) Entries() []models.SearchResult {
	return r.entries
}

// Len returns the number of results currently held.
func (r *Results) Len() int {
	return len(r.entries)
}

// Get returns the result for the given username, if present.
func (r *Results) Get(username string) (models.SearchResult, bool) {
	for _, e := range r.entries {
		if e.Username == username {
			return e, true
		}
	}
	return models.SearchResult{}, false
}

// CanRequest reports whether a friend request may be sent to the given
// username: the user must be in the current set with status NONE or REJECTED.
func (r *Results) CanRequest(username string) bool {
	e, ok := r.Get(username)
	return ok && e.RequestStatus.CanRequest()
}

// MarkPending applies the optimistic transition after a successful friend
// request: NONE or REJECTED becomes PENDING. PENDING and ACCEPTED are left
// untouched, as is every entry on failure (the caller simply doesn't call
// this). Returns true if a status changed.
func (r *Results) MarkPending(username string) bool {
	for i, e := range r.entries {
		if e.Username != username {
			continue
		}
		if !e.RequestStatus.CanRequest() {
			return false
		}
		r.entries[i].RequestStatus = models.StatusPending
		return true
	}
	return false
}
