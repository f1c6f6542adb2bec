// ABOUTME: Feed state manager owning the ordered list of the user's posts.
// ABOUTME: Applies confirmed deletes locally and invalidates the whole feed after uploads.
package feed

import "github.com/2389-research/homefeed/internal/models"

// Manager owns the post collection between synchronizations. The rendered
// list always equals the last full fetch minus confirmed deletes; no post is
// ever synthesized locally.
type Manager struct {
	posts []models.Post
	stale bool
}

// NewManager returns an empty, stale manager: nothing may be rendered before
// the first successful fetch.
func NewManager() *Manager {
	return &Manager{stale: true}
}

// Initialize replaces the collection wholesale with a fresh fetch, in server
// order, and marks the feed synchronized.
func (m *Manager) Initialize(posts []models.Post) {
	m.posts = make([]models.Post, len(posts))
	copy(m.posts, posts)
	m.stale = false
}

// Posts returns the current collection. Callers must not mutate it.
func (m *Manager) Posts() []models.Post {
	return m.posts
}

// Len returns the number of posts currently held.
func (m *Manager) Len() int {
	return len(m.posts)
}

// Find returns the post with the given ID, if present.
func (m *Manager) Find(postID string) (models.Post, bool) {
	for _, p := range m.posts {
		if p.PostID == postID {
			return p, true
		}
	}
	return models.Post{}, false
}

// ApplyDelete removes the matching post after the backend has confirmed the
// delete. Unknown IDs are a no-op: the post was already gone from the last
// synchronized set.
func (m *Manager) ApplyDelete(postID string) {
	for i, p := range m.posts {
		if p.PostID == postID {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return
		}
	}
}

// MarkStale flags the feed for resynchronization. Called after a successful
// upload: server-generated fields (postId, createdAt, media URLs) make a
// local append impossible, so the whole feed must be re-fetched.
func (m *Manager) MarkStale() {
	m.stale = true
}

// Stale reports whether the collection must be re-fetched before rendering.
func (m *Manager) Stale() bool {
	return m.stale
}
