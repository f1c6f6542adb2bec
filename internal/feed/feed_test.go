// ABOUTME: Tests for the feed state manager.
// ABOUTME: Covers wholesale initialization, confirmed deletes, and post-upload staleness.
package feed

import (
	"testing"

	"github.com/2389-research/homefeed/internal/models"
)

func somePosts(ids ...string) []models.Post {
	posts := make([]models.Post, len(ids))
	for i, id := range ids {
		posts[i] = models.Post{PostID: id, Caption: "c-" + id, Body: "b-" + id}
	}
	return posts
}

func TestNewManagerIsStale(t *testing.T) {
	m := NewManager()
	if !m.Stale() {
		t.Error("expected a fresh manager to be stale until the first fetch")
	}
	if m.Len() != 0 {
		t.Errorf("expected empty collection, got %d posts", m.Len())
	}
}

func TestInitializeReplacesWholesale(t *testing.T) {
	m := NewManager()
	m.Initialize(somePosts("p1", "p2"))
	m.Initialize(somePosts("p3"))

	if m.Len() != 1 {
		t.Fatalf("expected 1 post after re-initialize, got %d", m.Len())
	}
	if m.Posts()[0].PostID != "p3" {
		t.Errorf("expected p3, got %q", m.Posts()[0].PostID)
	}
	if m.Stale() {
		t.Error("expected manager synchronized after Initialize")
	}
}

func TestInitializeKeepsServerOrder(t *testing.T) {
	m := NewManager()
	m.Initialize(somePosts("p2", "p1", "p3"))

	var got []string
	for _, p := range m.Posts() {
		got = append(got, p.PostID)
	}
	want := []string{"p2", "p1", "p3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected server order %v, got %v", want, got)
		}
	}
}

func TestApplyDeleteAnyOrder(t *testing.T) {
	// The result of a sequence of confirmed deletes is the last fetch minus
	// exactly the deleted IDs, regardless of order.
	orders := [][]string{
		{"p1", "p3"},
		{"p3", "p1"},
	}
	for _, order := range orders {
		m := NewManager()
		m.Initialize(somePosts("p1", "p2", "p3"))
		for _, id := range order {
			m.ApplyDelete(id)
		}
		if m.Len() != 1 {
			t.Fatalf("delete order %v: expected 1 post, got %d", order, m.Len())
		}
		if m.Posts()[0].PostID != "p2" {
			t.Errorf("delete order %v: expected p2 to remain, got %q", order, m.Posts()[0].PostID)
		}
	}
}

func TestApplyDeleteUnknownIDIsNoOp(t *testing.T) {
	m := NewManager()
	m.Initialize(somePosts("p1"))
	m.ApplyDelete("never-fetched")

	if m.Len() != 1 {
		t.Errorf("expected collection unchanged, got %d posts", m.Len())
	}
}

func TestDeleteScenario(t *testing.T) {
	m := NewManager()
	m.Initialize([]models.Post{{PostID: "p1", Caption: "hi", Body: "world"}})

	if m.Len() != 1 {
		t.Fatalf("expected exactly one post, got %d", m.Len())
	}
	if _, ok := m.Find("p1"); !ok {
		t.Fatal("expected to find p1")
	}

	m.ApplyDelete("p1")
	if m.Len() != 0 {
		t.Errorf("expected empty collection after confirmed delete, got %d", m.Len())
	}
	if _, ok := m.Find("p1"); ok {
		t.Error("expected p1 gone after delete")
	}
}

func TestMarkStaleAfterUpload(t *testing.T) {
	m := NewManager()
	m.Initialize(somePosts("p1"))

	m.MarkStale()
	if !m.Stale() {
		t.Error("expected feed stale after upload")
	}

	// The refreshed fetch carries the server-generated entry; nothing was
	// synthesized locally in between.
	if m.Len() != 1 {
		t.Errorf("expected no locally synthesized posts, got %d", m.Len())
	}
	m.Initialize(somePosts("p1", "p-new"))
	if m.Stale() {
		t.Error("expected feed synchronized after re-fetch")
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 posts after re-fetch, got %d", m.Len())
	}
}
