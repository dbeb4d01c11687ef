package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/contentkit/internal/content"
)

// postSummary is a post without its rendered body, for listings.
type postSummary struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Published   string      `json:"published"`
	Edited      string      `json:"edited,omitempty"`
	Tags        []string    `json:"tags"`
	Description string      `json:"description,omitempty"`
	Excerpt     string      `json:"excerpt"`
	Authors     []authorRef `json:"authors"`
	Words       int         `json:"words"`
}

type authorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func summarize(posts []*content.PostInfo) []postSummary {
	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		fm := p.Frontmatter
		authors := make([]authorRef, 0, len(fm.Authors))
		for _, a := range fm.Authors {
			authors = append(authors, authorRef{ID: a.ID, Name: a.Name})
		}
		out = append(out, postSummary{
			ID:          p.ID,
			Slug:        p.Fields.Slug,
			Title:       fm.Title,
			Published:   fm.Published,
			Edited:      fm.Edited,
			Tags:        fm.Tags,
			Description: fm.Description,
			Excerpt:     p.Excerpt,
			Authors:     authors,
			Words:       p.WordCount.Words,
		})
	}
	return out
}

// requireStore writes 503 when no content directory is configured.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		jsonError(w, "content store not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// handleListPosts lists posts newest first, optionally filtered by author.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	posts := s.store.Posts()
	if author := r.URL.Query().Get("author"); author != "" {
		posts = s.store.PostsByAuthor(author)
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": summarize(posts)})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	post, err := s.store.Post(chi.URLParam(r, "slug"))
	if errors.Is(err, content.ErrNotFound) {
		jsonError(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleGetUnicorn(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id := chi.URLParam(r, "id")
	u, err := s.store.Unicorn(id)
	if errors.Is(err, content.ErrNotFound) {
		jsonError(w, "unicorn not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"unicorn": u,
		"posts":   summarize(s.store.PostsByAuthor(id)),
	})
}

func (s *Server) handleContentReload(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	start := time.Now()
	if err := s.store.Reload(r.Context()); err != nil {
		s.log.Warn("content reload failed", "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"posts":       len(s.store.Posts()),
		"loaded_at":   s.store.LoadedAt(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
}
