// internal/server/author_handlers.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/markb/blockwarden/internal/log"
	"github.com/markb/blockwarden/internal/store"
)

type addAuthorRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := s.store.ListAuthors()
	if err != nil {
		log.Error("failed to list authors", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to read block-list")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"authors": authors})
}

func (s *Server) handleAddAuthor(w http.ResponseWriter, r *http.Request) {
	var req addAuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "empty_name", "Author name is required")
		return
	}

	id, err := s.store.AddAuthor(name)
	if errors.Is(err, store.ErrDuplicateAuthor) {
		// A declined add, not a failure: the record already exists
		s.writeError(w, http.StatusConflict, "author_exists", "Author is already blocked")
		return
	}
	if err != nil {
		log.Error("failed to add author", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to add author")
		return
	}

	s.broadcastBlocklist()
	s.writeJSON(w, http.StatusCreated, store.BlockedAuthor{ID: id, Name: strings.ToLower(name)})
}

func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_id", "Author id must be an integer")
		return
	}

	// Deleting an unknown id is a no-op, like any key-value delete
	if err := s.store.DeleteAuthor(id); err != nil {
		log.Error("failed to delete author", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to delete author")
		return
	}

	s.broadcastBlocklist()
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleClearAuthors(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearAuthors(); err != nil {
		log.Error("failed to clear authors", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to clear block-list")
		return
	}

	s.broadcastBlocklist()
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
