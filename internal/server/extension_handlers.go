// internal/server/extension_handlers.go
package server

import (
	"encoding/json"
	"net/http"

	"github.com/markb/blockwarden/internal/log"
	"github.com/markb/blockwarden/internal/store"
)

// The content script speaks a one-shot action/response contract rather than
// the REST API, so the extension side stays a single sendMessage call.
const actionFetchBlockedAuthors = "fetchBlockedAuthors"

type messageRequest struct {
	Action string `json:"action"`
}

type authorsResponse struct {
	Authors []store.BlockedAuthor `json:"authors"`
}

// handleMessage answers the content script's fetch request. The contract
// requires an answer in every case: internal failures respond with an empty
// list instead of an error, and the list is served regardless of PIN state.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusOK, authorsResponse{Authors: []store.BlockedAuthor{}})
		return
	}

	if req.Action != actionFetchBlockedAuthors {
		s.writeError(w, http.StatusBadRequest, "unknown_action", "Unknown action")
		return
	}

	authors, err := s.store.ListAuthors()
	if err != nil {
		log.Error("failed to fetch authors for content script", "error", err.Error())
		authors = []store.BlockedAuthor{}
	}
	if authors == nil {
		authors = []store.BlockedAuthor{}
	}

	s.writeJSON(w, http.StatusOK, authorsResponse{Authors: authors})
}
