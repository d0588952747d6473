// internal/server/responses.go
package server

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON shape of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, errCode, message string) {
	s.writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
