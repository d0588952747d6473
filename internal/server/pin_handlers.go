// internal/server/pin_handlers.go
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/markb/blockwarden/internal/log"
	"github.com/markb/blockwarden/internal/pin"
)

// The store accepts any string; the 6-digit format is a caller-side
// contract enforced here, before anything reaches the store.
var pinFormat = regexp.MustCompile(`^[0-9]{6}$`)

type setupRequest struct {
	PIN     string `json:"pin"`
	Confirm string `json:"confirm"`
}

type verifyRequest struct {
	PIN string `json:"pin"`
}

type updateRequest struct {
	CurrentPIN string `json:"current_pin"`
	NewPIN     string `json:"new_pin"`
}

type statusResponse struct {
	PINSet bool      `json:"pin_set"`
	State  pin.State `json:"state"`
}

type sessionResponse struct {
	Valid bool   `json:"valid"`
	Token string `json:"token"`
}

// handlePINStatus tells the popup which screen to open with. A storage read
// error deliberately reads as "not set": the popup then asks for setup or
// login instead of granting access.
func (s *Server) handlePINStatus(w http.ResponseWriter, r *http.Request) {
	isSet := s.auth.IsSet()
	s.writeJSON(w, http.StatusOK, statusResponse{
		PINSet: isSet,
		State:  pin.InitialState(isSet),
	})
}

func (s *Server) handlePINSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if !pinFormat.MatchString(req.PIN) {
		s.writeError(w, http.StatusBadRequest, "invalid_pin", "PIN must be exactly 6 digits")
		return
	}
	if req.PIN != req.Confirm {
		s.writeError(w, http.StatusBadRequest, "pin_mismatch", "PIN and confirmation do not match")
		return
	}

	// An unauthenticated overwrite would let anyone take over the list;
	// changing an existing PIN goes through update instead.
	if s.auth.IsSet() {
		s.writeError(w, http.StatusConflict, "pin_exists", "A PIN is already configured, use update instead")
		return
	}

	if err := s.auth.Set(req.PIN); err != nil {
		log.Error("failed to set PIN", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to store PIN")
		return
	}

	s.issueSession(w)
}

func (s *Server) handlePINVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	ok, err := s.auth.Verify(req.PIN)
	if err != nil {
		log.Error("failed to verify PIN", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to verify PIN")
		return
	}
	if !ok {
		// Same response whether the PIN is wrong or none is configured
		s.writeError(w, http.StatusUnauthorized, "invalid_pin", "Incorrect PIN")
		return
	}

	s.issueSession(w)
}

func (s *Server) handlePINUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if !pinFormat.MatchString(req.NewPIN) {
		s.writeError(w, http.StatusBadRequest, "invalid_pin", "PIN must be exactly 6 digits")
		return
	}

	err := s.auth.Update(req.CurrentPIN, req.NewPIN)
	if errors.Is(err, pin.ErrIncorrectPIN) {
		s.writeError(w, http.StatusUnauthorized, "incorrect_pin", "Incorrect current PIN")
		return
	}
	if err != nil {
		log.Error("failed to update PIN", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "storage_error", "Failed to update PIN")
		return
	}

	// The popup returns to the login screen after an update
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) issueSession(w http.ResponseWriter) {
	token, err := s.sessions.Issue()
	if err != nil {
		log.Error("failed to issue session", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "session_error", "Failed to create session")
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{Valid: true, Token: token})
}
