// internal/server/pin_handlers_test.go
package server

import (
	"net/http"
	"testing"

	"github.com/markb/blockwarden/internal/pin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPINStatusBeforeAndAfterSetup(t *testing.T) {
	srv := setupTestServer(t)

	var status statusResponse
	w := doJSON(t, srv, "GET", "/api/pin/status", nil, "", &status)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, status.PINSet)
	assert.Equal(t, pin.StateNeedsSetup, status.State)

	w = doJSON(t, srv, "POST", "/api/pin/setup", setupRequest{PIN: "123456", Confirm: "123456"}, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, "GET", "/api/pin/status", nil, "", &status)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, status.PINSet)
	assert.Equal(t, pin.StateNeedsLogin, status.State)
}

func TestPINSetupValidation(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name string
		req  setupRequest
	}{
		{"too short", setupRequest{PIN: "12345", Confirm: "12345"}},
		{"too long", setupRequest{PIN: "1234567", Confirm: "1234567"}},
		{"non-numeric", setupRequest{PIN: "12345a", Confirm: "12345a"}},
		{"empty", setupRequest{PIN: "", Confirm: ""}},
		{"mismatch", setupRequest{PIN: "123456", Confirm: "654321"}},
	}

	for _, tt := range tests {
		w := doJSON(t, srv, "POST", "/api/pin/setup", tt.req, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.name)
	}

	// Nothing was stored by the rejected requests
	var status statusResponse
	doJSON(t, srv, "GET", "/api/pin/status", nil, "", &status)
	assert.False(t, status.PINSet)
}

func TestPINSetupDeclinesWhenAlreadyConfigured(t *testing.T) {
	srv := setupTestServer(t)

	w := doJSON(t, srv, "POST", "/api/pin/setup", setupRequest{PIN: "123456", Confirm: "123456"}, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, "POST", "/api/pin/setup", setupRequest{PIN: "654321", Confirm: "654321"}, "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The original PIN still verifies
	w = doJSON(t, srv, "POST", "/api/pin/verify", verifyRequest{PIN: "123456"}, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPINVerify(t *testing.T) {
	srv := setupTestServer(t)

	// No PIN configured yet: verify fails the same way as a wrong PIN
	w := doJSON(t, srv, "POST", "/api/pin/verify", verifyRequest{PIN: "123456"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	doJSON(t, srv, "POST", "/api/pin/setup", setupRequest{PIN: "123456", Confirm: "123456"}, "", nil)

	var resp sessionResponse
	w = doJSON(t, srv, "POST", "/api/pin/verify", verifyRequest{PIN: "123456"}, "", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Valid)
	assert.NotEmpty(t, resp.Token)

	w = doJSON(t, srv, "POST", "/api/pin/verify", verifyRequest{PIN: "654321"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPINUpdate(t *testing.T) {
	srv := setupTestServer(t)
	doJSON(t, srv, "POST", "/api/pin/setup", setupRequest{PIN: "123456", Confirm: "123456"}, "", nil)

	// Wrong current PIN: distinct failure, no write
	w := doJSON(t, srv, "POST", "/api/pin/update", updateRequest{CurrentPIN: "000000", NewPIN: "654321"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, srv, "POST", "/api/pin/verify", verifyRequest{PIN: "123456"}, "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "old PIN must survive a failed update")

	// Correct current PIN
	w = doJSON(t, srv, "POST", "/api/pin/update", updateRequest{CurrentPIN: "123456", NewPIN: "654321"}, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, "POST", "/api/pin/verify", verifyRequest{PIN: "654321"}, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, "POST", "/api/pin/verify", verifyRequest{PIN: "123456"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPINUpdateValidatesNewPIN(t *testing.T) {
	srv := setupTestServer(t)
	doJSON(t, srv, "POST", "/api/pin/setup", setupRequest{PIN: "123456", Confirm: "123456"}, "", nil)

	w := doJSON(t, srv, "POST", "/api/pin/update", updateRequest{CurrentPIN: "123456", NewPIN: "abc"}, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, "POST", "/api/pin/verify", verifyRequest{PIN: "123456"}, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
