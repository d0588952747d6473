// Package pin gates access to the block-list behind a 6-digit PIN. Only a
// one-way digest of the PIN is ever stored or compared.
package pin

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/markb/blockwarden/internal/store"
)

var (
	// ErrIncorrectPIN reports a failed re-authentication during Update.
	ErrIncorrectPIN = errors.New("incorrect current PIN")
)

// Auth handles PIN authentication over the settings store.
type Auth struct {
	store *store.Store
}

// NewAuth creates a new Auth.
func NewAuth(s *store.Store) *Auth {
	return &Auth{store: s}
}

// Hash returns the lowercase hex SHA-256 digest of the raw PIN string.
// Format validation is the caller's job; Hash accepts any string.
func Hash(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// Set stores the digest of pin, unconditionally overwriting any previous
// credential.
func (a *Auth) Set(pin string) error {
	return a.store.SetSetting(store.SettingPIN, "pin", Hash(pin))
}

// Verify reports whether pin matches the stored credential. When no PIN is
// configured it returns false rather than an error, so callers cannot tell
// "wrong PIN" from "no PIN set".
func (a *Auth) Verify(pin string) (bool, error) {
	stored, err := a.store.GetSetting(store.SettingPIN)
	if err != nil {
		return false, err
	}
	if stored == "" {
		return false, nil
	}

	digest := Hash(pin)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1, nil
}

// Update re-authenticates with oldPin and then stores the digest of newPin.
// A failed verification returns ErrIncorrectPIN and performs no write.
func (a *Auth) Update(oldPin, newPin string) error {
	ok, err := a.Verify(oldPin)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIncorrectPIN
	}
	return a.Set(newPin)
}

// IsSet reports whether a PIN is configured. Read errors are deliberately
// treated as "not set": the UI then prompts for setup or login instead of
// silently granting access.
func (a *Auth) IsSet() bool {
	return a.store.HasSetting(store.SettingPIN)
}
