// internal/pin/pin_test.go
package pin

import (
	"testing"

	"github.com/markb/blockwarden/internal/db"
	"github.com/markb/blockwarden/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestAuth(t *testing.T) (*Auth, *db.DB) {
	t.Helper()
	path := t.TempDir() + "/test.db"
	database, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewAuth(store.New(database)), database
}

func TestHash(t *testing.T) {
	// sha256("123456")
	assert.Equal(t,
		"8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92",
		Hash("123456"))

	// Deterministic, and distinct inputs give distinct digests
	assert.Equal(t, Hash("654321"), Hash("654321"))
	assert.NotEqual(t, Hash("123456"), Hash("654321"))
}

func TestVerifyWithoutPINReturnsFalse(t *testing.T) {
	auth, _ := setupTestAuth(t)

	for _, pin := range []string{"", "123456", "000000"} {
		ok, err := auth.Verify(pin)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestSetAndVerify(t *testing.T) {
	auth, _ := setupTestAuth(t)

	assert.False(t, auth.IsSet())

	require.NoError(t, auth.Set("123456"))
	assert.True(t, auth.IsSet())

	ok, err := auth.Verify("123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.Verify("654321")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetOverwritesPreviousPIN(t *testing.T) {
	auth, _ := setupTestAuth(t)

	require.NoError(t, auth.Set("111111"))
	require.NoError(t, auth.Set("222222"))

	ok, err := auth.Verify("111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = auth.Verify("222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateRequiresCorrectCurrentPIN(t *testing.T) {
	auth, _ := setupTestAuth(t)
	require.NoError(t, auth.Set("123456"))

	err := auth.Update("999999", "654321")
	assert.ErrorIs(t, err, ErrIncorrectPIN)

	// Stored digest unchanged after the failed update
	ok, err := auth.Verify("123456")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, auth.Update("123456", "654321"))

	ok, err = auth.Verify("654321")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.Verify("123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsSetFailsClosedOnReadError(t *testing.T) {
	auth, database := setupTestAuth(t)
	require.NoError(t, auth.Set("123456"))

	// A dead handle must read as "not set", never as "set"
	database.Close()
	assert.False(t, auth.IsSet())
}
