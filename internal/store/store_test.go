// internal/store/store_test.go
package store

import (
	"testing"

	"github.com/markb/blockwarden/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
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
	return New(database)
}

func TestAddAuthorLowercasesName(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.AddAuthor("PewDiePie")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	authors, err := s.ListAuthors()
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "pewdiepie", authors[0].Name)
}

func TestAddAuthorDeclinesCaseInsensitiveDuplicate(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.AddAuthor("PewDiePie")
	require.NoError(t, err)

	_, err = s.AddAuthor("pewdiepie")
	assert.ErrorIs(t, err, ErrDuplicateAuthor)

	_, err = s.AddAuthor("PEWDIEPIE")
	assert.ErrorIs(t, err, ErrDuplicateAuthor)

	authors, err := s.ListAuthors()
	require.NoError(t, err)
	assert.Len(t, authors, 1, "declined adds must not insert")
}

func TestAuthorExists(t *testing.T) {
	s := setupTestStore(t)

	exists, err := s.AuthorExists("somechannel")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.AddAuthor("SomeChannel")
	require.NoError(t, err)

	for _, name := range []string{"somechannel", "SomeChannel", "SOMECHANNEL"} {
		exists, err := s.AuthorExists(name)
		require.NoError(t, err)
		assert.True(t, exists, "expected %q to exist", name)
	}
}

func TestDeleteAuthor(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.AddAuthor("a")
	require.NoError(t, err)

	require.NoError(t, s.DeleteAuthor(id))

	authors, err := s.ListAuthors()
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestDeleteAuthorMissingIDIsNoOp(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.AddAuthor("keepme")
	require.NoError(t, err)

	require.NoError(t, s.DeleteAuthor(9999))

	authors, err := s.ListAuthors()
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestClearAuthors(t *testing.T) {
	s := setupTestStore(t)

	for _, name := range []string{"one", "two", "three"} {
		_, err := s.AddAuthor(name)
		require.NoError(t, err)
	}

	require.NoError(t, s.ClearAuthors())

	authors, err := s.ListAuthors()
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestSettingsUpsert(t *testing.T) {
	s := setupTestStore(t)

	value, err := s.GetSetting(SettingPIN)
	require.NoError(t, err)
	assert.Equal(t, "", value)
	assert.False(t, s.HasSetting(SettingPIN))

	require.NoError(t, s.SetSetting(SettingPIN, "pin", "digest-one"))
	value, err = s.GetSetting(SettingPIN)
	require.NoError(t, err)
	assert.Equal(t, "digest-one", value)
	assert.True(t, s.HasSetting(SettingPIN))

	// Overwrite must not create a second record
	require.NoError(t, s.SetSetting(SettingPIN, "pin", "digest-two"))
	value, err = s.GetSetting(SettingPIN)
	require.NoError(t, err)
	assert.Equal(t, "digest-two", value)

	var count int
	// reach through to verify single-slot semantics
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM settings WHERE id = ?", SettingPIN).Scan(&count))
	assert.Equal(t, 1, count)
}
