package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.bin")
	s, err := NewFileStore(path, "correct horse")
	require.NoError(t, err)

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	creds := model.Credentials{EndpointURL: "http://example.com:8080/", APIKey: "abc123"}
	require.NoError(t, s.Save(creds))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "abc123")

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, creds, got)
}

func TestFileStore_WrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.bin")
	s, err := NewFileStore(path, "one")
	require.NoError(t, err)
	require.NoError(t, s.Save(model.Credentials{EndpointURL: "http://a/", APIKey: "k"}))

	other, err := NewFileStore(path, "two")
	require.NoError(t, err)
	_, err = other.Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStore_ReplaceAndClear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.bin")
	s, err := NewFileStore(path, "")
	require.NoError(t, err)

	require.NoError(t, s.Save(model.Credentials{EndpointURL: "http://a/", APIKey: "k1"}))
	require.NoError(t, s.Save(model.Credentials{EndpointURL: "http://b/", APIKey: "k2"}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "k2", got.APIKey)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.bin")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))
	s, err := NewFileStore(path, "x")
	require.NoError(t, err)

	_, err = s.Load()
	assert.ErrorContains(t, err, "not a credential file")
}
