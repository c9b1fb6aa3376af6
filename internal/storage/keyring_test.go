package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
	"github.com/zalando/go-keyring"
)

func TestKeyringStore_SaveLoadClear(t *testing.T) {
	keyring.MockInit()
	s := NewKeyringStore("ifacex-test")

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	creds := model.Credentials{EndpointURL: "https://monitor.local/", APIKey: "secret"}
	require.NoError(t, s.Save(creds))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, s.Save(model.Credentials{EndpointURL: "http://other/", APIKey: "k2"}))
	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://other/", got.EndpointURL)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeyringStore_PartialPairIsAbsent(t *testing.T) {
	keyring.MockInit()
	s := NewKeyringStore("ifacex-test")

	require.NoError(t, keyring.Set("ifacex-test", KeyEndpointURL, "http://only-url/"))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeyringStore_SaveFailure(t *testing.T) {
	keyring.MockInitWithError(errors.New("locked"))
	t.Cleanup(keyring.MockInit)
	s := NewKeyringStore("ifacex-test")

	err := s.Save(model.Credentials{EndpointURL: "http://a/", APIKey: "k"})
	assert.ErrorContains(t, err, "locked")
}
