package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaorui77/ifacex-watch/internal/config"
	"github.com/xiaorui77/ifacex-watch/internal/engine"
	"github.com/xiaorui77/ifacex-watch/internal/engine/download"
	"github.com/xiaorui77/ifacex-watch/internal/engine/types"
	"github.com/xiaorui77/ifacex-watch/internal/storage"
	"github.com/xiaorui77/ifacex-watch/internal/stub"
	"github.com/xiaorui77/ifacex-watch/pkg/errs"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

func TestPollOnce(t *testing.T) {
	conf = config.Default()
	srv := httptest.NewServer(stub.NewServer("", "abc123", stub.Fixture()).Handler())
	defer srv.Close()

	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(model.Credentials{EndpointURL: types.NormalizeURL(srv.URL), APIKey: "abc123"}))

	tasks, err := pollOnce(context.Background(), store, download.NewDownloader())
	require.NoError(t, err)
	assert.Len(t, tasks, 3, "inactive fixture task is filtered out")
	assert.Equal(t, exitFailing, exitCode(tasks))

	tasks[1].LastStatus = model.True
	assert.Zero(t, exitCode(tasks))
}

func TestPollOnce_Errors(t *testing.T) {
	conf = config.Default()

	_, err := pollOnce(context.Background(), storage.NewMemoryStore(), download.NewDownloader())
	assert.ErrorIs(t, err, engine.ErrNoCredentials)

	srv := httptest.NewServer(stub.NewServer("", "abc123", stub.Fixture()).Handler())
	defer srv.Close()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(model.Credentials{EndpointURL: types.NormalizeURL(srv.URL), APIKey: "revoked"}))

	_, err = pollOnce(context.Background(), store, download.NewDownloader())
	assert.True(t, errs.Is(err, errs.KindHTTP))
}
