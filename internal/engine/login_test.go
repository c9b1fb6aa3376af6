package engine

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xiaorui77/ifacex-watch/internal/engine/download"
	"github.com/xiaorui77/ifacex-watch/internal/storage"
	"github.com/xiaorui77/ifacex-watch/internal/stub"
	"github.com/xiaorui77/ifacex-watch/pkg/errs"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

var authCodes = map[int]bool{401: true, 403: true, 500: true}

// newStubHost returns the stub address without a scheme.
func newStubHost(t *testing.T) (*stub.Server, string) {
	s := stub.NewServer("", "abc123", stub.Fixture())
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, strings.TrimPrefix(srv.URL, "http://")
}

func TestLogin_Validation(t *testing.T) {
	f := &fakeFetcher{}
	store := storage.NewMemoryStore()
	l := NewLogin(f, store, time.Second, authCodes)

	for _, in := range [][2]string{{"", "k"}, {"example.com", "  "}, {" ", ""}} {
		_, err := l.Submit(context.Background(), in[0], in[1])
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.KindValidation))
		assert.Equal(t, errs.MsgValidation, err.Error())
		assert.Equal(t, LoginIdle, l.State())
	}
	assert.Zero(t, f.calls(), "validation must not reach the network")
	_, err := store.Load()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogin_Success(t *testing.T) {
	_, host := newStubHost(t)
	store := storage.NewMemoryStore()
	l := NewLogin(download.NewDownloader(), store, time.Second, authCodes)

	creds, err := l.Submit(context.Background(), "  "+host+"  ", " abc123 ")
	require.NoError(t, err)
	assert.Equal(t, LoginSuccess, l.State())
	assert.Equal(t, "http://"+host+"/", creds.EndpointURL)
	assert.Equal(t, "abc123", creds.APIKey)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, creds, stored)
}

func TestLogin_BadKey(t *testing.T) {
	_, host := newStubHost(t)
	store := storage.NewMemoryStore()
	l := NewLogin(download.NewDownloader(), store, time.Second, authCodes)

	_, err := l.Submit(context.Background(), host, "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid API Key or URL.", err.Error())
	assert.True(t, errs.Is(err, errs.KindAuth))
	assert.Equal(t, LoginFailed, l.State())
	assert.True(t, l.CanSubmit())

	_, err = store.Load()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogin_StatusClassification(t *testing.T) {
	cases := []struct {
		code int
		kind errs.Kind
		msg  string
	}{
		{403, errs.KindAuth, errs.MsgAuth},
		{500, errs.KindAuth, errs.MsgAuth},
		{404, errs.KindHTTP, "Unexpected error! Status: 404"},
		{502, errs.KindHTTP, "Unexpected error! Status: 502"},
	}
	for _, c := range cases {
		f := &fakeFetcher{fn: func(context.Context, int) (*model.TaskList, error) {
			return nil, errs.HTTP(c.code, "")
		}}
		l := NewLogin(f, storage.NewMemoryStore(), time.Second, authCodes)
		_, err := l.Submit(context.Background(), "example.com", "k")
		require.Error(t, err)
		assert.Equal(t, c.kind, errs.KindOf(err), "status %d", c.code)
		assert.Equal(t, c.msg, err.Error())
		assert.Equal(t, LoginFailed, l.State())
	}
}

func TestLogin_Timeout(t *testing.T) {
	s, host := newStubHost(t)
	s.SetDelay(300 * time.Millisecond)
	store := storage.NewMemoryStore()
	l := NewLogin(download.NewDownloader(), store, 50*time.Millisecond, authCodes)

	start := time.Now()
	_, err := l.Submit(context.Background(), host, "abc123")
	require.Error(t, err)
	assert.Equal(t, "Request timed out!", err.Error())
	assert.Equal(t, LoginTimedOut, l.State())
	assert.True(t, l.CanSubmit())
	assert.Less(t, time.Since(start), 250*time.Millisecond)

	// the late response must not log the user in
	time.Sleep(350 * time.Millisecond)
	assert.Equal(t, LoginTimedOut, l.State())
	_, err = store.Load()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogin_Busy(t *testing.T) {
	release := make(chan struct{})
	f := &fakeFetcher{fn: func(ctx context.Context, _ int) (*model.TaskList, error) {
		<-release
		return &model.TaskList{}, nil
	}}
	l := NewLogin(f, storage.NewMemoryStore(), time.Second, authCodes)

	done := make(chan error, 1)
	go func() {
		_, err := l.Submit(context.Background(), "example.com", "k")
		done <- err
	}()
	require.Eventually(t, func() bool { return l.State() == LoginSubmitting }, time.Second, 5*time.Millisecond)
	assert.False(t, l.CanSubmit())

	_, err := l.Submit(context.Background(), "example.com", "k")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, f.calls())
	assert.Equal(t, LoginSuccess, l.State())
}

func TestLogin_StorageFailure(t *testing.T) {
	f := &fakeFetcher{}
	l := NewLogin(f, &brokenStore{Store: storage.NewMemoryStore(), saveErr: errDisk}, time.Second, authCodes)

	_, err := l.Submit(context.Background(), "example.com", "k")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindStorage))
	assert.ErrorIs(t, err, errDisk)
	assert.Equal(t, LoginFailed, l.State())
	assert.Equal(t, err, l.Err())
}
