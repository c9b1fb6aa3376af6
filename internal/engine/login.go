package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/engine/types"
	"github.com/xiaorui77/ifacex-watch/internal/storage"
	"github.com/xiaorui77/ifacex-watch/pkg/errs"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

// ErrBusy is returned by Submit while a probe is already in flight.
var ErrBusy = errors.New("login already in progress")

type LoginState int

const (
	LoginIdle LoginState = iota
	LoginSubmitting
	LoginSuccess
	LoginFailed
	LoginTimedOut
)

var LoginStateStatus = map[LoginState]string{
	LoginIdle:       "idle",
	LoginSubmitting: "submitting",
	LoginSuccess:    "success",
	LoginFailed:     "failed",
	LoginTimedOut:   "timed out",
}

func (s LoginState) String() string {
	return LoginStateStatus[s]
}

// Login validates the entered credentials with one bounded probe of the
// tasks endpoint and persists them on success.
type Login struct {
	fetcher   types.Fetcher
	store     storage.Store
	timeout   time.Duration
	authCodes map[int]bool

	mu    sync.Mutex
	state LoginState
	err   error
}

func NewLogin(fetcher types.Fetcher, store storage.Store, timeout time.Duration, authCodes map[int]bool) *Login {
	return &Login{
		fetcher:   fetcher,
		store:     store,
		timeout:   timeout,
		authCodes: authCodes,
	}
}

// Submit blocks until the probe settles. On success the normalized
// credentials have already been saved and the caller may navigate to the
// main view; on any error it must stay on the login view.
func (l *Login) Submit(ctx context.Context, rawURL, rawKey string) (model.Credentials, error) {
	l.mu.Lock()
	if l.state == LoginSubmitting {
		l.mu.Unlock()
		logrus.Debugf("[login] submit ignored: probe in flight")
		return model.Credentials{}, ErrBusy
	}
	if strings.TrimSpace(rawURL) == "" || strings.TrimSpace(rawKey) == "" {
		err := errs.Validation()
		l.state, l.err = LoginIdle, err
		l.mu.Unlock()
		return model.Credentials{}, err
	}
	l.state, l.err = LoginSubmitting, nil
	l.mu.Unlock()

	creds := model.Credentials{
		EndpointURL: types.NormalizeURL(rawURL),
		APIKey:      strings.TrimSpace(rawKey),
	}
	logrus.Infof("[login] probing %v", creds.EndpointURL)

	_, err := l.fetcher.Fetch(ctx, types.TasksURL(creds.EndpointURL, creds.APIKey), l.timeout)
	if err == nil {
		if serr := l.store.Save(creds); serr != nil {
			logrus.Errorf("[login] save credentials failed: %v", serr)
			err = errs.Storage(serr)
		}
	} else if errs.Is(err, errs.KindHTTP) && l.authCodes[errs.CodeOf(err)] {
		err = errs.Auth(errs.CodeOf(err))
	}
	if err := l.settle(err); err != nil {
		return model.Credentials{}, err
	}
	return creds, nil
}

func (l *Login) settle(err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case err == nil:
		l.state = LoginSuccess
	case errs.Is(err, errs.KindTimeout):
		l.state = LoginTimedOut
	default:
		l.state = LoginFailed
	}
	l.err = err
	if err != nil {
		logrus.Warnf("[login] probe %v: %v", l.state, err)
	} else {
		logrus.Infof("[login] credentials accepted")
	}
	return err
}

func (l *Login) State() LoginState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err is the error of the last submit, nil after a success.
func (l *Login) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// CanSubmit reports whether the submit action is enabled. A timed-out probe
// has already been aborted, so TimedOut re-enables it like Failed does.
func (l *Login) CanSubmit() bool {
	return l.State() != LoginSubmitting
}
