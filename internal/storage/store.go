package storage

import (
	"errors"

	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

const (
	KeyPrefix = "ifacex__"

	KeyEndpointURL = "endpointUrl"
	KeyAPIKey      = "apiKey"
)

// ErrNotFound is returned by Load when either secret is missing or empty.
var ErrNotFound = errors.New("credentials not found")

// Store persists the two credential secrets.
//
// Save replaces any previous pair as a whole: after a failed Save the store
// holds either nothing or the new pair, never a mix. Clear on an empty store
// is not an error.
type Store interface {
	Save(creds model.Credentials) error
	Load() (model.Credentials, error)
	Clear() error
}

func loaded(url, key string) (model.Credentials, error) {
	c := model.Credentials{EndpointURL: url, APIKey: key}
	if !c.Present() {
		return model.Credentials{}, ErrNotFound
	}
	return c, nil
}
