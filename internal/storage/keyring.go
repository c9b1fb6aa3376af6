package storage

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
	"github.com/zalando/go-keyring"
)

// KeyringStore keeps the secrets in the OS secret service, one entry per
// secret under the same service name.
type KeyringStore struct {
	service string
}

func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

// Save deletes the old pair first, then writes the new one. If the second
// write fails the first is rolled back.
func (s *KeyringStore) Save(creds model.Credentials) error {
	if err := s.Clear(); err != nil {
		return err
	}
	if err := keyring.Set(s.service, KeyEndpointURL, creds.EndpointURL); err != nil {
		logrus.Errorf("[store] keyring set %s failed: %v", KeyEndpointURL, err)
		return fmt.Errorf("save credentials: %w", err)
	}
	if err := keyring.Set(s.service, KeyAPIKey, creds.APIKey); err != nil {
		logrus.Errorf("[store] keyring set %s failed: %v", KeyAPIKey, err)
		if rbErr := s.remove(KeyEndpointURL); rbErr != nil {
			logrus.Errorf("[store] keyring rollback of %s failed: %v", KeyEndpointURL, rbErr)
		}
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *KeyringStore) Load() (model.Credentials, error) {
	url, err := s.get(KeyEndpointURL)
	if err != nil {
		return model.Credentials{}, err
	}
	key, err := s.get(KeyAPIKey)
	if err != nil {
		return model.Credentials{}, err
	}
	return loaded(url, key)
}

func (s *KeyringStore) Clear() error {
	for _, k := range []string{KeyAPIKey, KeyEndpointURL} {
		if err := s.remove(k); err != nil {
			logrus.Errorf("[store] keyring delete %s failed: %v", k, err)
			return fmt.Errorf("clear credentials: %w", err)
		}
	}
	return nil
}

func (s *KeyringStore) get(user string) (string, error) {
	v, err := keyring.Get(s.service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load credentials: %w", err)
	}
	return v, nil
}

func (s *KeyringStore) remove(user string) error {
	err := keyring.Delete(s.service, user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
