package storage

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/config"
)

// NewStore builds the credential store selected by storage.backend.
func NewStore(conf config.Storage) (Store, error) {
	logrus.Debugf("[store] using %s backend", conf.Backend)
	switch conf.Backend {
	case config.BackendKeyring:
		return NewKeyringStore(conf.Service), nil
	case config.BackendFile:
		return NewFileStore(conf.File.Path, conf.File.Passphrase)
	case config.BackendRedis:
		return NewRedisStore(conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB, conf.Redis.Prefix)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", conf.Backend)
	}
}
