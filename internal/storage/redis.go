package storage

import (
	"fmt"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
)

const (
	CredentialsKey = "credentials"
)

// RedisStore keeps both secrets in one hash so they are replaced together.
type RedisStore struct {
	addr   string
	prefix string

	client *redis.Client
}

func NewRedisStore(addr, password string, db int, prefix string) (*RedisStore, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := c.Ping().Result(); err != nil {
		logrus.Errorf("[store] connect to redis %v failed: %v", addr, err)
		_ = c.Close()
		return nil, fmt.Errorf("connect redis failed: %w", err)
	}
	logrus.Infof("[store] connect to redis %v successfully", addr)
	if prefix == "" {
		prefix = KeyPrefix
	}
	return &RedisStore{
		addr:   addr,
		prefix: prefix,
		client: c,
	}, nil
}

func (s *RedisStore) key() string {
	return s.prefix + CredentialsKey
}

// Save replaces the hash inside MULTI/EXEC.
func (s *RedisStore) Save(creds model.Credentials) error {
	_, err := s.client.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.Del(s.key())
		pipe.HMSet(s.key(), map[string]interface{}{
			KeyEndpointURL: creds.EndpointURL,
			KeyAPIKey:      creds.APIKey,
		})
		return nil
	})
	if err != nil {
		logrus.Errorf("[store] save credentials to redis failed: %v", err)
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *RedisStore) Load() (model.Credentials, error) {
	fields, err := s.client.HGetAll(s.key()).Result()
	if err != nil {
		logrus.Warnf("[store] get key[%s] failed: %v", s.key(), err)
		return model.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	return loaded(fields[KeyEndpointURL], fields[KeyAPIKey])
}

func (s *RedisStore) Clear() error {
	if err := s.client.Del(s.key()).Err(); err != nil {
		logrus.Errorf("[store] delete key[%s] failed: %v", s.key(), err)
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
