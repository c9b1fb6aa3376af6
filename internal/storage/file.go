package storage

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/xiaorui77/ifacex-watch/internal/utils/localfile"
	"github.com/xiaorui77/ifacex-watch/pkg/model"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	fileMagic = "IFX1"
	saltSize  = 16
)

// FileStore seals both secrets into a single file. The key is derived from
// the passphrase and a random per-file salt; the layout is
// magic | salt | nonce | ciphertext.
type FileStore struct {
	path       string
	passphrase []byte
}

// NewFileStore creates the parent directory. An empty passphrase falls back to
// a host-derived one, which only protects against casual reads.
func NewFileStore(path, passphrase string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create credential dir: %w", err)
	}
	if passphrase == "" {
		passphrase = hostPassphrase()
	}
	return &FileStore{path: path, passphrase: []byte(passphrase)}, nil
}

func (s *FileStore) Save(creds model.Credentials) error {
	plain, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	sealed, err := s.seal(plain)
	if err != nil {
		return fmt.Errorf("seal credentials: %w", err)
	}

	if err := localfile.WriteAtomic(s.path, sealed, 0600); err != nil {
		logrus.Errorf("[store] replace %s failed: %v", s.path, err)
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (model.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.Credentials{}, ErrNotFound
	}
	if err != nil {
		return model.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	plain, err := s.open(data)
	if err != nil {
		logrus.Warnf("[store] credential file %s unreadable: %v", s.path, err)
		return model.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	var creds model.Credentials
	if err := json.Unmarshal(plain, &creds); err != nil {
		return model.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	return loaded(creds.EndpointURL, creds.APIKey)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *FileStore) seal(plain []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(fileMagic)+saltSize+len(nonce)+len(plain)+aead.Overhead())
	out = append(out, fileMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plain, []byte(fileMagic)), nil
}

func (s *FileStore) open(data []byte) ([]byte, error) {
	header := len(fileMagic) + saltSize + chacha20poly1305.NonceSizeX
	if len(data) < header || string(data[:len(fileMagic)]) != fileMagic {
		return nil, errors.New("not a credential file")
	}
	salt := data[len(fileMagic) : len(fileMagic)+saltSize]
	nonce := data[len(fileMagic)+saltSize : header]

	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, data[header:], []byte(fileMagic))
}

func (s *FileStore) aead(salt []byte) (cipher.AEAD, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, s.passphrase, salt, []byte("ifacex-credentials")), key); err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}

func hostPassphrase() string {
	host, _ := os.Hostname()
	home, _ := os.UserHomeDir()
	return fmt.Sprintf("%s|%s|%d", host, home, os.Getuid())
}
