/*
 * Copyright 2026 The CMAP SDK Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/99designs/keyring"
)

// KeyStore loads and saves the CMAP API key.
type KeyStore interface {
	// LoadAPIKey returns the stored API key.
	LoadAPIKey() (string, error)
	// SaveAPIKey stores the API key, replacing any previous one.
	SaveAPIKey(key string) error
}

// ErrNoAPIKey is returned by a KeyStore holding no key.
var ErrNoAPIKey = errors.New("no API key stored; set one first")

const (
	keyStoreService = "cmap"
	keyStoreItem    = "api_key"
	keyFileName     = "api_key.csv"
	keyFileHeader   = "api_key"
)

// DefaultKeyPath returns the path of the API key file:
// $XDG_CONFIG_HOME/cmap/api_key.csv, falling back to ~/.config/cmap.
func DefaultKeyPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, keyStoreService, keyFileName), nil
}

// FileKeyStore keeps the API key in a single-cell CSV file.
type FileKeyStore struct {
	Path string
}

// NewFileKeyStore returns a FileKeyStore at DefaultKeyPath.
func NewFileKeyStore() (*FileKeyStore, error) {
	p, err := DefaultKeyPath()
	if err != nil {
		return nil, err
	}
	return &FileKeyStore{Path: p}, nil
}

var _ KeyStore = (*FileKeyStore)(nil)

func (s *FileKeyStore) LoadAPIKey() (string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoAPIKey
		}
		return "", err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.Path, err)
	}
	// a header row is optional
	if len(records) > 0 && len(records[0]) > 0 && records[0][0] == keyFileHeader {
		records = records[1:]
	}
	if len(records) == 0 || len(records[0]) == 0 || strings.TrimSpace(records[0][0]) == "" {
		return "", ErrNoAPIKey
	}
	return strings.TrimSpace(records[0][0]), nil
}

func (s *FileKeyStore) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll([][]string{{keyFileHeader}, {key}}); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// KeyringKeyStore keeps the API key in the OS credential store.
type KeyringKeyStore struct {
	ring keyring.Keyring
}

// OpenKeyringKeyStore opens the OS credential store.
func OpenKeyringKeyStore() (*KeyringKeyStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              keyStoreService,
		KeychainTrustApplication: true,
		WinCredPrefix:            keyStoreService,
		PassPrefix:               keyStoreService,
	})
	if err != nil {
		return nil, err
	}
	return NewKeyringKeyStore(ring), nil
}

// NewKeyringKeyStore wraps an opened keyring.
func NewKeyringKeyStore(ring keyring.Keyring) *KeyringKeyStore {
	return &KeyringKeyStore{ring: ring}
}

var _ KeyStore = (*KeyringKeyStore)(nil)

func (s *KeyringKeyStore) LoadAPIKey() (string, error) {
	it, err := s.ring.Get(keyStoreItem)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNoAPIKey
		}
		return "", err
	}
	if len(it.Data) == 0 {
		return "", ErrNoAPIKey
	}
	return string(it.Data), nil
}

func (s *KeyringKeyStore) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is empty")
	}
	return s.ring.Set(keyring.Item{
		Key:   keyStoreItem,
		Data:  []byte(key),
		Label: "CMAP API key",
	})
}
