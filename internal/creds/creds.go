// Copyright (c) 2026 blogctl authors.
// SPDX-License-Identifier: MIT

// Package creds persists the API access token between runs. Tokens live in a
// credentials file under the user config dir, keyed by host, so one install
// can hold sessions against several servers. The file is plain JSON with no
// locking; concurrent writers follow last-writer-wins.
package creds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

const credsFileName = "credentials.json"

// credsFile mirrors the on-disk layout:
//
//	{"credentials": {"blog.example.com": {"access_token": "..."}}}
type credsFile struct {
	Credentials map[string]hostCreds `json:"credentials"`
}

type hostCreds struct {
	AccessToken string `json:"access_token"`
}

// Store reads and writes the persisted token for a single host.
type Store struct {
	Host string
	// Path overrides the default credentials file location. Used by tests.
	Path string
}

// NewStore returns a Store bound to the given host.
func NewStore(host string) *Store {
	return &Store{Host: host}
}

// Token resolves the access token for the store's host.
// Precedence:
//  1. BLOGCTL_TOKEN environment variable
//  2. the credentials file entry for the host
//
// A missing token is not an error; it returns "".
func (s *Store) Token() string {
	if token := os.Getenv("BLOGCTL_TOKEN"); token != "" {
		return token
	}

	f, err := s.load()
	if err != nil {
		log.Debugf("no credentials file: %v", err)
		return ""
	}

	return f.Credentials[s.Host].AccessToken
}

// SetToken writes the token for the store's host, creating the credentials
// file and its directory as needed. Entries for other hosts are preserved.
func (s *Store) SetToken(token string) error {
	f, err := s.load()
	if err != nil {
		f = &credsFile{Credentials: map[string]hostCreds{}}
	}
	if f.Credentials == nil {
		f.Credentials = map[string]hostCreds{}
	}

	f.Credentials[s.Host] = hostCreds{AccessToken: token}
	return s.save(f)
}

// Clear removes the token for the store's host. Clearing a host that has no
// entry is a no-op.
func (s *Store) Clear() error {
	f, err := s.load()
	if err != nil {
		return nil
	}

	if _, ok := f.Credentials[s.Host]; !ok {
		return nil
	}

	delete(f.Credentials, s.Host)
	return s.save(f)
}

func (s *Store) load() (*credsFile, error) {
	path, err := s.path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var f credsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials file: %w", err)
	}

	return &f, nil
}

func (s *Store) save(f *credsFile) error {
	path, err := s.path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// Tokens are secrets, keep the file private.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	log.Debugf("wrote credentials file: %s", path)
	return nil
}

// path resolves the credentials file location.
// Precedence:
//  1. the Store's explicit Path
//  2. BLOGCTL_CONFIG_DIR/credentials.json
//  3. os.UserConfigDir()/blogctl/credentials.json
func (s *Store) path() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}

	if dir := os.Getenv("BLOGCTL_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, credsFileName), nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.New("cannot resolve user config dir")
	}

	return filepath.Join(dir, "blogctl", credsFileName), nil
}
