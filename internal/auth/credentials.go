// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth handles the client's view of the bearer credential.
package auth

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/datamock-tui/internal/util"
)

// =============================================================================
// CREDENTIAL STORE
// =============================================================================

// CredentialStore persists the bearer token and the optional remembered
// login identifier between runs. The presence of a stored, decodable token
// is the sole basis for starting in the authenticated view.
type CredentialStore struct {
	// BaseDir is the directory holding credential files.
	// Default: ~/.datamock/
	BaseDir string
}

const (
	tokenFile      = "token"
	rememberedFile = "remembered_login"
)

// NewCredentialStore creates a store rooted at ~/.datamock.
func NewCredentialStore() (*CredentialStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewCredentialStoreWithDir(filepath.Join(home, ".datamock"))
}

// NewCredentialStoreWithDir creates a store rooted at a custom directory.
func NewCredentialStoreWithDir(dir string) (*CredentialStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &CredentialStore{BaseDir: dir}, nil
}

// =============================================================================
// TOKEN
// =============================================================================

// Token returns the stored bearer token, if any.
func (c *CredentialStore) Token() (string, bool) {
	data, err := os.ReadFile(filepath.Join(c.BaseDir, tokenFile))
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

// SetToken persists the bearer token. The file is private to the user.
func (c *CredentialStore) SetToken(token string) error {
	return util.AtomicWriteFile(filepath.Join(c.BaseDir, tokenFile), []byte(token), 0600)
}

// ClearToken removes the stored token. Missing file is not an error.
func (c *CredentialStore) ClearToken() error {
	err := os.Remove(filepath.Join(c.BaseDir, tokenFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// =============================================================================
// REMEMBERED LOGIN
// =============================================================================

// RememberedLogin returns the saved login identifier, if any.
func (c *CredentialStore) RememberedLogin() (string, bool) {
	data, err := os.ReadFile(filepath.Join(c.BaseDir, rememberedFile))
	if err != nil {
		return "", false
	}
	login := strings.TrimSpace(string(data))
	return login, login != ""
}

// SetRememberedLogin saves the login identifier for prefilling the form.
func (c *CredentialStore) SetRememberedLogin(login string) error {
	return util.AtomicWriteFile(filepath.Join(c.BaseDir, rememberedFile), []byte(login), 0600)
}

// ClearRememberedLogin removes the saved login identifier.
func (c *CredentialStore) ClearRememberedLogin() error {
	err := os.Remove(filepath.Join(c.BaseDir, rememberedFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
