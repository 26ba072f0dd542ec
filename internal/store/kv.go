// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/datamock-tui/internal/util"
)

// =============================================================================
// KV INTERFACE
// =============================================================================

// KV is a single named slot of bytes. Load reports ok=false when the slot
// has never been written or has been deleted.
type KV interface {
	Load() (data []byte, ok bool, err error)
	Store(data []byte) error
	Delete() error
}

// =============================================================================
// FILE BACKEND
// =============================================================================

// FileKV stores the slot as a single file, written atomically.
type FileKV struct {
	Path string
}

// NewFileKV returns a FileKV rooted at path, creating parent directories
// lazily at first Store.
func NewFileKV(path string) *FileKV {
	return &FileKV{Path: path}
}

func (f *FileKV) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return data, true, nil
}

func (f *FileKV) Store(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := util.AtomicWriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return nil
}

func (f *FileKV) Delete() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", f.Path, err)
	}
	return nil
}
