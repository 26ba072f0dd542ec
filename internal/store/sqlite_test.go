// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"path/filepath"
	"testing"
)

func TestSQLiteKVLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datamock.db")
	kv, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("NewSQLiteKV: %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Load(); err != nil || ok {
		t.Fatalf("fresh slot: ok=%v err=%v, want empty", ok, err)
	}

	if err := kv.Store([]byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Store: %v", err)
	}
	data, ok, err := kv.Load()
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("data = %s", data)
	}

	// Overwrite, then delete.
	if err := kv.Store([]byte(`[]`)); err != nil {
		t.Fatalf("Store overwrite: %v", err)
	}
	data, _, _ = kv.Load()
	if string(data) != `[]` {
		t.Errorf("after overwrite = %s", data)
	}
	if err := kv.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Load(); ok {
		t.Error("slot should be empty after delete")
	}
}

func TestStoreOnSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datamock.db")
	kv, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("NewSQLiteKV: %v", err)
	}
	defer kv.Close()

	s, err := NewStore(kv)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	sess := newSession(t, "generate 3 invoices")
	if err := s.Create(sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	reloaded, err := NewStore(kv)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := reloaded.Get(sess.ID); err != nil {
		t.Errorf("Get after reload: %v", err)
	}
}
