// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/auth"
	"github.com/jeranaias/datamock-tui/internal/config"
	"github.com/jeranaias/datamock-tui/internal/store"
)

// =============================================================================
// SHARED RUNTIME
// =============================================================================

// Runtime bundles the services every command handler needs: configuration,
// the API client, the session store and the credential store.
type Runtime struct {
	Config *config.Config
	Client *api.Client
	Store  *store.Store
	Creds  *auth.CredentialStore

	closer func() error
}

// NewRuntime loads configuration and wires the services.
func NewRuntime() (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.Server.BaseURL,
		Timeout: time.Duration(cfg.Server.TimeoutSecs) * time.Second,
	})

	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}

	var kv store.KV
	var closer func() error
	if cfg.Storage.Backend == config.BackendSQLite {
		skv, err := store.NewSQLiteKV(filepath.Join(dataDir, "datamock.db"))
		if err != nil {
			return nil, err
		}
		kv = skv
		closer = skv.Close
	} else {
		kv = store.NewFileKV(filepath.Join(dataDir, "sessions.json"))
	}

	st, err := store.NewStore(kv)
	if err != nil {
		return nil, err
	}

	creds, err := auth.NewCredentialStoreWithDir(dataDir)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Config: cfg,
		Client: client,
		Store:  st,
		Creds:  creds,
		closer: closer,
	}, nil
}

// Close releases runtime resources.
func (r *Runtime) Close() {
	if r.closer != nil {
		r.closer()
	}
}

// RequireToken returns the stored bearer token or an actionable error.
func (r *Runtime) RequireToken() (string, error) {
	token, ok := r.Creds.Token()
	if !ok {
		return "", fmt.Errorf("not signed in; run `datamock login` first")
	}
	return token, nil
}
