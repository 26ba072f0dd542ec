// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/auth"
	"github.com/jeranaias/datamock-tui/internal/config"
	"github.com/jeranaias/datamock-tui/internal/extract"
	"github.com/jeranaias/datamock-tui/internal/model"
	"github.com/jeranaias/datamock-tui/internal/store"
	"github.com/jeranaias/datamock-tui/internal/title"
	"github.com/jeranaias/datamock-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return newTestModelWithKV(t, store.NewFileKV(filepath.Join(t.TempDir(), "sessions.json")))
}

func newTestModelWithKV(t *testing.T, kv store.KV) Model {
	t.Helper()
	st, err := store.NewStore(kv)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	creds := &auth.CredentialStore{BaseDir: t.TempDir()}
	deps := Deps{
		Theme:   styles.NewTheme(),
		Config:  config.Default(),
		Client:  api.NewClient(api.Config{}),
		Store:   st,
		Flights: store.NewFlightTable(),
		Creds:   creds,
		Titler:  title.NewSynthesizer(nil),
	}
	m := New(deps, "tok", &auth.Identity{Subject: "ana@example.com", Username: "ana"})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func records(t *testing.T, raws ...string) []*model.Record {
	t.Helper()
	out := make([]*model.Record, len(raws))
	for i, raw := range raws {
		var r model.Record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		out[i] = &r
	}
	return out
}

// The flight table issues sequence numbers starting at 1, so tests that
// fabricate generationDoneMsg values count flights from there.

func TestFirstPromptCreatesSession(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("10 users with emails")
	m, _ = m.submitInput()

	if m.activeID == "" {
		t.Fatal("activeID should be set")
	}
	sess, err := m.deps.Store.Get(m.activeID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(sess.Exchanges) != 1 || !sess.Exchanges[0].Generating {
		t.Errorf("exchanges = %+v", sess.Exchanges)
	}
	if sess.Title != model.DefaultTitle {
		t.Errorf("title = %q", sess.Title)
	}
	if !m.deps.Flights.Active(m.activeID) {
		t.Error("flight should be registered")
	}
}

func TestGenerationSuccessSettlesExchange(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("3 products")
	m, _ = m.submitInput()
	id := m.activeID

	m, _ = m.updateGenerationDone(generationDoneMsg{
		sessionID: id,
		seq:       1,
		index:     0,
		records:   records(t, `{"name": "Widget"}`),
	})

	sess, err := m.deps.Store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.Exchanges[0].Generating {
		t.Error("exchange should be settled")
	}
	if len(sess.Exchanges[0].Data) != 1 {
		t.Errorf("data = %+v", sess.Exchanges[0].Data)
	}
	if m.deps.Flights.Active(id) {
		t.Error("flight should be settled")
	}
}

func TestStaleGenerationResultDropped(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("first")
	m, _ = m.submitInput()
	id := m.activeID

	// A second generation supersedes the first.
	m.input.SetValue("second")
	m, _ = m.submitInput()

	// The first flight's result arrives late with seq 1.
	m, _ = m.updateGenerationDone(generationDoneMsg{
		sessionID: id,
		seq:       1,
		index:     0,
		records:   records(t, `{"stale": true}`),
	})

	sess, err := m.deps.Store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// Neither exchange settled by the stale result.
	for i, ex := range sess.Exchanges {
		if len(ex.Data) != 0 {
			t.Errorf("exchange %d settled by stale result: %+v", i, ex.Data)
		}
	}
}

func TestNoDataSettlesExchangeEmpty(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("tell me a joke")
	m, _ = m.submitInput()
	id := m.activeID

	m, _ = m.updateGenerationDone(generationDoneMsg{
		sessionID: id,
		seq:       1,
		index:     0,
		err:       extract.ErrNoData,
	})

	sess, err := m.deps.Store.Get(id)
	if err != nil {
		t.Fatalf("session must survive a no-data result: %v", err)
	}
	ex := sess.Exchanges[0]
	if ex.Generating {
		t.Error("exchange should be settled")
	}
	if len(ex.Data) != 0 {
		t.Errorf("exchange data should be empty, got %d records", len(ex.Data))
	}
	if !m.toasts.HasToasts() {
		t.Error("expected a no-data notice")
	}
}

func TestEditFailurePreservesLastGoodData(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("5 users")
	m, _ = m.submitInput()
	id := m.activeID
	good := records(t, `{"name": "Ana"}`)
	m, _ = m.updateGenerationDone(generationDoneMsg{
		sessionID: id, seq: 1, index: 0, records: good,
	})

	// Edit the exchange; regeneration fails.
	m = m.beginEditLast()
	if !m.editing {
		t.Fatal("editing should be active")
	}
	m.input.SetValue("5 users but broken")
	m, _ = m.submitInput()

	m, _ = m.updateGenerationDone(generationDoneMsg{
		sessionID: id,
		seq:       2,
		index:     0,
		err:       extract.ErrNoData,
		wasEdit:   true,
		replaced:  &model.Exchange{Prompt: "5 users", Data: good},
	})

	sess, err := m.deps.Store.Get(id)
	if err != nil {
		t.Fatalf("session should survive edit failure: %v", err)
	}
	ex := sess.Exchanges[0]
	if ex.Prompt != "5 users" || len(ex.Data) != 1 {
		t.Errorf("last-good exchange not restored: %+v", ex)
	}
}

func TestCancelledGenerationIsSoft(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("huge dataset")
	m, _ = m.submitInput()
	id := m.activeID

	// Esc cancels the flight and settles the pending exchange silently.
	m, _ = m.updateKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.deps.Flights.Active(id) {
		t.Error("flight should be cancelled")
	}
	sess, err := m.deps.Store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.Exchanges[0].Generating {
		t.Error("cancelled exchange should settle with empty data")
	}
	if m.toasts.HasToasts() {
		t.Error("cancellation must not raise a notice")
	}

	// The cancelled flight's result is stale and dropped.
	m, _ = m.updateGenerationDone(generationDoneMsg{
		sessionID: id,
		seq:       1,
		index:     0,
		err:       &api.ClientError{Type: api.ErrTypeCancelled, Message: "request cancelled", Err: api.ErrCancelled},
	})
	if _, err := m.deps.Store.Get(id); err != nil {
		t.Error("cancel must not delete the session via the stale path")
	}
}

func TestTitleAppliedOnlyOverDefault(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("5 users")
	m, _ = m.submitInput()
	id := m.activeID
	m, _ = m.updateGenerationDone(generationDoneMsg{
		sessionID: id, seq: 1, index: 0, records: records(t, `{"a": 1}`),
	})

	m, _ = m.Update(titleDoneMsg{sessionID: id, title: "User Accounts"})
	sess, _ := m.deps.Store.Get(id)
	if sess.Title != "User Accounts" {
		t.Errorf("title = %q", sess.Title)
	}

	// A manual rename is not overwritten by a late synthesis result.
	if err := m.deps.Store.SetTitle(id, "My Custom Name"); err != nil {
		t.Fatal(err)
	}
	m, _ = m.Update(titleDoneMsg{sessionID: id, title: "Late Title"})
	sess, _ = m.deps.Store.Get(id)
	if sess.Title != "My Custom Name" {
		t.Errorf("manual title overwritten: %q", sess.Title)
	}
}

func TestSlashUnknownCommand(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("/frobnicate")
	m, _ = m.submitInput()
	if !m.toasts.HasToasts() {
		t.Error("expected an error toast")
	}
	if m.deps.Store.Len() != 0 {
		t.Error("slash command must not create a session")
	}
}

func TestSlashTitleRename(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("5 users")
	m, _ = m.submitInput()
	id := m.activeID

	m.input.SetValue("/title Quarterly Numbers")
	m, _ = m.submitInput()

	sess, _ := m.deps.Store.Get(id)
	if sess.Title != "Quarterly Numbers" {
		t.Errorf("title = %q", sess.Title)
	}
}

func TestSlashDeleteRemovesSession(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("5 users")
	m, _ = m.submitInput()
	id := m.activeID

	m.input.SetValue("/delete")
	m, _ = m.submitInput()

	if _, err := m.deps.Store.Get(id); err == nil {
		t.Error("session should be deleted")
	}
	if m.deps.Flights.Active(id) {
		t.Error("deleting a session should cancel its flight")
	}
	if m.activeID == id {
		t.Error("deleted session must not stay active")
	}
}

func TestSlashTempExcludesFromPersistence(t *testing.T) {
	kv := store.NewFileKV(filepath.Join(t.TempDir(), "sessions.json"))
	m := newTestModelWithKV(t, kv)
	m.input.SetValue("5 users")
	m, _ = m.submitInput()
	id := m.activeID
	seq := uint64(1)

	m, _ = m.Update(generationDoneMsg{
		sessionID: id,
		seq:       seq,
		index:     0,
		records:   records(t, `{"name":"Ana"}`),
	})

	m.input.SetValue("/temp")
	m, _ = m.submitInput()

	sess, err := m.deps.Store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !sess.Transient {
		t.Error("session should be transient after /temp")
	}

	// A reload sees only the durable subset.
	reloaded, err := store.NewStore(kv)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := reloaded.Get(id); err == nil {
		t.Error("transient session must not be persisted")
	}

	// Toggling back restores persistence.
	m.input.SetValue("/temp")
	m, _ = m.submitInput()
	sess, _ = m.deps.Store.Get(id)
	if sess.Transient {
		t.Error("second /temp should clear the transient flag")
	}
}

func TestConfigReloadResizesSidebar(t *testing.T) {
	m := newTestModel(t)
	cfg := config.Default()
	cfg.UI.SidebarWidth = 48

	m, _ = m.Update(ConfigReloadedMsg{Config: cfg})

	if m.sidebarWidth != 48 {
		t.Errorf("sidebar width = %d, want 48", m.sidebarWidth)
	}
	if m.deps.Config != cfg {
		t.Error("reload should replace the config")
	}
}

func TestSidebarDeleteCancelsFlight(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("5 users")
	m, _ = m.submitInput()
	id := m.activeID

	m.focus = focusSidebar
	m.sidebarIndex = 0
	m, _ = m.updateSidebarKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})

	if m.deps.Flights.Active(id) {
		t.Error("deleting a session should cancel its flight")
	}
	if _, err := m.deps.Store.Get(id); err == nil {
		t.Error("session should be deleted")
	}
}
