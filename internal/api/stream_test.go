// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jeranaias/datamock-tui/internal/extract"
)

// flushWrite writes p and flushes, forcing a real chunk boundary.
func flushWrite(t *testing.T, w http.ResponseWriter, p []byte) {
	t.Helper()
	if _, err := w.Write(p); err != nil {
		t.Errorf("write: %v", err)
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func TestGenerateStreamAccumulates(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}
		flushWrite(t, w, []byte(`Here is your data: [{"name"`))
		flushWrite(t, w, []byte(`: "Ana"}]`))
	}))

	text, err := client.GenerateStream(context.Background(), "tok", "one user")
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}
	want := `Here is your data: [{"name": "Ana"}]`
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestGenerateStreamSplitRune(t *testing.T) {
	// "é" is 0xC3 0xA9; split it across two flushed chunks.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flushWrite(t, w, []byte{'[', '{', '"', 'n', '"', ':', '"', 'R', 0xC3})
		flushWrite(t, w, []byte{0xA9, '"', '}', ']'})
	}))

	text, err := client.GenerateStream(context.Background(), "tok", "x")
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}
	if text != `[{"n":"Ré"}]` {
		t.Errorf("text = %q", text)
	}
}

func TestGenerateStreamUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Token expired"}`))
	}))

	_, err := client.GenerateStream(context.Background(), "stale", "x")
	if !IsAuthError(err) {
		t.Fatalf("err = %v, want auth error", err)
	}
}

func TestGenerateStreamCancelled(t *testing.T) {
	started := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flushWrite(t, w, []byte("partial"))
		close(started)
		// Hold the stream open until the client gives up.
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := client.GenerateStream(ctx, "tok", "x")
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		if !IsCancelled(err) {
			t.Fatalf("err = %v, want cancellation", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not unwind after cancel")
	}
}

func TestGeneratePipeline(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flushWrite(t, w, []byte("Sure! Here you go:\n```json\n[{\"id\": 1, "))
		flushWrite(t, w, []byte("\"name\": \"Ana\"}]\n```\nAnything else?"))
	}))

	records, err := client.Generate(context.Background(), "tok", "one user")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d", len(records))
	}
	if got, _ := records[0].Get("name"); got != "Ana" {
		t.Errorf("name = %v", got)
	}
}

func TestGenerateNoData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("I can only generate tabular data. Try asking for a table."))
	}))

	_, err := client.Generate(context.Background(), "tok", "tell me a joke")
	if !errors.Is(err, extract.ErrNoData) {
		t.Fatalf("err = %v, want extract.ErrNoData", err)
	}
}
