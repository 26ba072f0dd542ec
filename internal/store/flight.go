// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"sync"
)

// =============================================================================
// FLIGHT TABLE
// =============================================================================

// FlightTable tracks the one in-flight generation allowed per session.
// Starting a new flight cancels the previous one, and every flight carries
// a sequence number so late results from a superseded flight can be
// recognized and dropped instead of overwriting newer data.
type FlightTable struct {
	mu      sync.Mutex
	flights map[string]*flight
	nextSeq uint64
}

type flight struct {
	cancel context.CancelFunc
	seq    uint64
}

// NewFlightTable returns an empty table.
func NewFlightTable() *FlightTable {
	return &FlightTable{flights: make(map[string]*flight)}
}

// Supersede cancels any in-flight generation for sessionID and registers a
// new one, returning its context and sequence number. The caller passes the
// sequence back to Settle when the flight completes.
func (t *FlightTable) Supersede(sessionID string) (context.Context, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.flights[sessionID]; ok {
		prev.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.nextSeq++
	seq := t.nextSeq
	t.flights[sessionID] = &flight{cancel: cancel, seq: seq}
	return ctx, seq
}

// Settle marks the flight with the given sequence finished. It reports
// whether the flight was still current; a false return means the flight was
// superseded or cancelled and its result must be discarded.
func (t *FlightTable) Settle(sessionID string, seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.flights[sessionID]
	if !ok || f.seq != seq {
		return false
	}
	f.cancel()
	delete(t.flights, sessionID)
	return true
}

// Cancel aborts the in-flight generation for sessionID, if any. It reports
// whether a flight was actually cancelled.
func (t *FlightTable) Cancel(sessionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.flights[sessionID]
	if !ok {
		return false
	}
	f.cancel()
	delete(t.flights, sessionID)
	return true
}

// CancelAll aborts every in-flight generation. Called on shutdown and on
// logout so no goroutine outlives its credentials.
func (t *FlightTable) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, f := range t.flights {
		f.cancel()
		delete(t.flights, id)
	}
}

// Active reports whether sessionID has a generation in flight.
func (t *FlightTable) Active(sessionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.flights[sessionID]
	return ok
}
