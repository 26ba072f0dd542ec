// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and
// generated records.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/datamock-tui/internal/util"
)

// DefaultTitle is the placeholder title a session carries until the
// fallback or server title replaces it.
const DefaultTitle = "New Chat"

// =============================================================================
// EXCHANGE TYPE
// =============================================================================

// Exchange is one prompt/data pair within a session.
//
// While Generating is true the Data field is provisional and must be
// treated as empty by consumers. Generating is runtime state and is never
// persisted: a reloaded exchange is always settled.
type Exchange struct {
	Prompt string    `json:"prompt"`
	Data   []*Record `json:"data"`

	Generating bool `json:"-"`
}

// NewExchange creates a pending exchange for a submitted prompt.
func NewExchange(prompt string) Exchange {
	return Exchange{Prompt: prompt, Data: nil, Generating: true}
}

// Settle marks the exchange complete with the given records.
func (e *Exchange) Settle(records []*Record) {
	e.Data = records
	e.Generating = false
}

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session is a named, ordered collection of exchanges. It is the unit of
// persistence and archival.
//
// Transient sessions participate fully in the UI but are excluded from
// persistence and disappear on restart. Transient itself is runtime state,
// so it carries no JSON tag worth persisting.
type Session struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Exchanges []Exchange `json:"exchanges"`
	Archived  bool       `json:"is_archived,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Transient bool `json:"-"`
}

// NewSession creates a session seeded with an initial exchange.
func NewSession(initial Exchange) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Title:     DefaultTitle,
		Exchanges: []Exchange{initial},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Preview returns a one-line summary of the session for list displays:
// the first exchange's prompt, collapsed and truncated.
func (s *Session) Preview() string {
	for _, ex := range s.Exchanges {
		if ex.Prompt != "" {
			return util.TruncateRunes(util.CollapseSpace(ex.Prompt), 80)
		}
	}
	return s.Title
}

// Touch updates the modification timestamp.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}
