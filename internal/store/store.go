// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jeranaias/datamock-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when a session or exchange index does not exist.
	ErrNotFound = errors.New("session not found")
)

// =============================================================================
// STORE
// =============================================================================

// Store holds all sessions in memory, newest first, and keeps the durable
// subset persisted through a KV slot. All methods are safe for concurrent
// use, though the TUI drives it from a single update loop.
type Store struct {
	mu       sync.Mutex
	kv       KV
	sessions []*model.Session
}

// NewStore loads the persisted sessions from kv. A missing slot yields an
// empty store; a corrupt document is discarded rather than blocking startup,
// since the alternative is a client that can never launch again.
func NewStore(kv KV) (*Store, error) {
	s := &Store{kv: kv}
	data, ok, err := kv.Load()
	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	if !ok {
		return s, nil
	}
	var sessions []*model.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return s, nil
	}
	s.sessions = sessions
	return s, nil
}

// List returns all sessions, newest first. The slice is a copy; the
// sessions themselves are shared.
func (s *Store) List() []*model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Active returns the sessions that are not archived, newest first.
func (s *Store) Active() []*model.Session {
	return s.filter(func(sess *model.Session) bool { return !sess.Archived })
}

// Archived returns the archived sessions, newest first.
func (s *Store) Archived() []*model.Session {
	return s.filter(func(sess *model.Session) bool { return sess.Archived })
}

func (s *Store) filter(keep func(*model.Session) bool) []*model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Session
	for _, sess := range s.sessions {
		if keep(sess) {
			out = append(out, sess)
		}
	}
	return out
}

// Get returns the session with the given ID.
func (s *Store) Get(id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.lookup(id)
	if sess == nil {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Len reports the number of sessions, including transient ones.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Create inserts sess at the front of the list and persists.
func (s *Store) Create(sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append([]*model.Session{sess}, s.sessions...)
	return s.persist()
}

// AppendExchange adds ex to the end of the session's exchange list.
func (s *Store) AppendExchange(id string, ex model.Exchange) error {
	return s.mutate(id, func(sess *model.Session) error {
		sess.Exchanges = append(sess.Exchanges, ex)
		return nil
	})
}

// ReplaceExchange swaps the exchange at index for ex. Used when an edited
// prompt regenerates in place.
func (s *Store) ReplaceExchange(id string, index int, ex model.Exchange) error {
	return s.mutate(id, func(sess *model.Session) error {
		if index < 0 || index >= len(sess.Exchanges) {
			return fmt.Errorf("%w: exchange %d", ErrNotFound, index)
		}
		sess.Exchanges[index] = ex
		return nil
	})
}

// SettleExchange records the generation result for the exchange at index
// and clears its in-flight state.
func (s *Store) SettleExchange(id string, index int, records []*model.Record) error {
	return s.mutate(id, func(sess *model.Session) error {
		if index < 0 || index >= len(sess.Exchanges) {
			return fmt.Errorf("%w: exchange %d", ErrNotFound, index)
		}
		sess.Exchanges[index].Settle(records)
		return nil
	})
}

// RemoveExchange deletes the exchange at index. Removing the last exchange
// removes the whole session, since an empty session has nothing to show.
func (s *Store) RemoveExchange(id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.lookup(id)
	if sess == nil {
		return ErrNotFound
	}
	if index < 0 || index >= len(sess.Exchanges) {
		return fmt.Errorf("%w: exchange %d", ErrNotFound, index)
	}
	sess.Exchanges = append(sess.Exchanges[:index], sess.Exchanges[index+1:]...)
	if len(sess.Exchanges) == 0 {
		s.remove(id)
	} else {
		sess.Touch()
	}
	return s.persist()
}

// Remove deletes the session entirely.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookup(id) == nil {
		return ErrNotFound
	}
	s.remove(id)
	return s.persist()
}

// SetTitle renames the session.
func (s *Store) SetTitle(id, title string) error {
	return s.mutate(id, func(sess *model.Session) error {
		sess.Title = title
		return nil
	})
}

// SetArchived moves the session between the active and archived lists.
func (s *Store) SetArchived(id string, archived bool) error {
	return s.mutate(id, func(sess *model.Session) error {
		sess.Archived = archived
		return nil
	})
}

// SetTransient flips persistence for the session. Turning Transient off
// makes the session durable on the next persist, which this call performs.
func (s *Store) SetTransient(id string, transient bool) error {
	return s.mutate(id, func(sess *model.Session) error {
		sess.Transient = transient
		return nil
	})
}

// =============================================================================
// INTERNAL
// =============================================================================

// mutate applies fn to the session under the lock, touches it, and persists.
func (s *Store) mutate(id string, fn func(*model.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.lookup(id)
	if sess == nil {
		return ErrNotFound
	}
	if err := fn(sess); err != nil {
		return err
	}
	sess.Touch()
	return s.persist()
}

func (s *Store) lookup(id string) *model.Session {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

func (s *Store) remove(id string) {
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			return
		}
	}
}

// persist writes the durable subset. Caller must hold s.mu.
func (s *Store) persist() error {
	durable := make([]*model.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if !sess.Transient {
			durable = append(durable, sess)
		}
	}
	if len(durable) == 0 {
		return s.kv.Delete()
	}
	data, err := json.Marshal(durable)
	if err != nil {
		return fmt.Errorf("encoding sessions: %w", err)
	}
	return s.kv.Store(data)
}
