// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package title produces session titles.
//
// A deterministic local fallback is computed from the prompt the moment a
// session is created, so the sidebar never shows a placeholder for long.
// After data arrives, a best-effort call to the backend's title endpoint
// may replace the fallback with something nicer. That call is fire and
// forget: any failure leaves the fallback in place and is never surfaced.
package title

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/datamock-tui/internal/model"
)

// MaxLength is the longest title the sidebar will carry.
const MaxLength = 60

// SampleSize is how many records accompany the title request as context.
const SampleSize = 2

var wordPattern = regexp.MustCompile(`[A-Za-z0-9\-]+`)

var titleCaser = cases.Title(language.English)

// =============================================================================
// LOCAL FALLBACK
// =============================================================================

// Fallback derives a deterministic title from a prompt: up to five
// alphanumeric/hyphen tokens (or the first three whitespace-separated
// tokens if none match), space-joined, title-cased per word, truncated to
// MaxLength. An empty result yields "New Chat".
func Fallback(prompt string) string {
	words := wordPattern.FindAllString(prompt, 5)
	if len(words) == 0 {
		words = strings.Fields(prompt)
		if len(words) > 3 {
			words = words[:3]
		}
	}

	base := titleCaser.String(strings.Join(words, " "))
	if runes := []rune(base); len(runes) > MaxLength {
		base = string(runes[:MaxLength])
	}
	base = strings.Trim(base, " .,:;!?")
	if base == "" {
		return model.DefaultTitle
	}
	return base
}

// =============================================================================
// SERVER SYNTHESIS
// =============================================================================

// Namer is the backend call that turns a prompt plus a data sample into a
// short human title. Implemented by the api client.
type Namer interface {
	GenerateTitle(ctx context.Context, prompt string, sample []*model.Record) (string, error)
}

// Synthesizer asks the backend for a title and absorbs every failure.
type Synthesizer struct {
	namer Namer
}

// NewSynthesizer creates a synthesizer backed by the given namer.
func NewSynthesizer(namer Namer) *Synthesizer {
	return &Synthesizer{namer: namer}
}

// Synthesize returns the server title when the call succeeds and the
// local fallback otherwise. At most SampleSize records are sent.
func (s *Synthesizer) Synthesize(ctx context.Context, prompt string, records []*model.Record) string {
	fallback := Fallback(prompt)
	if s == nil || s.namer == nil {
		return fallback
	}

	sample := records
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}

	generated, err := s.namer.GenerateTitle(ctx, prompt, sample)
	if err != nil {
		return fallback
	}
	generated = strings.TrimSpace(generated)
	if generated == "" {
		return fallback
	}
	if runes := []rune(generated); len(runes) > MaxLength {
		generated = string(runes[:MaxLength])
	}
	return generated
}
