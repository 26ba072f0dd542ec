// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package extract pulls a JSON array of records out of free-form streamed
// text.
//
// The generation backend is instructed to reply with a raw JSON array, but
// models wrap their output in markdown fences, SSE framing, or prose often
// enough that the client cannot assume a clean body. Extraction is a
// documented heuristic, not a parser: take the greedy span from the first
// '[' to the last ']' and attempt a JSON parse. If the text contains more
// than one array the spans merge and the parse fails soft; that matches
// the original product behavior and is accepted.
package extract

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jeranaias/datamock-tui/internal/model"
)

// ErrNoData reports that the stream completed without producing a
// parseable record array. It is a soft signal: the exchange settles with
// empty data and the user gets a notice, never a hard failure.
var ErrNoData = errors.New("no structured data produced")

// Records extracts and parses the record array embedded in text.
//
// Returns ErrNoData when no bracket-delimited span exists or the span does
// not parse as a JSON array of objects. Leading and trailing noise around
// the array (prose, markdown fences, "data:" SSE prefixes) is ignored.
func Records(text string) ([]*model.Record, error) {
	span, ok := arraySpan(text)
	if !ok {
		return nil, ErrNoData
	}

	var records []*model.Record
	if err := json.Unmarshal([]byte(span), &records); err != nil {
		return nil, ErrNoData
	}
	return records, nil
}

// arraySpan returns the greedy substring from the first '[' to the last
// ']', mirroring the /(\[[\s\S]*\])/ match the original client used.
func arraySpan(text string) (string, bool) {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(text, ']')
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}
