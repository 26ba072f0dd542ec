// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"errors"
	"testing"
)

func TestRecords_EmbeddedInNoise(t *testing.T) {
	tests := []struct {
		name string
		text string
		rows int
	}{
		{
			name: "clean array",
			text: `[{"name":"Ada"},{"name":"Grace"}]`,
			rows: 2,
		},
		{
			name: "markdown fenced",
			text: "Here you go:\n```json\n[{\"id\":1}]\n```\nEnjoy!",
			rows: 1,
		},
		{
			name: "sse framed",
			text: "data: [{\"id\":1},{\"id\":2}]\n\n",
			rows: 2,
		},
		{
			name: "leading and trailing prose",
			text: `Sure! [{"a":1}] Let me know if you need more.`,
			rows: 1,
		},
		{
			name: "empty array",
			text: `[]`,
			rows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Records(tt.text)
			if err != nil {
				t.Fatalf("Records failed: %v", err)
			}
			if len(records) != tt.rows {
				t.Errorf("rows = %d, want %d", len(records), tt.rows)
			}
		})
	}
}

func TestRecords_NoData(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no brackets", "I could not generate any data for that."},
		{"open bracket only", "partial output ["},
		{"close before open", "] oops ["},
		{"unparseable span", `[{"broken": }]`},
		{"empty input", ""},
		// Two arrays in the text: the greedy span merges them and the
		// parse fails soft. Documented behavior.
		{"two arrays merge", `[{"a":1}] and [{"b":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Records(tt.text)
			if !errors.Is(err, ErrNoData) {
				t.Errorf("err = %v, want ErrNoData", err)
			}
			if records != nil {
				t.Errorf("records = %v, want nil", records)
			}
		})
	}
}

func TestRecords_PreservesFieldOrder(t *testing.T) {
	records, err := Records(`noise [{"zeta":1,"alpha":2}] noise`)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	keys := records[0].Keys()
	if len(keys) != 2 || keys[0] != "zeta" || keys[1] != "alpha" {
		t.Errorf("Keys = %v, want [zeta alpha]", keys)
	}
}
