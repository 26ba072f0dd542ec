// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/jeranaias/datamock-tui/internal/model"
)

func record(t *testing.T, raw string) *model.Record {
	t.Helper()
	var r model.Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	return &r
}

func TestCSVHeaderOrderAndMissingFields(t *testing.T) {
	records := []*model.Record{
		record(t, `{"name": "Ana", "age": 31}`),
		record(t, `{"name": "Bo", "email": "bo@example.com"}`),
	}
	out, err := NewCSVExporter().Export(records)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d: %q", len(lines), out)
	}
	if lines[0] != "name,age,email" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Ana,31," {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "Bo,,bo@example.com" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestCSVQuoting(t *testing.T) {
	records := []*model.Record{
		record(t, `{"note": "hello, world", "quote": "say \"hi\""}`),
	}
	out, err := NewCSVExporter().Export(records)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, `"hello, world"`) {
		t.Errorf("comma field not quoted: %q", got)
	}
	if !strings.Contains(got, `"say ""hi"""`) {
		t.Errorf("quote field not escaped: %q", got)
	}
}

func TestCSVEmptyRecords(t *testing.T) {
	out, err := NewCSVExporter().Export(nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.TrimSpace(string(out)) != "" {
		t.Errorf("empty export = %q", out)
	}
}

func TestJSONExportPreservesFieldOrder(t *testing.T) {
	records := []*model.Record{
		record(t, `{"zeta": 1, "alpha": 2}`),
	}
	out, err := NewJSONExporter().Export(records)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	got := string(out)
	if strings.Index(got, "zeta") > strings.Index(got, "alpha") {
		t.Errorf("field order lost: %s", got)
	}
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	records := []*model.Record{record(t, `{"id": 1}`)}
	path, err := ExportToFile(records, NewCSVExporter(), &Options{
		OutputDir: dir,
		BaseName:  "User Accounts: Test/Run",
	})
	if err != nil {
		t.Fatalf("ExportToFile: %v", err)
	}
	if !strings.HasSuffix(path, ".csv") {
		t.Errorf("path = %q", path)
	}
	base := strings.TrimPrefix(path, dir+string(os.PathSeparator))
	if strings.ContainsAny(base, "/:\\ ") {
		t.Errorf("unsanitized filename: %q", base)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "id") {
		t.Errorf("content = %q", data)
	}
}
