// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import "testing"

func TestSupersedeCancelsPrevious(t *testing.T) {
	ft := NewFlightTable()
	ctx1, seq1 := ft.Supersede("sess")
	ctx2, seq2 := ft.Supersede("sess")

	select {
	case <-ctx1.Done():
	default:
		t.Error("first flight context should be cancelled")
	}
	select {
	case <-ctx2.Done():
		t.Error("second flight context should still be live")
	default:
	}

	if ft.Settle("sess", seq1) {
		t.Error("superseded flight should not settle")
	}
	if !ft.Settle("sess", seq2) {
		t.Error("current flight should settle")
	}
}

func TestSettleIsTerminal(t *testing.T) {
	ft := NewFlightTable()
	_, seq := ft.Supersede("sess")
	if !ft.Settle("sess", seq) {
		t.Fatal("first settle should succeed")
	}
	if ft.Settle("sess", seq) {
		t.Error("second settle should fail")
	}
	if ft.Active("sess") {
		t.Error("settled session should not be active")
	}
}

func TestCancel(t *testing.T) {
	ft := NewFlightTable()
	ctx, seq := ft.Supersede("sess")
	if !ft.Cancel("sess") {
		t.Fatal("Cancel should report a live flight")
	}
	select {
	case <-ctx.Done():
	default:
		t.Error("context should be cancelled")
	}
	if ft.Settle("sess", seq) {
		t.Error("cancelled flight must not settle")
	}
	if ft.Cancel("sess") {
		t.Error("second Cancel should report nothing in flight")
	}
}

func TestCancelAll(t *testing.T) {
	ft := NewFlightTable()
	ctxA, _ := ft.Supersede("a")
	ctxB, _ := ft.Supersede("b")
	ft.CancelAll()

	for name, ctx := range map[string]interface{ Done() <-chan struct{} }{"a": ctxA, "b": ctxB} {
		select {
		case <-ctx.Done():
		default:
			t.Errorf("flight %s not cancelled", name)
		}
	}
	if ft.Active("a") || ft.Active("b") {
		t.Error("flights should be cleared")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	ft := NewFlightTable()
	ctxA, seqA := ft.Supersede("a")
	_, seqB := ft.Supersede("b")

	ft.Cancel("b")
	select {
	case <-ctxA.Done():
		t.Error("cancelling b must not touch a")
	default:
	}
	if ft.Settle("b", seqB) {
		t.Error("cancelled b should not settle")
	}
	if !ft.Settle("a", seqA) {
		t.Error("a should settle normally")
	}
}
