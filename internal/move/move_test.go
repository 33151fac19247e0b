package move

import (
	"testing"

	"github.com/jvc56/magpie-go/internal/alphabet"
)

func TestSetAsPass(t *testing.T) {
	m := &Move{Score: 42, Type: Play}
	m.SetAsPass()
	if m.Type != Pass || m.Equity != PassEquity || m.Score != 0 {
		t.Fatalf("SetAsPass left stale state: %+v", m)
	}
}

func TestCopyFrom(t *testing.T) {
	src := &Move{Score: 10, Type: Play, TilesLength: 3}
	dst := &Move{Score: 99}
	dst.CopyFrom(src)
	if dst.Score != 10 || dst.TilesLength != 3 {
		t.Fatalf("CopyFrom did not overwrite dst: %+v", dst)
	}
	dst.Score = 1
	if src.Score == 1 {
		t.Fatalf("CopyFrom should not alias src and dst")
	}
}

func TestWord(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	m := &Move{Type: Play}
	for i, r := range "CAT" {
		ml, _ := ld.MachineLetterFor(r)
		m.Tiles[i] = ml
		m.TilesLength++
	}
	if got := m.Word(ld); got != "CAT" {
		t.Fatalf("Word() = %q, want CAT", got)
	}
	pass := &Move{Type: Pass}
	if got := pass.Word(ld); got != "" {
		t.Fatalf("Word() for a pass = %q, want empty", got)
	}
}

func TestListInsertEvictsWorstOnOverflow(t *testing.T) {
	ml := NewList(3)
	for _, eq := range []float64{5, 3, 8, 1, 10} {
		ml.SpareMove().Equity = eq
		ml.InsertSpareMove(eq)
	}
	if ml.Count() != 3 {
		t.Fatalf("Count() = %d, want 3 (bounded by capacity)", ml.Count())
	}
	ml.SortDescending()
	want := []float64{10, 8, 5}
	for i, w := range want {
		if ml.At(i).Equity != w {
			t.Fatalf("At(%d).Equity = %v, want %v", i, ml.At(i).Equity, w)
		}
	}
}

func TestListExists(t *testing.T) {
	ml := NewList(5)
	ml.SpareMove().Equity = 7
	ml.SpareMove().Score = 7
	ml.InsertSpareMove(7)
	probe := &Move{Equity: 7, Score: 7}
	if !ml.Exists(probe) {
		t.Fatalf("Exists should find an equal-equity, equal-score move")
	}
	other := &Move{Equity: 3, Score: 3}
	if ml.Exists(other) {
		t.Fatalf("Exists should not find a strictly worse move")
	}
}

func TestPopMoveSingleElement(t *testing.T) {
	ml := NewList(4)
	ml.SpareMove().Equity = 2
	ml.InsertSpareMove(2)
	popped := ml.PopMove()
	if popped.Equity != 2 {
		t.Fatalf("PopMove() on a single-element list returned equity %v, want 2", popped.Equity)
	}
	if ml.Count() != 0 {
		t.Fatalf("Count() after popping the only element = %d, want 0", ml.Count())
	}
}
