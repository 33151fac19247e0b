package board

import (
	"testing"

	"github.com/jvc56/magpie-go/internal/alphabet"
)

func TestNewBoardCenterIsSoleAnchor(t *testing.T) {
	b := New()
	if !b.IsEmpty() || b.NumTiles() != 0 {
		t.Fatalf("fresh board should be empty")
	}
	if !b.IsAnchor(Size/2, Size/2) {
		t.Fatalf("center square should be the sole initial anchor")
	}
	if b.IsAnchor(0, 0) {
		t.Fatalf("corner should not be an anchor on an empty board")
	}
}

func TestSetClearLetterTracksNumTiles(t *testing.T) {
	b := New()
	ld := alphabet.EnglishLetterDistribution()
	ml, _ := ld.MachineLetterFor('A')
	b.SetLetter(7, 7, ml)
	if b.NumTiles() != 1 || b.IsEmpty() {
		t.Fatalf("NumTiles = %d after one placement, want 1", b.NumTiles())
	}
	b.SetLetter(7, 7, ml)
	if b.NumTiles() != 1 {
		t.Fatalf("re-setting an occupied square should not double-count, got %d", b.NumTiles())
	}
	b.ClearLetter(7, 7)
	if b.NumTiles() != 0 || !b.IsEmpty() {
		t.Fatalf("NumTiles = %d after clear, want 0", b.NumTiles())
	}
}

func TestRecomputeAnchorsAroundPlacedTile(t *testing.T) {
	b := New()
	ld := alphabet.EnglishLetterDistribution()
	ml, _ := ld.MachineLetterFor('A')
	b.SetLetter(7, 7, ml)
	b.RecomputeAnchors()
	if b.IsAnchor(7, 7) {
		t.Fatalf("an occupied square should never be an anchor")
	}
	if !b.IsAnchor(6, 7) || !b.IsAnchor(8, 7) || !b.IsAnchor(7, 6) || !b.IsAnchor(7, 8) {
		t.Fatalf("all four orthogonal neighbors of a placed tile should be anchors")
	}
	if b.IsAnchor(0, 0) {
		t.Fatalf("a square far from any tile should not be an anchor")
	}
}

func TestRecomputeAnchorsResetsToCenterWhenEmptied(t *testing.T) {
	b := New()
	ld := alphabet.EnglishLetterDistribution()
	ml, _ := ld.MachineLetterFor('A')
	b.SetLetter(7, 7, ml)
	b.RecomputeAnchors()
	b.ClearLetter(7, 7)
	b.RecomputeAnchors()
	if !b.IsAnchor(Size/2, Size/2) {
		t.Fatalf("emptying the board should restore the center anchor")
	}
	if b.IsAnchor(6, 7) {
		t.Fatalf("stale neighbor anchor should be cleared once the board is empty again")
	}
}

func TestFragmentAndWordFragment(t *testing.T) {
	b := New()
	ld := alphabet.EnglishLetterDistribution()
	for i, r := range "CAT" {
		ml, _ := ld.MachineLetterFor(r)
		b.SetLetter(7, 7+i, ml)
	}
	frag := b.Fragment(7, 6, Horizontal, true)
	if len(frag) != 3 {
		t.Fatalf("Fragment length = %d, want 3", len(frag))
	}
	word := b.WordFragment(7, 6, Horizontal, true, ld)
	if word != "CAT" {
		t.Fatalf("WordFragment = %q, want CAT", word)
	}
	// Reading backward from the far end should reconstruct the same word.
	backward := b.WordFragment(7, 10, Horizontal, false, ld)
	if backward != "CAT" {
		t.Fatalf("backward WordFragment = %q, want CAT", backward)
	}
}

func TestCrossSetAndScoreStorage(t *testing.T) {
	b := New()
	b.SetCrossSet(3, 3, Horizontal, 0, 0xFF)
	if got := b.CrossSet(3, 3, Horizontal, 0); got != 0xFF {
		t.Fatalf("CrossSet = %x, want 0xFF", got)
	}
	b.SetCrossScore(3, 3, Horizontal, 0, 9)
	if got := b.CrossScore(3, 3, Horizontal, 0); got != 9 {
		t.Fatalf("CrossScore = %d, want 9", got)
	}
	// Cross-sets for a different lexicon/axis slot are independent.
	if got := b.CrossSet(3, 3, Vertical, 0); got != ^uint64(0) {
		t.Fatalf("vertical cross-set should still be the unconstrained default, got %x", got)
	}
}

func TestAxisOther(t *testing.T) {
	if Horizontal.Other() != Vertical || Vertical.Other() != Horizontal {
		t.Fatalf("Axis.Other() is not its own inverse")
	}
}

func TestInBounds(t *testing.T) {
	if !InBounds(0, 0) || !InBounds(Size-1, Size-1) {
		t.Fatalf("corner squares should be in bounds")
	}
	if InBounds(-1, 0) || InBounds(0, Size) {
		t.Fatalf("out-of-range coordinates should not be in bounds")
	}
}
