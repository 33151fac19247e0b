package kwg

import (
	"encoding/binary"
	"testing"
)

// buildTinyDawg returns the byte encoding of a minimal KWG whose DAWG
// (and, for this test's purposes, GADDAG) root accepts the single word
// [1, 20] ('A' then 'T' using arbitrary small MachineLetter values) and
// nothing else: node 3 is a one-arc list for tile 1 pointing at node 4,
// node 4 is a one-arc accepting list for tile 20.
func buildTinyDawg(t *testing.T) []byte {
	t.Helper()
	const root = 3
	nodes := []uint32{
		0,                                                // reserved
		uint32(root),                                     // word 1: dawg root
		uint32(root),                                     // word 2: gaddag root
		(1 << nodeTileShift) | nodeIsEndBit | 4,           // node 3: 'A' -> node 4
		(20 << nodeTileShift) | nodeIsEndBit | nodeAcceptsBit, // node 4: 'T', accepting
	}
	data := make([]byte, len(nodes)*4)
	for i, n := range nodes {
		binary.LittleEndian.PutUint32(data[i*4:i*4+4], n)
	}
	return data
}

func TestLoadRejectsBadLength(t *testing.T) {
	if _, err := Load([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for length not a multiple of 4")
	}
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestLoadRejectsOutOfRangeRoot(t *testing.T) {
	nodes := []uint32{0, 99, 0}
	data := make([]byte, 12)
	for i, n := range nodes {
		binary.LittleEndian.PutUint32(data[i*4:i*4+4], n)
	}
	if _, err := Load(data); err == nil {
		t.Fatalf("expected error for an out-of-range root index")
	}
}

func TestFindWord(t *testing.T) {
	k, err := Load(buildTinyDawg(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !k.FindWord([]int{1, 20}) {
		t.Fatalf("FindWord([1,20]) should accept the loaded word")
	}
	if k.FindWord([]int{1, 21}) {
		t.Fatalf("FindWord([1,21]) should not accept an unknown suffix")
	}
	if k.FindWord([]int{1}) {
		t.Fatalf("FindWord([1]) should not accept a non-terminal prefix")
	}
	if k.FindWord(nil) {
		t.Fatalf("FindWord(nil) should reject the empty word")
	}
}

func TestNodeAccessors(t *testing.T) {
	k, err := Load(buildTinyDawg(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if k.Tile(3) != 1 || k.Tile(4) != 20 {
		t.Fatalf("Tile() mismatch: Tile(3)=%d Tile(4)=%d", k.Tile(3), k.Tile(4))
	}
	if !k.IsEnd(3) || !k.IsEnd(4) {
		t.Fatalf("both nodes are single-arc lists and should report IsEnd")
	}
	if k.Accepts(3) || !k.Accepts(4) {
		t.Fatalf("only node 4 should carry the acceptance bit")
	}
	if k.ArcIndex(3) != 4 {
		t.Fatalf("ArcIndex(3) = %d, want 4", k.ArcIndex(3))
	}
	if k.NextNodeIndex(3, 1) != 4 {
		t.Fatalf("NextNodeIndex(3, 1) = %d, want 4", k.NextNodeIndex(3, 1))
	}
	if k.NextNodeIndex(3, 2) != 0 {
		t.Fatalf("NextNodeIndex(3, 2) should fail to find an unknown letter")
	}
}

func TestLetterSetAndInLetterSet(t *testing.T) {
	k, err := Load(buildTinyDawg(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := k.LetterSet(4); got != (uint64(1) << 20) {
		t.Fatalf("LetterSet(4) = %x, want bit 20 set", got)
	}
	if got := k.LetterSet(3); got != 0 {
		t.Fatalf("LetterSet(3) = %x, want 0 (non-accepting arc)", got)
	}
	if !k.InLetterSet(20, 4) {
		t.Fatalf("InLetterSet(20, 4) should be true")
	}
	if k.InLetterSet(1, 4) {
		t.Fatalf("InLetterSet(1, 4) should be false: node 4's only arc is tile 20")
	}
}

func TestCrossSetAndScoreNoConstraint(t *testing.T) {
	k, err := Load(buildTinyDawg(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	set, score := k.CrossSetAndScore(nil, nil)
	if set != ^uint64(0) || score != 0 {
		t.Fatalf("CrossSetAndScore(nil, nil) = (%x, %d), want (all-bits, 0)", set, score)
	}
}

func TestCrossSetAndScoreWalksRightFragment(t *testing.T) {
	k, err := Load(buildTinyDawg(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	set, score := k.CrossSetAndScore(nil, []int{1})
	want := uint64(1) << 20
	if set != want || score != 0 {
		t.Fatalf("CrossSetAndScore(nil, [1]) = (%x, %d), want (%x, 0)", set, score, want)
	}
	// Calling again should hit the LRU cache and return the same result.
	set2, score2 := k.CrossSetAndScore(nil, []int{1})
	if set2 != want || score2 != 0 {
		t.Fatalf("cached CrossSetAndScore(nil, [1]) = (%x, %d), want (%x, 0)", set2, score2, want)
	}
}

func TestCrossSetAndScoreUnknownFragmentIsEmpty(t *testing.T) {
	k, err := Load(buildTinyDawg(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	set, score := k.CrossSetAndScore(nil, []int{99})
	if set != 0 || score != 0 {
		t.Fatalf("CrossSetAndScore(nil, [99]) = (%x, %d), want (0, 0)", set, score)
	}
}
