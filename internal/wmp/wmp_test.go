package wmp

import (
	"encoding/binary"
	"testing"

	"github.com/jvc56/magpie-go/internal/bitrack"
)

// buildLengthTableBlock encodes one length table with a single bucket
// holding one pointer-style entry for target, whose payload points at
// letters within the shared letters blob.
func buildLengthTableBlock(target bitrack.BitRack, letters []byte, numWords uint32) []byte {
	var buf []byte
	put32 := func(v uint32) {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		buf = append(buf, b...)
	}
	put64 := func(v uint64) {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, v)
		buf = append(buf, b...)
	}

	// One bucket; every entry lands in it.
	put32(1)       // numBuckets
	put32(0)       // bucketStarts[0]
	put32(1)       // bucketStarts[1]
	put32(1)       // numEntries

	_, quotient := target.DivMod(1)
	put64(quotient.Lo)
	put32(uint32(quotient.Hi))

	// payload: first 8 bytes zero selects the pointer interpretation.
	buf = append(buf, make([]byte, 8)...)
	put32(0)         // wordStart
	put32(numWords)  // numWords

	buf = append(buf, letters...)
	return buf
}

func buildWMPBlob(wordLen int, target bitrack.BitRack, letters []byte, numWords uint32) []byte {
	var buf []byte
	buf = append(buf, Version, 15, byte(wordLen), byte(wordLen))
	zero32 := make([]byte, 4)
	buf = append(buf, zero32...) // max_blank_pair_bytes
	buf = append(buf, zero32...) // max_word_lookup_bytes
	block := buildLengthTableBlock(target, letters, numWords)
	for blanks := 0; blanks < 3; blanks++ {
		buf = append(buf, block...)
	}
	return buf
}

func testRack() bitrack.BitRack {
	var br bitrack.BitRack
	return br.Add(3).Add(1).Add(20)
}

func TestLookupFindsStoredEntry(t *testing.T) {
	target := testRack()
	blob := buildWMPBlob(3, target, []byte("CAT"), 1)
	w, err := Load(blob)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	letters, numWords, ok := w.Lookup(ZeroBlanks, 3, target)
	if !ok {
		t.Fatalf("Lookup should find the stored entry")
	}
	if string(letters) != "CAT" || numWords != 1 {
		t.Fatalf("Lookup = %q, %d, want CAT, 1", letters, numWords)
	}
	// The same block was written for all three blank sub-tables.
	if _, _, ok := w.Lookup(OneBlank, 3, target); !ok {
		t.Fatalf("one-blank sub-table should also carry the entry")
	}
	if _, _, ok := w.Lookup(TwoBlanks, 3, target); !ok {
		t.Fatalf("two-blank sub-table should also carry the entry")
	}
}

func TestLookupMissingRack(t *testing.T) {
	target := testRack()
	blob := buildWMPBlob(3, target, []byte("CAT"), 1)
	w, err := Load(blob)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var other bitrack.BitRack
	other = other.Add(5).Add(6).Add(7)
	if _, _, ok := w.Lookup(ZeroBlanks, 3, other); ok {
		t.Fatalf("Lookup for an unrelated rack should fail")
	}
}

func TestLookupRejectsOutOfRangeWordLen(t *testing.T) {
	target := testRack()
	blob := buildWMPBlob(3, target, []byte("CAT"), 1)
	w, err := Load(blob)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, _, ok := w.Lookup(ZeroBlanks, 4, target); ok {
		t.Fatalf("Lookup for a word length outside the loaded table should fail")
	}
	if _, _, ok := w.Lookup(ZeroBlanks, 1, target); ok {
		t.Fatalf("Lookup below MinWordLen should fail")
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	blob := []byte{99, 15, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := Load(blob); err == nil {
		t.Fatalf("expected an error for an unsupported version")
	}
}
