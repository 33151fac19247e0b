package klv

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/jvc56/magpie-go/internal/alphabet"
	"github.com/jvc56/magpie-go/internal/rack"
)

// buildOneEntryKLV returns a KLV blob whose trie accepts only the
// single-tile rack made of letter, mapped to leave value.
func buildOneEntryKLV(t *testing.T, letter int, value float32) []byte {
	t.Helper()
	nodes := []uint32{
		0,
		3,
		3,
		(uint32(letter) << 24) | 0x400000 | 0x800000, // accepting leaf, arcIndex 0
	}
	trieBytes := make([]byte, len(nodes)*4)
	for i, n := range nodes {
		binary.LittleEndian.PutUint32(trieBytes[i*4:i*4+4], n)
	}
	valueBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(valueBytes, math.Float32bits(value))
	return append(trieBytes, valueBytes...)
}

func TestLeaveReturnsStoredValue(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	a, _ := ld.MachineLetterFor('A')

	blob := buildOneEntryKLV(t, int(a), 5.5)
	k, err := Load(blob, 4)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	r := rack.New(ld)
	if err := r.SetFromString(ld, "A"); err != nil {
		t.Fatalf("SetFromString failed: %v", err)
	}
	if got := k.Leave(r); got != 5.5 {
		t.Fatalf("Leave(A) = %v, want 5.5", got)
	}
}

func TestLeaveUnknownRackIsZero(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	a, _ := ld.MachineLetterFor('A')
	blob := buildOneEntryKLV(t, int(a), 5.5)
	k, err := Load(blob, 4)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	r := rack.New(ld)
	if err := r.SetFromString(ld, "B"); err != nil {
		t.Fatalf("SetFromString failed: %v", err)
	}
	if got := k.Leave(r); got != 0 {
		t.Fatalf("Leave(B) for a rack not in the trie = %v, want 0", got)
	}
}

func TestLeaveEmptyRackIsZero(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	a, _ := ld.MachineLetterFor('A')
	blob := buildOneEntryKLV(t, int(a), 5.5)
	k, err := Load(blob, 4)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	r := rack.New(ld)
	if got := k.Leave(r); got != 0 {
		t.Fatalf("Leave of an empty rack = %v, want 0", got)
	}
}

func TestLoadRejectsShortBlob(t *testing.T) {
	if _, err := Load([]byte{1, 2, 3}, 4); err == nil {
		t.Fatalf("expected an error when the blob is shorter than the declared trie size")
	}
}
