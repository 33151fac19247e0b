package rack

import (
	"testing"

	"github.com/jvc56/magpie-go/internal/alphabet"
)

func TestSetFromStringAndBack(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	r := New(ld)
	if err := r.SetFromString(ld, "AEINRST"); err != nil {
		t.Fatalf("SetFromString failed: %v", err)
	}
	if r.NumTiles() != 7 {
		t.Fatalf("NumTiles() = %d, want 7", r.NumTiles())
	}
	if got := r.String(ld); len(got) != 7 {
		t.Fatalf("String() = %q, want length 7", got)
	}
}

func TestSetFromStringWildcard(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	r := New(ld)
	if err := r.SetFromString(ld, "AB?"); err != nil {
		t.Fatalf("SetFromString failed: %v", err)
	}
	if !r.HasWildcard() {
		t.Fatalf("HasWildcard() = false after loading a '?'")
	}
}

func TestSetFromStringRejectsUnknownLetter(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	r := New(ld)
	if err := r.SetFromString(ld, "A1B"); err == nil {
		t.Fatalf("expected error for unknown rack letter")
	}
}

func TestAddTakeInvariants(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	r := New(ld)
	ml, _ := ld.MachineLetterFor('A')
	r.Add(int(ml))
	r.Add(int(ml))
	if r.Get(int(ml)) != 2 || r.NumTiles() != 2 {
		t.Fatalf("rack state after two Adds: count=%d total=%d", r.Get(int(ml)), r.NumTiles())
	}
	if !r.Take(int(ml)) {
		t.Fatalf("Take should succeed while a tile remains")
	}
	if r.NumTiles() != 1 {
		t.Fatalf("NumTiles() after one Take = %d, want 1", r.NumTiles())
	}
	r.Take(int(ml))
	if r.Take(int(ml)) {
		t.Fatalf("Take should fail once the letter is exhausted")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	r := New(ld)
	r.SetFromString(ld, "AEI")
	clone := r.Clone()
	ml, _ := ld.MachineLetterFor('A')
	clone.Take(int(ml))
	if r.Get(int(ml)) == clone.Get(int(ml)) {
		t.Fatalf("Clone shares state with the original rack")
	}
}

func TestScore(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	r := New(ld)
	r.SetFromString(ld, "ZZ")
	want := 2 * ld.Score(mustLetter(ld, 'Z'))
	if got := r.Score(ld); got != want {
		t.Fatalf("Score() = %d, want %d", got, want)
	}
}

func mustLetter(ld *alphabet.LetterDistribution, r rune) alphabet.MachineLetter {
	ml, _ := ld.MachineLetterFor(r)
	return ml
}

func TestBitRackReflectsContents(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	r := New(ld)
	r.SetFromString(ld, "AA")
	br := r.BitRack()
	ml, _ := ld.MachineLetterFor('A')
	if br.Get(int(ml)) != 2 {
		t.Fatalf("BitRack did not carry over rack counts")
	}
}
