package bag

import (
	"testing"

	"github.com/jvc56/magpie-go/internal/alphabet"
	"github.com/jvc56/magpie-go/internal/rack"
)

func TestNewBagMatchesTotalTiles(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	b := New(ld, 1)
	if b.Count() != ld.TotalTiles() {
		t.Fatalf("Count() = %d, want %d", b.Count(), ld.TotalTiles())
	}
}

func TestDrawReducesCount(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	b := New(ld, 1)
	start := b.Count()
	_, ok := b.Draw()
	if !ok {
		t.Fatalf("Draw() should succeed from a full bag")
	}
	if b.Count() != start-1 {
		t.Fatalf("Count() = %d, want %d", b.Count(), start-1)
	}
}

func TestDrawEmptyBag(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	b := New(ld, 1)
	for {
		if _, ok := b.Draw(); !ok {
			break
		}
	}
	if _, ok := b.Draw(); ok {
		t.Fatalf("Draw() on an empty bag should fail")
	}
}

func TestDrawLetterSpecific(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	b := New(ld, 1)
	z, _ := ld.MachineLetterFor('Z')
	drawn, ok := b.DrawLetter(z)
	if !ok || drawn != z {
		t.Fatalf("DrawLetter('Z') failed, got %v ok=%v", drawn, ok)
	}
}

func TestReturnRoundTrip(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	b := New(ld, 1)
	start := b.Count()
	ml, _ := b.Draw()
	b.Return(ml)
	if b.Count() != start {
		t.Fatalf("Count() after Draw+Return = %d, want %d", b.Count(), start)
	}
}

func TestReturnRack(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	b := New(ld, 1)
	start := b.Count()
	r := rack.New(ld)
	if err := r.SetFromString(ld, "AEINRST"); err != nil {
		t.Fatalf("SetFromString failed: %v", err)
	}
	for i := 0; i < r.NumTiles(); i++ {
		b.Draw()
	}
	b.ReturnRack(r)
	if !r.IsEmpty() {
		t.Fatalf("ReturnRack should empty the rack")
	}
	if b.Count() != start {
		t.Fatalf("Count() after ReturnRack = %d, want %d", b.Count(), start)
	}
}

func TestExchangeAllowed(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	b := New(ld, 1)
	if !b.ExchangeAllowed() {
		t.Fatalf("a full bag should allow exchanges")
	}
	for b.Count() >= rack.Size {
		b.Draw()
	}
	if b.ExchangeAllowed() {
		t.Fatalf("a near-empty bag should not allow exchanges")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	b := New(ld, 1)
	clone := b.Clone()
	clone.Draw()
	if b.Count() == clone.Count() {
		t.Fatalf("Clone should not share the backing tile slice")
	}
}

func TestResetRefills(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	b := New(ld, 1)
	start := b.Count()
	b.DrawN(10)
	b.Reset()
	if b.Count() != start {
		t.Fatalf("Count() after Reset = %d, want %d", b.Count(), start)
	}
}
