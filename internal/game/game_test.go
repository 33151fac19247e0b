package game

import (
	"testing"

	"github.com/jvc56/magpie-go/internal/alphabet"
	"github.com/jvc56/magpie-go/internal/move"
)

func TestNewDealsFullRacks(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	g := New(ld, nil, 1, [2]string{"Alice", "Bob"})
	if g.Racks[0].NumTiles() != 7 || g.Racks[1].NumTiles() != 7 {
		t.Fatalf("racks after New = %d/%d, want 7/7", g.Racks[0].NumTiles(), g.Racks[1].NumTiles())
	}
	if g.OnTurn != 0 {
		t.Fatalf("OnTurn = %d, want 0", g.OnTurn)
	}
	if over, _ := g.IsOver(); over {
		t.Fatalf("a freshly dealt game should not be over")
	}
}

func buildPlayMove(ld *alphabet.LetterDistribution, word string, row, col int) *move.Move {
	m := &move.Move{Type: move.Play, RowStart: row, ColStart: col}
	for _, r := range word {
		ml, _ := ld.MachineLetterFor(r)
		m.Tiles[m.TilesLength] = ml
		m.TilesLength++
	}
	return m
}

func TestApplyMovePlayScoresAndRefills(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	g := New(ld, nil, 1, [2]string{"Alice", "Bob"})
	if err := g.Racks[0].SetFromString(ld, "CATDEFG"); err != nil {
		t.Fatalf("SetFromString failed: %v", err)
	}
	m := buildPlayMove(ld, "CAT", 7, 7)
	m.Score = 12

	g.ApplyMove(m)

	if g.Scores[0] != 12 {
		t.Fatalf("Scores[0] = %d, want 12", g.Scores[0])
	}
	if g.Racks[0].NumTiles() != 7 {
		t.Fatalf("rack should be refilled back to 7, got %d", g.Racks[0].NumTiles())
	}
	if g.Board.NumTiles() != 3 {
		t.Fatalf("board should hold the 3 placed tiles, got %d", g.Board.NumTiles())
	}
	if g.OnTurn != 1 {
		t.Fatalf("OnTurn after a move should switch to 1, got %d", g.OnTurn)
	}
	if g.ConsecutiveScoreless != 0 {
		t.Fatalf("a scoring move should reset ConsecutiveScoreless, got %d", g.ConsecutiveScoreless)
	}
	if len(g.History) != 1 || g.History[0].RackBefore != "ACDEFGT" {
		t.Fatalf("history entry missing or wrong rack-before: %+v", g.History)
	}
}

func TestApplyMovePassIncrementsScoreless(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	g := New(ld, nil, 1, [2]string{"Alice", "Bob"})
	pass := &move.Move{Type: move.Pass}
	pass.SetAsPass()
	for i := 0; i < MaxConsecutiveScorelessTurns; i++ {
		g.ApplyMove(pass)
	}
	over, reason := g.IsOver()
	if !over || reason != ConsecutiveScoreless {
		t.Fatalf("game should end by attrition after %d scoreless turns, over=%v reason=%v",
			MaxConsecutiveScorelessTurns, over, reason)
	}
}

func TestApplyMoveExchangeReturnsAndRedraws(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	g := New(ld, nil, 1, [2]string{"Alice", "Bob"})
	if err := g.Racks[0].SetFromString(ld, "AABCDEF"); err != nil {
		t.Fatalf("SetFromString failed: %v", err)
	}
	startBagCount := g.Bag.Count()

	ex := &move.Move{Type: move.Exchange}
	a, _ := ld.MachineLetterFor('A')
	ex.Tiles[0] = a
	ex.TilesLength = 1

	g.ApplyMove(ex)

	if g.Bag.Count() != startBagCount {
		t.Fatalf("bag count should be unchanged after a like-for-like exchange, got %d want %d",
			g.Bag.Count(), startBagCount)
	}
	if g.Racks[0].NumTiles() != 7 {
		t.Fatalf("rack should remain at 7 tiles after exchange, got %d", g.Racks[0].NumTiles())
	}
	if g.ConsecutiveScoreless != 1 {
		t.Fatalf("an exchange should count toward scoreless turns, got %d", g.ConsecutiveScoreless)
	}
}

func TestFinalizeScoresEmptiedRack(t *testing.T) {
	ld := alphabet.EnglishLetterDistribution()
	g := New(ld, nil, 1, [2]string{"Alice", "Bob"})
	if err := g.Racks[0].SetFromString(ld, "CAT"); err != nil {
		t.Fatalf("SetFromString failed: %v", err)
	}
	if err := g.Racks[1].SetFromString(ld, "ZZ"); err != nil {
		t.Fatalf("SetFromString failed: %v", err)
	}
	// Empty the bag so playing out CAT leaves player 0's rack empty.
	for g.Bag.Count() > 0 {
		g.Bag.Draw()
	}
	m := buildPlayMove(ld, "CAT", 7, 7)
	m.Score = 10
	g.ApplyMove(m)

	over, reason := g.IsOver()
	if !over || reason != EmptiedRack {
		t.Fatalf("game should be over by EmptiedRack, got over=%v reason=%v", over, reason)
	}
	zScore := g.Racks[1].Score(ld)
	g.FinalizeScores()
	if g.Scores[0] != 10+zScore {
		t.Fatalf("winner should gain the loser's rack value: Scores[0] = %d, want %d", g.Scores[0], 10+zScore)
	}
	if g.Scores[1] != -zScore {
		t.Fatalf("loser should lose their own rack value: Scores[1] = %d, want %d", g.Scores[1], -zScore)
	}
}
