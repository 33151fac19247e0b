// Package game implements Game, the container tying together a
// Board, two Racks, a Bag and score/turn bookkeeping, plus the
// end-of-game detection rules, per spec.md section 3/4.4. Grounded in
// GoSkrafl's game.go Game/GameState, generalized to MachineLetter
// tiles and multiple simultaneously loaded lexicons, and extended with
// an explicit EndReason (original_source tracks end conditions more
// granularly than GoSkrafl's single NumPassMoves==6 check, via
// game_history_defs.h's end-of-game reasons referenced from move.c's
// move_type).
package game

import (
	"fmt"

	"github.com/jvc56/magpie-go/internal/alphabet"
	"github.com/jvc56/magpie-go/internal/bag"
	"github.com/jvc56/magpie-go/internal/board"
	"github.com/jvc56/magpie-go/internal/kwg"
	"github.com/jvc56/magpie-go/internal/move"
	"github.com/jvc56/magpie-go/internal/rack"
)

// MaxConsecutiveScorelessTurns is the number of consecutive zero-score
// turns (passes, failed challenges, or scoreless exchanges) after
// which a game ends by attrition, grounded in GoSkrafl's
// Game.IsOver check against NumPassMoves == 6.
const MaxConsecutiveScorelessTurns = 6

// EndReason classifies why a finished game ended.
type EndReason int

const (
	// NotOver means the game is still in progress.
	NotOver EndReason = iota
	// EmptiedRack means a player went out by playing their last tile.
	EmptiedRack
	// ConsecutiveScoreless means MaxConsecutiveScorelessTurns were
	// played in a row with no score.
	ConsecutiveScoreless
)

// HistoryEntry records one turn's rack-before-the-move and the move
// itself, grounded in GoSkrafl's MoveItem.
type HistoryEntry struct {
	RackBefore string
	Move       move.Move
	PlayerIdx  int
}

// Game holds everything needed to play out or replay a two-player
// game: the board, each player's rack and score, the bag, the
// dictionary, and the turn history.
type Game struct {
	Board   *board.Board
	Racks   [2]*rack.Rack
	Scores  [2]int
	Bag     *bag.Bag
	Dict    *kwg.KWG
	LD      *alphabet.LetterDistribution

	PlayerNames [2]string
	OnTurn      int

	ConsecutiveScoreless int
	History              []HistoryEntry
}

// New returns a freshly dealt Game: an empty board, both players'
// racks filled from a new bag, player 0 on turn, grounded in
// GoSkrafl's Game.Init.
func New(ld *alphabet.LetterDistribution, dict *kwg.KWG, seed int64, playerNames [2]string) *Game {
	g := &Game{
		Board:       board.New(),
		Bag:         bag.New(ld, seed),
		Dict:        dict,
		LD:          ld,
		PlayerNames: playerNames,
		History:     make([]HistoryEntry, 0, 30),
	}
	g.Racks[0] = rack.New(ld)
	g.Racks[1] = rack.New(ld)
	g.fillRack(0)
	g.fillRack(1)
	return g
}

func (g *Game) fillRack(playerIdx int) {
	r := g.Racks[playerIdx]
	for r.NumTiles() < rack.Size {
		ml, ok := g.Bag.Draw()
		if !ok {
			return
		}
		r.Add(int(ml))
	}
}

// Opponent returns the index of the player not currently on turn.
func (g *Game) Opponent(playerIdx int) int {
	return 1 - playerIdx
}

// ApplyMove scores and applies m for the player currently on turn,
// refills that player's rack from the bag, advances the scoreless-turn
// counter, and switches the turn. Grounded in GoSkrafl's
// Game.ApplyValid, generalized over Move's tagged Type instead of
// GoSkrafl's Move interface dispatch.
func (g *Game) ApplyMove(m *move.Move) {
	playerIdx := g.OnTurn
	before := g.Racks[playerIdx].String(g.LD)

	switch m.Type {
	case move.Play:
		g.applyPlay(playerIdx, m)
		g.Scores[playerIdx] += m.Score
		if m.Score == 0 {
			g.ConsecutiveScoreless++
		} else {
			g.ConsecutiveScoreless = 0
		}
	case move.Exchange:
		g.applyExchange(playerIdx, m)
		g.ConsecutiveScoreless++
	case move.Pass:
		g.ConsecutiveScoreless++
	}

	g.History = append(g.History, HistoryEntry{RackBefore: before, Move: *m, PlayerIdx: playerIdx})
	g.fillRack(playerIdx)
	g.OnTurn = g.Opponent(playerIdx)
}

func (g *Game) applyPlay(playerIdx int, m *move.Move) {
	axis := board.Horizontal
	if m.Vertical {
		axis = board.Vertical
	}
	row, col := m.RowStart, m.ColStart
	for i := 0; i < m.TilesLength; i++ {
		t := m.Tiles[i]
		if t != alphabet.PlayedThroughMarker {
			g.Board.SetLetter(row, col, t)
			g.Racks[playerIdx].Take(int(t.Letter()))
			g.recomputeCrossSets(row, col, axis)
		}
		if m.Vertical {
			row++
		} else {
			col++
		}
	}
	g.Board.RecomputeAnchors()
}

// recomputeCrossSets refreshes the cross-set/cross-score cache at the
// two empty squares straddling a just-placed tile in the perpendicular
// direction, from the fragment along that perpendicular axis (which now
// includes the placed tile), stored under the perpendicular axis's slot
// so that a later play along axis through the square is checked against
// it, grounded in GoSkrafl's
// Board.updateAllAdjacentCrossScores run after every placed tile. It is
// a no-op when the game has no dictionary loaded (some tests and replay
// tools construct a Game purely for bookkeeping, with Dict == nil).
func (g *Game) recomputeCrossSets(row, col int, axis board.Axis) {
	if g.Dict == nil {
		return
	}
	perp := axis.Other()
	dr, dc := 0, 0
	if perp == board.Vertical {
		dr = 1
	} else {
		dc = 1
	}
	for _, d := range [2]int{-1, 1} {
		nr, nc := row+d*dr, col+d*dc
		if !board.InBounds(nr, nc) || !g.Board.Get(nr, nc).IsEmpty() {
			continue
		}
		left := machineLettersToInts(g.Board.Fragment(nr, nc, perp, false))
		right := machineLettersToInts(g.Board.Fragment(nr, nc, perp, true))
		mask, score := g.Dict.CrossSetAndScore(left, right)
		for lex := 0; lex < board.MaxLexicons; lex++ {
			g.Board.SetCrossSet(nr, nc, perp, lex, mask)
			g.Board.SetCrossScore(nr, nc, perp, lex, score)
		}
	}
}

func machineLettersToInts(tiles []alphabet.MachineLetter) []int {
	if len(tiles) == 0 {
		return nil
	}
	out := make([]int, len(tiles))
	for i, t := range tiles {
		out[i] = int(t.Letter())
	}
	return out
}

func (g *Game) applyExchange(playerIdx int, m *move.Move) {
	r := g.Racks[playerIdx]
	for i := 0; i < m.TilesLength; i++ {
		letter := int(m.Tiles[i].Letter())
		if r.Take(letter) {
			g.Bag.Return(m.Tiles[i].Letter())
		}
	}
	for i := 0; i < m.TilesLength; i++ {
		if ml, ok := g.Bag.Draw(); ok {
			r.Add(int(ml))
		}
	}
}

// IsOver reports whether the game has ended, and if so, why, grounded
// in GoSkrafl's Game.IsOver.
func (g *Game) IsOver() (bool, EndReason) {
	if len(g.History) == 0 {
		return false, NotOver
	}
	if g.ConsecutiveScoreless >= MaxConsecutiveScorelessTurns {
		return true, ConsecutiveScoreless
	}
	last := g.History[len(g.History)-1]
	if g.Racks[last.PlayerIdx].IsEmpty() {
		return true, EmptiedRack
	}
	return false, NotOver
}

// FinalizeScores applies the standard end-of-game score adjustment:
// the player who emptied their rack gains the face value of the
// opponent's remaining tiles and the opponent loses that value; if the
// game ended on consecutive scoreless turns, each player loses their
// own remaining rack value,
// grounded in GoSkrafl's FinalMove handling.
func (g *Game) FinalizeScores() {
	over, reason := g.IsOver()
	if !over {
		return
	}
	switch reason {
	case EmptiedRack:
		last := g.History[len(g.History)-1]
		winner := last.PlayerIdx
		loser := g.Opponent(winner)
		g.Scores[winner] += g.Racks[loser].Score(g.LD)
		g.Scores[loser] -= g.Racks[loser].Score(g.LD)
	case ConsecutiveScoreless:
		for i := 0; i < 2; i++ {
			g.Scores[i] -= g.Racks[i].Score(g.LD)
		}
	}
}

// String renders the game state for display, grounded in GoSkrafl's
// Game.String.
func (g *Game) String() string {
	return fmt.Sprintf("%s (%d : %d) %s\n%s",
		g.PlayerNames[0], g.Scores[0], g.Scores[1], g.PlayerNames[1],
		g.Board.String(g.LD))
}
