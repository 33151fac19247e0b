// Package move implements Move and MoveList: a single candidate play
// and the bounded top-N collection the move generator and simulator
// rank candidates into, per spec.md section 3/4.3. MoveList is ported
// function-for-function from original_source's move.c (move_list_*,
// up_heapify/down_heapify), since that file's bounded min-heap with a
// spare-move swap slot has no counterpart in GoSkrafl (which returns
// an unbounded []Move and sorts it once at the end).
package move

import (
	"strings"

	"github.com/jvc56/magpie-go/internal/alphabet"
)

// Type distinguishes the kinds of move a player can make, mirroring
// GoSkrafl's Move interface implementations (TileMove, ExchangeMove,
// PassMove) collapsed into one tagged struct so MoveList can hold a
// homogeneous, allocation-free array.
type Type int

const (
	// Play places one or more tiles on the board.
	Play Type = iota
	// Exchange swaps 1..RackSize tiles with the bag.
	Exchange
	// Pass ends the turn with no tiles played.
	Pass
	// UnknownExchange represents an opponent exchange of unknown
	// tiles in simulation/inference contexts.
	UnknownExchange
)

// MaxTilesInMove bounds the tiles strip, one slot per board column,
// matching original_source's BOARD_DIM-sized tiles array.
const MaxTilesInMove = 15

// Move is a single candidate or played move. Tiles is a fixed strip
// sized MaxTilesInMove; only [0:TilesLength] is meaningful. A tile
// value of alphabet.PlayedThroughMarker means "letter already on the
// board at this position, not newly placed."
type Move struct {
	Tiles       [MaxTilesInMove]alphabet.MachineLetter
	TilesLength int
	TilesPlayed int
	RowStart    int
	ColStart    int
	// Vertical is true if the word reads top-to-bottom.
	Vertical bool
	Score    int
	Type     Type
	// LeaveValue is the KLV-evaluated equity of the rack left behind
	// after this move; Equity is Score + LeaveValue (except for a pass,
	// whose equity is a fixed constant below everything else).
	LeaveValue float64
	Equity     float64
}

// PassEquity is the fixed equity GoSkrafl/original_source assign a
// pass so it never outranks a move with any positive equity, unless
// every legal move scores worse (grounded in move.c's PASS_MOVE_EQUITY).
const PassEquity = -1e6

// SetAsPass overwrites m in place to represent a pass, grounded in
// original_source's move_set_as_pass.
func (m *Move) SetAsPass() {
	*m = Move{Type: Pass, Equity: PassEquity}
}

// CopyFrom overwrites m's contents with src's, grounded in
// original_source's move_copy.
func (m *Move) CopyFrom(src *Move) {
	*m = *src
}

// Word renders the move's tile strip as a display string using ld,
// lowercasing blank-designated letters, empty for a pass.
func (m *Move) Word(ld *alphabet.LetterDistribution) string {
	if m.Type == Pass {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < m.TilesLength; i++ {
		sb.WriteRune(ld.UserVisible(m.Tiles[i]))
	}
	return sb.String()
}

// compareMoves reports whether a ranks strictly worse than b by
// equity (used as the min-heap ordering predicate), or, if
// tiebreaking is requested, falls back to comparing scores so
// move_list_move_exists-style duplicate checks are stable. Grounded in
// original_source's compare_moves, whose body was not included in the
// retrieved source but whose call sites (up_heapify/down_heapify
// ordering the worst move to the root; move_list_move_exists treating
// a strictly-greater move as "already represented") fix its contract.
func compareMoves(a, b *Move, tiebreak bool) bool {
	if a.Equity != b.Equity {
		return a.Equity < b.Equity
	}
	if !tiebreak {
		return false
	}
	return a.Score < b.Score
}

// List is a bounded binary min-heap of Move, keyed on Equity, holding
// at most capacity moves: once full, inserting a better move evicts
// the current worst. A spare slot (spareMove) is swapped in and out on
// every insert/pop instead of allocating, grounded in
// original_source's MoveList/move_list_insert_spare_move/
// move_list_pop_move.
type List struct {
	moves     []*Move
	spareMove *Move
	count     int
	capacity  int
}

// NewList returns an empty List bounded to capacity moves.
func NewList(capacity int) *List {
	ml := &List{
		capacity:  capacity,
		spareMove: &Move{},
	}
	ml.moves = make([]*Move, capacity+1)
	for i := range ml.moves {
		ml.moves[i] = &Move{}
	}
	ml.moves[0].Equity = PassEquity - 1
	return ml
}

// Reset empties the list in place for reuse across move-generation
// calls without reallocating its backing array.
func (ml *List) Reset() {
	ml.count = 0
	ml.moves[0].Equity = PassEquity - 1
}

// Count returns the number of moves currently held.
func (ml *List) Count() int { return ml.count }

// Capacity returns the list's maximum size.
func (ml *List) Capacity() int { return ml.capacity }

func (ml *List) upHeapify(index int) {
	if index <= 0 {
		return
	}
	parent := (index - 1) / 2
	if compareMoves(ml.moves[index], ml.moves[parent], false) {
		ml.moves[parent], ml.moves[index] = ml.moves[index], ml.moves[parent]
		ml.upHeapify(parent)
	}
}

func (ml *List) downHeapify(parent int) {
	left := parent*2 + 1
	right := parent*2 + 2
	if left >= ml.count {
		left = -1
	}
	if right >= ml.count {
		right = -1
	}
	min := parent
	if left != -1 && compareMoves(ml.moves[left], ml.moves[min], false) {
		min = left
	}
	if right != -1 && compareMoves(ml.moves[right], ml.moves[min], false) {
		min = right
	}
	if min != parent {
		ml.moves[min], ml.moves[parent] = ml.moves[parent], ml.moves[min]
		ml.downHeapify(min)
	}
}

// SpareMove exposes the list's recycled scratch Move so a caller (the
// move generator) can fill it in place before calling InsertSpareMove,
// avoiding an allocation per candidate move.
func (ml *List) SpareMove() *Move { return ml.spareMove }

// InsertSpareMove inserts the move currently held in SpareMove() at
// the given equity, evicting the current worst move if the list is
// already at capacity. Grounded in
// original_source's move_list_insert_spare_move.
func (ml *List) InsertSpareMove(equity float64) {
	ml.spareMove.Equity = equity
	ml.moves[ml.count], ml.spareMove = ml.spareMove, ml.moves[ml.count]
	ml.upHeapify(ml.count)
	ml.count++
	if ml.count == ml.capacity+1 {
		ml.PopMove()
	}
}

// PopMove removes and returns the worst (lowest-equity) move in the
// list, recycling it into the spare slot. Grounded in
// original_source's move_list_pop_move.
func (ml *List) PopMove() *Move {
	if ml.count == 1 {
		ml.count--
		return ml.moves[0]
	}
	ml.spareMove, ml.moves[0] = ml.moves[0], ml.moves[ml.count-1]
	ml.moves[ml.count-1] = ml.spareMove
	ml.count--
	ml.downHeapify(0)
	return ml.spareMove
}

// SortDescending converts the list from a min-heap into a
// descending-by-equity array in place, count unchanged, grounded in
// original_source's move_list_sort_moves.
func (ml *List) SortDescending() {
	n := ml.count
	for i := 1; i < n; i++ {
		popped := ml.PopMove()
		ml.moves[ml.count], ml.spareMove = popped, ml.moves[ml.count]
	}
	ml.count = n
}

// At returns the i-th move after SortDescending (0 = best).
func (ml *List) At(i int) *Move {
	return ml.moves[i]
}

// Exists reports whether a move equal to m in both equity and score is
// already present (a better or worse move does not count), grounded in
// original_source's move_list_move_exists.
func (ml *List) Exists(m *Move) bool {
	for i := 0; i < ml.count; i++ {
		if !compareMoves(ml.moves[i], m, true) && !compareMoves(m, ml.moves[i], true) {
			return true
		}
	}
	return false
}
