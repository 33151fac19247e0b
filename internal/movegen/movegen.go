// Package movegen implements move generation: given a board, rack,
// and dictionary, it enumerates every legal play, exchange, and pass,
// scores each, and ranks them into a bounded move.List, per spec.md
// section 4.3.
//
// It generalizes GoSkrafl's movegen.go — the Appel & Jacobson
// LeftPart/ExtendRight algorithm, itself grounded in
// http://www.cs.cmu.edu/afs/cs/academic/class/15451-s06/www/lectures/scrabble.pdf
// — from GoSkrafl's DAWG-plus-two-navigator-classes implementation to
// a single GADDAG traversal per anchor, since internal/kwg's packed
// node array carries a GADDAG root precisely so that extending left
// and right can be done in one pass instead of GoSkrafl's separate
// LeftPartNavigator/ExtendRightNavigator objects.
package movegen

import (
	"github.com/jvc56/magpie-go/internal/alphabet"
	"github.com/jvc56/magpie-go/internal/board"
	"github.com/jvc56/magpie-go/internal/klv"
	"github.com/jvc56/magpie-go/internal/kwg"
	"github.com/jvc56/magpie-go/internal/move"
	"github.com/jvc56/magpie-go/internal/rack"
)

// BingoBonus is the extra points awarded for playing every tile on the
// rack in one move, grounded in GoSkrafl's BingoBonus constant.
const BingoBonus = 50

// SortBy selects the MoveList's ranking criterion, per spec.md
// section 4 ("a ranking criterion (sort_by in {score, equity})").
type SortBy int

const (
	// ByEquity ranks by Score + KLV leave value.
	ByEquity SortBy = iota
	// ByScore ranks by raw score only.
	ByScore
)

// Generator holds the immutable resources move generation needs:
// the dictionary, an optional leave-value table, and the letter
// distribution for scoring. One Generator can be reused across many
// calls to Generate (it holds no per-call mutable state itself).
type Generator struct {
	Dict    *kwg.KWG
	Leaves  *klv.KLV // may be nil: leave value then defaults to 0
	LD      *alphabet.LetterDistribution
	Lexicon int // which of board.MaxLexicons cross-set slots to use
}

// genState is the per-call mutable scratch the recursive GADDAG walk
// threads through; kept as a single struct (rather than closures
// capturing loop variables) so the whole traversal can run without
// heap allocation beyond the initial genState itself.
type genState struct {
	gen    *Generator
	board  *board.Board
	rack   *rack.Rack
	axis   board.Axis
	row    int
	anchor int
	sortBy SortBy
	out    *move.List

	// strip holds the tiles assembled so far along the anchor's row
	// (or column, if axis is Vertical), indexed by absolute column
	// (or row); placed[col] marks which of those came from the rack
	// this move (as opposed to already being on the board).
	strip  [board.Size]alphabet.MachineLetter
	placed [board.Size]bool
}

// Generate enumerates every legal move for rack against board under
// g's dictionary, returning a move.List bounded to capacity and
// ranked by sortBy. exchangeAllowed gates whether exchange moves are
// included; a pass is added only when no play or exchange was found,
// whatever exchangeAllowed says.
func (g *Generator) Generate(b *board.Board, r *rack.Rack, capacity int, sortBy SortBy, exchangeAllowed bool) *move.List {
	out := move.NewList(capacity)

	if exchangeAllowed {
		g.generateExchanges(r, out)
	}

	for axis := board.Horizontal; axis <= board.Vertical; axis++ {
		for row := 0; row < board.Size; row++ {
			for col := 0; col < board.Size; col++ {
				if !isAnchorOnAxis(b, axis, row, col) {
					continue
				}
				st := &genState{gen: g, board: b, rack: r, axis: axis, row: row, anchor: col, sortBy: sortBy, out: out}
				st.exploreAnchor()
			}
		}
	}

	if out.Count() == 0 {
		pass := out.SpareMove()
		pass.SetAsPass()
		out.InsertSpareMove(move.PassEquity)
	}
	out.SortDescending()
	return out
}

// isAnchorOnAxis reports whether (row, col), read along axis, is an
// anchor square: for the Horizontal axis this is the board's own
// anchor bitmap; for Vertical the same square qualifies by symmetry
// (an anchor is direction-agnostic — a word may start there reading
// either way), matching GoSkrafl's convention of scanning 30 axes (15
// rows + 15 columns) over the same underlying anchor set.
func isAnchorOnAxis(b *board.Board, axis board.Axis, row, col int) bool {
	r, c := rowCol(axis, row, col)
	return b.IsAnchor(r, c)
}

func rowCol(axis board.Axis, row, idx int) (int, int) {
	if axis == board.Horizontal {
		return row, idx
	}
	return idx, row
}

// exploreAnchor runs the Appel & Jacobson algorithm at one anchor
// square: build left parts from the rack (bounded by the run of empty
// squares to the anchor's left), then for each left part — including
// the empty one — extend right from the GADDAG's separator arc,
// validating cross-sets and consuming rack tiles, grounded in
// GoSkrafl's GameState.kickOffAxis/genMovesFromAnchor.
func (st *genState) exploreAnchor() {
	maxLeft := st.countEmptyLeft()
	st.placeLeftParts(maxLeft, 0, st.gen.Dict.GaddagRoot())
}

// countEmptyLeft returns how many consecutive empty squares precede
// the anchor on this axis, stopping at the board edge or another
// non-empty square.
func (st *genState) countEmptyLeft() int {
	count := 0
	for i := st.anchor - 1; i >= 0; i-- {
		r, c := rowCol(st.axis, st.row, i)
		if !st.board.Get(r, c).IsEmpty() {
			break
		}
		count++
	}
	return count
}

// placeLeftParts recursively tries every rack-derived prefix of length
// 0..limit ending just before the anchor, crosses the GADDAG's
// separator arc to reach the forward subtree, and calls extendRight for
// each, mirroring GoSkrafl's LeftPartNavigator. Every split point's path
// is Lk...L1 # Lk+1...Ln (spec.md section 4.1), so the separator arc
// must be consumed before extending right even for the zero-left-part
// case at depth 0; a node with no separator arc at all has no forward
// extension from this left part and is simply skipped.
func (st *genState) placeLeftParts(limit int, depth int, node int) {
	if sepChild, sepAccepts, ok := st.step(node, kwg.SeparationToken); ok {
		st.extendRight(st.anchor, sepChild, st.anchor-depth, sepAccepts)
	}
	if depth >= limit {
		return
	}
	for letter := 0; letter < st.rack.DistSize(); letter++ {
		if st.rack.Get(letter) == 0 {
			continue
		}
		pos := st.anchor - depth - 1
		r, c := rowCol(st.axis, st.row, pos)
		sq := st.board.Get(r, c)
		crossSet := st.board.CrossSet(r, c, st.axis.Other(), st.gen.Lexicon)
		tryLetters := []int{letter}
		if letter == 0 {
			// A blank can stand for any letter the GADDAG accepts here.
			tryLetters = allLettersOf(sq, st.gen.LD)
		}
		for _, candidate := range tryLetters {
			if crossSet != ^uint64(0) && crossSet&(1<<uint(candidate)) == 0 {
				continue
			}
			child, _, ok := st.step(node, candidate)
			if !ok {
				continue
			}
			st.rack.Take(letter)
			st.strip[pos] = designate(letter, candidate)
			st.placed[pos] = true
			st.placeLeftParts(limit, depth+1, child)
			st.placed[pos] = false
			st.rack.Add(letter)
		}
	}
}

func allLettersOf(sq board.Square, ld *alphabet.LetterDistribution) []int {
	out := make([]int, 0, ld.NumLetters())
	for l := 1; l <= int(ld.NumLetters()); l++ {
		out = append(out, l)
	}
	return out
}

func designate(rackLetter int, playedLetter int) alphabet.MachineLetter {
	ml := alphabet.MachineLetter(playedLetter)
	if rackLetter == 0 {
		return ml.Blanked()
	}
	return ml
}

// step follows the GADDAG arc labeled letter (and, at the separator
// boundary, the kwg.SeparationToken arc) from node, reporting both the
// matched arc's child list and whether the matched arc itself accepts
// a word ending at this letter — the accept bit belongs to the arc
// just traversed, not to the list it points at, so callers must carry
// it forward rather than re-querying Accepts on the returned child.
func (st *genState) step(node int, letter int) (child int, accepts bool, ok bool) {
	i := node
	for {
		if st.gen.Dict.Tile(i) == letter {
			return st.gen.Dict.ArcIndex(i), st.gen.Dict.Accepts(i), true
		}
		if st.gen.Dict.IsEnd(i) {
			return 0, false, false
		}
		i++
	}
}

// extendRight walks rightward from pos (inclusive of the anchor
// itself when pos==anchor and no left part has been placed yet),
// consuming existing board tiles deterministically and trying rack
// tiles on empty squares, recording a candidate move whenever
// accepting is true (the arc matched for the letter at pos-1, or the
// separator arc when pos is the word's start, accepted there) and the
// next square is empty or off the board. Grounded in GoSkrafl's
// ExtendRightNavigator.
func (st *genState) extendRight(pos int, node int, wordStart int, accepting bool) {
	r, c := rowCol(st.axis, st.row, pos)
	if pos >= board.Size || !board.InBounds(r, c) {
		st.tryAccept(accepting, wordStart, pos)
		return
	}
	sq := st.board.Get(r, c)
	if !sq.IsEmpty() {
		child, accepts, ok := st.step(node, int(sq.Letter.Letter()))
		if !ok {
			return
		}
		st.extendRight(pos+1, child, wordStart, accepts)
		return
	}
	st.tryAccept(accepting, wordStart, pos)

	crossSet := st.board.CrossSet(r, c, st.axis.Other(), st.gen.Lexicon)
	for letter := 0; letter < st.rack.DistSize(); letter++ {
		if st.rack.Get(letter) == 0 {
			continue
		}
		candidates := []int{letter}
		if letter == 0 {
			candidates = allLettersOf(sq, st.gen.LD)
		}
		for _, candidate := range candidates {
			if crossSet != ^uint64(0) && crossSet&(1<<uint(candidate)) == 0 {
				continue
			}
			child, accepts, ok := st.step(node, candidate)
			if !ok {
				continue
			}
			st.rack.Take(letter)
			st.strip[pos] = designate(letter, candidate)
			st.placed[pos] = true
			st.extendRight(pos+1, child, wordStart, accepts)
			st.placed[pos] = false
			st.rack.Add(letter)
		}
	}
}

// tryAccept records a candidate move if accepting is true (the GADDAG
// arc that led here accepts a word ending at wordEnd) and at least one
// tile from the rack was actually placed (a move entirely made of
// already-played tiles is not a legal play).
func (st *genState) tryAccept(accepting bool, wordStart int, wordEnd int) {
	if !accepting {
		return
	}
	tilesPlayed := 0
	for i := wordStart; i < wordEnd; i++ {
		if st.placed[i] {
			tilesPlayed++
		}
	}
	if tilesPlayed == 0 {
		return
	}
	st.recordMove(wordStart, wordEnd, tilesPlayed)
}

// recordMove scores the strip [wordStart, wordEnd), builds a Move,
// evaluates its leave via the KLV, and inserts it into the output
// list, grounded in spec.md section 4's scoring rule (letter values ×
// multipliers on fresh tiles, cross-word scores already cached,
// bingo bonus when all seven rack tiles are used).
func (st *genState) recordMove(wordStart, wordEnd, tilesPlayed int) {
	score := 0
	crossWords := 0
	wordMultiplier := 1
	dr, dc := 1, 0
	if st.axis == board.Vertical {
		dr, dc = 0, 1
	}
	for i := wordStart; i < wordEnd; i++ {
		r, c := rowCol(st.axis, st.row, i)
		sq := st.board.Get(r, c)
		var letterScore int
		if st.placed[i] {
			letterScore = st.gen.LD.Score(st.strip[i]) * sq.LetterMultiplier
			wordMultiplier *= sq.WordMultiplier
			score += letterScore
			if (board.InBounds(r-dr, c-dc) && !st.board.Get(r-dr, c-dc).IsEmpty()) ||
				(board.InBounds(r+dr, c+dc) && !st.board.Get(r+dr, c+dc).IsEmpty()) {
				crossWords += (st.board.CrossScore(r, c, st.axis.Other(), st.gen.Lexicon) + letterScore) * sq.WordMultiplier
			}
		} else {
			score += st.gen.LD.Score(sq.Letter)
		}
	}
	score = score*wordMultiplier + crossWords
	if tilesPlayed == rack.Size {
		score += BingoBonus
	}

	leave := 0.0
	if st.gen.Leaves != nil {
		leave = st.gen.Leaves.Leave(st.rack)
	}
	var equity float64
	if st.sortBy == ByScore {
		equity = float64(score)
	} else {
		equity = float64(score) + leave
	}

	m := st.out.SpareMove()
	startR, startC := rowCol(st.axis, st.row, wordStart)
	m.RowStart, m.ColStart = startR, startC
	m.Vertical = st.axis == board.Vertical
	m.Type = move.Play
	m.Score = score
	m.LeaveValue = leave
	m.Equity = equity
	m.TilesPlayed = tilesPlayed
	m.TilesLength = wordEnd - wordStart
	for i := wordStart; i < wordEnd; i++ {
		if st.placed[i] {
			m.Tiles[i-wordStart] = st.strip[i]
		} else {
			r, c := rowCol(st.axis, st.row, i)
			m.Tiles[i-wordStart] = alphabet.PlayedThroughMarker
			_ = r
			_ = c
		}
	}
	st.out.InsertSpareMove(equity)
}

// generateExchanges enumerates every non-empty sub-multiset of r as an
// exchange move, scored 0 with equity equal to the post-exchange rack's
// leave value, per spec.md section 4 ("Exchange enumeration").
func (g *Generator) generateExchanges(r *rack.Rack, out *move.List) {
	letters := make([]int, 0, r.NumTiles())
	for letter := 0; letter < r.DistSize(); letter++ {
		for i := 0; i < r.Get(letter); i++ {
			letters = append(letters, letter)
		}
	}
	n := len(letters)
	if n == 0 {
		return
	}
	for mask := 1; mask < (1 << n); mask++ {
		// Equal letters sit next to each other in letters; taking only a
		// leading run of each group yields every sub-multiset once.
		repeated := false
		for i := 1; i < n; i++ {
			if letters[i] == letters[i-1] && mask&(1<<i) != 0 && mask&(1<<(i-1)) == 0 {
				repeated = true
				break
			}
		}
		if repeated {
			continue
		}
		m := out.SpareMove()
		m.Type = move.Exchange
		m.Score = 0
		tilesLength := 0
		kept := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				m.Tiles[tilesLength] = alphabet.MachineLetter(letters[i])
				tilesLength++
			} else {
				kept = append(kept, letters[i])
			}
		}
		m.TilesLength = tilesLength
		m.TilesPlayed = tilesLength

		leave := 0.0
		if g.Leaves != nil {
			remaining := rack.New(g.LD)
			for _, l := range kept {
				remaining.Add(l)
			}
			leave = g.Leaves.Leave(remaining)
		}
		m.LeaveValue = leave
		m.Equity = leave
		out.InsertSpareMove(leave)
	}
}
