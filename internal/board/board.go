// Package board implements the 15x15 playing surface: premium squares,
// placed tiles, per-axis cross-sets/cross-scores, and the anchor
// bitmap, per spec.md section 3 ("Board") and section 4.2.
//
// It generalizes GoSkrafl's board.go (a single Squares/Adjacents
// matrix with on-demand Fragment/CrossScore/CrossWords walks) in two
// ways the spec requires: cross-sets are precomputed and cached per
// (axis, lexicon) rather than recomputed by walking adjacency pointers
// on every query, and the board supports more than one simultaneously
// loaded lexicon (e.g. a "cross-dictionary" mode where two word lists
// constrain the same tiles differently).
package board

import (
	"strings"

	"github.com/jvc56/magpie-go/internal/alphabet"
)

// Size is the number of rows and columns on a standard board.
const Size = 15

// Axis identifies one of the two directions a word can run in.
type Axis int

const (
	// Horizontal words read left to right.
	Horizontal Axis = iota
	// Vertical words read top to bottom.
	Vertical
)

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// MaxLexicons bounds how many distinct lexicons a single Board can
// track cross-sets for simultaneously (spec.md section 4.2's
// cross-dictionary mode: e.g. "only CSW-only words are disallowed").
const MaxLexicons = 2

// premiumWordStandard and premiumLetterStandard carry the
// standard-board word/letter multiplier layout, grounded digit-for-digit in GoSkrafl's
// WORD_MULTIPLIERS_STANDARD / LETTER_MULTIPLIERS_STANDARD tables.
var premiumWordStandard = [Size]string{
	"311111131111113",
	"121111111111121",
	"112111111111211",
	"111211111112111",
	"111121111121111",
	"111111111111111",
	"111111111111111",
	"311111121111113",
	"111111111111111",
	"111111111111111",
	"111121111121111",
	"111211111112111",
	"112111111111211",
	"121111111111121",
	"311111131111113",
}

var premiumLetterStandard = [Size]string{
	"111211111112111",
	"111113111311111",
	"111111212111111",
	"211111121111112",
	"111111111111111",
	"131113111311131",
	"112111212111211",
	"111211111112111",
	"112111212111211",
	"131113111311131",
	"111111111111111",
	"211111121111112",
	"111111212111111",
	"111113111311111",
	"111211111112111",
}

// Square holds one board cell's static premium multipliers and its
// current occupant, if any.
type Square struct {
	Letter           alphabet.MachineLetter
	LetterMultiplier int
	WordMultiplier   int
}

// IsEmpty reports whether no tile has been placed on this square.
func (sq Square) IsEmpty() bool { return sq.Letter.IsEmpty() }

// Board is the 15x15 grid plus cached per-(axis, lexicon) cross-sets
// and cross-scores, and the anchor bitmap. All coordinates are row,
// col in 0..Size-1.
type Board struct {
	squares [Size][Size]Square

	// crossSets[lexicon][axis][row][col] is the bitmask of
	// MachineLetter values that may legally be placed at (row, col)
	// given the word fragment already on the board through that square
	// along the given axis (all bits set if there is no such
	// constraint). Axis here names the axis of that FRAGMENT, so the
	// slot is read when forming a word along the other axis.
	crossSets [MaxLexicons][2][Size][Size]uint64
	// crossScores mirrors crossSets but holds the fixed point
	// contribution of the perpendicular fragment.
	crossScores [MaxLexicons][2][Size][Size]int

	// anchors[row][col] is true if a tile may legally be started at
	// this empty square (adjacent to an existing tile, or the single
	// starting square on an empty board).
	anchors [Size][Size]bool

	numTiles int
}

// New returns an empty, standard-layout board with the center square
// marked as the sole initial anchor.
func New() *Board {
	b := &Board{}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			b.squares[i][j] = Square{
				LetterMultiplier: int(premiumLetterStandard[i][j] - '0'),
				WordMultiplier:   int(premiumWordStandard[i][j] - '0'),
			}
			for lex := 0; lex < MaxLexicons; lex++ {
				b.crossSets[lex][Horizontal][i][j] = ^uint64(0)
				b.crossSets[lex][Vertical][i][j] = ^uint64(0)
			}
		}
	}
	b.anchors[Size/2][Size/2] = true
	return b
}

// PremiumSource supplies per-square letter/word multipliers, satisfied
// by internal/layout.Layout so NewFromLayout can build a board from a
// runtime-loaded text layout instead of the compiled-in standard one.
type PremiumSource interface {
	LetterMultiplier(row, col int) int
	WordMultiplier(row, col int) int
}

// NewFromLayout returns an empty board whose premium squares are
// stamped from src instead of the standard compiled-in layout.
func NewFromLayout(src PremiumSource, startRow, startCol int) *Board {
	b := &Board{}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			b.squares[i][j] = Square{
				LetterMultiplier: src.LetterMultiplier(i, j),
				WordMultiplier:   src.WordMultiplier(i, j),
			}
			for lex := 0; lex < MaxLexicons; lex++ {
				b.crossSets[lex][Horizontal][i][j] = ^uint64(0)
				b.crossSets[lex][Vertical][i][j] = ^uint64(0)
			}
		}
	}
	b.anchors[startRow][startCol] = true
	return b
}

// NumTiles returns the number of tiles currently placed on the board.
func (b *Board) NumTiles() int { return b.numTiles }

// IsEmpty reports whether the board has no tiles placed.
func (b *Board) IsEmpty() bool { return b.numTiles == 0 }

// InBounds reports whether (row, col) is a valid board coordinate.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Get returns the square at (row, col).
func (b *Board) Get(row, col int) Square {
	return b.squares[row][col]
}

// SetLetter places ml at (row, col) without touching multipliers,
// incrementing the tile count if the square was previously empty.
func (b *Board) SetLetter(row, col int, ml alphabet.MachineLetter) {
	if b.squares[row][col].IsEmpty() && !ml.IsEmpty() {
		b.numTiles++
	}
	if !b.squares[row][col].IsEmpty() && ml.IsEmpty() {
		b.numTiles--
	}
	b.squares[row][col].Letter = ml
}

// ClearLetter removes any tile from (row, col), for undoing a
// speculative placement during move generation or simulation rollback.
func (b *Board) ClearLetter(row, col int) {
	b.SetLetter(row, col, alphabet.EmptySquareMarker)
}

// CrossSet returns the cached cross-set bitmask at (row, col) imposed by
// the fragment along axis, under lexicon; a word being formed along the
// other axis reads it.
func (b *Board) CrossSet(row, col int, axis Axis, lexicon int) uint64 {
	return b.crossSets[lexicon][axis][row][col]
}

// SetCrossSet stores a freshly computed cross-set bitmask, called by
// internal/game after a placement changes the fragment at (row, col).
func (b *Board) SetCrossSet(row, col int, axis Axis, lexicon int, mask uint64) {
	b.crossSets[lexicon][axis][row][col] = mask
}

// CrossScore returns the cached perpendicular fixed-score contribution
// for (row, col) under axis and lexicon.
func (b *Board) CrossScore(row, col int, axis Axis, lexicon int) int {
	return b.crossScores[lexicon][axis][row][col]
}

// SetCrossScore stores a freshly computed cross-score.
func (b *Board) SetCrossScore(row, col int, axis Axis, lexicon int, score int) {
	b.crossScores[lexicon][axis][row][col] = score
}

// IsAnchor reports whether a word may legally start at (row, col).
func (b *Board) IsAnchor(row, col int) bool {
	return b.anchors[row][col]
}

// RecomputeAnchors rebuilds the anchor bitmap from the current tile
// placement: every empty square orthogonally adjacent to a placed
// tile is an anchor, and (unless any tile has been placed) the board
// center is the sole anchor, grounded in GoSkrafl's adjacency-matrix
// scan in NumAdjacentTiles applied across the whole board rather than
// one square at a time.
func (b *Board) RecomputeAnchors() {
	if b.numTiles == 0 {
		for i := 0; i < Size; i++ {
			for j := 0; j < Size; j++ {
				b.anchors[i][j] = false
			}
		}
		b.anchors[Size/2][Size/2] = true
		return
	}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if !b.squares[i][j].IsEmpty() {
				b.anchors[i][j] = false
				continue
			}
			b.anchors[i][j] = b.hasAdjacentTile(i, j)
		}
	}
}

func (b *Board) hasAdjacentTile(row, col int) bool {
	if row > 0 && !b.squares[row-1][col].IsEmpty() {
		return true
	}
	if row < Size-1 && !b.squares[row+1][col].IsEmpty() {
		return true
	}
	if col > 0 && !b.squares[row][col-1].IsEmpty() {
		return true
	}
	if col < Size-1 && !b.squares[row][col+1].IsEmpty() {
		return true
	}
	return false
}

// Fragment returns the MachineLetter sequence extending from (row,
// col) in the given axis and direction (forward meaning increasing
// row/col), not including (row, col) itself, grounded in GoSkrafl's
// Board.Fragment.
func (b *Board) Fragment(row, col int, axis Axis, forward bool) []alphabet.MachineLetter {
	var frag []alphabet.MachineLetter
	dr, dc := 0, 0
	switch {
	case axis == Vertical && forward:
		dr = 1
	case axis == Vertical && !forward:
		dr = -1
	case axis == Horizontal && forward:
		dc = 1
	default:
		dc = -1
	}
	r, c := row+dr, col+dc
	for InBounds(r, c) && !b.squares[r][c].IsEmpty() {
		frag = append(frag, b.squares[r][c].Letter)
		r, c = r+dr, c+dc
	}
	return frag
}

// WordFragment renders the tile sequence emanating from (row, col) in
// the given axis/direction as a display string, using ld for rendering
// blanked letters, grounded in GoSkrafl's Board.WordFragment.
func (b *Board) WordFragment(row, col int, axis Axis, forward bool, ld *alphabet.LetterDistribution) string {
	frag := b.Fragment(row, col, axis, forward)
	var sb strings.Builder
	if !forward {
		for i := len(frag) - 1; i >= 0; i-- {
			sb.WriteRune(ld.UserVisible(frag[i]))
		}
	} else {
		for _, ml := range frag {
			sb.WriteRune(ld.UserVisible(ml))
		}
	}
	return sb.String()
}

// String renders the board as a grid of display letters, one row per
// line, empty squares shown as '.', grounded in GoSkrafl's Board.String.
func (b *Board) String(ld *alphabet.LetterDistribution) string {
	var sb strings.Builder
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			sq := b.squares[i][j]
			if sq.IsEmpty() {
				sb.WriteByte('.')
			} else {
				sb.WriteRune(ld.UserVisible(sq.Letter))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
