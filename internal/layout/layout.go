// Package layout loads and serializes board-layout text files, per
// spec.md section 6 ("Board-layout file"): a start-square line
// followed by 15 rows of 15 premium-square characters. GoSkrafl hard-
// codes its premium layouts as Go string-array literals (board.go's
// WORD_MULTIPLIERS_STANDARD/LETTER_MULTIPLIERS_STANDARD); this package
// generalizes that to a runtime-loadable text format so a board layout
// is data, not a compiled-in constant, per spec.md section 6.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jvc56/magpie-go/internal/board"
)

// Square is one layout cell's premium kind, per spec.md's alphabet
// `{' '=plain, "'"=DL, '-'=DW, '"'=TL, '='=TW, '^'=QL, '~'=QW, '#'=brick}`.
type Square rune

const (
	Plain        Square = ' '
	DoubleLetter Square = '\''
	DoubleWord   Square = '-'
	TripleLetter Square = '"'
	TripleWord   Square = '='
	QuadLetter   Square = '^'
	QuadWord     Square = '~'
	Brick        Square = '#'
)

// Layout is a parsed board layout: the starting square and the
// premium kind of every cell.
type Layout struct {
	StartRow, StartCol int
	Squares            [board.Size][board.Size]Square
}

// letterMult and wordMult give each Square kind's numeric multiplier;
// Brick maps to 1 like a plain square. IsBrick reports Brick squares;
// neither internal/board nor internal/movegen consults it.
func letterMult(sq Square) int {
	switch sq {
	case DoubleLetter:
		return 2
	case TripleLetter:
		return 3
	case QuadLetter:
		return 4
	default:
		return 1
	}
}

func wordMult(sq Square) int {
	switch sq {
	case DoubleWord:
		return 2
	case TripleWord:
		return 3
	case QuadWord:
		return 4
	default:
		return 1
	}
}

// Parse reads a layout from its text representation.
func Parse(text string) (*Layout, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) < board.Size+1 {
		return nil, fmt.Errorf("layout: need %d lines, got %d", board.Size+1, len(lines))
	}
	parts := strings.SplitN(lines[0], ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("layout: malformed start-square line %q", lines[0])
	}
	startRow, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("layout: bad start_row: %w", err)
	}
	startCol, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("layout: bad start_col: %w", err)
	}
	l := &Layout{StartRow: startRow, StartCol: startCol}
	for i := 0; i < board.Size; i++ {
		row := lines[i+1]
		if len(row) != board.Size {
			return nil, fmt.Errorf("layout: row %d has %d characters, want %d", i, len(row), board.Size)
		}
		for j, ch := range row {
			l.Squares[i][j] = Square(ch)
		}
	}
	return l, nil
}

// String serializes a Layout back to its text representation, the
// inverse of Parse; spec.md section 8 requires parse -> serialize ->
// parse to be the identity.
func (l *Layout) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d,%d\n", l.StartRow, l.StartCol)
	for i := 0; i < board.Size; i++ {
		for j := 0; j < board.Size; j++ {
			sb.WriteRune(rune(l.Squares[i][j]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// LetterMultiplier returns the letter-score multiplier at (row, col);
// with WordMultiplier it makes Layout a board.PremiumSource for
// board.NewFromLayout.
func (l *Layout) LetterMultiplier(row, col int) int {
	return letterMult(l.Squares[row][col])
}

// WordMultiplier returns the word-score multiplier at (row, col).
func (l *Layout) WordMultiplier(row, col int) int {
	return wordMult(l.Squares[row][col])
}

// IsBrick reports whether (row, col) is permanently unplayable.
func (l *Layout) IsBrick(row, col int) bool {
	return l.Squares[row][col] == Brick
}
