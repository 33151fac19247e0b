// Package alphabet implements the MachineLetter encoding and the
// LetterDistribution table, the leaf-most component of the analytical
// core. The encoding follows spec.md section 3 ("Tile / MachineLetter"):
// a MachineLetter is an unsigned byte, 0 means an empty square, values
// 1..N are alphabet letters, and the high bit (0x80) marks a blank
// tile played as the letter in the low seven bits.
package alphabet

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MachineLetter is a packed tile value. 0 is the empty-square marker.
// BlankMask, when set, means "blank played as this letter"; the
// letter itself scores zero but is still constrained by cross-sets.
type MachineLetter uint8

const (
	// EmptySquareMarker is the MachineLetter value of an empty square.
	EmptySquareMarker MachineLetter = 0
	// BlankMask is set on a MachineLetter when a blank tile has been
	// designated as that letter.
	BlankMask MachineLetter = 0x80
	// PlayedThroughMarker marks a placeholder tile slot within a move's
	// tile strip that represents a letter already on the board rather
	// than a fresh placement.
	PlayedThroughMarker MachineLetter = 0x81
	// MaxAlphabetSize bounds the number of letter slots, the blank
	// included, that any LetterDistribution may encode (so at most
	// MaxAlphabetSize-1 letters); it matches BitRack's 32 count fields.
	MaxAlphabetSize = 32
)

// Letter strips the blank bit off a MachineLetter, returning the
// underlying letter value.
func (ml MachineLetter) Letter() MachineLetter {
	return ml &^ BlankMask
}

// IsBlanked returns true if the high bit is set, i.e. this is a blank
// tile that has been designated as a letter.
func (ml MachineLetter) IsBlanked() bool {
	return ml&BlankMask != 0
}

// Blanked returns ml with the blank-designation bit set.
func (ml MachineLetter) Blanked() MachineLetter {
	return ml | BlankMask
}

// IsEmpty returns true for the empty-square marker.
func (ml MachineLetter) IsEmpty() bool {
	return ml == EmptySquareMarker
}

// LetterDistribution maps MachineLetter <-> display string and carries
// each letter's scoring/count/vowel metadata, as described in spec.md
// section 3. It is immutable after Init, mirroring the teacher's Dawg
// and TileSet: built once, shared by reference with no synchronization.
type LetterDistribution struct {
	name string
	// letterToML maps a display rune to its MachineLetter index.
	letterToML map[rune]MachineLetter
	// mlToLetter is the inverse of letterToML, indexed by MachineLetter
	// (ignoring the blank bit).
	mlToLetter []rune
	scores     []int
	counts     []int
	isVowel    []bool
	numLetters MachineLetter
}

// LetterInfo describes a single letter's static properties when
// constructing a LetterDistribution.
type LetterInfo struct {
	Rune    rune
	Score   int
	Count   int
	IsVowel bool
}

// NewLetterDistribution builds a LetterDistribution from an ordered
// list of LetterInfo; index 0 of the resulting table is reserved for
// the wildcard/blank (score 0, no face letter).
func NewLetterDistribution(name string, letters []LetterInfo) (*LetterDistribution, error) {
	if len(letters) == 0 {
		return nil, fmt.Errorf("alphabet: empty letter distribution %q", name)
	}
	if len(letters) > MaxAlphabetSize-1 {
		return nil, fmt.Errorf("alphabet: %q has %d letters, exceeds max %d", name, len(letters), MaxAlphabetSize-1)
	}
	ld := &LetterDistribution{
		name:       name,
		letterToML: make(map[rune]MachineLetter, len(letters)+1),
		mlToLetter: make([]rune, len(letters)+1),
		scores:     make([]int, len(letters)+1),
		counts:     make([]int, len(letters)+1),
		isVowel:    make([]bool, len(letters)+1),
		numLetters: MachineLetter(len(letters)),
	}
	ld.mlToLetter[0] = '?'
	for i, li := range letters {
		ml := MachineLetter(i + 1)
		if _, exists := ld.letterToML[li.Rune]; exists {
			return nil, fmt.Errorf("alphabet: duplicate letter %q in distribution %q", li.Rune, name)
		}
		ld.letterToML[li.Rune] = ml
		ld.mlToLetter[ml] = li.Rune
		ld.scores[ml] = li.Score
		ld.counts[ml] = li.Count
		ld.isVowel[ml] = li.IsVowel
	}
	return ld, nil
}

// Name returns the distribution's display name (e.g. "english").
func (ld *LetterDistribution) Name() string { return ld.name }

// NumLetters returns the number of non-blank letters in the alphabet.
func (ld *LetterDistribution) NumLetters() MachineLetter { return ld.numLetters }

// MachineLetterFor converts a display rune ('?' for the blank) to its
// MachineLetter. The second return is false if the rune is unknown.
func (ld *LetterDistribution) MachineLetterFor(r rune) (MachineLetter, bool) {
	if r == '?' {
		return 0, true
	}
	ml, ok := ld.letterToML[r]
	return ml, ok
}

// UserVisible renders a MachineLetter as its display rune, respecting
// the blank-designation bit (a blank renders as its designated letter,
// lowercased, per the CGP convention in spec.md section 6).
func (ld *LetterDistribution) UserVisible(ml MachineLetter) rune {
	if ml.IsEmpty() {
		return ' '
	}
	letter := ld.mlToLetter[ml.Letter()]
	if ml.IsBlanked() {
		return toLower(letter)
	}
	return letter
}

// lowerCaser performs Unicode-aware, language-independent case folding
// for display runes outside plain ASCII (e.g. Icelandic Þ/Ð, Polish
// Ł/Ż, Norwegian Æ/Ø/Å), needed because the distributions beyond
// english.go carry accented letters whose lowercase form is a
// multi-byte UTF-8 sequence.
var lowerCaser = cases.Lower(language.Und)

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	for _, lowered := range lowerCaser.String(string(r)) {
		return lowered
	}
	return r
}

// Score returns the face value of a MachineLetter; a blanked letter
// always scores 0 regardless of the value it was designated as.
func (ld *LetterDistribution) Score(ml MachineLetter) int {
	if ml.IsBlanked() {
		return 0
	}
	if int(ml) >= len(ld.scores) {
		return 0
	}
	return ld.scores[ml]
}

// InitialCount returns how many copies of ml are present in a fresh bag.
func (ld *LetterDistribution) InitialCount(ml MachineLetter) int {
	if int(ml) >= len(ld.counts) {
		return 0
	}
	return ld.counts[ml]
}

// IsVowel reports whether ml is a vowel in this distribution.
func (ld *LetterDistribution) IsVowel(ml MachineLetter) bool {
	if int(ml) >= len(ld.isVowel) {
		return false
	}
	return ld.isVowel[ml]
}

// TotalTiles returns the sum of InitialCount across the whole
// distribution, including the wildcard entry.
func (ld *LetterDistribution) TotalTiles() int {
	total := 0
	for _, c := range ld.counts {
		total += c
	}
	return total
}
