// Package rack implements Rack, a fixed-size multiset of tiles held by
// a player, per spec.md section 3. It generalizes GoSkrafl's rack.go
// (RackTiles map[rune]int + Slots array of Squares) to a flat,
// allocation-free array of MachineLetter counts, since spec.md's move
// generator must run with no heap allocation on the hot path and a map
// keyed by rune cannot satisfy that.
package rack

import (
	"fmt"
	"strings"

	"github.com/jvc56/magpie-go/internal/alphabet"
	"github.com/jvc56/magpie-go/internal/bitrack"
)

// Size is the number of tiles a full rack holds in standard play.
const Size = 7

// Rack is a fixed-width array, one slot per alphabet letter (including
// the wildcard at index 0), holding counts, plus a cached total
// (IsEmpty tests it). Invariants (spec.md section 8): every count >= 0, total
// equals the sum of counts, total <= Size.
type Rack struct {
	counts     [alphabet.MaxAlphabetSize]int
	total      int
	distSize   int
}

// New returns an empty Rack sized for the given distribution.
func New(ld *alphabet.LetterDistribution) *Rack {
	return &Rack{distSize: int(ld.NumLetters()) + 1}
}

// Reset empties the rack in place, matching GoSkrafl's Rack.Init /
// original_source's rack_reset.
func (r *Rack) Reset() {
	for i := 0; i < r.distSize; i++ {
		r.counts[i] = 0
	}
	r.total = 0
}

// IsEmpty reports whether the rack holds no tiles.
func (r *Rack) IsEmpty() bool {
	return r.total == 0
}

// NumTiles returns the rack's running total.
func (r *Rack) NumTiles() int {
	return r.total
}

// DistSize returns the number of distinct letter slots (including the
// wildcard) this rack was sized for.
func (r *Rack) DistSize() int {
	return r.distSize
}

// Get returns the count of a given MachineLetter index (0 = wildcard).
// The blank-designation bit is irrelevant here: racks only ever hold
// undesignated blanks.
func (r *Rack) Get(letter int) int {
	if letter < 0 || letter >= r.distSize {
		return 0
	}
	return r.counts[letter]
}

// Add places one tile of the given letter index onto the rack.
func (r *Rack) Add(letter int) {
	if letter < 0 || letter >= r.distSize {
		return
	}
	r.counts[letter]++
	r.total++
}

// Take removes one tile of the given letter index from the rack,
// returning false (and leaving the rack untouched) if none is present.
func (r *Rack) Take(letter int) bool {
	if letter < 0 || letter >= r.distSize || r.counts[letter] == 0 {
		return false
	}
	r.counts[letter]--
	r.total--
	return true
}

// CopyFrom overwrites r's contents with src's, for cloning a rack at
// the start of a simulator thread (spec.md section 5: Rack is owned
// by exactly one thread, cloned per simulator thread at start).
func (r *Rack) CopyFrom(src *Rack) {
	r.distSize = src.distSize
	r.total = src.total
	copy(r.counts[:], src.counts[:])
}

// Clone returns a fresh, independent copy of r.
func (r *Rack) Clone() *Rack {
	clone := &Rack{}
	clone.CopyFrom(r)
	return clone
}

// SetFromMachineLetters resets the rack and loads it with the given
// letters (already resolved to MachineLetter indices, blanks as 0).
func (r *Rack) SetFromMachineLetters(ld *alphabet.LetterDistribution, letters []alphabet.MachineLetter) {
	r.distSize = int(ld.NumLetters()) + 1
	r.Reset()
	for _, ml := range letters {
		r.Add(int(ml.Letter()))
	}
}

// SetFromString resets the rack and loads it from a display string
// such as "AEINRST" or "AEI?RST" (the wildcard displayed as '?'),
// mirroring GoSkrafl's NewRack/FillByLetters string convention.
func (r *Rack) SetFromString(ld *alphabet.LetterDistribution, s string) error {
	r.distSize = int(ld.NumLetters()) + 1
	r.Reset()
	for _, ch := range s {
		ml, ok := ld.MachineLetterFor(ch)
		if !ok {
			return fmt.Errorf("rack: letter %q not in distribution %q", ch, ld.Name())
		}
		r.Add(int(ml))
	}
	return nil
}

// String renders the rack using the given distribution for display.
func (r *Rack) String(ld *alphabet.LetterDistribution) string {
	var sb strings.Builder
	for letter := 0; letter < r.distSize; letter++ {
		for i := 0; i < r.counts[letter]; i++ {
			if letter == 0 {
				sb.WriteByte('?')
			} else {
				sb.WriteRune(ld.UserVisible(alphabet.MachineLetter(letter)))
			}
		}
	}
	return sb.String()
}

// BitRack packs the rack's contents into a bitrack.BitRack for use as
// a WMP/rack-hash-table key.
func (r *Rack) BitRack() bitrack.BitRack {
	var br bitrack.BitRack
	for letter := 0; letter < r.distSize; letter++ {
		for i := 0; i < r.counts[letter]; i++ {
			br = br.Add(letter)
		}
	}
	return br
}

// Score sums the face values of the rack's tiles under the given
// distribution (used for the FinalMove end-of-game adjustment and for
// static-equity bookkeeping), grounded in original_source's
// rack_get_score.
func (r *Rack) Score(ld *alphabet.LetterDistribution) int {
	total := 0
	for letter := 1; letter < r.distSize; letter++ {
		total += r.counts[letter] * ld.Score(alphabet.MachineLetter(letter))
	}
	return total
}

// HasWildcard reports whether the rack contains at least one blank.
func (r *Rack) HasWildcard() bool {
	return r.counts[0] > 0
}
