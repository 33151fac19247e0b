// Package klv implements the leave-value table (KLV): a bit-packed
// prefix trie keyed on a rack's sorted letter multiset, plus a dense
// array of 32-bit float values indexed by the trie's accepting-node
// ordinal, per spec.md section 3 ("Leave-value table (KLV)") and
// section 6 ("KLV file"). The trie reuses internal/kwg's packed
// node-array encoding (spec.md: "a second KWG-like structure"), so
// this package is grounded in internal/kwg itself rather than directly
// in GoSkrafl, which has no leave-value concept at all — GoSkrafl's
// HighScoreRobot (robot.go) always plays the single highest-scoring
// move and never consults a leave table.
package klv

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/jvc56/magpie-go/internal/kwg"
	"github.com/jvc56/magpie-go/internal/rack"
)

// MaxLeaveSize is the largest rack size the table stores a leave value
// for; per spec.md section 4.4, racks larger than this always leave 0.
const MaxLeaveSize = 6

// KLV is the immutable, loaded leave-value table.
type KLV struct {
	trie     *kwg.KWG
	values   []float32
	ordinals []int // ordinals[nodeIndex] = count of accepting nodes before nodeIndex
}

// Load parses a KLV blob: the trie portion (a KWG-format byte stream of
// trieWordCount 32-bit words, its length given by the caller) followed
// immediately by a little-endian array of float32 values, one
// per accepting trie node ordinal, per spec.md section 6.
func Load(data []byte, trieWordCount int) (*KLV, error) {
	trieBytes := trieWordCount * 4
	if len(data) < trieBytes {
		return nil, fmt.Errorf("klv: blob shorter than declared trie size")
	}
	trie, err := kwg.Load(data[:trieBytes])
	if err != nil {
		return nil, fmt.Errorf("klv: trie: %w", err)
	}
	rest := data[trieBytes:]
	if len(rest)%4 != 0 {
		return nil, fmt.Errorf("klv: value array length %d not a multiple of 4", len(rest))
	}
	values := make([]float32, len(rest)/4)
	for i := range values {
		bits := binary.LittleEndian.Uint32(rest[i*4 : i*4+4])
		values[i] = math.Float32frombits(bits)
	}
	ordinals := make([]int, trie.NumNodes())
	running := 0
	for i := 0; i < trie.NumNodes(); i++ {
		ordinals[i] = running
		if trie.Accepts(i) {
			running++
		}
	}
	return &KLV{trie: trie, values: values, ordinals: ordinals}, nil
}

// Leave returns the static equity adjustment for keeping r as one's
// rack after a play, 0 for an empty or too-large rack, per spec.md
// section 4.4 ("Given a rack, compute a canonical hash (sorted letter
// multiset) and retrieve the stored float ... racks larger than 6
// tiles ... 0").
func (k *KLV) Leave(r *rack.Rack) float64 {
	if r.NumTiles() == 0 || r.NumTiles() > MaxLeaveSize {
		return 0
	}
	sorted := sortedLetters(r)
	ordinal, ok := k.accepting(sorted)
	if !ok || ordinal >= len(k.values) {
		return 0
	}
	return float64(k.values[ordinal])
}

// sortedLetters returns r's tiles as a sorted slice of letter indices
// (blanks, index 0, sort first), the canonical rack key spec.md
// section 4.4 describes.
func sortedLetters(r *rack.Rack) []int {
	out := make([]int, 0, r.NumTiles())
	for letter := 0; letter < r.DistSize(); letter++ {
		for i := 0; i < r.Get(letter); i++ {
			out = append(out, letter)
		}
	}
	sort.Ints(out)
	return out
}

// accepting walks the trie along sorted, returning the ordinal (rank
// among accepting nodes, by node index, of the final arc) used to
// index the value array, grounded in the same word-ending convention
// internal/kwg.FindWord uses, extended to additionally count how many
// earlier-indexed accepting nodes exist (the trie's "ordinal").
func (k *KLV) accepting(sorted []int) (int, bool) {
	node := k.trie.DawgRoot()
	var lastArc int
	for _, letter := range sorted {
		arc, ok := k.findArc(node, letter)
		if !ok {
			return 0, false
		}
		lastArc = arc
		node = k.trie.ArcIndex(arc)
	}
	if !k.trie.Accepts(lastArc) {
		return 0, false
	}
	return k.ordinalOf(lastArc), true
}

// findArc mirrors kwg's internal arc-list walk; duplicated here (not
// exported by internal/kwg) since ordinal-counting needs the raw arc
// index, not just the destination node NextNodeIndex would return.
func (k *KLV) findArc(nodeIndex int, letter int) (int, bool) {
	i := nodeIndex
	for {
		if k.trie.Tile(i) == letter {
			return i, true
		}
		if k.trie.IsEnd(i) {
			return 0, false
		}
		i++
	}
}

// ordinalOf returns arcIndex's position in value-array order,
// precomputed at Load time. This keeps KLV's construction-time
// ordinal assignment (done once, when the KLV file is built) and
// lookup-time recovery consistent as long as both agree that ordinals
// are assigned in ascending node-index order — the convention this
// package commits to for any KLV blob it loads.
func (k *KLV) ordinalOf(arcIndex int) int {
	return k.ordinals[arcIndex]
}
