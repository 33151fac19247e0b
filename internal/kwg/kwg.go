// Package kwg implements the Kurnia Word Graph (KWG): a single flat
// array of 32-bit nodes encoding both a DAWG (for word verification)
// and a GADDAG (for move generation), per spec.md section 3/4.1.
//
// The per-node accessors (Tile, IsEnd, Accepts, ArcIndex) are grounded
// directly in original_source/src/ent/kwg.c, which packs nodes
// bit-for-bit the way spec.md describes: bits 0..21 next-node index,
// bit 22 end-of-arc-list, bit 23 word-acceptance, bits 24..31 letter.
// The higher-level Navigator/Navigation pattern for walking the graph
// is grounded in GoSkrafl's navigators.go, generalized from GoSkrafl's
// variable-length-prefix DAWG encoding to the spec's fixed one-letter-
// per-node array and extended with GADDAG traversal.
package kwg

import (
	"encoding/binary"
	"fmt"

	"github.com/hashicorp/golang-lru/simplelru"
)

const (
	nodeArcIndexMask = 0x3fffff
	nodeIsEndBit     = 0x400000
	nodeAcceptsBit   = 0x800000
	nodeTileShift    = 24

	// SeparationToken is the GADDAG split-point marker: MachineLetter
	// value 0 never appears as a real tile inside a GADDAG path (it is
	// reserved for the empty-square marker elsewhere), so the graph
	// uses it as the '#' separator from spec.md section 4.1.
	SeparationToken = 0
)

// KWG is the immutable, read-only packed node array. Once loaded it is
// infallible (spec.md 4.1 "Failure semantics"): out-of-range
// navigation is a pruning condition for callers, never an error
// returned by KWG itself.
type KWG struct {
	nodes []uint32
	// dawgRoot is the root node index for plain word lookup/verification.
	dawgRoot int
	// gaddagRoot is the root node index for move-generation traversal.
	gaddagRoot int

	cache     crossSetCache
}

// crossSetCache memoizes CrossSet results, keyed on the (left, right)
// fragment pair, mirroring GoSkrafl's dawg.go crossCache (an LRU of
// matched patterns to bitmapped sets) but computed via the DAWG walk
// below rather than a Match() navigator, since KWG nodes do not carry
// GoSkrafl's vertical-bar finality marker inline.
type crossSetCache struct {
	lru *simplelru.LRU
}

// Load parses a raw little-endian KWG byte stream into a KWG, per
// spec.md section 6 ("KWG file"): word 0 reserved, word 1's low 22
// bits the DAWG root, word 2's low 22 bits the GADDAG root, remaining
// words the node array. A malformed KWG (length not a multiple of 4,
// or an invalid root index) is fatal at load time.
func Load(data []byte) (*KWG, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("kwg: length %d is not a positive multiple of 4", len(data))
	}
	numWords := len(data) / 4
	if numWords < 3 {
		return nil, fmt.Errorf("kwg: need at least 3 words (reserved, dawg root, gaddag root), got %d", numWords)
	}
	nodes := make([]uint32, numWords)
	for i := range nodes {
		nodes[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	dawgRoot := int(nodes[1] & nodeArcIndexMask)
	gaddagRoot := int(nodes[2] & nodeArcIndexMask)
	if dawgRoot < 0 || dawgRoot >= numWords || gaddagRoot < 0 || gaddagRoot >= numWords {
		return nil, fmt.Errorf("kwg: root index out of range (dawg=%d gaddag=%d, len=%d)", dawgRoot, gaddagRoot, numWords)
	}
	lru, _ := simplelru.NewLRU(4096, nil)
	return &KWG{
		nodes:      nodes,
		dawgRoot:   dawgRoot,
		gaddagRoot: gaddagRoot,
		cache:      crossSetCache{lru: lru},
	}, nil
}

// DawgRoot returns the root node index for DAWG (word-verification)
// traversal.
func (k *KWG) DawgRoot() int { return k.dawgRoot }

// GaddagRoot returns the root node index for GADDAG (move-generation)
// traversal.
func (k *KWG) GaddagRoot() int { return k.gaddagRoot }

// NumNodes returns the number of nodes in the array, including the
// reserved word-0 slot.
func (k *KWG) NumNodes() int { return len(k.nodes) }

// Tile returns the letter label of the arc at nodeIndex.
func (k *KWG) Tile(nodeIndex int) int {
	return int(k.nodes[nodeIndex] >> nodeTileShift)
}

// IsEnd reports whether nodeIndex is the last arc in its arc list.
func (k *KWG) IsEnd(nodeIndex int) bool {
	return k.nodes[nodeIndex]&nodeIsEndBit != 0
}

// Accepts reports whether the arc at nodeIndex completes a word.
func (k *KWG) Accepts(nodeIndex int) bool {
	return k.nodes[nodeIndex]&nodeAcceptsBit != 0
}

// ArcIndex returns the next-node index the arc at nodeIndex points to
// (0 if there is none).
func (k *KWG) ArcIndex(nodeIndex int) int {
	return int(k.nodes[nodeIndex] & nodeArcIndexMask)
}

// NextNodeIndex walks the arc list starting at nodeIndex looking for
// an arc labeled `letter`, returning its target node index or 0 if
// none exists. Grounded verbatim in kwg_get_next_node_index.
func (k *KWG) NextNodeIndex(nodeIndex int, letter int) int {
	i := nodeIndex
	for {
		if k.Tile(i) == letter {
			return k.ArcIndex(i)
		}
		if k.IsEnd(i) {
			return 0
		}
		i++
	}
}

// InLetterSet reports whether `letter` (its blank bit stripped) is an
// accepting arc out of nodeIndex — used to test whether a single
// letter, ignoring any following path, completes a word at this point
// (the cross-set membership test). Grounded in kwg_in_letter_set.
func (k *KWG) InLetterSet(letter int, nodeIndex int) bool {
	unblanked := letter &^ 0x80
	i := nodeIndex
	for {
		if k.Tile(i) == unblanked {
			return k.Accepts(i)
		}
		if k.IsEnd(i) {
			return false
		}
		i++
	}
}

// LetterSet returns the 64-bit mask of letters with an accepting arc
// out of nodeIndex. Grounded in kwg_get_letter_set.
func (k *KWG) LetterSet(nodeIndex int) uint64 {
	var ls uint64
	i := nodeIndex
	for {
		t := k.Tile(i)
		if k.Accepts(i) {
			ls |= 1 << uint(t)
		}
		if k.IsEnd(i) {
			break
		}
		i++
	}
	return ls
}

// FindWord reports whether `word` (a slice of unblanked MachineLetter
// values) is accepted by the DAWG: follow letter arcs from the DAWG
// root, accept iff the arc consumed for the final letter carries the
// acceptance bit. This is Contains(word) from spec.md section 4.1.
func (k *KWG) FindWord(word []int) bool {
	if len(word) == 0 {
		return false
	}
	node := k.dawgRoot
	for i, letter := range word {
		arc, ok := k.findArc(node, letter)
		if !ok {
			return false
		}
		if i == len(word)-1 {
			return k.Accepts(arc)
		}
		node = k.ArcIndex(arc)
		if node == 0 {
			return false
		}
	}
	return false
}

// findArc walks the arc list at nodeIndex looking for the arc labeled
// letter, returning its index (not its target) and whether it exists.
func (k *KWG) findArc(nodeIndex int, letter int) (int, bool) {
	i := nodeIndex
	for {
		if k.Tile(i) == letter {
			return i, true
		}
		if k.IsEnd(i) {
			return 0, false
		}
		i++
	}
}
