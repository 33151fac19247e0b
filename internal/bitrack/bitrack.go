// Package bitrack implements BitRack, a 128-bit packed representation
// of a rack's letter multiset used as a hash key for the WMP and the
// rack-hash table (spec.md section 3). It is stored as two uint64
// halves, with 4 bits per letter count — 32 slots in all, enough for
// the English alphabet (26 letters + blank), each count at most 15.
package bitrack

import "math/bits"

// bitsPerLetter is the width of each packed count field.
const bitsPerLetter = 4

// countMask isolates a single 4-bit count field.
const countMask = (1 << bitsPerLetter) - 1

// BitRack is a 128-bit concatenation of per-letter counts, index 0
// being the wildcard/blank. Letters 0..15 live in Lo, 16..31 in Hi
// (32 slots at 4 bits each fill exactly 128 bits; a rack never needs
// more than RackSize=7 of any one letter, so 4 bits per slot suffice).
type BitRack struct {
	Lo uint64
	Hi uint64
}

const lettersPerHalf = 64 / bitsPerLetter // 16 letters per half

// index returns which half a given letter's count field lives in, and
// its bit offset within that half.
func index(letter int) (hi bool, shift uint) {
	if letter < lettersPerHalf {
		return false, uint(letter) * bitsPerLetter
	}
	return true, uint(letter-lettersPerHalf) * bitsPerLetter
}

// Get returns the count of the given letter index (0 = wildcard).
func (br BitRack) Get(letter int) int {
	hi, shift := index(letter)
	if hi {
		return int((br.Hi >> shift) & countMask)
	}
	return int((br.Lo >> shift) & countMask)
}

// Add increments the count of the given letter by one and returns the
// updated BitRack; BitRack is a value type so callers chain updates
// explicitly, mirroring the immutability of the rest of the packed
// automata structures.
func (br BitRack) Add(letter int) BitRack {
	hi, shift := index(letter)
	if hi {
		br.Hi += 1 << shift
	} else {
		br.Lo += 1 << shift
	}
	return br
}

// Remove decrements the count of the given letter by one. The caller
// must ensure the count is > 0; removing from zero wraps, matching
// the packed-field semantics of the original KWG/WMP implementation
// where ill-formed removals are a programming error, not a runtime
// condition to be defended against on the hot path.
func (br BitRack) Remove(letter int) BitRack {
	hi, shift := index(letter)
	if hi {
		br.Hi -= 1 << shift
	} else {
		br.Lo -= 1 << shift
	}
	return br
}

// Equals compares two BitRacks for equality.
func (br BitRack) Equals(other BitRack) bool {
	return br.Lo == other.Lo && br.Hi == other.Hi
}

// Mix64 folds the 128 bits down to a 64-bit hash suitable for bucket
// indexing, using the same fmix64-style finalizer as MurmurHash3,
// applied twice and combined — a standard technique for mixing wide
// keys down to a single word.
func (br BitRack) Mix64() uint64 {
	return fmix64(br.Lo) ^ fmix64(br.Hi+0x9e3779b97f4a7c15)
}

func fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// DivMod splits the BitRack into a bucket index (value mod m) and a
// quotient (value / m), per spec.md's description of the WMP's space
// optimization: only the quotient is stored in the WMP entry, the
// bucket index being implicit from the entry's position.
func (br BitRack) DivMod(m uint64) (bucketIndex uint64, quotient BitRack) {
	// Since m is chosen to be a power of two by callers (the WMP bucket
	// count), do the division on the 64-bit mixed hash rather than on
	// the raw 128-bit value: the mixed hash is what determines bucket
	// placement, so it is also the natural domain for the div/mod split.
	h := br.Mix64()
	bucketIndex = h % m
	q := h / m
	return bucketIndex, BitRack{Lo: q, Hi: 0}
}

// PopCount returns the total number of tiles represented (sum of all
// per-letter counts), used to validate a rack size without decoding
// every field.
func (br BitRack) PopCount() int {
	total := 0
	lo, hi := br.Lo, br.Hi
	for lo != 0 {
		total += int(lo & countMask)
		lo >>= bitsPerLetter
	}
	for hi != 0 {
		total += int(hi & countMask)
		hi >>= bitsPerLetter
	}
	return total
}

// BitCount64 is a small helper re-exported for callers that want raw
// popcount semantics on a mixed hash (e.g. for load-factor diagnostics).
func BitCount64(v uint64) int {
	return bits.OnesCount64(v)
}
