// Package wmp implements the Word-Map (WMP): an optional three-level
// hash-table blob keyed on bitrack.BitRack, returning for each (rack,
// word-length) pair the concatenated letters of every word
// anagrammable from that rack, per spec.md section 3 ("WMP
// (optional)") and section 6 ("WMP file"). Separate sub-tables handle
// 0-blank, 1-blank, and 2-blank queries.
//
// GoSkrafl has no anagram-acceleration structure (its move generator
// walks the GADDAG per anchor square unconditionally), so this
// package is grounded directly in spec.md's binary layout, following
// internal/kwg's already-established little-endian packed-array
// reading conventions for the byte-level parsing.
package wmp

import (
	"encoding/binary"
	"fmt"

	"github.com/jvc56/magpie-go/internal/bitrack"
)

// Version is the only WMP file format version this package reads.
const Version = 3

// MinWordLen and MaxWordLen bound the per-length sub-tables, per
// spec.md section 6.
const (
	MinWordLen = 2
	MaxWordLen = 15
)

// entry is one bucket slot: a BitRack quotient plus either an inline
// anagram blob (<=16 bytes) or a (start, count) pointer into the
// shared letters array, per spec.md's WMPEntry layout.
type entry struct {
	quotient  bitrack.BitRack
	inline    bool
	inlineLen int
	inlineBuf [16]byte
	wordStart uint32
	numWords  uint32
}

// lengthTable is one length L's bucketed hash table.
type lengthTable struct {
	bucketStarts []uint32
	entries      []entry
	letters      []byte
	wordLen      int
}

func (lt *lengthTable) numBuckets() int {
	if len(lt.bucketStarts) == 0 {
		return 0
	}
	return len(lt.bucketStarts) - 1
}

func (lt *lengthTable) lookup(br bitrack.BitRack) ([]byte, int, bool) {
	if lt.numBuckets() == 0 {
		return nil, 0, false
	}
	bucketIdx, quotient := br.DivMod(uint64(lt.numBuckets()))
	start, end := lt.bucketStarts[bucketIdx], lt.bucketStarts[bucketIdx+1]
	for i := start; i < end; i++ {
		e := &lt.entries[i]
		if !e.quotient.Equals(quotient) {
			continue
		}
		if e.inline {
			return e.inlineBuf[:e.inlineLen], e.inlineLen / lt.wordLen, true
		}
		return lt.letters[e.wordStart : e.wordStart+e.numWords*uint32(lt.wordLen)], int(e.numWords), true
	}
	return nil, 0, false
}

// WMP is the loaded, immutable word-map: one lengthTable per word
// length for each of the 0/1/2-blank sub-tables.
type WMP struct {
	tables [3][MaxWordLen + 1]*lengthTable
}

// NumBlanks selects which of the three sub-tables (0, 1, or 2 blanks
// considered in the rack) to query.
type NumBlanks int

const (
	ZeroBlanks NumBlanks = 0
	OneBlank   NumBlanks = 1
	TwoBlanks  NumBlanks = 2
)

// Lookup returns the concatenated letters of every word of length
// wordLen anagrammable from br under the given blank count, and how
// many words that blob holds, or ok=false if there is no entry.
func (w *WMP) Lookup(blanks NumBlanks, wordLen int, br bitrack.BitRack) (letters []byte, numWords int, ok bool) {
	if wordLen < MinWordLen || wordLen > MaxWordLen {
		return nil, 0, false
	}
	lt := w.tables[blanks][wordLen]
	if lt == nil {
		return nil, 0, false
	}
	return lt.lookup(br)
}

type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) u8() (byte, error) {
	if r.pos+1 > len(r.data) {
		return 0, fmt.Errorf("wmp: unexpected EOF reading u8")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) u32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("wmp: unexpected EOF reading u32")
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *byteReader) bytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("wmp: unexpected EOF reading %d bytes", n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Load parses a WMP blob per spec.md section 6: a fixed header
// followed by one sub-structure per word length 2..15, repeated for
// each of the three blank-count sub-tables (0, 1, 2), in that order —
// the spec does not give the sub-table ordering explicitly beyond
// "separate sub-tables handle 0-blank, 1-blank, and 2-blank queries",
// so this loader commits to ascending blank-count order, matching the
// natural order the header fields are introduced in.
func Load(data []byte) (*WMP, error) {
	r := &byteReader{data: data}
	version, err := r.u8()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("wmp: unsupported version %d, want %d", version, Version)
	}
	if _, err := r.u8(); err != nil { // board_dim
		return nil, err
	}
	minLen, err := r.u8()
	if err != nil {
		return nil, err
	}
	maxLen, err := r.u8()
	if err != nil {
		return nil, err
	}
	if _, err := r.u32(); err != nil { // max_blank_pair_bytes
		return nil, err
	}
	if _, err := r.u32(); err != nil { // max_word_lookup_bytes
		return nil, err
	}

	w := &WMP{}
	for blanks := 0; blanks < 3; blanks++ {
		for length := int(minLen); length <= int(maxLen); length++ {
			lt, err := loadLengthTable(r, length)
			if err != nil {
				return nil, fmt.Errorf("wmp: blanks=%d len=%d: %w", blanks, length, err)
			}
			w.tables[blanks][length] = lt
		}
	}
	return w, nil
}

func loadLengthTable(r *byteReader, wordLen int) (*lengthTable, error) {
	numBuckets, err := r.u32()
	if err != nil {
		return nil, err
	}
	bucketStarts := make([]uint32, numBuckets+1)
	for i := range bucketStarts {
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		bucketStarts[i] = v
	}
	numEntries, err := r.u32()
	if err != nil {
		return nil, err
	}
	entries := make([]entry, numEntries)
	for i := range entries {
		loBytes, err := r.bytes(8)
		if err != nil {
			return nil, err
		}
		hiBytes, err := r.bytes(4)
		if err != nil {
			return nil, err
		}
		lo := binary.LittleEndian.Uint64(loBytes)
		hi := binary.LittleEndian.Uint32(hiBytes)
		payload, err := r.bytes(16)
		if err != nil {
			return nil, err
		}
		e := entry{quotient: bitrack.BitRack{Lo: lo, Hi: uint64(hi)}}
		isPointer := true
		for _, b := range payload[:8] {
			if b != 0 {
				isPointer = false
				break
			}
		}
		if isPointer {
			e.wordStart = binary.LittleEndian.Uint32(payload[8:12])
			e.numWords = binary.LittleEndian.Uint32(payload[12:16])
		} else {
			e.inline = true
			// The inline blob is zero-padded to 16 bytes; padding is not
			// part of any word.
			n := len(payload)
			for n > 0 && payload[n-1] == 0 {
				n--
			}
			e.inlineLen = n
			copy(e.inlineBuf[:], payload)
		}
		entries[i] = e
	}
	// The letters blob's length is implied by the highest word_start +
	// num_words*wordLen referenced by any non-inline entry; spec.md
	// does not give an explicit byte count field for it beyond "Σ
	// anagram-set-size × L", so it is read as the remainder of what
	// the declared entries reference.
	var lettersLen uint32
	for _, e := range entries {
		if !e.inline {
			end := e.wordStart + e.numWords*uint32(wordLen)
			if end > lettersLen {
				lettersLen = end
			}
		}
	}
	letters, err := r.bytes(int(lettersLen))
	if err != nil {
		return nil, err
	}
	return &lengthTable{bucketStarts: bucketStarts, entries: entries, letters: letters, wordLen: wordLen}, nil
}
