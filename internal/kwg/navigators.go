package kwg

// Navigator is the callback interface a caller implements to walk the
// KWG's GADDAG in a particular order, mirroring GoSkrafl's
// navigators.go Navigator interface (PushEdge/Accepts/Accept/PopEdge/
// Done) but adapted to the fixed one-letter-per-node KWG array instead
// of GoSkrafl's variable-length DAWG node encoding.
type Navigator interface {
	// PushEdge reports whether the navigator wants to descend the arc
	// labeled by letter from the current position.
	PushEdge(letter int) bool
	// Accepting reports whether the navigator is willing to accept a
	// match at the current position (used to prune IsFinal checks that
	// would otherwise always be performed).
	Accepting() bool
	// Accept is called when nodeIndex's arc completes a legal word
	// under the navigator's rules; final reports whether nodeIndex
	// itself carries the KWG acceptance bit.
	Accept(index int, final bool)
	// PopEdge is called after exhausting the subtree under the most
	// recently pushed edge, to let the navigator restore any state it
	// pushed in PushEdge.
	PopEdge()
	// Done reports whether the navigator has found everything it
	// needs and traversal should stop early.
	Done() bool
}

// Navigate walks the GADDAG (or DAWG, depending on which root is
// passed) starting at nodeIndex, calling into nav at each arc, grounded
// in GoSkrafl's Dawg.NavigateSerialized / navigatePartial pattern.
// internal/movegen and CrossSetAndScore do not use it: they step through
// the node array directly.
func (k *KWG) Navigate(nodeIndex int, nav Navigator) {
	if nodeIndex == 0 {
		return
	}
	i := nodeIndex
	for {
		if nav.Done() {
			return
		}
		letter := k.Tile(i)
		if nav.PushEdge(letter) {
			if nav.Accepting() {
				nav.Accept(i, k.Accepts(i))
			}
			if child := k.ArcIndex(i); child != 0 {
				k.Navigate(child, nav)
			}
			nav.PopEdge()
		}
		if k.IsEnd(i) {
			return
		}
		i++
	}
}

// CrossSetAndScore walks the left and right fragments of a perpendicular
// word already on the board around a prospective square, returning the
// bitmask of legal letters (cross-set) and a fixed score that is always
// 0: the KWG holds no letter values, so the fragments' face-value sum
// (cross-score) is not computed here. Grounded in GoSkrafl's
// Board.CrossWords/CrossScore generalized to GADDAG traversal: the
// right fragment is walked letter-by-letter from the DAWG root, then
// for each letter of the left fragment (read back-to-front) the walk
// continues, and the arc's letter set at the point just before the
// empty square is the cross-set.
//
// left and right are already-resolved MachineLetter values (blank bit
// stripped) read outward from the empty square; left is ordered
// nearest-square-first (i.e. reversed relative to reading order).
func (k *KWG) CrossSetAndScore(left, right []int) (crossSet uint64, fixedScore int) {
	if len(left) == 0 && len(right) == 0 {
		return ^uint64(0), 0
	}

	key := crossSetKey(left, right)
	if k.cache.lru != nil {
		if v, ok := k.cache.lru.Get(key); ok {
			p := v.(crossSetResult)
			return p.set, p.score
		}
	}

	node := k.dawgRoot
	ok := true
	for i := len(right) - 1; i >= 0; i-- {
		if !ok {
			break
		}
		node, ok = k.step(node, right[i])
	}
	if !ok {
		k.cacheCrossSet(key, 0, 0)
		return 0, 0
	}
	if len(left) == 0 {
		set := k.LetterSet(node)
		k.cacheCrossSet(key, set, 0)
		return set, 0
	}
	for _, l := range left {
		if !ok {
			break
		}
		node, ok = k.step(node, l)
	}
	if !ok {
		k.cacheCrossSet(key, 0, 0)
		return 0, 0
	}
	set := k.LetterSet(node)
	k.cacheCrossSet(key, set, 0)
	return set, 0
}

// crossSetResult is the cached value shape for crossSetCache.lru.
type crossSetResult struct {
	set   uint64
	score int
}

func (k *KWG) cacheCrossSet(key string, set uint64, score int) {
	if k.cache.lru == nil {
		return
	}
	k.cache.lru.Add(key, crossSetResult{set: set, score: score})
}

// crossSetKey packs a (left, right) fragment pair into a single string
// usable as an LRU key; letters are already small non-negative ints
// (MachineLetter values with the blank bit stripped) so a byte-per-
// letter encoding with a sentinel separator is collision-free.
func crossSetKey(left, right []int) string {
	buf := make([]byte, 0, len(left)+len(right)+1)
	for _, l := range left {
		buf = append(buf, byte(l))
	}
	buf = append(buf, 0xff)
	for _, r := range right {
		buf = append(buf, byte(r))
	}
	return string(buf)
}

// step follows the arc labeled letter from nodeIndex, returning the
// child node and whether such an arc exists.
func (k *KWG) step(nodeIndex int, letter int) (int, bool) {
	arc, ok := k.findArc(nodeIndex, letter)
	if !ok {
		return 0, false
	}
	return k.ArcIndex(arc), true
}
