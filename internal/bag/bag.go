// Package bag implements the tile bag: an unordered multiset of
// MachineLetter tiles drawn randomly during play, per spec.md section
// 3 ("Bag"). It generalizes GoSkrafl's bag.go (rune-keyed Tile structs
// drawn via the package-level math/rand source) to MachineLetter tiles
// drawn via an explicit, per-instance *rand.Rand, since spec.md's
// simulator requires each worker thread to own a bag seeded
// deterministically from a master seed rather than sharing the global
// generator.
package bag

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jvc56/magpie-go/internal/alphabet"
	"github.com/jvc56/magpie-go/internal/rack"
)

// Bag holds the undrawn tiles as a flat slice of MachineLetter values.
// Drawing removes a random element (swap-with-last, O(1)); returning
// appends.
type Bag struct {
	tiles []alphabet.MachineLetter
	rng   *rand.Rand
	ld    *alphabet.LetterDistribution
}

// New returns a freshly filled Bag for the given distribution, seeded
// with seed so draws are reproducible, mirroring original_source's
// convention of seeding each simulator thread's generator from a
// shared master seed rather than drawing from global randomness.
func New(ld *alphabet.LetterDistribution, seed int64) *Bag {
	b := &Bag{rng: rand.New(rand.NewSource(seed)), ld: ld}
	b.Reset()
	return b
}

// Reset refills the bag to its full initial contents, shuffled order
// irrelevant since Draw always picks a uniformly random index.
func (b *Bag) Reset() {
	b.tiles = b.tiles[:0]
	for ml := alphabet.MachineLetter(0); ml <= b.ld.NumLetters(); ml++ {
		n := b.ld.InitialCount(ml)
		for i := 0; i < n; i++ {
			b.tiles = append(b.tiles, ml)
		}
	}
}

// Count returns the number of tiles remaining in the bag.
func (b *Bag) Count() int { return len(b.tiles) }

// ExchangeAllowed reports whether the bag holds enough tiles
// (rack.Size or more) that an exchange is legal, grounded in
// GoSkrafl's Bag.ExchangeAllowed.
func (b *Bag) ExchangeAllowed() bool {
	return len(b.tiles) >= rack.Size
}

// Draw removes and returns one uniformly random tile, or
// (0, false) if the bag is empty, grounded in GoSkrafl's
// Bag.DrawTile.
func (b *Bag) Draw() (alphabet.MachineLetter, bool) {
	if len(b.tiles) == 0 {
		return 0, false
	}
	i := b.rng.Intn(len(b.tiles))
	ml := b.tiles[i]
	last := len(b.tiles) - 1
	b.tiles[i] = b.tiles[last]
	b.tiles = b.tiles[:last]
	return ml, true
}

// DrawLetter removes and returns a tile matching letter specifically,
// or (0, false) if none remains, grounded in GoSkrafl's
// Bag.DrawTileByLetter (used to fill a rack from a fixed opening
// string, e.g. in CGP loading or tests).
func (b *Bag) DrawLetter(letter alphabet.MachineLetter) (alphabet.MachineLetter, bool) {
	for i, ml := range b.tiles {
		if ml == letter {
			last := len(b.tiles) - 1
			b.tiles[i] = b.tiles[last]
			b.tiles = b.tiles[:last]
			return ml, true
		}
	}
	return 0, false
}

// DrawN draws up to n tiles, returning as many as were available.
func (b *Bag) DrawN(n int) []alphabet.MachineLetter {
	out := make([]alphabet.MachineLetter, 0, n)
	for i := 0; i < n; i++ {
		ml, ok := b.Draw()
		if !ok {
			break
		}
		out = append(out, ml)
	}
	return out
}

// Return puts a previously drawn tile back into the bag, grounded in
// GoSkrafl's Bag.ReturnTile (used when exchanging tiles, or unwinding
// a simulated rollout).
func (b *Bag) Return(ml alphabet.MachineLetter) {
	b.tiles = append(b.tiles, ml)
}

// ReturnRack returns every tile in r to the bag and empties r,
// grounded in GoSkrafl's Rack.ReturnToBag.
func (b *Bag) ReturnRack(r *rack.Rack) {
	for letter := 0; letter < r.DistSize(); letter++ {
		for i := 0; i < r.Get(letter); i++ {
			b.Return(alphabet.MachineLetter(letter))
		}
	}
	r.Reset()
}

// Clone returns an independent copy of the bag with its own PRNG
// state forked from the current one, for cloning per-thread bags at
// the start of a simulator rollout (spec.md section 5). Not safe to
// call concurrently on the same receiver from multiple goroutines,
// since forking reads and advances b.rng: callers that need to clone
// the same source Bag from many worker goroutines at once (the
// simulator's per-iteration rollouts) should use CloneWithSeed
// instead, which never touches the receiver's PRNG.
func (b *Bag) Clone() *Bag {
	clone := &Bag{
		tiles: append([]alphabet.MachineLetter(nil), b.tiles...),
		rng:   rand.New(rand.NewSource(b.rng.Int63())),
		ld:    b.ld,
	}
	return clone
}

// CloneWithSeed returns an independent copy of the bag's remaining
// tiles with a fresh PRNG seeded from seed, rather than forked from
// b.rng — safe to call concurrently from many goroutines against the
// same receiver, since it only reads b.tiles/b.ld and never touches
// b.rng. This is what the simulator's worker pool uses to clone a
// shared base Bag once per rollout from each thread's own
// deterministic seed stream (spec.md section 5's "Rack is owned by
// exactly one thread" extended to the bag each rollout draws from).
func (b *Bag) CloneWithSeed(seed int64) *Bag {
	return &Bag{
		tiles: append([]alphabet.MachineLetter(nil), b.tiles...),
		rng:   rand.New(rand.NewSource(seed)),
		ld:    b.ld,
	}
}

// String renders the bag's remaining tile counts for display.
func (b *Bag) String() string {
	if len(b.tiles) == 0 {
		return "(empty)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d tiles): ", len(b.tiles))
	for _, ml := range b.tiles {
		sb.WriteRune(b.ld.UserVisible(ml))
	}
	return sb.String()
}
