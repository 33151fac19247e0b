// Package rackhash implements a concurrent, stripe-locked hash table
// keyed on bitrack.BitRack, used to accumulate the top-N moves
// observed for each distinct opponent rack during inference/
// simulation, per spec.md section 5. Ported function-for-function
// from original_source's rack_hash_table.c (a chaining hash table of
// InferredRackMoveList nodes, one sync.Mutex per stripe rather than
// per bucket, so that concurrent writers from different simulator
// threads contend only when their bucket indices happen to hash into
// the same stripe). GoSkrafl has no counterpart to this structure.
package rackhash

import (
	"sync"

	"github.com/jvc56/magpie-go/internal/bitrack"
	"github.com/jvc56/magpie-go/internal/move"
)

// Entry is one distinct opponent rack's accumulated inference data:
// the leave value assigned to that rack, how many ways it could be
// drawn, its probability weight, and the top moves observed
// consistent with it. Grounded in original_source's
// InferredRackMoveList.
type Entry struct {
	Rack       bitrack.BitRack
	LeaveValue float64
	Draws      int
	Weight     float32
	Moves      *move.List
	next       *Entry
}

// Table is the bucketed, stripe-locked hash table.
type Table struct {
	buckets           []*Entry
	locks             []sync.Mutex
	moveListCapacity  int
	numBuckets        uint64
	numStripes        uint64
}

// New returns a Table with numBuckets chains (any positive count:
// bitrack.BitRack.DivMod takes the mixed hash modulo it) and
// numStripes independent mutexes guarding disjoint subsets of those
// buckets, grounded in original_source's rack_hash_table_create.
func New(numBuckets, moveListCapacity, numStripes int) *Table {
	return &Table{
		buckets:          make([]*Entry, numBuckets),
		locks:            make([]sync.Mutex, numStripes),
		moveListCapacity: moveListCapacity,
		numBuckets:       uint64(numBuckets),
		numStripes:       uint64(numStripes),
	}
}

func (t *Table) stripeFor(bucketIndex uint64) uint64 {
	return bucketIndex % t.numStripes
}

// AddMove records that m was observed as a legal reply consistent
// with rack, updating rack's leave value/draws/weight and folding m
// into its top-move list (evicting the current worst recorded move if
// the list is already full and m ranks higher), grounded in
// original_source's rack_hash_table_add_move.
func (t *Table) AddMove(rack bitrack.BitRack, leaveValue float64, draws int, weight float32, m *move.Move) {
	bucketIndex, _ := rack.DivMod(t.numBuckets)
	stripe := t.stripeFor(bucketIndex)
	t.locks[stripe].Lock()
	defer t.locks[stripe].Unlock()

	node := t.buckets[bucketIndex]
	for node != nil && !node.Rack.Equals(rack) {
		node = node.next
	}
	if node == nil {
		node = &Entry{
			Rack:  rack,
			Moves: move.NewList(t.moveListCapacity),
			next:  t.buckets[bucketIndex],
		}
		t.buckets[bucketIndex] = node
	}
	node.LeaveValue = leaveValue
	node.Draws = draws
	node.Weight = weight

	ml := node.Moves
	shouldInsert := ml.Count() < ml.Capacity()
	if !shouldInsert && ml.Count() > 0 && m.Equity > ml.At(0).Equity {
		shouldInsert = true
	}
	if shouldInsert {
		ml.SpareMove().CopyFrom(m)
		ml.InsertSpareMove(m.Equity)
	}
}

// Lookup returns the Entry for rack, or nil if no move has ever been
// recorded against it, grounded in original_source's
// rack_hash_table_lookup.
func (t *Table) Lookup(rack bitrack.BitRack) *Entry {
	bucketIndex, _ := rack.DivMod(t.numBuckets)
	stripe := t.stripeFor(bucketIndex)
	t.locks[stripe].Lock()
	defer t.locks[stripe].Unlock()

	node := t.buckets[bucketIndex]
	for node != nil && !node.Rack.Equals(rack) {
		node = node.next
	}
	return node
}
