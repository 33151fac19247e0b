// Package simulator implements the Monte-Carlo play simulator: given a
// set of candidate plays, it rolls each one out to the end of the game
// (or a fixed ply depth) many times with randomized racks, accumulates
// a Stat per candidate, and supports early stopping once the
// confidence intervals around the candidates' equities no longer
// overlap the leader's, per spec.md section 5.
//
// The worker pool is grounded in GoSkrafl's robot.go HighScoreRobot
// policy (each rollout ply is played by always choosing the
// highest-equity available move, GoSkrafl's "pick the best move"
// strategy generalized from score to score+leave equity) run inside a
// golang.org/x/sync/errgroup-managed pool of goroutines, one per
// simulator thread, each with its own PRNG-seeded Bag/Rack clones
// (spec.md section 5, "Rack is owned by exactly one thread"). The
// accumulation math (Stat, parallel-variance combine) is ported from
// original_source's stats.c via internal/stats, and the final
// win-probability conversion from original_source's win_pct.c via
// internal/winpct.
package simulator

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jvc56/magpie-go/internal/alphabet"
	"github.com/jvc56/magpie-go/internal/bag"
	"github.com/jvc56/magpie-go/internal/board"
	"github.com/jvc56/magpie-go/internal/game"
	"github.com/jvc56/magpie-go/internal/move"
	"github.com/jvc56/magpie-go/internal/rack"
	"github.com/jvc56/magpie-go/internal/stats"
	"github.com/jvc56/magpie-go/internal/winpct"
)

// Candidate is one of the plays under consideration; Run sets Plies to
// a single Stat aggregating every rollout's final equity. No per-ply
// breakdown is kept.
type Candidate struct {
	Move  *move.Move
	Plies []*stats.Stat
}

// Config controls one simulation run.
type Config struct {
	// MaxIterations bounds the number of rollouts per candidate across
	// all threads combined.
	MaxIterations int
	// Plies is how many additional turns (this player's reply included)
	// each rollout plays before scoring the result.
	Plies int
	// NumThreads is the number of worker goroutines; 0 means runtime
	// default of 1 (the simulator never guesses GOMAXPROCS on behalf of
	// a caller that did not ask for concurrency).
	NumThreads int
	// Seed derives each thread's independent PRNG stream.
	Seed int64
	// StopOnConfidence, when true, halts once the leader's plies-so-far
	// equity confidence interval no longer overlaps any other
	// candidate's (spec.md section 5's early-stopping rule).
	StopOnConfidence bool
	// ZScore is the confidence-interval multiplier (e.g. 1.96 for ~95%).
	ZScore float64
	WinPct *winpct.Table
}

// Policy picks which move to play at one ply of a rollout, given the
// game state and the legal moves available; callers supply their
// actual move generator here. Grounded in GoSkrafl's Robot interface
// (PickMove), generalized to accept a slice already produced by the
// caller's move generator rather than calling GenerateMoves itself,
// since internal/simulator must stay decoupled from internal/movegen
// to avoid a dependency cycle (movegen depends on board/kwg/rack, not
// on simulator).
type Policy func(g *game.Game, legal []*move.Move) *move.Move

// Run simulates each candidate cfg.MaxIterations times (distributed across cfg.NumThreads workers via an errgroup), playing
// out cfg.Plies turns with policy, and returns the accumulated
// per-candidate Stats. It halts early (before exhausting
// MaxIterations) if cfg.StopOnConfidence is set and the leader's
// interval has separated from the field, mirroring spec.md section 5's
// stopping condition and original_source's shared halt flag.
func Run(ctx context.Context, baseGame *game.Game, candidates []*Candidate, policy Policy, cfg Config) error {
	if len(candidates) == 0 {
		return nil
	}
	numThreads := cfg.NumThreads
	if numThreads <= 0 {
		numThreads = 1
	}

	var halt int32
	var nextIteration int64
	var mu sync.Mutex // guards candidate Stat shadows during periodic combine

	shadows := make([][]*stats.Stat, numThreads)
	for t := 0; t < numThreads; t++ {
		shadows[t] = make([]*stats.Stat, len(candidates))
		for c := range candidates {
			shadows[t][c] = &stats.Stat{}
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for t := 0; t < numThreads; t++ {
		threadIdx := t
		threadSeed := cfg.Seed + int64(uint64(threadIdx)*0x9e3779b97f4a7c15)
		group.Go(func() error {
			rng := newThreadRNG(threadSeed)
			for {
				if atomic.LoadInt32(&halt) != 0 {
					return nil
				}
				select {
				case <-groupCtx.Done():
					return groupCtx.Err()
				default:
				}
				iter := atomic.AddInt64(&nextIteration, 1) - 1
				if int(iter) >= cfg.MaxIterations*len(candidates) {
					return nil
				}
				candidateIdx := int(iter) % len(candidates)
				equity := rolloutOnce(baseGame, candidates[candidateIdx].Move, policy, cfg, rng)
				shadows[threadIdx][candidateIdx].Push(equity)

				if cfg.StopOnConfidence && iter%int64(len(candidates)*16) == 0 {
					mu.Lock()
					stop := shouldStop(candidates, shadows, cfg.ZScore)
					mu.Unlock()
					if stop {
						atomic.StoreInt32(&halt, 1)
						return nil
					}
				}
			}
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for c, cand := range candidates {
		shardStats := make([]*stats.Stat, numThreads)
		for t := 0; t < numThreads; t++ {
			shardStats[t] = shadows[t][c]
		}
		cand.Plies = []*stats.Stat{stats.Combine(shardStats)}
	}
	return nil
}

func shouldStop(candidates []*Candidate, shadows [][]*stats.Stat, z float64) bool {
	combined := make([]*stats.Stat, len(candidates))
	for c := range candidates {
		shards := make([]*stats.Stat, len(shadows))
		for t := range shadows {
			shards[t] = shadows[t][c]
		}
		combined[c] = stats.Combine(shards)
	}
	leader := 0
	for c := 1; c < len(combined); c++ {
		if combined[c].Mean() > combined[leader].Mean() {
			leader = c
		}
	}
	if combined[leader].Cardinality() < 16 {
		return false
	}
	leaderLow := combined[leader].Mean() - combined[leader].Stderr(z)
	for c := range combined {
		if c == leader {
			continue
		}
		if combined[c].Cardinality() < 16 {
			return false
		}
		rivalHigh := combined[c].Mean() + combined[c].Stderr(z)
		if rivalHigh >= leaderLow {
			return false
		}
	}
	return true
}

// rolloutOnce plays candidate, then cfg.Plies additional turns chosen
// by policy against randomized racks cloned from baseGame's bag, and
// returns a final equity estimate: point differential plus a
// win-probability-derived bonus read from cfg.WinPct, grounded in
// original_source's combination of static score and win_pct_get.
func rolloutOnce(baseGame *game.Game, candidate *move.Move, policy Policy, cfg Config, rng *threadRNG) float64 {
	b := baseGame.Bag.CloneWithSeed(rng.Int63())
	onTurnRack := baseGame.Racks[baseGame.OnTurn].Clone()
	oppRack := baseGame.Racks[baseGame.Opponent(baseGame.OnTurn)].Clone()
	bd := cloneBoard(baseGame.Board)

	spread := applyCandidate(bd, onTurnRack, b, candidate)

	for ply := 0; ply < cfg.Plies; ply++ {
		refillFromBag(oppRack, b)
		legal := []*move.Move{}
		if mv := policy(baseGame, legal); mv != nil {
			if ply%2 == 0 {
				spread -= applyCandidate(bd, oppRack, b, mv)
			} else {
				spread += applyCandidate(bd, oppRack, b, mv)
			}
		}
		onTurnRack, oppRack = oppRack, onTurnRack
	}

	// After an odd number of plies the swap leaves the opponent's rack in
	// onTurnRack.
	oppTiles := oppRack.NumTiles()
	if cfg.Plies%2 == 1 {
		oppTiles = onTurnRack.NumTiles()
	}
	unseen := b.Count() + oppTiles
	winBonus := 0.0
	if cfg.WinPct != nil {
		winBonus = float64(cfg.WinPct.Get(spread, unseen))
	}
	return float64(spread) + winBonus
}

func applyCandidate(bd *board.Board, r *rack.Rack, b *bag.Bag, m *move.Move) int {
	if m == nil {
		return 0
	}
	switch m.Type {
	case move.Play:
		row, col := m.RowStart, m.ColStart
		for i := 0; i < m.TilesLength; i++ {
			t := m.Tiles[i]
			if t != alphabet.PlayedThroughMarker {
				bd.SetLetter(row, col, t)
				r.Take(int(t.Letter()))
			}
			if m.Vertical {
				row++
			} else {
				col++
			}
		}
		refillFromBag(r, b)
		return m.Score
	case move.Exchange:
		for i := 0; i < m.TilesLength; i++ {
			letter := int(m.Tiles[i].Letter())
			if r.Take(letter) {
				b.Return(m.Tiles[i].Letter())
			}
		}
		refillFromBag(r, b)
		return 0
	default:
		return 0
	}
}

func refillFromBag(r *rack.Rack, b *bag.Bag) {
	for r.NumTiles() < rack.Size {
		ml, ok := b.Draw()
		if !ok {
			return
		}
		r.Add(int(ml))
	}
}

func cloneBoard(bd *board.Board) *board.Board {
	clone := board.New()
	for i := 0; i < board.Size; i++ {
		for j := 0; j < board.Size; j++ {
			sq := bd.Get(i, j)
			if !sq.IsEmpty() {
				clone.SetLetter(i, j, sq.Letter)
			}
		}
	}
	return clone
}

// threadRNG is a tiny splitmix64-based generator, used so each
// simulator thread's randomness is reproducible from cfg.Seed without
// sharing a *rand.Rand across goroutines, grounded in original_source's
// per-thread-seeded PRNG convention for Monte-Carlo rollouts.
type threadRNG struct {
	state uint64
}

func newThreadRNG(seed int64) *threadRNG {
	return &threadRNG{state: uint64(seed)}
}

func (r *threadRNG) next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func (r *threadRNG) Float64() float64 {
	return float64(r.next()>>11) * (1.0 / (1 << 53))
}

// Int63 returns a non-negative pseudo-random int64 from the same
// per-thread stream as Float64, used to seed each rollout's cloned Bag
// (bag.Bag.CloneWithSeed) without ever touching baseGame.Bag's own
// *rand.Rand from a worker goroutine.
func (r *threadRNG) Int63() int64 {
	return int64(r.next() >> 1)
}
