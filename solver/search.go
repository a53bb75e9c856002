package solver

import (
	"context"

	"github.com/domino14/rummisolve/movegen"
	"github.com/domino14/rummisolve/tiles"
)

// beats reports whether result is a genuine improvement over baseline:
// result may not contain any tile identity absent from baseline, and
// at least one identity's count must strictly decrease (dropping to
// zero counts). beats(x, x) is always false.
func beats(result, baseline *tiles.Rack) bool {
	invented := false
	result.Each(func(t tiles.Tile, ct uint8) {
		if baseline.Count(t) == 0 {
			invented = true
		}
	})
	if invented {
		return false
	}
	improved := false
	baseline.Each(func(t tiles.Tile, ct uint8) {
		if result.Count(t) < ct {
			improved = true
		}
	})
	return improved
}

// searchState is the per-worker mutable state for one search: a meld
// generator plus the table and rack being trial-mutated. Workers never
// share a searchState.
type searchState struct {
	gen   *movegen.Generator
	table *tiles.Table
	rack  *tiles.Rack
}

// subsetResult is the outcome of one subset search.
type subsetResult struct {
	melds []tiles.Meld
	score int
}

// findBestMelds finds the disjoint, playable subset of candidate melds
// that maximizes quality of the remaining rack, subject to the
// remaining rack beating baseline and the wild debt being paid.
// Returns nil if no such subset exists. The rack is restored to its
// entry state on every path, including deadline expiry.
func (s *Solver) findBestMelds(ctx context.Context, st *searchState,
	quality QualityFunc, baseline *tiles.Rack, debt *wildDebt) *subsetResult {

	entryRack := st.rack.Copy()

	candidates := st.gen.GenAll(st.rack)
	if len(candidates) == 0 {
		return nil
	}
	tileIndex := movegen.BuildTileIndex(candidates)

	e := &exploration{
		solver:     s,
		candidates: candidates,
		tileIndex:  tileIndex,
		rack:       st.rack,
		invalid:    make([]bool, len(candidates)),
		quality:    quality,
		baseline:   baseline,
		debt:       debt,
	}
	e.explore(ctx, 0)

	st.rack.CopyFrom(entryRack)

	if e.best == nil {
		return nil
	}
	// The generator owns the candidate slice; deep-copy the winners
	// before the next GenAll clobbers them.
	out := make([]tiles.Meld, len(e.best))
	for i, idx := range e.best {
		out[i] = candidates[idx].Copy()
	}
	return &subsetResult{melds: out, score: e.bestScore}
}

// exploration is the backtracking state for one subset search.
type exploration struct {
	solver     *Solver
	candidates []tiles.Meld
	tileIndex  map[tiles.Tile][]int
	rack       *tiles.Rack
	active     []int
	invalid    []bool
	quality    QualityFunc
	baseline   *tiles.Rack
	debt       *wildDebt

	best      []int
	bestScore int
}

// explore is binary inclusion/exclusion backtracking in fixed
// candidate order. Every descent polls the deadline; on expiry the
// stack unwinds while still undoing in-progress mutations.
func (e *exploration) explore(ctx context.Context, idx int) {
	if ctx.Err() != nil {
		return
	}
	e.solver.nodes.Add(1)

	if idx >= len(e.candidates) {
		e.evaluateTerminal()
		return
	}

	// Option 1: skip this candidate.
	e.explore(ctx, idx+1)

	// Option 2: commit it, if it is still payable from the rack.
	m := e.candidates[idx]
	if e.invalid[idx] || !e.rack.CanPlay(m) {
		return
	}
	e.rack.Play(m)
	e.active = append(e.active, idx)
	newlyInvalid := e.invalidateConflicting(m)

	e.explore(ctx, idx+1)

	// Backtrack, in reverse commit order.
	for _, inv := range newlyInvalid {
		e.invalid[inv] = false
	}
	e.active = e.active[:len(e.active)-1]
	e.rack.Unplay(m)
}

// invalidateConflicting marks candidates sharing a tile with the
// committed meld that are no longer payable, returning exactly the
// indices flipped so the caller can undo them.
func (e *exploration) invalidateConflicting(committed tiles.Meld) []int {
	var newlyInvalid []int
	for _, t := range committed.Tiles {
		for _, meldIdx := range e.tileIndex[t] {
			if e.invalid[meldIdx] || e.rack.CanPlay(e.candidates[meldIdx]) {
				continue
			}
			e.invalid[meldIdx] = true
			newlyInvalid = append(newlyInvalid, meldIdx)
		}
	}
	return newlyInvalid
}

// evaluateTerminal accepts the active subset if the remaining rack
// beats the baseline and the wild debt is paid, keeping it when it
// scores strictly higher than the incumbent (ties keep the earliest
// explored).
func (e *exploration) evaluateTerminal() {
	if !beats(e.rack, e.baseline) {
		return
	}
	active := make([]tiles.Meld, len(e.active))
	for i, idx := range e.active {
		active[i] = e.candidates[idx]
	}
	if !e.debt.satisfiedBy(active) {
		return
	}
	score := e.quality(e.rack)
	if e.best == nil || score > e.bestScore {
		e.best = append(e.best[:0], e.active...)
		e.bestScore = score
	}
}

// firstCombination fills combo with 0, 1, ..., k-1.
func firstCombination(k int) []int {
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}
	return combo
}

// nextCombination advances combo to the next k-combination of [0, n)
// in lexicographic order: the rightmost index not at its maximum slot
// is incremented and everything to its right reset to consecutive
// successors. Returns false when combo was the last combination.
func nextCombination(combo []int, n int) bool {
	k := len(combo)
	if k == 0 {
		return false
	}
	for i := k - 1; i >= 0; i-- {
		if combo[i] < n-k+i {
			combo[i]++
			for j := i + 1; j < k; j++ {
				combo[j] = combo[j-1] + 1
			}
			return true
		}
	}
	return false
}
