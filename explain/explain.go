// Package explain turns a raw solver transcript (pick-ups and
// lay-downs) into the edit operations a person would actually perform
// at the table: extend this meld, split that one, swap out a wild.
//
// The translation reconstructs per-tile provenance first, preferring a
// table origin over a hand origin when a tile could be either, then
// classifies melds in a fixed pass order. Each original and each new
// meld is consumed by at most one operation; a meld returned to the
// table untouched produces no operation at all.
package explain

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/rummisolve/move"
	"github.com/domino14/rummisolve/tiles"
)

// tileSource is where a laid-down tile came from: the hand, or one of
// the picked-up table melds.
type tileSource struct {
	fromHand bool
	tableIdx int
}

// assignment maps one laid tile to its source.
type assignment struct {
	tile tiles.Tile
	src  tileSource
	dest int
}

// meldOrigin records, per tile of a new meld, where it came from.
type meldOrigin struct {
	idx     int
	meld    tiles.Meld
	sources []tileSource
}

// meldFate records, per tile of a picked-up meld, which new meld it
// landed in (-1 if unplaced).
type meldFate struct {
	origIdx int
	meld    tiles.Meld
	dests   []int
}

type pickedMeld struct {
	idx  int
	meld tiles.Meld
}

// Narrate converts a solver transcript into human-legible operations.
// Pick-up indices in the transcript are resolved against the original
// table; out-of-range indices are ignored. An empty transcript, or one
// with no lay-downs, narrates to nothing.
func Narrate(originalTable *tiles.Table, originalHand *tiles.Rack,
	moves []move.Move) []move.Human {

	var picked []pickedMeld
	var laid []tiles.Meld
	for _, mv := range moves {
		switch mv.Action() {
		case move.ActionPickUp:
			if m, ok := originalTable.Meld(mv.TableIndex()); ok {
				picked = append(picked, pickedMeld{idx: mv.TableIndex(), meld: m})
			}
		case move.ActionLayDown:
			laid = append(laid, mv.Meld())
		}
	}
	if len(laid) == 0 {
		return nil
	}

	assignments := assignProvenance(picked, originalHand, laid)
	origins := buildOrigins(laid, assignments)
	fates := buildFates(picked, assignments)

	n := &narrator{
		picked:       picked,
		origins:      origins,
		fates:        fates,
		oldProcessed: map[int]bool{},
		newProcessed: map[int]bool{},
	}
	n.playFromHand()
	n.extendOrUnchanged()
	n.splitMelds()
	n.joinMelds()
	n.swapWilds()
	n.rearrange()
	return n.out
}

// assignProvenance greedily matches each laid tile to an unused source,
// preferring table sources so that "this tile stayed on the table"
// always wins over "it came from the hand" when both are possible.
func assignProvenance(picked []pickedMeld, hand *tiles.Rack,
	laid []tiles.Meld) []assignment {

	type pooled struct {
		tile tiles.Tile
		src  tileSource
	}
	var pool []pooled
	for _, pm := range picked {
		for _, t := range pm.meld.Tiles {
			pool = append(pool, pooled{tile: t, src: tileSource{tableIdx: pm.idx}})
		}
	}
	hand.Each(func(t tiles.Tile, count uint8) {
		for i := uint8(0); i < count; i++ {
			pool = append(pool, pooled{tile: t, src: tileSource{fromHand: true}})
		}
	})

	used := make([]bool, len(pool))
	var assignments []assignment
	for meldIdx, m := range laid {
		for _, t := range m.Tiles {
			found := -1
			for i, p := range pool {
				if !used[i] && p.tile == t && !p.src.fromHand {
					found = i
					break
				}
			}
			if found == -1 {
				for i, p := range pool {
					if !used[i] && p.tile == t {
						found = i
						break
					}
				}
			}
			if found == -1 {
				continue
			}
			used[found] = true
			assignments = append(assignments, assignment{
				tile: t, src: pool[found].src, dest: meldIdx,
			})
		}
	}
	return assignments
}

func buildOrigins(laid []tiles.Meld, assignments []assignment) []meldOrigin {
	return lo.Map(laid, func(m tiles.Meld, idx int) meldOrigin {
		sources := lo.Map(m.Tiles, func(t tiles.Tile, _ int) tileSource {
			for _, a := range assignments {
				if a.dest == idx && a.tile == t {
					return a.src
				}
			}
			return tileSource{fromHand: true}
		})
		return meldOrigin{idx: idx, meld: m, sources: sources}
	})
}

func buildFates(picked []pickedMeld, assignments []assignment) []meldFate {
	return lo.Map(picked, func(pm pickedMeld, _ int) meldFate {
		dests := lo.Map(pm.meld.Tiles, func(t tiles.Tile, _ int) int {
			for _, a := range assignments {
				if a.tile == t && !a.src.fromHand && a.src.tableIdx == pm.idx {
					return a.dest
				}
			}
			return -1
		})
		return meldFate{origIdx: pm.idx, meld: pm.meld, dests: dests}
	})
}

type narrator struct {
	picked       []pickedMeld
	origins      []meldOrigin
	fates        []meldFate
	oldProcessed map[int]bool
	newProcessed map[int]bool
	out          []move.Human
}

// destSet is the sorted set of new-meld indices a fate's tiles landed
// in, unplaced tiles excluded.
func (f meldFate) destSet() []int {
	dests := lo.Uniq(lo.Filter(f.dests, func(d int, _ int) bool { return d >= 0 }))
	sort.Ints(dests)
	return dests
}

// handTiles returns the tiles of an origin meld that came from hand.
func (o meldOrigin) handTiles() []tiles.Tile {
	var out []tiles.Tile
	for i, src := range o.sources {
		if src.fromHand {
			out = append(out, o.meld.Tiles[i])
		}
	}
	return out
}

// tableSources is the sorted set of original-meld indices feeding an
// origin.
func (o meldOrigin) tableSources() []int {
	var idxs []int
	for _, src := range o.sources {
		if !src.fromHand {
			idxs = append(idxs, src.tableIdx)
		}
	}
	idxs = lo.Uniq(idxs)
	sort.Ints(idxs)
	return idxs
}

func (n *narrator) playFromHand() {
	for _, o := range n.origins {
		allHand := lo.EveryBy(o.sources, func(s tileSource) bool { return s.fromHand })
		if allHand {
			n.out = append(n.out, move.Human{Type: move.PlayFromHand, Result: o.meld})
			n.newProcessed[o.idx] = true
		}
	}
}

// extendOrUnchanged handles the two single-destination cases: the
// original meld grew by hand tiles (ExtendMeld), or it came back
// bit-identical (no operation at all).
func (n *narrator) extendOrUnchanged() {
	for _, f := range n.fates {
		if n.oldProcessed[f.origIdx] {
			continue
		}
		dests := f.destSet()
		if len(dests) != 1 || n.newProcessed[dests[0]] {
			continue
		}
		o := n.origins[dests[0]]
		handTiles := o.handTiles()
		switch {
		case len(handTiles) > 0 && len(o.meld.Tiles) > len(f.meld.Tiles):
			n.out = append(n.out, move.Human{
				Type:     move.ExtendMeld,
				Original: f.meld,
				Added:    handTiles,
				Result:   o.meld,
			})
			n.newProcessed[o.idx] = true
			n.oldProcessed[f.origIdx] = true
		case len(handTiles) == 0 && f.meld.Equal(o.meld):
			// Unchanged: the meld was notionally picked up and put
			// straight back. Nothing to narrate.
			n.newProcessed[o.idx] = true
			n.oldProcessed[f.origIdx] = true
		}
	}
}

func (n *narrator) splitMelds() {
	for _, f := range n.fates {
		if n.oldProcessed[f.origIdx] {
			continue
		}
		dests := f.destSet()
		if len(dests) < 2 {
			continue
		}
		pure := true
		for _, destIdx := range dests {
			if n.newProcessed[destIdx] {
				pure = false
				break
			}
			for _, src := range n.origins[destIdx].sources {
				if src.fromHand || src.tableIdx != f.origIdx {
					pure = false
					break
				}
			}
			if !pure {
				break
			}
		}
		if !pure {
			continue
		}
		parts := lo.Map(dests, func(idx int, _ int) tiles.Meld {
			return n.origins[idx].meld
		})
		n.out = append(n.out, move.Human{
			Type:     move.SplitMeld,
			Original: f.meld,
			Parts:    parts,
		})
		for _, destIdx := range dests {
			n.newProcessed[destIdx] = true
		}
		n.oldProcessed[f.origIdx] = true
	}
}

func (n *narrator) joinMelds() {
	for _, o := range n.origins {
		if n.newProcessed[o.idx] {
			continue
		}
		tableSrcs := o.tableSources()
		if len(tableSrcs) < 2 {
			continue
		}
		hasHand := lo.SomeBy(o.sources, func(s tileSource) bool { return s.fromHand })
		if hasHand {
			continue
		}
		allFree := lo.EveryBy(tableSrcs, func(idx int) bool {
			return !n.oldProcessed[idx]
		})
		if !allFree {
			continue
		}
		sources := lo.FilterMap(tableSrcs, func(idx int, _ int) (tiles.Meld, bool) {
			for _, pm := range n.picked {
				if pm.idx == idx {
					return pm.meld, true
				}
			}
			return tiles.Meld{}, false
		})
		n.out = append(n.out, move.Human{
			Type:    move.JoinMelds,
			Sources: sources,
			Result:  o.meld,
		})
		n.newProcessed[o.idx] = true
		for _, idx := range tableSrcs {
			n.oldProcessed[idx] = true
		}
	}
}

// swapWilds detects a meld whose wild position(s) were replaced
// position-for-position by hand tiles, the meld otherwise keeping its
// length.
func (n *narrator) swapWilds() {
	for _, f := range n.fates {
		if n.oldProcessed[f.origIdx] {
			continue
		}
		var wildPositions []int
		for i, t := range f.meld.Tiles {
			if t.IsWild() {
				wildPositions = append(wildPositions, i)
			}
		}
		if len(wildPositions) == 0 {
			continue
		}
		dests := f.destSet()
		if len(dests) != 1 || n.newProcessed[dests[0]] {
			continue
		}
		o := n.origins[dests[0]]
		if len(o.meld.Tiles) != len(f.meld.Tiles) {
			continue
		}
		var swaps []move.WildSwap
		isSwap := true
		for _, pos := range wildPositions {
			if pos >= len(o.sources) {
				continue
			}
			if !o.sources[pos].fromHand {
				isSwap = false
				break
			}
			swaps = append(swaps, move.WildSwap{
				Replacement: o.meld.Tiles[pos],
				Wild:        tiles.Wild(),
			})
		}
		if !isSwap || len(swaps) == 0 {
			continue
		}
		n.out = append(n.out, move.Human{
			Type:     move.SwapWild,
			Original: f.meld,
			Swaps:    swaps,
			Result:   o.meld,
		})
		n.newProcessed[o.idx] = true
		n.oldProcessed[f.origIdx] = true
	}
}

// rearrange bundles everything still unexplained into one catch-all
// operation.
func (n *narrator) rearrange() {
	consumed := lo.FilterMap(n.fates, func(f meldFate, _ int) (tiles.Meld, bool) {
		return f.meld, !n.oldProcessed[f.origIdx]
	})
	leftover := lo.Filter(n.origins, func(o meldOrigin, _ int) bool {
		return !n.newProcessed[o.idx]
	})
	if len(leftover) == 0 {
		return
	}
	produced := lo.Map(leftover, func(o meldOrigin, _ int) tiles.Meld { return o.meld })
	var handTiles []tiles.Tile
	for _, o := range leftover {
		handTiles = append(handTiles, o.handTiles()...)
	}
	n.out = append(n.out, move.Human{
		Type:          move.Rearrange,
		Consumed:      consumed,
		Produced:      produced,
		HandTilesUsed: handTiles,
	})
}
