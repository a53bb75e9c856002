// Package movegen enumerates every meld constructible from a rack,
// including every distinct wildcard placement, and builds the
// tile-to-candidate conflict index the solver prunes with.
//
// Distinct wildcard placements are emitted as distinct melds even when
// the resulting tile multiset is identical, because the placement
// determines the replacement obligation computed when such a meld is
// later disassembled. Enumeration is exponential in the wildcard count
// per run window; fine for the one or two wilds a real rack holds.
package movegen

import (
	"math/bits"

	"github.com/domino14/rummisolve/tiles"
)

// Generator enumerates candidate melds. The generator owns the slice
// returned by GenAll; it is valid until the next GenAll call.
type Generator struct {
	melds []tiles.Meld
}

// NewGenerator creates a meld generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenAll generates every meld realizable from the rack: all runs for
// each color, then all groups for each number.
func (g *Generator) GenAll(rack *tiles.Rack) []tiles.Meld {
	g.melds = g.melds[:0]
	for color := uint8(0); color < tiles.NumColors; color++ {
		g.genRunsForColor(rack, color)
	}
	for number := uint8(tiles.MinNumber); number <= tiles.MaxNumber; number++ {
		g.genGroupsForNumber(rack, number)
	}
	return g.melds
}

// genRunsForColor tries every window start, length, and wildcard
// placement subset for a single color.
func (g *Generator) genRunsForColor(rack *tiles.Rack, color uint8) {
	numWilds := int(rack.Count(tiles.Wild()))
	for start := uint8(1); start <= 11; start++ {
		maxLen := 14 - start
		for length := uint8(3); length <= maxLen; length++ {
			for _, pattern := range wildcardPatterns(int(length), numWilds) {
				if !canFormRun(rack, color, start, length, pattern) {
					continue
				}
				g.melds = append(g.melds, buildRun(color, start, length, pattern))
			}
		}
	}
}

// wildcardPatterns generates every subset of positions [0, length)
// using at most availableWilds positions. The empty pattern comes
// first.
func wildcardPatterns(length, availableWilds int) [][]int {
	patterns := [][]int{nil}
	if availableWilds == 0 {
		return patterns
	}
	for mask := 1; mask < 1<<length; mask++ {
		if bits.OnesCount(uint(mask)) > availableWilds {
			continue
		}
		var positions []int
		for i := 0; i < length; i++ {
			if mask&(1<<i) != 0 {
				positions = append(positions, i)
			}
		}
		patterns = append(patterns, positions)
	}
	return patterns
}

func canFormRun(rack *tiles.Rack, color, start, length uint8, wildPositions []int) bool {
	if int(rack.Count(tiles.Wild())) < len(wildPositions) {
		return false
	}
	for i := uint8(0); i < length; i++ {
		if containsInt(wildPositions, int(i)) {
			continue
		}
		if rack.Count(tiles.New(color, start+i)) == 0 {
			return false
		}
	}
	return true
}

func buildRun(color, start, length uint8, wildPositions []int) tiles.Meld {
	run := make([]tiles.Tile, 0, length)
	for i := uint8(0); i < length; i++ {
		if containsInt(wildPositions, int(i)) {
			run = append(run, tiles.Wild())
		} else {
			run = append(run, tiles.New(color, start+i))
		}
	}
	return tiles.NewMeld(tiles.Run, run)
}

// genGroupsForNumber tries group sizes 3 and 4 for a single number,
// filling missing colors with wilds only when colors are insufficient.
func (g *Generator) genGroupsForNumber(rack *tiles.Rack, number uint8) {
	numWilds := int(rack.Count(tiles.Wild()))

	var available []uint8
	for color := uint8(0); color < tiles.NumColors; color++ {
		if rack.Count(tiles.New(color, number)) > 0 {
			available = append(available, color)
		}
	}
	if len(available)+numWilds < 3 {
		return
	}

	for size := 3; size <= 4; size++ {
		wildsNeeded := 0
		if size > len(available) {
			wildsNeeded = size - len(available)
		}
		if wildsNeeded > numWilds {
			continue
		}
		g.genColorCombinations(available, size-wildsNeeded, wildsNeeded, number)
	}
}

func (g *Generator) genColorCombinations(available []uint8, colorsNeeded, wildsNeeded int, number uint8) {
	if colorsNeeded == 0 {
		// All wilds.
		if wildsNeeded >= 3 {
			grp := make([]tiles.Tile, wildsNeeded)
			for i := range grp {
				grp[i] = tiles.Wild()
			}
			g.melds = append(g.melds, tiles.NewMeld(tiles.Group, grp))
		}
		return
	}
	combination := make([]uint8, colorsNeeded)
	g.combineColors(available, colorsNeeded, 0, 0, combination, wildsNeeded, number)
}

func (g *Generator) combineColors(available []uint8, needed, start, index int,
	combination []uint8, wildsNeeded int, number uint8) {
	if index == needed {
		grp := make([]tiles.Tile, 0, needed+wildsNeeded)
		for _, color := range combination[:needed] {
			grp = append(grp, tiles.New(color, number))
		}
		for i := 0; i < wildsNeeded; i++ {
			grp = append(grp, tiles.Wild())
		}
		g.melds = append(g.melds, tiles.NewMeld(tiles.Group, grp))
		return
	}
	for i := start; i < len(available); i++ {
		combination[index] = available[i]
		g.combineColors(available, needed, i+1, index+1, combination, wildsNeeded, number)
	}
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// BuildTileIndex maps each tile identity to the indices of candidate
// melds that consume it. The solver uses it to invalidate only the
// candidates a commit affects instead of rescanning the whole list.
func BuildTileIndex(melds []tiles.Meld) map[tiles.Tile][]int {
	index := make(map[tiles.Tile][]int)
	for meldIdx, m := range melds {
		seen := map[tiles.Tile]bool{}
		for _, t := range m.Tiles {
			if seen[t] {
				continue
			}
			seen[t] = true
			index[t] = append(index[t], meldIdx)
		}
	}
	return index
}
