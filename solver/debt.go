package solver

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/rummisolve/tiles"
)

// obligation is what one wild "stood for" in a disassembled meld:
// either a single concrete tile, or one of two alternatives (a group
// of three leaves two candidate colors).
type obligation struct {
	concrete bool
	a, b     tiles.Tile
}

// wildDebt tracks the replacement obligations incurred by picking up
// wild-bearing melds. It lives for a single trial: concrete
// obligations sum per tile, either-or pairs accumulate independently
// and are never merged across melds.
type wildDebt struct {
	concrete map[tiles.Tile]int
	eitherOr [][2]tiles.Tile
}

func newWildDebt() *wildDebt {
	return &wildDebt{concrete: make(map[tiles.Tile]int)}
}

func (d *wildDebt) empty() bool {
	return len(d.concrete) == 0 && len(d.eitherOr) == 0
}

// computeWildDebt derives the debt incurred by removing the given
// melds from the table. A wild whose represented tile cannot be
// reconstructed (a malformed meld) is skipped rather than aborting the
// trial.
func computeWildDebt(picked []tiles.Meld) *wildDebt {
	debt := newWildDebt()
	for _, m := range picked {
		for pos, t := range m.Tiles {
			if !t.IsWild() {
				continue
			}
			ob, ok := representedTile(m, pos)
			if !ok {
				log.Debug().Str("meld", m.String()).Int("pos", pos).
					Msg("unresolvable-wild-skipped")
				continue
			}
			if ob.concrete {
				debt.concrete[ob.a]++
			} else {
				debt.eitherOr = append(debt.eitherOr, [2]tiles.Tile{ob.a, ob.b})
			}
		}
	}
	return debt
}

// representedTile computes what tile the wild at wildPos stands for.
//
// Runs: the meld's color, at the number implied by the wild's
// positional offset from any concrete neighbor. Groups of four: the
// single missing color. Groups of three: either of the two missing
// colors. A group with more than two missing colors (several wilds)
// falls back to the first missing color as a concrete obligation; a
// simplification, since a multi-way alternative is not modeled.
func representedTile(m tiles.Meld, wildPos int) (obligation, bool) {
	switch m.Kind {
	case tiles.Run:
		var color uint8
		found := false
		start := 0
		for i, t := range m.Tiles {
			if c, ok := t.Color(); ok {
				color = c
				n, _ := t.Number()
				start = int(n) - i
				found = true
				break
			}
		}
		if !found {
			return obligation{}, false
		}
		represented := start + wildPos
		if represented < tiles.MinNumber || represented > tiles.MaxNumber {
			return obligation{}, false
		}
		return obligation{concrete: true, a: tiles.New(color, uint8(represented))}, true

	case tiles.Group:
		var number uint8
		found := false
		var present [tiles.NumColors]bool
		for _, t := range m.Tiles {
			if c, ok := t.Color(); ok {
				present[c] = true
				number, _ = t.Number()
				found = true
			}
		}
		if !found {
			return obligation{}, false
		}
		var missing []uint8
		for c := uint8(0); c < tiles.NumColors; c++ {
			if !present[c] {
				missing = append(missing, c)
			}
		}
		switch len(missing) {
		case 0:
			return obligation{}, false
		case 1:
			return obligation{concrete: true, a: tiles.New(missing[0], number)}, true
		case 2:
			return obligation{
				a: tiles.New(missing[0], number),
				b: tiles.New(missing[1], number),
			}, true
		default:
			return obligation{concrete: true, a: tiles.New(missing[0], number)}, true
		}
	}
	return obligation{}, false
}

// satisfiedBy checks the debt against the melds newly laid down. Every
// concrete obligation must be covered by that many non-wild copies
// across the melds; every either-or pair needs at least one side
// present. An empty debt is trivially satisfied.
func (d *wildDebt) satisfiedBy(played []tiles.Meld) bool {
	if d.empty() {
		return true
	}
	counts := make(map[tiles.Tile]int)
	for _, m := range played {
		for _, t := range m.Tiles {
			if !t.IsWild() {
				counts[t]++
			}
		}
	}
	for t, required := range d.concrete {
		if counts[t] < required {
			return false
		}
	}
	for _, pair := range d.eitherOr {
		if counts[pair[0]] == 0 && counts[pair[1]] == 0 {
			return false
		}
	}
	return true
}
